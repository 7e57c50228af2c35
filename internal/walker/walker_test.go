package walker

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/ludo-technologies/aspscan/domain"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
}

func collectRel(t *testing.T, w *Walker, root string) []string {
	t.Helper()
	files, err := w.Collect(root)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	rels := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		if err != nil {
			t.Fatalf("Rel failed: %v", err)
		}
		rels = append(rels, filepath.ToSlash(rel))
	}
	sort.Strings(rels)
	return rels
}

func TestCollect_ExtensionFilter(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Program.cs", "class Program {}")
	writeFile(t, root, "readme.md", "# readme")
	writeFile(t, root, "appsettings.json", "{}")
	writeFile(t, root, "Controllers/UsersController.cs", "class UsersController {}")

	w := New([]string{".cs"}, nil)
	got := collectRel(t, w, root)

	want := []string{"Controllers/UsersController.cs", "Program.cs"}
	assertEqualSlices(t, got, want)
}

func TestCollect_ExcludesBuildDirsAtAnyDepth(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/App/Service.cs", "class Service {}")
	writeFile(t, root, "bin/Debug/Generated.cs", "class Generated {}")
	writeFile(t, root, "src/App/obj/Temp.cs", "class Temp {}")
	writeFile(t, root, "packages/Lib/Lib.cs", "class Lib {}")

	w := New([]string{".cs"}, []string{"bin", "obj", "packages"})
	got := collectRel(t, w, root)

	assertEqualSlices(t, got, []string{"src/App/Service.cs"})
}

func TestCollect_ExtensionWithoutDot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Program.cs", "class Program {}")

	w := New([]string{"cs"}, nil)
	got := collectRel(t, w, root)
	assertEqualSlices(t, got, []string{"Program.cs"})
}

func TestCollect_PathNotFound(t *testing.T) {
	w := New([]string{".cs"}, nil)
	_, err := w.Collect(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatal("Expected error for missing root path")
	}

	var domainErr domain.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("Expected DomainError, got %T", err)
	}
	if domainErr.Code != domain.ErrCodePathNotFound {
		t.Errorf("Expected code %s, got %s", domain.ErrCodePathNotFound, domainErr.Code)
	}
}

func TestCollect_SingleFileRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Program.cs", "class Program {}")

	w := New([]string{".cs"}, nil)
	files, err := w.Collect(filepath.Join(root, "Program.cs"))
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("Expected 1 file, got %d", len(files))
	}

	// Non-matching single file yields nothing
	writeFile(t, root, "readme.md", "# readme")
	files, err = w.Collect(filepath.Join(root, "readme.md"))
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("Expected 0 files, got %d", len(files))
	}
}

func TestCollect_RespectsGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "Generated/\n*.g.cs\n")
	writeFile(t, root, "Program.cs", "class Program {}")
	writeFile(t, root, "Generated/Model.cs", "class Model {}")
	writeFile(t, root, "Mapper.g.cs", "class Mapper {}")

	w := New([]string{".cs"}, nil)
	w.LoadGitignore(root)
	got := collectRel(t, w, root)

	assertEqualSlices(t, got, []string{"Program.cs"})
}

func TestLoadGitignore_MissingFileIsNoOp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Program.cs", "class Program {}")

	w := New([]string{".cs"}, nil)
	w.LoadGitignore(root)

	got := collectRel(t, w, root)
	assertEqualSlices(t, got, []string{"Program.cs"})
}

func assertEqualSlices(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Expected files %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %s at index %d, got %s", want[i], i, got[i])
		}
	}
}
