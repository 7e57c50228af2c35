// Package walker discovers candidate source files under a scan root.
package walker

import (
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/ludo-technologies/aspscan/domain"
)

// Walker enumerates files matching an extension filter while excluding
// build-output and dependency directories at any depth.
type Walker struct {
	extensions  map[string]bool
	excludeDirs map[string]bool
	ignorer     *ignore.GitIgnore
}

// New creates a walker for the given extensions and excluded directory names
func New(extensions, excludeDirs []string) *Walker {
	w := &Walker{
		extensions:  make(map[string]bool, len(extensions)),
		excludeDirs: make(map[string]bool, len(excludeDirs)),
	}
	for _, ext := range extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		w.extensions[strings.ToLower(ext)] = true
	}
	for _, dir := range excludeDirs {
		w.excludeDirs[strings.ToLower(dir)] = true
	}
	return w
}

// LoadGitignore compiles the .gitignore at the scan root, if present.
// A missing or unreadable ignore file is not an error.
func (w *Walker) LoadGitignore(root string) {
	ignorer, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return
	}
	w.ignorer = ignorer
}

// Collect walks the tree under root and returns eligible file paths in
// filesystem-enumeration order. Callers must not depend on the ordering;
// the scan result is sorted before rendering.
func (w *Walker) Collect(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, domain.NewPathNotFoundError(root, err)
	}

	if !info.IsDir() {
		if w.eligible(root) {
			return []string{root}, nil
		}
		return nil, nil
	}

	var files []string
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Unreadable directory entries are contained, not fatal
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			if path != root && w.excludeDirs[strings.ToLower(info.Name())] {
				return filepath.SkipDir
			}
			return nil
		}

		if !w.eligible(path) {
			return nil
		}
		if w.ignorer != nil {
			if rel, relErr := filepath.Rel(root, path); relErr == nil && w.ignorer.MatchesPath(rel) {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

func (w *Walker) eligible(path string) bool {
	return w.extensions[strings.ToLower(filepath.Ext(path))]
}
