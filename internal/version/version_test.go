package version

import (
	"strings"
	"testing"
)

func TestGetVersion_EmptyFallsBackToDev(t *testing.T) {
	saved := Version
	defer func() { Version = saved }()

	Version = ""
	if got := GetVersion(); got != "dev" {
		t.Errorf("Expected 'dev' for empty version, got '%s'", got)
	}

	Version = "1.2.3"
	if got := GetVersion(); got != "1.2.3" {
		t.Errorf("Expected '1.2.3', got '%s'", got)
	}
}

func TestGetFullVersion_IncludesBuildInfo(t *testing.T) {
	full := GetFullVersion()

	for _, want := range []string{Version, Commit, Date, BuiltBy} {
		if !strings.Contains(full, want) {
			t.Errorf("Full version %q should contain %q", full, want)
		}
	}
}
