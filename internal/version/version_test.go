package version

import (
	"strings"
	"testing"
)

func withVersion(t *testing.T, v, commit string) {
	t.Helper()
	oldV, oldC := Version, GitCommit
	Version, GitCommit = v, commit
	t.Cleanup(func() { Version, GitCommit = oldV, oldC })
}

func TestIsDev(t *testing.T) {
	tests := map[string]bool{"dev": true, "": true, "v1.0.0": false, "0.3.1": false}
	for v, want := range tests {
		withVersion(t, v, "unknown")
		if got := IsDev(); got != want {
			t.Errorf("IsDev() with %q = %v, want %v", v, got, want)
		}
	}
}

func TestSemver(t *testing.T) {
	withVersion(t, "v1.4.2", "unknown")
	if got := Semver(); got != "1.4.2" {
		t.Errorf("Semver() = %q, want 1.4.2", got)
	}
}

func TestString_ShortensCommit(t *testing.T) {
	withVersion(t, "v1.0.0", "0123456789abcdef")
	s := String()
	if !strings.Contains(s, "0123456)") && !strings.Contains(s, "(0123456,") {
		t.Errorf("String() = %q, want shortened commit", s)
	}
	if strings.Contains(s, "0123456789") {
		t.Errorf("String() = %q, commit not shortened", s)
	}
}

func TestGet(t *testing.T) {
	info := Get()
	if info.GoVersion == "" || !strings.Contains(info.Platform, "/") {
		t.Errorf("Get() = %+v, missing runtime fields", info)
	}
}
