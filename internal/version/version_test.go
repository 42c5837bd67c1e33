package version

import (
	"strings"
	"testing"
)

func TestFull(t *testing.T) {
	if Version == "" || Commit == "" {
		t.Fatalf("version info not populated: %q %q", Version, Commit)
	}
	full := Full()
	if !strings.HasPrefix(full, Version) || !strings.Contains(full, "commit: "+Commit) {
		t.Errorf("Full() = %q", full)
	}
}

func TestPlatform(t *testing.T) {
	if !strings.HasPrefix(Platform(), "go") {
		t.Errorf("Platform() = %q", Platform())
	}
}
