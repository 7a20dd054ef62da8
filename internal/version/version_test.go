package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo()

	if info.Version != Version {
		t.Errorf("expected version %q, got %q", Version, info.Version)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("expected go version %q, got %q", runtime.Version(), info.GoVersion)
	}
	if !strings.Contains(info.Platform, runtime.GOOS) {
		t.Errorf("platform %q should contain GOOS", info.Platform)
	}
}

func TestInfo_String(t *testing.T) {
	info := Info{
		Version:   "1.2.3",
		Commit:    "abcdef1234567890",
		Date:      "2026-08-01",
		GoVersion: "go1.24.6",
		Platform:  "linux/amd64",
	}

	s := info.String()
	if !strings.Contains(s, "1.2.3") {
		t.Errorf("version missing from %q", s)
	}
	if !strings.Contains(s, "abcdef12") || strings.Contains(s, "abcdef1234567890") {
		t.Errorf("commit should be shortened to 8 chars in %q", s)
	}
}

func TestInfo_Short(t *testing.T) {
	info := Info{Version: "1.2.3"}
	if info.Short() != "1.2.3" {
		t.Errorf("Short() = %q", info.Short())
	}
}
