package pkg

import (
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	t.Parallel()

	if !regexp.MustCompile(`^\d+\.\d+\.\d+`).MatchString(Version()) {
		t.Errorf("expected a semantic version, got %q", Version())
	}
}

func TestEnvPrefix(t *testing.T) {
	t.Parallel()

	if got := EnvPrefix(); got != "ROLL_" {
		t.Errorf("expected ROLL_, got %q", got)
	}
}

func TestPrefixOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"/usr/local/bin/roll", "roll"},
		{"/tmp/roll.exe", "roll"},
		{"/work/__debug_bin3141", Name},
		{"/home/u/.roll", "roll"},
		{"/home/u/...", Name},
		{"dice", "dice"},
	}

	for _, tt := range tests {
		if got := prefixOf(tt.path); got != tt.want {
			t.Errorf("prefixOf(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestPaths(t *testing.T) {
	t.Parallel()

	if got := ConfigPath("config.yaml"); !strings.HasSuffix(got, filepath.Join(Prefix(), "config.yaml")) {
		t.Errorf("unexpected config path %q", got)
	}

	if got := CachePath("history"); filepath.Dir(got) != CacheDir() {
		t.Errorf("unexpected cache path %q", got)
	}
}
