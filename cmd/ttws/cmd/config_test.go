package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ttws.yml")
	data := `
seed: 42
randomize: true
yieldInterval: 50ms
timeout: 2s
svgOut: out.svg
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	s, err := loadSettings(path)
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if s.Seed != 42 || !s.Randomize {
		t.Fatalf("settings = %+v", s)
	}
	if time.Duration(s.YieldInterval) != 50*time.Millisecond {
		t.Fatalf("yieldInterval = %v", time.Duration(s.YieldInterval))
	}
	if time.Duration(s.Timeout) != 2*time.Second {
		t.Fatalf("timeout = %v", time.Duration(s.Timeout))
	}
	if s.SVGOut != "out.svg" {
		t.Fatalf("svgOut = %q", s.SVGOut)
	}
}

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := loadSettings("")
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if time.Duration(s.YieldInterval) != 100*time.Millisecond {
		t.Fatalf("default yieldInterval = %v", time.Duration(s.YieldInterval))
	}
}

func TestLoadSettingsBadFile(t *testing.T) {
	if _, err := loadSettings(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Fatal("missing file accepted")
	}
}
