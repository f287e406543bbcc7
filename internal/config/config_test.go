package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Shell != "" {
		t.Errorf("expected empty Shell, got %q", cfg.Shell)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emdiro", "config.json")

	want := &Config{Shell: "zsh", KeymapPath: "/tmp/keys.h", WaitTimeoutSecs: 2.5}
	if err := want.SaveTo(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "deep")
	path := filepath.Join(dir, "config.json")

	cfg := &Config{Shell: "dash"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Verify the file exists.
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file at %s: %v", path, err)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}

	if got := cfg.ShellBin(); got != "bash" {
		t.Errorf("ShellBin() = %q, want \"bash\"", got)
	}
	if got := cfg.Keymap(); got != "/usr/include/linux/input-event-codes.h" {
		t.Errorf("Keymap() = %q", got)
	}
	if got := cfg.WaitTimeout(); got != 0 {
		t.Errorf("WaitTimeout() = %v, want 0", got)
	}
}

func TestWaitTimeout(t *testing.T) {
	cfg := &Config{WaitTimeoutSecs: 1.5}
	if got, want := cfg.WaitTimeout(), 1500*time.Millisecond; got != want {
		t.Errorf("WaitTimeout() = %v, want %v", got, want)
	}

	cfg = &Config{WaitTimeoutSecs: -3}
	if got := cfg.WaitTimeout(); got != 0 {
		t.Errorf("WaitTimeout() = %v, want 0 for negative config", got)
	}
}
