package shell

import (
	"strings"
	"testing"
)

func TestRun_Success(t *testing.T) {
	r := Runner{Shell: "sh"}
	if err := r.Run("true"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}

func TestRun_NonZeroExit(t *testing.T) {
	r := Runner{Shell: "sh"}

	err := r.Run("exit 3")
	if err == nil {
		t.Fatal("expected error for non-zero exit, got nil")
	}
	if !strings.Contains(err.Error(), `"exit 3"`) {
		t.Errorf("error should carry the command text, got %q", err)
	}
	if !strings.Contains(err.Error(), "3") {
		t.Errorf("error should carry the exit status, got %q", err)
	}
}

func TestRun_MissingInterpreter(t *testing.T) {
	r := Runner{Shell: "definitely-not-a-shell"}
	if err := r.Run("true"); err == nil {
		t.Fatal("expected error for missing interpreter, got nil")
	}
}
