package keycodes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleHeader = `/* Keys and buttons */

#define KEY_RESERVED		0
#define KEY_ESC			1
#define KEY_ENTER		28
#define KEY_A			30
#define KEY_MIN_INTERESTING	KEY_MUTE
#define KEY_MAX			0x2ff
#define BTN_LEFT		0x110
#define EV_KEY			0x01
`

func mustParse(t *testing.T, src string) *Table {
	t.Helper()
	table, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return table
}

func TestParse(t *testing.T) {
	table := mustParse(t, sampleHeader)

	want := []string{"a", "enter", "esc", "reserved"}
	if diff := cmp.Diff(want, table.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_SkipsNonDecimalValues(t *testing.T) {
	table := mustParse(t, sampleHeader)

	// KEY_MIN_INTERESTING aliases another macro, KEY_MAX is hex; both
	// must be skipped.
	if _, ok := table.Lookup("min_interesting"); ok {
		t.Error("expected alias define to be skipped")
	}
	if _, ok := table.Lookup("max"); ok {
		t.Error("expected hex define to be skipped")
	}
}

func TestLookup(t *testing.T) {
	table := mustParse(t, sampleHeader)

	code, ok := table.Lookup("enter")
	if !ok || code != 28 {
		t.Errorf("Lookup(enter) = %d, %v, want 28, true", code, ok)
	}

	// Lookup is case-normalized.
	code, ok = table.Lookup("ENTER")
	if !ok || code != 28 {
		t.Errorf("Lookup(ENTER) = %d, %v, want 28, true", code, ok)
	}

	if _, ok := table.Lookup("noexist"); ok {
		t.Error("expected Lookup of unknown name to fail")
	}
}

func TestNum(t *testing.T) {
	table := mustParse(t, sampleHeader)

	// Sorted names: a, enter, esc, reserved.
	tests := []struct {
		index  int
		want   uint32
		wantOK bool
	}{
		{0, 30, true},
		{1, 28, true},
		{2, 1, true},
		{3, 0, true},
		{4, 0, false},
		{-1, 0, false},
	}

	for _, tt := range tests {
		code, ok := table.Num(tt.index)
		if code != tt.want || ok != tt.wantOK {
			t.Errorf("Num(%d) = %d, %v, want %d, %v", tt.index, code, ok, tt.want, tt.wantOK)
		}
	}
}

func TestReverseLookup(t *testing.T) {
	table := mustParse(t, sampleHeader)

	name, ok := table.ReverseLookup(28)
	if !ok || name != "enter" {
		t.Errorf("ReverseLookup(28) = %q, %v, want \"enter\", true", name, ok)
	}

	if _, ok := table.ReverseLookup(9999); ok {
		t.Error("expected ReverseLookup of unknown code to fail")
	}
}

func TestReverseLookup_TieBreaksLexicographically(t *testing.T) {
	table := mustParse(t, "#define KEY_ZETA 7\n#define KEY_ALPHA 7\n")

	name, ok := table.ReverseLookup(7)
	if !ok || name != "alpha" {
		t.Errorf("ReverseLookup(7) = %q, %v, want \"alpha\", true", name, ok)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input-event-codes.h")
	if err := os.WriteFile(path, []byte(sampleHeader), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if code, ok := table.Lookup("esc"); !ok || code != 1 {
		t.Errorf("Lookup(esc) = %d, %v, want 1, true", code, ok)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.h"))
	if err == nil {
		t.Fatal("expected error for missing key-code table, got nil")
	}
}
