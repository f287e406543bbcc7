package tui

import (
	"image"
	"strings"
	"testing"
	"time"

	"github.com/aticu/emdiro/internal/chain"
	"github.com/aticu/emdiro/internal/geometry"
	"github.com/aticu/emdiro/internal/keycodes"
)

func testKeys(t *testing.T) *keycodes.Table {
	t.Helper()
	table, err := keycodes.Parse(strings.NewReader("#define KEY_ENTER 28\n#define KEY_A 30\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return table
}

func TestSummarize(t *testing.T) {
	keys := testKeys(t)
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))

	tests := []struct {
		action chain.Action
		want   string
	}{
		{
			&chain.WaitForImage{Location: geometry.Rect{X: 1, Y: 2, Width: 3, Height: 4}, Image: img, Click: true},
			"wait for image at 1,2 3x4 and click",
		},
		{
			&chain.WaitForImage{Location: geometry.Rect{X: 1, Y: 2, Width: 3, Height: 4}, Image: img},
			"wait for image at 1,2 3x4",
		},
		{&chain.Sleep{Duration: 2 * time.Second}, "sleep for 2s"},
		{&chain.Shell{Command: "ls -l"}, "shell command: ls -l"},
		{&chain.PressKeys{Keys: []uint32{28, 30}}, "press keys: enter+a"},
		{&chain.PressKeys{Keys: []uint32{999}}, "press keys: <999>"},
		{&chain.Type{Text: "hi"}, `type text: "hi"`},
		{&chain.Click{Position: geometry.Position{X: 5, Y: 6}}, "click at 5,6"},
		{&chain.MouseMove{Position: geometry.Position{X: 7, Y: 8}}, "move mouse to 7,8"},
	}

	for _, tt := range tests {
		if got := summarize(tt.action, keys); got != tt.want {
			t.Errorf("summarize(%T) = %q, want %q", tt.action, got, tt.want)
		}
	}
}

func TestDetailFields(t *testing.T) {
	keys := testKeys(t)

	fields := detailFields(&chain.WaitForImage{
		Location: geometry.Rect{X: 0, Y: 0, Width: 10, Height: 20},
		Image:    image.NewRGBA(image.Rect(0, 0, 10, 20)),
		Click:    true,
	}, keys)
	if len(fields) != 3 {
		t.Fatalf("detailFields returned %d fields, want 3", len(fields))
	}
	if fields[1][1] != "10x20 px" {
		t.Errorf("image field = %q, want %q", fields[1][1], "10x20 px")
	}
	if fields[2][1] != "true" {
		t.Errorf("click field = %q, want %q", fields[2][1], "true")
	}

	fields = detailFields(&chain.PressKeys{Keys: []uint32{28}}, keys)
	if fields[0][1] != "enter" {
		t.Errorf("keys field = %q, want %q", fields[0][1], "enter")
	}
}
