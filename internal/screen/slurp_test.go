package screen

import (
	"testing"

	"github.com/aticu/emdiro/internal/geometry"
)

func TestParseRegion(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  geometry.Rect
	}{
		{"plain", "10,20 300x400", geometry.Rect{X: 10, Y: 20, Width: 300, Height: 400}},
		{"trailing newline", "10,20 300x400\n", geometry.Rect{X: 10, Y: 20, Width: 300, Height: 400}},
		{"point selection", "55,66 1x1\n", geometry.Rect{X: 55, Y: 66, Width: 1, Height: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRegion(tt.input)
			if err != nil {
				t.Fatalf("parseRegion(%q) failed: %v", tt.input, err)
			}
			if *got != tt.want {
				t.Errorf("parseRegion(%q) = %v, want %v", tt.input, *got, tt.want)
			}
		})
	}
}

func TestParseRegion_Malformed(t *testing.T) {
	inputs := []string{
		"",
		"10,20",
		"10 20 300x400",
		"10,20 300",
		"a,b cxd",
		"-1,20 300x400",
	}

	for _, input := range inputs {
		if _, err := parseRegion(input); err == nil {
			t.Errorf("parseRegion(%q) succeeded, want error", input)
		}
	}
}
