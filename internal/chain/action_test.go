package chain

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aticu/emdiro/internal/geometry"
	"github.com/google/go-cmp/cmp"
)

func sampleChain() *Chain {
	return &Chain{Commands: []Action{
		&WaitForImage{
			Location: geometry.Rect{X: 5, Y: 6, Width: 3, Height: 2},
			Image:    testImage(3, 2, 42),
			Click:    true,
		},
		&Sleep{Duration: 2500 * time.Millisecond},
		&Shell{Command: "echo hello"},
		&PressKeys{Keys: []uint32{29, 56, 28}},
		&PressKeys{Keys: []uint32{}},
		&Type{Text: "some text"},
		&Click{Position: geometry.Position{X: 9, Y: 8}},
		&MouseMove{Position: geometry.Position{X: 0, Y: 0}},
	}}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain.json")
	want := sampleChain()

	if err := want.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("chain mismatch after round trip (-want +got):\n%s", diff)
	}
}

func TestMarshal_TaggedFormat(t *testing.T) {
	c := &Chain{Commands: []Action{&Click{Position: geometry.Position{X: 1, Y: 2}}}}

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var doc struct {
		Commands []map[string]any `json:"commands"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(doc.Commands) != 1 {
		t.Fatalf("expected 1 command, got %d", len(doc.Commands))
	}
	if doc.Commands[0]["type"] != "click" {
		t.Errorf(`expected "type": "click" tag, got %v`, doc.Commands[0]["type"])
	}
}

func TestMarshal_DurationIsNanoseconds(t *testing.T) {
	c := &Chain{Commands: []Action{&Sleep{Duration: time.Second}}}

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"duration":1000000000`) {
		t.Errorf("expected nanosecond duration encoding, got %s", data)
	}
}

func TestUnmarshal_UnknownType(t *testing.T) {
	var c Chain
	err := json.Unmarshal([]byte(`{"commands":[{"type":"teleport"}]}`), &c)
	if err == nil {
		t.Fatal("expected error for unknown action type, got nil")
	}
}

func TestUnmarshal_MissingField(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"shell without command", `{"commands":[{"type":"shell"}]}`},
		{"sleep without duration", `{"commands":[{"type":"sleep"}]}`},
		{"click without position", `{"commands":[{"type":"click"}]}`},
		{"wait without image", `{"commands":[{"type":"wait_for_image","location":{"x":0,"y":0,"width":1,"height":1}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Chain
			if err := json.Unmarshal([]byte(tt.doc), &c); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestUnmarshal_NegativeDuration(t *testing.T) {
	var c Chain
	err := json.Unmarshal([]byte(`{"commands":[{"type":"sleep","duration":-5}]}`), &c)
	if err == nil {
		t.Fatal("expected error for negative duration, got nil")
	}
}

func TestUnmarshal_BadImageData(t *testing.T) {
	tests := []struct {
		name  string
		image string
	}{
		{"invalid base64", "%%%not-base64%%%"},
		{"valid base64, not PNG", "aGVsbG8gd29ybGQ="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `{"commands":[{"type":"wait_for_image","location":{"x":0,"y":0,"width":1,"height":1},"image":"` + tt.image + `","click":false}]}`
			var c Chain
			if err := json.Unmarshal([]byte(doc), &c); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestUnmarshal_EmptyKeysRoundTrip(t *testing.T) {
	c := &Chain{Commands: []Action{&PressKeys{Keys: []uint32{}}}}

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var got Chain
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	keys := got.Commands[0].(*PressKeys).Keys
	if keys == nil || len(keys) != 0 {
		t.Errorf("expected empty (non-nil) key list, got %#v", keys)
	}
}

func TestImagesEqual(t *testing.T) {
	a := testImage(4, 4, 1)
	same := testImage(4, 4, 1)
	differentPixel := testImage(4, 4, 2)
	differentSize := testImage(4, 5, 1)

	if !imagesEqual(a, same) {
		t.Error("identical buffers should compare equal")
	}
	if imagesEqual(a, differentPixel) {
		t.Error("buffers with differing pixels should not compare equal")
	}
	if imagesEqual(a, differentSize) {
		t.Error("buffers with differing dimensions should not compare equal")
	}
}
