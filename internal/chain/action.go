package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"time"

	"github.com/aticu/emdiro/internal/geometry"
)

// Kind discriminates the action variants in the persisted chain format.
type Kind string

const (
	KindWaitForImage Kind = "wait_for_image"
	KindSleep        Kind = "sleep"
	KindShell        Kind = "shell"
	KindPressKeys    Kind = "press_keys"
	KindType         Kind = "type"
	KindClick        Kind = "click"
	KindMouseMove    Kind = "mouse_move"
)

// Action is a single step of a recorded chain. The set of
// implementations is closed; each variant carries its own parameters
// and playback semantics.
type Action interface {
	// Kind returns the variant's serialization tag.
	Kind() Kind

	// Execute performs the action against the collaborators in env,
	// blocking until it completes or fails.
	Execute(ctx context.Context, env *Env) error

	isAction()
}

// WaitForImage blocks playback until the screen region at Location is
// pixel-identical to the reference image captured at record time,
// optionally clicking the region's center afterwards.
type WaitForImage struct {
	Location geometry.Rect
	Image    *image.RGBA
	Click    bool
}

func (*WaitForImage) Kind() Kind { return KindWaitForImage }
func (*WaitForImage) isAction()  {}

func (w *WaitForImage) Execute(ctx context.Context, env *Env) error {
	if env.WaitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, env.WaitTimeout)
		defer cancel()
	}

	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("waiting for image at %s: %w", w.Location, err)
		}

		img, err := env.Capture.Capture(w.Location)
		if err != nil {
			return err
		}
		if img == nil || !imagesEqual(img, w.Image) {
			continue
		}
		break
	}

	if w.Click {
		if err := env.Input.MoveMouse(w.Location.Center()); err != nil {
			return err
		}
		return env.Input.Click()
	}
	return nil
}

// Sleep suspends playback for a fixed duration.
type Sleep struct {
	Duration time.Duration
}

func (*Sleep) Kind() Kind { return KindSleep }
func (*Sleep) isAction()  {}

func (s *Sleep) Execute(ctx context.Context, env *Env) error {
	env.sleep(s.Duration)
	return nil
}

// Shell runs a command through the shell interpreter and waits for it
// to finish. A non-zero exit status fails the whole chain.
type Shell struct {
	Command string
}

func (*Shell) Kind() Kind { return KindShell }
func (*Shell) isAction()  {}

func (s *Shell) Execute(ctx context.Context, env *Env) error {
	return env.Shell.Run(s.Command)
}

// PressKeys presses all keys in order, then releases them in reverse
// order, modelling a chorded key combination.
type PressKeys struct {
	Keys []uint32
}

func (*PressKeys) Kind() Kind { return KindPressKeys }
func (*PressKeys) isAction()  {}

func (p *PressKeys) Execute(ctx context.Context, env *Env) error {
	return env.Input.PressKeys(p.Keys)
}

// Type injects literal text as keystrokes.
type Type struct {
	Text string
}

func (*Type) Kind() Kind { return KindType }
func (*Type) isAction()  {}

func (t *Type) Execute(ctx context.Context, env *Env) error {
	return env.Input.Type(t.Text)
}

// Click moves the pointer to Position and performs a primary click.
// The move's side effect persists even if the click fails.
type Click struct {
	Position geometry.Position
}

func (*Click) Kind() Kind { return KindClick }
func (*Click) isAction()  {}

func (c *Click) Execute(ctx context.Context, env *Env) error {
	if err := env.Input.MoveMouse(c.Position); err != nil {
		return err
	}
	return env.Input.Click()
}

// MouseMove moves the pointer to Position.
type MouseMove struct {
	Position geometry.Position
}

func (*MouseMove) Kind() Kind { return KindMouseMove }
func (*MouseMove) isAction()  {}

func (m *MouseMove) Execute(ctx context.Context, env *Env) error {
	return env.Input.MoveMouse(m.Position)
}

// --- Serialization ---
//
// Each action serializes as an object carrying a "type" tag next to the
// variant's fields. The reference image of a wait action is embedded as
// a base64 string of PNG data; durations use time.Duration's native
// JSON form (integer nanoseconds).

type actionEnvelope struct {
	Type Kind `json:"type"`

	Location *geometry.Rect     `json:"location,omitempty"`
	Image    string             `json:"image,omitempty"`
	Click    *bool              `json:"click,omitempty"`
	Duration *time.Duration     `json:"duration,omitempty"`
	Command  *string            `json:"command,omitempty"`
	Keys     []uint32           `json:"keys,omitempty"`
	Text     *string            `json:"text,omitempty"`
	Position *geometry.Position `json:"position,omitempty"`
}

func marshalAction(a Action) (json.RawMessage, error) {
	env := actionEnvelope{Type: a.Kind()}

	switch a := a.(type) {
	case *WaitForImage:
		img, err := encodeImage(a.Image)
		if err != nil {
			return nil, err
		}
		loc := a.Location
		click := a.Click
		env.Location, env.Image, env.Click = &loc, img, &click
	case *Sleep:
		d := a.Duration
		env.Duration = &d
	case *Shell:
		cmd := a.Command
		env.Command = &cmd
	case *PressKeys:
		env.Keys = a.Keys
		if env.Keys == nil {
			env.Keys = []uint32{}
		}
	case *Type:
		text := a.Text
		env.Text = &text
	case *Click:
		pos := a.Position
		env.Position = &pos
	case *MouseMove:
		pos := a.Position
		env.Position = &pos
	default:
		return nil, fmt.Errorf("unknown action type %T", a)
	}

	return json.Marshal(env)
}

func unmarshalAction(data json.RawMessage) (Action, error) {
	var env actionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("malformed action: %w", err)
	}

	switch env.Type {
	case KindWaitForImage:
		if env.Location == nil || env.Image == "" {
			return nil, fmt.Errorf("%s action is missing its location or image", env.Type)
		}
		img, err := decodeImage(env.Image)
		if err != nil {
			return nil, err
		}
		click := env.Click != nil && *env.Click
		return &WaitForImage{Location: *env.Location, Image: img, Click: click}, nil
	case KindSleep:
		if env.Duration == nil {
			return nil, fmt.Errorf("%s action is missing its duration", env.Type)
		}
		if *env.Duration < 0 {
			return nil, fmt.Errorf("%s action has a negative duration", env.Type)
		}
		return &Sleep{Duration: *env.Duration}, nil
	case KindShell:
		if env.Command == nil {
			return nil, fmt.Errorf("%s action is missing its command", env.Type)
		}
		return &Shell{Command: *env.Command}, nil
	case KindPressKeys:
		keys := env.Keys
		if keys == nil {
			keys = []uint32{}
		}
		return &PressKeys{Keys: keys}, nil
	case KindType:
		if env.Text == nil {
			return nil, fmt.Errorf("%s action is missing its text", env.Type)
		}
		return &Type{Text: *env.Text}, nil
	case KindClick:
		if env.Position == nil {
			return nil, fmt.Errorf("%s action is missing its position", env.Type)
		}
		return &Click{Position: *env.Position}, nil
	case KindMouseMove:
		if env.Position == nil {
			return nil, fmt.Errorf("%s action is missing its position", env.Type)
		}
		return &MouseMove{Position: *env.Position}, nil
	default:
		return nil, fmt.Errorf("unknown action type %q", env.Type)
	}
}
