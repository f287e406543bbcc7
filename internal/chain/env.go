package chain

import (
	"image"
	"time"

	"github.com/aticu/emdiro/internal/geometry"
)

// Capturer grabs the current screen contents of a rectangle.
type Capturer interface {
	// Capture returns the decoded pixel buffer for the given screen
	// rectangle. A nil image with a nil error means the screen content
	// is not available yet and the caller may retry.
	Capture(rect geometry.Rect) (*image.RGBA, error)
}

// Injector synthesizes mouse and keyboard events.
type Injector interface {
	// MoveMouse moves the pointer to an absolute screen position.
	MoveMouse(pos geometry.Position) error

	// Click performs a primary click at the current pointer position.
	Click() error

	// PressKeys presses the given key codes in order, then releases
	// them in reverse order.
	PressKeys(keys []uint32) error

	// Type injects the literal text as keystrokes.
	Type(text string) error
}

// ShellRunner executes a recorded shell command to completion.
type ShellRunner interface {
	Run(command string) error
}

// Env bundles the external collaborators a chain executes against.
type Env struct {
	Capture Capturer
	Input   Injector
	Shell   ShellRunner

	// WaitTimeout bounds each image wait. Zero means wait forever,
	// preserving the recorded chain's original semantics.
	WaitTimeout time.Duration

	// SleepFn replaces time.Sleep for sleep actions. Intended for
	// testing; nil uses time.Sleep.
	SleepFn func(time.Duration)
}

func (e *Env) sleep(d time.Duration) {
	if e.SleepFn != nil {
		e.SleepFn(d)
		return
	}
	time.Sleep(d)
}
