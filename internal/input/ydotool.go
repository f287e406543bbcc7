// Package input injects mouse and keyboard events through the ydotool
// CLI and manages the ydotoold daemon it depends on.
package input

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/aticu/emdiro/internal/geometry"
)

// Ydotool synthesizes input events by spawning the ydotool CLI. The
// ydotoold daemon must be running for any of its methods to succeed.
// It implements chain.Injector.
type Ydotool struct{}

// MoveMouse moves the pointer to an absolute screen position.
func (Ydotool) MoveMouse(pos geometry.Position) error {
	return run("mousemove", "--absolute",
		"-x", strconv.FormatUint(uint64(pos.X), 10),
		"-y", strconv.FormatUint(uint64(pos.Y), 10),
	)
}

// Click presses and releases the left mouse button at the current
// pointer position. 0x40 and 0x80 are ydotool's press and release
// flags for button 0.
func (Ydotool) Click() error {
	return run("click", "40", "80")
}

// PressKeys presses the given key codes in order, then releases them in
// reverse order, so chorded combinations register correctly.
func (Ydotool) PressKeys(keys []uint32) error {
	return run(append([]string{"key"}, keyArgs(keys)...)...)
}

// Type injects the literal text as keystrokes.
func (Ydotool) Type(text string) error {
	return run("type", text)
}

// keyArgs builds the key event list: "k:1" press events in listed
// order followed by "k:0" release events in reverse order. An empty
// key list produces no events.
func keyArgs(keys []uint32) []string {
	args := make([]string, 0, 2*len(keys))
	for _, key := range keys {
		args = append(args, fmt.Sprintf("%d:1", key))
	}
	for i := len(keys) - 1; i >= 0; i-- {
		args = append(args, fmt.Sprintf("%d:0", keys[i]))
	}
	return args
}

func run(args ...string) error {
	cmd := exec.Command("ydotool", args...)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("ydotool %s failed with %s", args[0], exitErr.ProcessState)
		}
		return fmt.Errorf("failed to run ydotool %s: %w", args[0], err)
	}
	return nil
}
