// Package screen wraps the Wayland screen utilities: slurp for
// interactive region selection and grim for screenshot capture.
package screen

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/aticu/emdiro/internal/geometry"
)

// Slurp asks the user to select a screen region or point through the
// slurp utility.
type Slurp struct{}

// Select prompts for a rectangle on the screen, or a single point when
// point is true. A nil rectangle with a nil error means the user
// cancelled the selection.
func (Slurp) Select(point bool) (*geometry.Rect, error) {
	var args []string
	if point {
		args = append(args, "-p")
	}

	cmd := exec.Command("slurp", args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// slurp exits non-zero when the selection is aborted.
			return nil, nil
		}
		return nil, fmt.Errorf("failed to run slurp: %w", err)
	}

	rect, err := parseRegion(stdout.String())
	if err != nil {
		return nil, err
	}
	return rect, nil
}

// parseRegion parses slurp's "x,y WxH" output line.
func parseRegion(s string) (*geometry.Rect, error) {
	badFormat := func() error {
		return fmt.Errorf("unexpected slurp output format: %q", strings.TrimSpace(s))
	}

	pos, size, ok := strings.Cut(strings.TrimSpace(s), " ")
	if !ok {
		return nil, badFormat()
	}
	xStr, yStr, ok := strings.Cut(pos, ",")
	if !ok {
		return nil, badFormat()
	}
	wStr, hStr, ok := strings.Cut(size, "x")
	if !ok {
		return nil, badFormat()
	}

	fields := [4]string{xStr, yStr, wStr, hStr}
	var values [4]uint32
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return nil, badFormat()
		}
		values[i] = uint32(v)
	}

	return &geometry.Rect{X: values[0], Y: values[1], Width: values[2], Height: values[3]}, nil
}
