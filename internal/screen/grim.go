package screen

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os/exec"

	"github.com/aticu/emdiro/internal/chain"
	"github.com/aticu/emdiro/internal/geometry"
)

// Grim captures screen contents through the grim utility. It implements
// chain.Capturer.
type Grim struct{}

// Capture takes a screenshot of the given screen rectangle and returns
// its decoded pixel buffer. A nil image with a nil error means grim
// could not produce a capture right now and the caller may retry.
func (Grim) Capture(rect geometry.Rect) (*image.RGBA, error) {
	cmd := exec.Command("grim",
		"-l", "0",
		"-g", rect.String(),
		"-",
	)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to run grim: %w", err)
	}

	img, err := chain.DecodePNG(&stdout)
	if err != nil {
		return nil, fmt.Errorf("grim output: %w", err)
	}
	return img, nil
}
