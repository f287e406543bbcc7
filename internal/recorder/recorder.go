// Package recorder implements the interactive flow that builds an
// action chain from user input and screen selections.
package recorder

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/aticu/emdiro/internal/chain"
	"github.com/aticu/emdiro/internal/geometry"
	"github.com/aticu/emdiro/internal/keycodes"
	"github.com/charmbracelet/huh"
)

// ErrAborted is returned when the user cancels the recording flow.
var ErrAborted = errors.New("recording aborted by user")

// Selector picks a screen region (or a single point) interactively.
type Selector interface {
	// Select returns the chosen region, or nil if the user cancelled
	// the selection.
	Select(point bool) (*geometry.Rect, error)
}

// Menu entries, in the order they are presented.
const (
	optionWaitAndClick = "wait for image and click"
	optionWait         = "wait for image"
	optionClick        = "click"
	optionMouseMove    = "move mouse"
	optionPressKeys    = "press keys"
	optionTypeText     = "type text"
	optionShell        = "shell command"
	optionSleep        = "sleep"
	optionExit         = "exit run"
)

var menuOptions = []string{
	optionWaitAndClick,
	optionWait,
	optionClick,
	optionMouseMove,
	optionPressKeys,
	optionTypeText,
	optionShell,
	optionSleep,
	optionExit,
}

// Recorder drives an interactive recording session.
type Recorder struct {
	Keys       *keycodes.Table
	Screen     Selector
	Capture    chain.Capturer
	Accessible bool
}

// Record loops over the action menu until the user picks "exit run",
// returning the recorded chain. Cancelling the menu itself aborts the
// whole recording; cancelling a sub-flow only discards that action.
func (r *Recorder) Record() (*chain.Chain, error) {
	result := chain.New()

	for {
		choice, err := r.pickOption()
		if err != nil {
			return nil, err
		}

		var action chain.Action
		switch choice {
		case optionWaitAndClick:
			action, err = r.waitForImage(true)
		case optionWait:
			action, err = r.waitForImage(false)
		case optionClick:
			action, err = r.pickPosition(func(pos geometry.Position) chain.Action {
				return &chain.Click{Position: pos}
			})
		case optionMouseMove:
			action, err = r.pickPosition(func(pos geometry.Position) chain.Action {
				return &chain.MouseMove{Position: pos}
			})
		case optionPressKeys:
			action, err = r.pressKeys()
		case optionTypeText:
			action, err = r.inputText("enter the text to type", func(text string) chain.Action {
				return &chain.Type{Text: text}
			})
		case optionShell:
			action, err = r.inputText("enter the shell command to execute", func(command string) chain.Action {
				return &chain.Shell{Command: command}
			})
		case optionSleep:
			action, err = r.sleep()
		case optionExit:
			return result, nil
		}
		if err != nil {
			return nil, err
		}

		if action != nil {
			result.Append(action)
		}
	}
}

// pickOption shows the top-level action menu.
func (r *Recorder) pickOption() (string, error) {
	options := make([]huh.Option[string], 0, len(menuOptions))
	for _, option := range menuOptions {
		options = append(options, huh.NewOption(option, option))
	}

	var choice string
	selectField := huh.NewSelect[string]().
		Title("select your next command").
		Options(options...).
		Value(&choice)

	if err := r.runForm(huh.NewGroup(selectField)); err != nil {
		return "", err
	}
	return choice, nil
}

// waitForImage selects a region, waits for the user to arrange the
// screen, and captures the reference image.
func (r *Recorder) waitForImage(click bool) (chain.Action, error) {
	location, err := r.Screen.Select(false)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, nil
	}

	for {
		var ready bool
		confirmField := huh.NewConfirm().
			Title("Is the image presented as it should be?").
			Value(&ready)
		if err := r.runForm(huh.NewGroup(confirmField)); err != nil {
			if errors.Is(err, ErrAborted) {
				return nil, nil
			}
			return nil, err
		}
		if ready {
			break
		}
	}

	image, err := r.Capture.Capture(*location)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, nil
	}

	return &chain.WaitForImage{Location: *location, Image: image, Click: click}, nil
}

// pickPosition selects a single point on screen and builds a
// position-based action from it.
func (r *Recorder) pickPosition(build func(geometry.Position) chain.Action) (chain.Action, error) {
	rect, err := r.Screen.Select(true)
	if err != nil {
		return nil, err
	}
	if rect == nil {
		return nil, nil
	}
	return build(rect.Origin()), nil
}

// pressKeys collects key codes one at a time until the user cancels
// the picker, which finishes the selection.
func (r *Recorder) pressKeys() (chain.Action, error) {
	names := r.Keys.Names()
	options := make([]huh.Option[int], 0, len(names))
	for i, name := range names {
		options = append(options, huh.NewOption(name, i))
	}

	keys := []uint32{}
	for {
		var index int
		selectField := huh.NewSelect[int]().
			Title("select a key code or press ESC to finish selecting key codes").
			Options(options...).
			Value(&index)

		if err := r.runForm(huh.NewGroup(selectField)); err != nil {
			if errors.Is(err, ErrAborted) {
				break
			}
			return nil, err
		}

		if code, ok := r.Keys.Num(index); ok {
			keys = append(keys, code)
		}
	}

	return &chain.PressKeys{Keys: keys}, nil
}

// inputText prompts for a line of text and builds an action from it.
func (r *Recorder) inputText(title string, build func(string) chain.Action) (chain.Action, error) {
	var text string
	inputField := huh.NewInput().
		Title(title).
		Validate(func(s string) error {
			if s == "" {
				return errors.New("input must not be empty")
			}
			return nil
		}).
		Value(&text)

	if err := r.runForm(huh.NewGroup(inputField)); err != nil {
		if errors.Is(err, ErrAborted) {
			return nil, nil
		}
		return nil, err
	}
	return build(text), nil
}

// sleep prompts for a duration in seconds, re-prompting until the
// input is a valid non-negative number.
func (r *Recorder) sleep() (chain.Action, error) {
	var input string
	inputField := huh.NewInput().
		Title("enter sleep amount in seconds").
		Validate(func(s string) error {
			_, err := parseSeconds(s)
			return err
		}).
		Value(&input)

	if err := r.runForm(huh.NewGroup(inputField)); err != nil {
		if errors.Is(err, ErrAborted) {
			return nil, nil
		}
		return nil, err
	}

	duration, err := parseSeconds(input)
	if err != nil {
		return nil, err
	}
	return &chain.Sleep{Duration: duration}, nil
}

// runForm creates and runs a huh.Form, translating ErrUserAborted to ErrAborted.
func (r *Recorder) runForm(groups ...*huh.Group) error {
	err := huh.NewForm(groups...).WithAccessible(r.Accessible).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}

// parseSeconds parses a duration given as a decimal number of seconds.
func parseSeconds(s string) (time.Duration, error) {
	secs, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", strings.TrimSpace(s))
	}
	if math.IsNaN(secs) || math.IsInf(secs, 0) {
		return 0, fmt.Errorf("duration must be finite")
	}
	if secs < 0 {
		return 0, fmt.Errorf("duration must not be negative")
	}
	return time.Duration(secs * float64(time.Second)), nil
}
