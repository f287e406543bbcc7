// Package chain implements the recorded command chain: the action
// tagged union, its JSON serialization with embedded reference images,
// and the sequential playback engine.
package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Chain is an ordered sequence of actions. Insertion order is playback
// order. A chain only grows by appending during recording and is
// treated as immutable during playback.
type Chain struct {
	Commands []Action
}

// New returns an empty chain.
func New() *Chain {
	return &Chain{}
}

// Append adds an action at the end of the chain.
func (c *Chain) Append(a Action) {
	c.Commands = append(c.Commands, a)
}

// Len returns the number of actions in the chain.
func (c *Chain) Len() int {
	return len(c.Commands)
}

// MarshalJSON serializes the chain as {"commands": [...]} with one
// tagged object per action.
func (c *Chain) MarshalJSON() ([]byte, error) {
	raw := make([]json.RawMessage, len(c.Commands))
	for i, a := range c.Commands {
		msg, err := marshalAction(a)
		if err != nil {
			return nil, err
		}
		raw[i] = msg
	}
	return json.Marshal(struct {
		Commands []json.RawMessage `json:"commands"`
	}{Commands: raw})
}

// UnmarshalJSON is the inverse of MarshalJSON. Any malformed action
// fails the whole chain; there is no partial load.
func (c *Chain) UnmarshalJSON(data []byte) error {
	var doc struct {
		Commands []json.RawMessage `json:"commands"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("malformed command chain: %w", err)
	}

	commands := make([]Action, len(doc.Commands))
	for i, raw := range doc.Commands {
		a, err := unmarshalAction(raw)
		if err != nil {
			return fmt.Errorf("command %d: %w", i+1, err)
		}
		commands[i] = a
	}

	c.Commands = commands
	return nil
}

// Load reads a persisted chain from the given file.
func Load(path string) (*Chain, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open command file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read command file %s: %w", path, err)
	}

	var c Chain
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return &c, nil
}

// Save writes the chain pretty-printed to the given file, replacing any
// previous contents.
func (c *Chain) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize command chain: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write command file %s: %w", path, err)
	}
	return nil
}

// Execute plays back the chain action by action. Each action runs to
// completion before the next starts; the first failure aborts the whole
// chain with no rollback.
func (c *Chain) Execute(ctx context.Context, env *Env) error {
	for i, a := range c.Commands {
		if err := a.Execute(ctx, env); err != nil {
			return fmt.Errorf("action %d (%s): %w", i+1, a.Kind(), err)
		}
	}
	return nil
}

// ExecuteN plays back the chain n times sequentially, writing a 1-based
// progress line to out before each pass.
func (c *Chain) ExecuteN(ctx context.Context, env *Env, n int, out io.Writer) error {
	for i := 1; i <= n; i++ {
		fmt.Fprintf(out, "Starting run %d/%d\n", i, n)
		if err := c.Execute(ctx, env); err != nil {
			return err
		}
	}
	return nil
}
