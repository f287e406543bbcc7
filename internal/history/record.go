// Package history keeps a local log of emdiro invocations so users can
// see which chains ran, when, and how they ended.
package history

import "time"

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// RunRecord represents one persisted invocation of a chain command.
type RunRecord struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	// Command is the invoked subcommand: "record", "run", or "print".
	Command string `json:"command"`

	// ChainFile is the command file the invocation operated on.
	ChainFile string `json:"chain_file"`

	// Actions is the number of actions in the chain.
	Actions int `json:"actions"`

	// Runs is the number of requested passes (run command only).
	Runs int `json:"runs,omitempty"`

	Outcome string `json:"outcome"`

	// Detail contains a human-readable explanation when Outcome is
	// "error".
	Detail string `json:"detail,omitempty"`

	DurationMs int64 `json:"duration_ms"`
}
