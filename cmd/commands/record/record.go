package record

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aticu/emdiro/internal/config"
	"github.com/aticu/emdiro/internal/history"
	"github.com/aticu/emdiro/internal/keycodes"
	"github.com/aticu/emdiro/internal/recorder"
	"github.com/aticu/emdiro/internal/screen"

	"github.com/spf13/cobra"
)

// NewCommand returns the "record" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record <commandfile>",
		Short: "Record a chain of actions that can later be replayed",
		Long: `Record a new chain of actions interactively and store it in the given
file. Each menu round appends one action; pick "exit run" to finish.

Region and point selections are made on screen with slurp, and
reference images are captured with grim.

Examples:
  emdiro record demo.json`,
		Args:         cobra.ExactArgs(1),
		RunE:         runRecord,
		SilenceUsage: true,
	}

	return cmd
}

func runRecord(cmd *cobra.Command, args []string) error {
	commandFile := args[0]
	start := time.Now()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	keys, err := keycodes.Load(cfg.Keymap())
	if err != nil {
		return fmt.Errorf("failed to load key codes: %w", err)
	}

	rec := &recorder.Recorder{
		Keys:       keys,
		Screen:     screen.Slurp{},
		Capture:    screen.Grim{},
		Accessible: os.Getenv("ACCESSIBLE") != "",
	}

	chain, err := rec.Record()
	if err != nil {
		if errors.Is(err, recorder.ErrAborted) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Recording cancelled, nothing was written.")
		}
		return err
	}

	if err := chain.Save(commandFile); err != nil {
		return err
	}

	history.Log(&history.RunRecord{
		Command:    "record",
		ChainFile:  commandFile,
		Actions:    chain.Len(),
		Outcome:    history.OutcomeSuccess,
		DurationMs: time.Since(start).Milliseconds(),
	})

	fmt.Fprintf(cmd.OutOrStdout(), "Recorded %d action(s) to %s\n", chain.Len(), commandFile)
	return nil
}
