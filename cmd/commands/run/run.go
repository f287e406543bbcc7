package run

import (
	"fmt"
	"time"

	"github.com/aticu/emdiro/internal/chain"
	"github.com/aticu/emdiro/internal/config"
	"github.com/aticu/emdiro/internal/history"
	"github.com/aticu/emdiro/internal/input"
	"github.com/aticu/emdiro/internal/screen"
	"github.com/aticu/emdiro/internal/shell"

	"github.com/spf13/cobra"
)

// NewCommand returns the "run" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <commandfile>",
		Short: "Run a previously recorded chain of actions",
		Long: `Replay a previously recorded chain of actions from the given file.

The ydotoold daemon is started for the duration of the run and stopped
again afterwards. A failing action stops the run with an error.

Examples:
  emdiro run demo.json
  emdiro run demo.json --num-runs 5
  emdiro run demo.json --wait-timeout 30`,
		Args:         cobra.ExactArgs(1),
		RunE:         runRun,
		SilenceUsage: true,
	}

	cmd.Flags().Uint32P("num-runs", "n", 1, "The number of runs to perform")
	cmd.Flags().Float64("wait-timeout", 0, "Seconds to wait for an image before giving up (0 = wait forever)")

	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	commandFile := args[0]
	numRuns, _ := cmd.Flags().GetUint32("num-runs")
	start := time.Now()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	waitTimeout := cfg.WaitTimeout()
	if cmd.Flags().Changed("wait-timeout") {
		secs, _ := cmd.Flags().GetFloat64("wait-timeout")
		if secs < 0 {
			return fmt.Errorf("wait-timeout must not be negative")
		}
		waitTimeout = time.Duration(secs * float64(time.Second))
	}

	c, err := chain.Load(commandFile)
	if err != nil {
		return err
	}

	daemon, err := input.StartDaemon()
	if err != nil {
		return err
	}
	defer daemon.Stop()

	env := &chain.Env{
		Capture:     screen.Grim{},
		Input:       input.Ydotool{},
		Shell:       shell.Runner{Shell: cfg.ShellBin()},
		WaitTimeout: waitTimeout,
	}

	record := &history.RunRecord{
		Command:   "run",
		ChainFile: commandFile,
		Actions:   c.Len(),
		Runs:      int(numRuns),
		Outcome:   history.OutcomeSuccess,
	}

	err = c.ExecuteN(cmd.Context(), env, int(numRuns), cmd.OutOrStdout())
	if err != nil {
		record.Outcome = history.OutcomeError
		record.Detail = err.Error()
	}
	record.DurationMs = time.Since(start).Milliseconds()
	history.Log(record)

	return err
}
