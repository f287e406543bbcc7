// Package printcmd implements the "print" subcommand, which renders a
// recorded chain as a PDF document.
package printcmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aticu/emdiro/internal/chain"
	"github.com/aticu/emdiro/internal/config"
	"github.com/aticu/emdiro/internal/export"
	"github.com/aticu/emdiro/internal/history"
	"github.com/aticu/emdiro/internal/keycodes"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

// NewCommand returns the "print" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "print <commandfile> <outfile>",
		Short: "Render a recorded chain as a PDF document",
		Long: `Render a previously recorded chain of actions as a PDF document,
including the reference images of image waits.

Requires the typst binary on PATH.

Examples:
  emdiro print demo.json demo.pdf`,
		Args:         cobra.ExactArgs(2),
		RunE:         runPrint,
		SilenceUsage: true,
	}

	return cmd
}

func runPrint(cmd *cobra.Command, args []string) error {
	commandFile, outFile := args[0], args[1]
	start := time.Now()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	keys, err := keycodes.Load(cfg.Keymap())
	if err != nil {
		return fmt.Errorf("failed to load key codes: %w", err)
	}

	c, err := chain.Load(commandFile)
	if err != nil {
		return err
	}

	compileErr := spinner.New().
		Title("Compiling PDF...").
		Accessible(os.Getenv("ACCESSIBLE") != "").
		Output(os.Stderr).
		ActionWithErr(func(ctx context.Context) error {
			return export.ToPDF(c, keys, outFile)
		}).
		Run()

	record := &history.RunRecord{
		Command:   "print",
		ChainFile: commandFile,
		Actions:   c.Len(),
		Outcome:   history.OutcomeSuccess,
	}
	if compileErr != nil {
		record.Outcome = history.OutcomeError
		record.Detail = compileErr.Error()
	}
	record.DurationMs = time.Since(start).Milliseconds()
	history.Log(record)

	if compileErr != nil {
		return compileErr
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outFile)
	return nil
}
