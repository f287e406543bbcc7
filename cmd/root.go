package cmd

import (
	"os"

	cfgcmd "github.com/aticu/emdiro/cmd/commands/config"
	"github.com/aticu/emdiro/cmd/commands/history"
	"github.com/aticu/emdiro/cmd/commands/printcmd"
	"github.com/aticu/emdiro/cmd/commands/record"
	"github.com/aticu/emdiro/cmd/commands/run"
	"github.com/aticu/emdiro/cmd/commands/show"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "emdiro",
		Short: "lEt Me Do It foR yOu: simple screen automation on linux",
		Long: `emdiro records and replays chains of screen automation actions on
Wayland desktops. A chain mixes image waits, mouse clicks, key presses,
typed text, shell commands, and pauses, and is stored as a JSON file
that can be replayed any number of times.

Screen captures use grim, region selection uses slurp, and input
injection uses ydotool.

Quick start:
  emdiro record demo.json          # Record a new action chain
  emdiro run demo.json             # Replay it once
  emdiro run demo.json -n 5        # Replay it five times
  emdiro print demo.json out.pdf   # Render it as a PDF`,
	}

	cmd.AddCommand(record.NewCommand())
	cmd.AddCommand(run.NewCommand())
	cmd.AddCommand(printcmd.NewCommand())
	cmd.AddCommand(show.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(history.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	var root = rootCmd()
	err := root.Execute()
	if err != nil {
		os.Exit(1)
	}
}
