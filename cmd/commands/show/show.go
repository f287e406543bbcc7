package show

import (
	"fmt"
	"os"

	"github.com/aticu/emdiro/internal/config"
	"github.com/aticu/emdiro/internal/keycodes"
	"github.com/aticu/emdiro/internal/tui"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

// NewCommand returns the "show" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <commandfile>",
		Short: "Browse a recorded chain in an interactive viewer",
		Long: `Open a full-window viewer for a recorded chain. The viewer lists all
actions in order; select one to see its details.

Examples:
  emdiro show demo.json`,
		Args:         cobra.ExactArgs(1),
		RunE:         runShow,
		SilenceUsage: true,
	}

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("show requires an interactive terminal")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	keys, err := keycodes.Load(cfg.Keymap())
	if err != nil {
		return fmt.Errorf("failed to load key codes: %w", err)
	}

	return tui.RunChainView(args[0], keys)
}
