package config

import (
	"github.com/aticu/emdiro/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage emdiro configuration",
		Long: "View and modify persistent emdiro settings.\n\n" +
			"Configuration is stored at ~/.config/emdiro/config.json.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}
