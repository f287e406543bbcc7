package history

import "github.com/spf13/cobra"

// NewCommand returns the "history" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "View and manage run history",
		Long: "View a local history of emdiro recordings and runs and prune old entries.\n\n" +
			"Run history is stored locally in ~/.config/emdiro/emdiro.db.",
		SilenceUsage: true,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(PruneCommand())

	return cmd
}
