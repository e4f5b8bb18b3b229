package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Regenerate bindings and linkage from staged sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := runOptions(cmd)
			opts.Watch, _ = cmd.Flags().GetBool("watch")
			return c.app.Generate(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolP("watch", "w", false, "Regenerate whenever the staged public headers change")

	return cmd
}
