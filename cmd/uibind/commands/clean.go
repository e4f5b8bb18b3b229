package commands

import (
	"github.com/spf13/cobra"

	"github.com/uibind/uibind/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the staging tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			output, _ := cmd.Flags().GetBool("output")

			return c.app.Clean(cmd.Context(), app.CleanOptions{
				ConfigPath: configPath,
				Overrides:  overrides(cmd),
				Output:     output,
			})
		},
	}

	cmd.Flags().Bool("output", false, "Also remove the generated binding and linkage files")

	return cmd
}
