package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Stage the pinned sources without building",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Fetch(cmd.Context(), runOptions(cmd))
		},
	}
}
