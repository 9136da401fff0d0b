// Package config defines the `oh config` commands.
package config

import (
	"github.com/open-here/open-here/api"
	"github.com/spf13/cobra"
)

// NewCommand creates the `oh config` subcommand.
func NewCommand(ctx api.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the open-here configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(
		newCmdConfigShow(ctx),
		newCmdConfigPath(ctx),
	)
	return cmd
}
