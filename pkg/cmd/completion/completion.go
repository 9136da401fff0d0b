// Package completion defines the `oh completion` command.
package completion

import (
	"fmt"

	"github.com/open-here/open-here/api"
	"github.com/spf13/cobra"
)

// NewCommand creates the `oh completion` subcommand
func NewCommand(ctx api.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "completion <shell>",
		Short:     "Output shell completion script for the open-here CLI",
		Hidden:    true,
		ValidArgs: []string{"bash", "zsh"},
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := args[0]
			switch shell {
			case "bash":
				return cmd.Root().GenBashCompletion(ctx.Out())
			case "zsh":
				return cmd.Root().GenZshCompletion(ctx.Out())
			default:
				return fmt.Errorf("invalid shell '%s' given", shell)
			}
		},
	}

	return cmd
}
