package cmd

import (
	"github.com/open-here/open-here/api"
	"github.com/open-here/open-here/pkg/cli"
	"github.com/open-here/open-here/pkg/open"
	"github.com/spf13/cobra"
)

// newCmdOpeners creates the `oh openers` subcommand.
func newCmdOpeners(ctx api.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "openers",
		Short: "List the openers the server can use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := ctx.Config()
			if err != nil {
				return err
			}
			serverConf, err := conf.Server()
			if err != nil {
				return err
			}

			table := cli.NewTable(ctx.Out(), []string{"", "OPENER", "COMMAND"})
			for _, kind := range open.Kinds {
				var selected string
				if kind == serverConf.Opener {
					selected = "*"
				}
				table.Append([]string{selected, kind.String(), kind.Cmd("<target>").String()})
			}
			table.Render()
			return nil
		},
	}
}
