package config

import (
	"fmt"

	"github.com/open-here/open-here/api"
	"github.com/open-here/open-here/pkg/cli"
	"github.com/spf13/cobra"
)

// newCmdConfigShow creates the `oh config show` subcommand.
func newCmdConfigShow(ctx api.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "show [<key>]",
		Short: "Print the configuration values, or a single one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := ctx.Config()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				val := conf.Get(args[0])
				if val == nil {
					return fmt.Errorf("unknown key '%s'", args[0])
				}
				fmt.Fprintf(ctx.Out(), "%v\n", val)
				return nil
			}

			for _, key := range conf.Keys() {
				if val := conf.Get(key); val != nil {
					fmt.Fprintf(ctx.Out(), "%s %v\n", key, val)
				}
			}
			return nil
		},
	}
}

// newCmdConfigPath creates the `oh config path` subcommand.
func newCmdConfigPath(ctx api.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the path to the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := ctx.Config()
			if err != nil {
				return err
			}
			if conf.Path() == "" {
				return fmt.Errorf("no configuration directory, set %s", cli.EnvDir)
			}
			fmt.Fprintln(ctx.Out(), conf.Path())
			return nil
		},
	}
}
