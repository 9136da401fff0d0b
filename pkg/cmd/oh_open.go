package cmd

import (
	"fmt"

	"github.com/open-here/open-here/api"
	"github.com/open-here/open-here/pkg/client"
	"github.com/open-here/open-here/pkg/httpclient"
	"github.com/open-here/open-here/pkg/target"
	"github.com/spf13/cobra"
)

// newCmdOpen creates the `oh open` subcommand.
func newCmdOpen(ctx api.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "open <target>",
		Short: "Open a URL or a file on the workstation running the server",
		Example: `  oh open https://example.com
  OPEN_HOST=127.0.0.1:9124 oh open ./report.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := ctx.Config()
			if err != nil {
				return err
			}
			clientConf, err := conf.Client()
			if err != nil {
				return err
			}

			t, err := target.Parse(ctx.Fs(), args[0])
			if err != nil {
				return err
			}
			ctx.Logger().Infof("Opening %s on %s", t, clientConf.Host)

			c := client.New(clientConf.URL(),
				httpclient.Timeout(clientConf.Timeout),
				httpclient.Logger(ctx.Logger()),
			)
			res, err := c.Open(t)
			if err != nil {
				return err
			}
			if res != "" {
				fmt.Fprintln(ctx.Out(), res)
			}
			return nil
		},
	}
}
