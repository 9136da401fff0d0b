package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/open-here/open-here/api"
	"github.com/open-here/open-here/pkg/config"
	"github.com/open-here/open-here/pkg/open"
	"github.com/open-here/open-here/pkg/server"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// serverFlags are the flags of the `oh server` command.
type serverFlags struct {
	dryRun      bool
	maxFilesize string
	opener      string
}

func (f *serverFlags) register(flags *pflag.FlagSet) {
	flags.BoolVar(&f.dryRun, "dry-run", false, "Describe the commands instead of running them")
	flags.StringVar(&f.maxFilesize, "max-filesize", "", "Maximum request body size, eg. 1048576 or 25MiB (default 25MiB)")
	flags.StringVar(&f.opener, "opener", "", "Opener to use: xdg-open, open, or start (default depends on the platform)")
}

// apply overrides the values of conf with the flags which were explicitly set.
func (f *serverFlags) apply(flags *pflag.FlagSet, conf *config.ServerConfig) error {
	if flags.Changed("dry-run") {
		conf.DryRun = f.dryRun
	}
	if flags.Changed("max-filesize") {
		size, err := config.ParseSize(f.maxFilesize)
		if err != nil {
			return err
		}
		conf.MaxFilesize = size
	}
	if flags.Changed("opener") {
		opener, err := open.ParseKind(f.opener)
		if err != nil {
			return err
		}
		conf.Opener = opener
	}
	return nil
}

// newCmdServer creates the `oh server` subcommand.
func newCmdServer(ctx api.Context) *cobra.Command {
	flags := &serverFlags{}

	cmd := &cobra.Command{
		Use:   "server [<host>]",
		Short: "Run the server opening files and URLs on this machine",
		Example: `  oh server
  oh server --dry-run 127.0.0.1:9124
  ssh -R 9123:127.0.0.1:9123 remote-host`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := serverConfig(ctx, flags, cmd.Flags(), args)
			if err != nil {
				return err
			}
			srv, err := server.New(conf, server.Logger(ctx.Logger()))
			if err != nil {
				return err
			}

			sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-sigCtx.Done()
				srv.Close()
			}()

			return srv.Run()
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

// serverConfig resolves the server configuration, by order of precedence:
// command-line arguments, config file and env vars, defaults.
func serverConfig(ctx api.Context, flags *serverFlags, flagSet *pflag.FlagSet, args []string) (config.ServerConfig, error) {
	conf, err := ctx.Config()
	if err != nil {
		return config.ServerConfig{}, err
	}
	serverConf, err := conf.Server()
	if err != nil {
		return serverConf, err
	}
	if err := flags.apply(flagSet, &serverConf); err != nil {
		return serverConf, err
	}
	if len(args) == 1 {
		serverConf.Host = args[0]
	}
	ctx.Logger().Debugf("Server configuration: %+v", serverConf)
	return serverConf, nil
}
