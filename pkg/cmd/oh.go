// Package cmd defines commands for the open-here CLI.
package cmd

import (
	"github.com/open-here/open-here/api"
	"github.com/open-here/open-here/pkg/cli"
	"github.com/open-here/open-here/pkg/cli/version"
	"github.com/open-here/open-here/pkg/cmd/completion"
	configcmd "github.com/open-here/open-here/pkg/cmd/config"
	"github.com/spf13/cobra"
)

const annotationUsageOptions string = "usage_options"

// NewOHCommand creates the `oh` command with its `server`, `open`, `openers`, `config`, and `completion` subcommands.
func NewOHCommand(ctx api.Context) *cobra.Command {
	globalFlags := &cli.GlobalFlags{}

	cmd := &cobra.Command{
		Use:           "oh",
		Short:         "Open files and URLs from a remote host on your workstation",
		Version:       version.Version(),
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SilenceUsage = true
			ctx.Logger().SetLevel(cli.LogLevel(globalFlags.ResolveVerbosity(ctx.EnvLookup)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	globalFlags.Register(cmd.PersistentFlags())

	cmd.SetOut(ctx.Out())
	cmd.SetErr(ctx.ErrOut())

	cmd.AddCommand(
		newCmdServer(ctx),
		newCmdOpen(ctx),
		newCmdOpeners(ctx),
		configcmd.NewCommand(ctx),
		completion.NewCommand(ctx),
	)

	// This follows the CLI design guidelines for help formatting.
	cmd.SetUsageTemplate(`Usage:{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{else if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}

Commands:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{.Name}}
      {{.Short}}{{end}}{{end}}{{end}}{{if or .HasAvailableLocalFlags (ne (index .Annotations "` + annotationUsageOptions + `") "")}}

Options:{{if ne (index .Annotations "` + annotationUsageOptions + `") ""}}{{index .Annotations "` + annotationUsageOptions + `"}}{{else}}
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`)

	cmd.Annotations = map[string]string{
		annotationUsageOptions: `
  --version
      Print version information
  -v, -vv, -vvv
      Output verbosity (warnings, info, or debug messages)
  -h, --help
      Show usage help`,
	}

	return cmd
}
