package main

import (
	"os"

	"github.com/open-here/open-here/api"
	"github.com/open-here/open-here/pkg/cli"
	"github.com/open-here/open-here/pkg/cmd"
)

func main() {
	ctx := cli.NewContext(cli.NewOsEnvironment())
	if err := run(ctx, ctx.Args()); err != nil {
		ctx.Logger().Error(err)
		os.Exit(1)
	}
}

// run launches the open-here CLI with the given arguments, starting by the program name.
func run(ctx api.Context, args []string) error {
	ohCmd := cmd.NewOHCommand(ctx)
	ohCmd.SetArgs(args[1:])
	return ohCmd.Execute()
}
