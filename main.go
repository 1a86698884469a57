package main

import (
	"fmt"
	"os"

	skimmer "github.com/skimmer/skimmer/src"
	"github.com/skimmer/skimmer/src/protector"
	"github.com/skimmer/skimmer/src/util"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func newRootCommand(opts *skimmer.Options, code *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "skimmer [flags]",
		Short:         "Pick lines from the standard input interactively",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := skimmer.PostProcessOptions(opts, cmd.Flags()); err != nil {
				return err
			}
			skimmer.SetupLogger(opts)
			var err error
			*code, err = skimmer.Run(opts)
			return err
		},
	}
	skimmer.BindFlags(cmd.Flags(), opts)
	return cmd
}

func main() {
	protector.Protect()
	args, err := skimmer.DefaultArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		util.Exit(skimmer.ExitError)
	}

	code := skimmer.ExitOk
	cmd := newRootCommand(skimmer.DefaultOptions(), &code)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "skimmer:", err)
		util.Exit(skimmer.ExitError)
	}
	util.Exit(code)
}
