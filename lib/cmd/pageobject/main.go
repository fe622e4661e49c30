// A cli tool to check the pages declared in a manifest file against a real site.
//
//	pageobject check pages.yml --serve ./site --driver static
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Version of the cli
const Version = "v0.1.0"

var (
	passColor = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
	nameColor = color.New(color.FgCyan)
)

func main() {
	runReaper()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "pageobject",
		Short:        "Check the pages declared in a manifest file",
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
				color.NoColor = true
			}
		},
	}

	root.PersistentFlags().Bool("no-color", false, "disable the colored output")

	root.AddCommand(
		getCmdCheck(),
		getCmdLocators(),
		getCmdDrivers(),
		getCmdJSON(),
	)

	return root
}
