package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/go-rod/pageobject"
	"github.com/go-rod/pageobject/lib/drivers"
	"github.com/go-rod/pageobject/lib/manifest"
	"github.com/go-rod/pageobject/lib/utils"
	"github.com/spf13/cobra"
)

func getCmdLocators() *cobra.Command {
	return &cobra.Command{
		Use:   "locators <manifest> <page>",
		Short: "Print the locators of a page in the declared order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}

			page, has := m.Page(args[1])
			if !has {
				return fmt.Errorf("%w: no such page %q in the manifest", pageobject.ErrInvalidArgument, args[1])
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, l := range page.Locators.Locators() {
				fmt.Fprintf(w, "%s\t%s\n", l.Name, l.Selector)
			}
			return w.Flush()
		},
	}
}

func getCmdDrivers() *cobra.Command {
	return &cobra.Command{
		Use:   "drivers",
		Short: "List the names of the drivers",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range drivers.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

func getCmdJSON() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "json <manifest>",
		Short: "Convert the manifest to json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}

			data, err := m.JSON()
			if err != nil {
				return err
			}

			data = append(data, '\n')

			if output != "" {
				return utils.OutputFile(output, data)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the json to the file instead of stdout")

	return cmd
}
