package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/broadsheet/pkg/core"
)

var pagesJSON bool

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "Show the synthesized index pages",
	Long:  `Run a build and print one line per index page, or the full pages with --json.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := openSite()
		if err != nil {
			return err
		}
		_, res, err := site.Build(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if pagesJSON {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(res.Pages)
		}

		for _, p := range res.Pages {
			items, _ := p.Data[core.KeyItemCount].(int)
			fmt.Fprintf(out, "%s items=%d nav=%v\n", p.Identifier, items, p.Navigation)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pagesCmd)
	pagesCmd.Flags().BoolVar(&pagesJSON, "json", false, "Output in JSON format")
}
