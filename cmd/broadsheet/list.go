package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/broadsheet/pkg/core"
)

var (
	listJSON  bool
	filterTag string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List news items in index order",
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

		var filtered []core.Record
		for _, rec := range res.Records {
			if filterTag != "" && !hasTag(rec.Data["tags"], filterTag) {
				continue
			}
			filtered = append(filtered, rec)
		}

		out := cmd.OutOrStdout()
		if listJSON {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(filtered)
		}

		for _, rec := range filtered {
			title := ""
			if t := rec.Data.String(core.KeyTitle); t != "" {
				title = fmt.Sprintf(" - %s", t)
			}
			fmt.Fprintf(out, "%s%s\n", rec.FinalPath, title)
		}
		return nil
	},
}

// hasTag handles []interface{} (from YAML) or []string.
func hasTag(tags any, tag string) bool {
	switch t := tags.(type) {
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s == tag {
				return true
			}
		}
	case []string:
		for _, s := range t {
			if s == tag {
				return true
			}
		}
	case string:
		return t == tag
	}
	return false
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&filterTag, "tag", "", "Filter items by tag")
}
