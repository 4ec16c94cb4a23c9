package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/broadsheet/pkg/adapters/fs"
	"github.com/aretw0/broadsheet/pkg/core"
)

var (
	manifestPath string
	printState   bool
	printDiagram bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the news index pages",
	Long: `Load the news items, enrich them, paginate them newest first and
synthesize the index pages. With --manifest, both collections are written
to a JSON or YAML file for the renderer.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := openSite()
		if err != nil {
			return err
		}

		b, res, buildErr := site.Build(cmd.Context())
		if b != nil {
			if err := reportState(cmd, b); err != nil {
				return err
			}
		}
		if buildErr != nil {
			return buildErr
		}

		if manifestPath != "" {
			w := fs.NewManifestWriter(manifestPath)
			if err := b.Dispatch(cmd.Context(), w); err != nil {
				return err
			}
			if err := w.Flush(); err != nil {
				return err
			}
		}

		if !printState && !printDiagram {
			fmt.Fprintf(cmd.OutOrStdout(), "built %d pages from %d items\n", len(res.Pages), len(res.Records))
		}
		return nil
	},
}

// reportState prints the state of c as requested by --state and --diagram.
func reportState(cmd *cobra.Command, c introspection.Introspectable) error {
	out := cmd.OutOrStdout()
	if printState {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(c.State()); err != nil {
			return fmt.Errorf("error encoding state: %w", err)
		}
	}
	if printDiagram {
		fmt.Fprint(out, core.Diagram(c))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVar(&manifestPath, "manifest", "", "Write both collections to this .json or .yaml file")
	buildCmd.Flags().BoolVar(&printState, "state", false, "Print the build state as JSON")
	buildCmd.Flags().BoolVar(&printDiagram, "diagram", false, "Print the build state as a Mermaid diagram")
}
