package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/broadsheet"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of broadsheet",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "broadsheet version %s\n", broadsheet.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
