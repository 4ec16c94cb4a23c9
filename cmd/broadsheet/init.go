package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/broadsheet"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a default broadsheet.yaml",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		path := filepath.Join(dir, "broadsheet.yaml")
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}

		data, err := yaml.Marshal(broadsheet.DefaultConfig())
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Initialized broadsheet site in", dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
