package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/broadsheet"
)

var (
	verbose    bool
	rootDir    string
	configPath string
	pageSize   int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "broadsheet",
	Short: "Builds paginated news indexes for static sites",
	Long: `Broadsheet reads dated news items, orders them newest first and
splits them into index pages (news-1, news-2, ...) ready for rendering.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Site root (default: nearest directory with broadsheet.yaml, else the working directory)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <root>/broadsheet.yaml)")
	rootCmd.PersistentFlags().IntVar(&pageSize, "page-size", 0, "Override the number of items per index page")
}

// openSite resolves the site root and configuration from the global flags.
func openSite() (*broadsheet.Site, error) {
	root := rootDir
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting working directory: %w", err)
		}
		found, err := broadsheet.FindSiteRoot(wd)
		switch {
		case err == nil:
			root = found
		case errors.Is(err, broadsheet.ErrRootNotFound):
			root = wd
		default:
			return nil, err
		}
	}

	opts := []broadsheet.Option{broadsheet.WithLogger(slog.Default())}
	if configPath != "" {
		opts = append(opts, broadsheet.WithConfigFile(configPath))
	}
	if pageSize != 0 {
		opts = append(opts, broadsheet.WithPageSize(pageSize))
	}
	return broadsheet.New(root, opts...)
}
