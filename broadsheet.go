package broadsheet

import (
	"log/slog"

	"github.com/aretw0/broadsheet/internal/platform"
	"github.com/aretw0/broadsheet/pkg/core"
)

// --- Types ---

// Site is a configured site ready to build.
type Site = platform.Site

// Config is the content of broadsheet.yaml.
type Config = platform.Config

// --- Configuration ---

// Option defines a functional option for configuring a Site.
type Option = platform.Option

// WithLogger sets the logger for the site and its builds.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithConfig bypasses broadsheet.yaml.
func WithConfig(cfg Config) Option {
	return platform.WithConfig(cfg)
}

// WithConfigFile reads the configuration from a custom path.
func WithConfigFile(path string) Option {
	return platform.WithConfigFile(path)
}

// WithSource replaces the filesystem loader.
func WithSource(src core.Source) Option {
	return platform.WithSource(src)
}

// WithPageSize overrides the number of items per index page.
func WithPageSize(n int) Option {
	return platform.WithPageSize(n)
}

// WithSources overrides the glob selecting news items.
func WithSources(pattern string) Option {
	return platform.WithSources(pattern)
}

// --- Factory ---

// New prepares the site rooted at root.
func New(root string, opts ...Option) (*Site, error) {
	return platform.New(root, opts...)
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return platform.DefaultConfig()
}

// FindSiteRoot looks upwards from startDir for a broadsheet.yaml.
func FindSiteRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

// ErrRootNotFound is returned by FindSiteRoot when no broadsheet.yaml exists
// above the start directory.
var ErrRootNotFound = platform.ErrRootNotFound

// Version of the broadsheet module.
const Version = "0.3.0"
