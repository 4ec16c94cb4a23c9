package platform

import (
	"log/slog"

	"github.com/aretw0/broadsheet/pkg/core"
)

// options holds the internal configuration for a Site.
type options struct {
	logger     *slog.Logger
	config     *Config
	configPath string
	source     core.Source
	overrides  []func(*Config)
}

// Option defines a functional option for configuring a Site.
type Option func(*options)

func defaultOptions() *options {
	return &options{}
}

// WithLogger sets the logger for the site and every build it runs.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithConfig uses cfg instead of reading broadsheet.yaml.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.config = &cfg
	}
}

// WithConfigFile reads configuration from path instead of <root>/broadsheet.yaml.
func WithConfigFile(path string) Option {
	return func(o *options) {
		o.configPath = path
	}
}

// WithSource replaces the filesystem loader (e.g. with an in-memory source).
func WithSource(src core.Source) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithPageSize overrides the configured page size.
func WithPageSize(n int) Option {
	return func(o *options) {
		o.overrides = append(o.overrides, func(c *Config) { c.PageSize = n })
	}
}

// WithSources overrides the configured source pattern.
func WithSources(pattern string) Option {
	return func(o *options) {
		o.overrides = append(o.overrides, func(c *Config) { c.Sources = pattern })
	}
}
