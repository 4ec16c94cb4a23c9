package platform

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/broadsheet/pkg/adapters/fs"
	"github.com/aretw0/broadsheet/pkg/core"
)

// Site ties a configuration to a source of news items.
// It holds no build state; every call to Build starts from scratch.
type Site struct {
	Root   string
	Config Config
	logger *slog.Logger
	source core.Source
}

// New resolves configuration for the site rooted at root.
//
//	site, err := broadsheet.New(".", broadsheet.WithPageSize(10))
func New(root string, opts ...Option) (*Site, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var cfg Config
	if o.config != nil {
		cfg = *o.config
	} else {
		path := o.configPath
		if path == "" {
			path = filepath.Join(root, ConfigFile)
		}
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	for _, apply := range o.overrides {
		apply(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	src := o.source
	if src == nil {
		src = fs.NewLoader(fs.Config{
			Root:        root,
			Pattern:     cfg.Sources,
			DeriveTitle: cfg.DeriveTitles,
			Logger:      logger,
		})
	}

	return &Site{Root: root, Config: cfg, logger: logger, source: src}, nil
}

// BuildConfig translates the site configuration for the core pipeline.
func (s *Site) BuildConfig() core.BuildConfig {
	enricher := core.NewEnricher(s.logger)
	enricher.Namespace = s.Config.Namespace
	enricher.Ext = s.Config.OutputExt

	synth := core.NewSynthesizer(s.logger)
	synth.Title = s.Config.Title
	synth.Layout = s.Config.Layout
	synth.Pattern = s.Config.PagePattern

	pattern := s.Config.EnrichPattern
	if pattern == "" {
		pattern = "**"
	}

	return core.BuildConfig{
		EnrichPattern: pattern,
		Page: core.PageOptions{
			SortKey:   s.Config.SortKey,
			PageSize:  s.Config.PageSize,
			Ascending: s.Config.Ascending,
		},
		Enricher:    enricher,
		Synthesizer: synth,
	}
}

// Build runs one fresh build pass. The returned Build stays valid for
// introspection even when err is non-nil; its collections are then empty.
func (s *Site) Build(ctx context.Context) (*core.Build, *core.Result, error) {
	b, err := core.NewBuild(s.BuildConfig(), s.logger)
	if err != nil {
		return nil, nil, err
	}
	res, err := b.Run(ctx, s.source)
	if err != nil {
		return b, nil, fmt.Errorf("build %s: %w", b.ID, err)
	}
	return b, res, nil
}
