package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Source supplies the raw records of the primary collection.
type Source interface {
	Load(ctx context.Context) ([]Record, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]Record, error)

// Load calls f(ctx).
func (f SourceFunc) Load(ctx context.Context) ([]Record, error) { return f(ctx) }

// BuildConfig describes one build pass.
type BuildConfig struct {
	// EnrichPattern selects the primary records the enricher runs on.
	EnrichPattern string
	Page          PageOptions
	Enricher      *Enricher
	Synthesizer   *Synthesizer
}

// DefaultBuildConfig returns the reference configuration.
func DefaultBuildConfig(logger *slog.Logger) BuildConfig {
	return BuildConfig{
		EnrichPattern: "**/*.hbs",
		Page:          DefaultPageOptions(),
		Enricher:      NewEnricher(logger),
		Synthesizer:   NewSynthesizer(logger),
	}
}

// Result is the outcome of a successful build pass.
type Result struct {
	RunID    string
	Records  []Record
	Pages    []SyntheticPage
	Duration time.Duration
}

// Build owns the store and state of a single build invocation.
// A Build must not be shared between concurrent runs.
type Build struct {
	ID     string
	Store  *Store
	config BuildConfig
	logger *slog.Logger

	ran      bool
	lastErr  error
	finished time.Time
}

// NewBuild validates cfg and returns a Build with a fresh store.
func NewBuild(cfg BuildConfig, logger *slog.Logger) (*Build, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Enricher == nil {
		return nil, configErr("enricher", "required")
	}
	if cfg.Synthesizer == nil {
		return nil, configErr("synthesizer", "required")
	}
	if cfg.Page.PageSize < 1 {
		return nil, configErr("pageSize", "must be at least 1, got %d", cfg.Page.PageSize)
	}
	if err := cfg.Synthesizer.validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	logger = logger.With("run_id", id)

	store := NewStore(logger)
	store.Create(PrimaryCollection)
	store.CreatePages(DerivedCollection)
	if err := store.OnLoad(PrimaryCollection, cfg.EnrichPattern, cfg.Enricher.Hook()); err != nil {
		return nil, err
	}

	return &Build{ID: id, Store: store, config: cfg, logger: logger}, nil
}

// Run loads src into the primary collection, paginates it and fills the
// derived collection with synthetic pages. Both collections start empty on
// every run, and any failure leaves them empty so nothing partial can be
// dispatched.
func (b *Build) Run(ctx context.Context, src Source) (res *Result, err error) {
	start := time.Now()
	defer func() {
		b.ran = true
		b.lastErr = err
		b.finished = time.Now()
		if err != nil {
			b.reset()
			b.logger.Error("build failed", "error", err)
		}
	}()

	b.reset()

	raw, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sources: %w", err)
	}
	if err := b.Store.Load(PrimaryCollection, raw...); err != nil {
		return nil, err
	}
	b.logger.Info("records loaded", "collection", PrimaryCollection, "count", len(raw))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := b.Store.Iterate(PrimaryCollection)
	pages, err := Paginate(records, b.config.Page)
	if err != nil {
		return nil, fmt.Errorf("paginate: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	synth, err := b.config.Synthesizer.Synthesize(pages)
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}
	for _, p := range synth {
		if err := b.Store.InsertPage(DerivedCollection, p); err != nil {
			return nil, err
		}
	}

	ordered := make([]Record, 0, len(records))
	for _, p := range pages {
		ordered = append(ordered, p.Items...)
	}

	res = &Result{
		RunID:    b.ID,
		Records:  ordered,
		Pages:    b.Store.Pages(DerivedCollection),
		Duration: time.Since(start),
	}
	b.logger.Info("build finished", "pages", len(res.Pages), "records", len(res.Records), "duration", res.Duration)
	return res, nil
}

func (b *Build) reset() {
	b.Store.Reset(PrimaryCollection)
	b.Store.Reset(DerivedCollection)
}

// Dispatch hands both collections of the build to r.
func (b *Build) Dispatch(ctx context.Context, r Renderer) error {
	return Dispatch(ctx, b.Store, PrimaryCollection, DerivedCollection, r)
}
