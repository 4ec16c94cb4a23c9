package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/broadsheet/pkg/core"
)

func staticSource(recs ...core.Record) core.Source {
	return core.SourceFunc(func(context.Context) ([]core.Record, error) {
		out := make([]core.Record, 0, len(recs))
		for _, r := range recs {
			out = append(out, r.Clone())
		}
		return out, nil
	})
}

func newTestBuild(t *testing.T) *core.Build {
	t.Helper()
	b, err := core.NewBuild(core.DefaultBuildConfig(nil), nil)
	require.NoError(t, err)
	return b
}

func TestBuild_Run(t *testing.T) {
	b := newTestBuild(t)

	res, err := b.Run(context.Background(), staticSource(sevenItems()...))
	require.NoError(t, err)

	assert.Equal(t, b.ID, res.RunID)
	require.Len(t, res.Pages, 2)
	assert.Equal(t, "news-1.hbs", res.Pages[0].Identifier)
	assert.Equal(t, "news-2.hbs", res.Pages[1].Identifier)
	require.Len(t, res.Records, 7)
	assert.Equal(t, "templates/news/item-7.hbs", res.Records[0].Key)

	for _, rec := range b.Store.Iterate(core.PrimaryCollection) {
		assert.True(t, rec.Enriched, rec.Key)
		assert.NotEmpty(t, rec.FinalPath)
	}
	assert.Equal(t, "/news/item-3.html", res.Records[4].FinalPath)

	items := res.Pages[0].Data[core.KeyItems].([]core.Metadata)
	assert.Equal(t, "/news/item-7.html", items[0][core.KeyFinalPath])
	assert.Equal(t, 2, b.Store.Len(core.DerivedCollection))
}

func TestBuild_NoRecords(t *testing.T) {
	b := newTestBuild(t)

	res, err := b.Run(context.Background(), staticSource())
	require.NoError(t, err)
	assert.Empty(t, res.Pages)
	assert.Empty(t, res.Records)
	assert.Equal(t, 0, b.Store.Len(core.DerivedCollection))
}

func TestBuild_RerunDoesNotAccumulate(t *testing.T) {
	b := newTestBuild(t)

	_, err := b.Run(context.Background(), staticSource(sevenItems()...))
	require.NoError(t, err)
	res, err := b.Run(context.Background(), staticSource(sevenItems()[:3]...))
	require.NoError(t, err)

	// Each run sees only its own records.
	assert.Len(t, res.Pages, 1)
	assert.Len(t, res.Records, 3)
	assert.Equal(t, 3, b.Store.Len(core.PrimaryCollection))
	assert.Equal(t, 1, b.Store.Len(core.DerivedCollection))
	assert.Equal(t, 3, res.Pages[0].Data[core.KeyItemCount])
}

func TestBuild_Failures(t *testing.T) {
	t.Run("Missing Sort Key Aborts", func(t *testing.T) {
		b := newTestBuild(t)
		recs := append(sevenItems(), news("templates/news/undated.hbs", nil))

		res, err := b.Run(context.Background(), staticSource(recs...))
		require.Error(t, err)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, core.ErrMissingSortKey)
		assert.Equal(t, 0, b.Store.Len(core.DerivedCollection))

		st := b.State().(core.BuildState)
		assert.True(t, st.Ran)
		assert.Contains(t, st.Error, "undated.hbs")
	})

	t.Run("Nothing Dispatched After Failure", func(t *testing.T) {
		b := newTestBuild(t)
		recs := append(sevenItems()[:3], core.Record{Data: core.Metadata{core.KeyPublished: "2017-01-01"}})

		_, err := b.Run(context.Background(), staticSource(recs...))
		require.ErrorIs(t, err, core.ErrConfiguration)
		assert.Equal(t, 0, b.Store.Len(core.PrimaryCollection))
		assert.Equal(t, 0, b.Store.Len(core.DerivedCollection))

		var rendered int
		err = b.Dispatch(context.Background(), core.RendererFunc(func(context.Context, core.View) error {
			rendered++
			return nil
		}))
		require.NoError(t, err)
		assert.Zero(t, rendered)
	})

	t.Run("Failed Rerun Drops Earlier Results", func(t *testing.T) {
		b := newTestBuild(t)
		_, err := b.Run(context.Background(), staticSource(sevenItems()...))
		require.NoError(t, err)

		_, err = b.Run(context.Background(), staticSource(news("templates/news/undated.hbs", nil)))
		require.ErrorIs(t, err, core.ErrMissingSortKey)
		assert.Equal(t, 0, b.Store.Len(core.PrimaryCollection))
		assert.Equal(t, 0, b.Store.Len(core.DerivedCollection))
	})

	t.Run("Source Error", func(t *testing.T) {
		b := newTestBuild(t)
		boom := errors.New("disk on fire")
		_, err := b.Run(context.Background(), core.SourceFunc(func(context.Context) ([]core.Record, error) {
			return nil, boom
		}))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("Cancelled Context", func(t *testing.T) {
		b := newTestBuild(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := b.Run(ctx, staticSource(sevenItems()...))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewBuild_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*core.BuildConfig)
	}{
		{"Missing Enricher", func(c *core.BuildConfig) { c.Enricher = nil }},
		{"Missing Synthesizer", func(c *core.BuildConfig) { c.Synthesizer = nil }},
		{"Zero Page Size", func(c *core.BuildConfig) { c.Page.PageSize = 0 }},
		{"Bad Page Pattern", func(c *core.BuildConfig) { c.Synthesizer.Pattern = "news.hbs" }},
		{"Bad Enrich Pattern", func(c *core.BuildConfig) { c.EnrichPattern = "[" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := core.DefaultBuildConfig(nil)
			tt.mutate(&cfg)
			_, err := core.NewBuild(cfg, nil)
			assert.ErrorIs(t, err, core.ErrConfiguration)
		})
	}
}

func TestNewBuild_FreshState(t *testing.T) {
	a := newTestBuild(t)
	b := newTestBuild(t)

	assert.NotEqual(t, a.ID, b.ID)
	assert.NotSame(t, a.Store, b.Store)

	_, err := a.Run(context.Background(), staticSource(sevenItems()...))
	require.NoError(t, err)
	assert.Equal(t, 0, b.Store.Len(core.PrimaryCollection))
	assert.Equal(t, "build", b.ComponentType())

	st := b.State().(core.BuildState)
	assert.False(t, st.Ran)
	assert.Equal(t, 5, st.PageSize)
	assert.Equal(t, core.KeyPublished, st.SortKey)
}
