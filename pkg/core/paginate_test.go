package core_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/broadsheet/pkg/core"
)

func TestPaginate_PageCount(t *testing.T) {
	for n := 0; n <= 12; n++ {
		for size := 1; size <= 6; size++ {
			t.Run(fmt.Sprintf("%d records by %d", n, size), func(t *testing.T) {
				recs := make([]core.Record, 0, n)
				for i := 0; i < n; i++ {
					recs = append(recs, news(fmt.Sprintf("n%02d.hbs", i), fmt.Sprintf("2020-01-%02d", i+1)))
				}

				pages, err := core.Paginate(recs, core.PageOptions{SortKey: core.KeyPublished, PageSize: size})
				require.NoError(t, err)

				want := (n + size - 1) / size
				require.Len(t, pages, want)

				total := 0
				for i, p := range pages {
					assert.Equal(t, i+1, p.Index)
					assert.Equal(t, want, p.Total)
					assert.LessOrEqual(t, len(p.Items), size)
					assert.NotEmpty(t, p.Items)
					total += len(p.Items)
				}
				assert.Equal(t, n, total)
			})
		}
	}
}

func TestPaginate_Empty(t *testing.T) {
	pages, err := core.Paginate(nil, core.DefaultPageOptions())
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestPaginate_SevenByFive(t *testing.T) {
	pages, err := core.Paginate(sevenItems(), core.DefaultPageOptions())
	require.NoError(t, err)
	require.Len(t, pages, 2)

	assert.Equal(t, []string{
		"templates/news/item-7.hbs",
		"templates/news/item-6.hbs",
		"templates/news/item-5.hbs",
		"templates/news/item-4.hbs",
		"templates/news/item-3.hbs",
	}, keys(pages[0].Items))
	assert.Equal(t, []string{
		"templates/news/item-2.hbs",
		"templates/news/item-1.hbs",
	}, keys(pages[1].Items))
}

func TestPaginate_FiveByFive(t *testing.T) {
	pages, err := core.Paginate(sevenItems()[:5], core.DefaultPageOptions())
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Len(t, pages[0].Items, 5)
	assert.Equal(t, 1, pages[0].Total)
}

func TestPaginate_StableTies(t *testing.T) {
	recs := []core.Record{
		news("a.hbs", "2020-01-02"),
		news("b.hbs", "2020-01-01"),
		news("c.hbs", "2020-01-02"),
		news("d.hbs", "2020-01-03"),
		news("e.hbs", "2020-01-02"),
	}

	pages, err := core.Paginate(recs, core.PageOptions{SortKey: core.KeyPublished, PageSize: 2})
	require.NoError(t, err)

	var got []string
	for _, p := range pages {
		got = append(got, keys(p.Items)...)
	}
	assert.Equal(t, []string{"d.hbs", "a.hbs", "c.hbs", "e.hbs", "b.hbs"}, got)

	t.Run("Ascending", func(t *testing.T) {
		pages, err := core.Paginate(recs, core.PageOptions{SortKey: core.KeyPublished, PageSize: 10, Ascending: true})
		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Equal(t, []string{"b.hbs", "a.hbs", "c.hbs", "e.hbs", "d.hbs"}, keys(pages[0].Items))
	})
}

func TestPaginate_Deterministic(t *testing.T) {
	recs := sevenItems()
	before := keys(recs)

	first, err := core.Paginate(recs, core.DefaultPageOptions())
	require.NoError(t, err)
	second, err := core.Paginate(recs, core.DefaultPageOptions())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, before, keys(recs), "input order must not change")
}

func TestPaginate_MixedDateForms(t *testing.T) {
	recs := sevenItems()
	recs[0].Data[core.KeyPublished] = "2017-03-01"
	recs[6].Data[core.KeyPublished] = "2017-03-07T10:00:00Z"

	pages, err := core.Paginate(recs, core.DefaultPageOptions())
	require.NoError(t, err)
	assert.Equal(t, "templates/news/item-7.hbs", pages[0].Items[0].Key)
	assert.Equal(t, "templates/news/item-1.hbs", pages[1].Items[1].Key)
}

func TestPaginate_Errors(t *testing.T) {
	t.Run("Missing Sort Key", func(t *testing.T) {
		recs := append(sevenItems(), news("templates/news/undated.hbs", nil))

		_, err := core.Paginate(recs, core.DefaultPageOptions())
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrMissingSortKey))

		var mErr *core.MissingSortKeyError
		require.True(t, errors.As(err, &mErr))
		assert.Equal(t, "templates/news/undated.hbs", mErr.Key)
		assert.Contains(t, err.Error(), "undated.hbs")
	})

	t.Run("Unparseable Sort Key", func(t *testing.T) {
		recs := []core.Record{news("bad.hbs", "next tuesday")}

		_, err := core.Paginate(recs, core.DefaultPageOptions())
		var mErr *core.MissingSortKeyError
		require.True(t, errors.As(err, &mErr))
		assert.Equal(t, "next tuesday", mErr.Value)
	})

	t.Run("Zero Page Size", func(t *testing.T) {
		_, err := core.Paginate(sevenItems(), core.PageOptions{SortKey: core.KeyPublished})
		assert.True(t, errors.Is(err, core.ErrConfiguration))
	})

	t.Run("Empty Sort Key", func(t *testing.T) {
		_, err := core.Paginate(sevenItems(), core.PageOptions{PageSize: 5})
		assert.True(t, errors.Is(err, core.ErrConfiguration))
	})
}
