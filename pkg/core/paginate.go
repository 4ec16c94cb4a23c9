package core

import (
	"slices"
	"time"
)

// PageOptions controls how records are ordered and partitioned.
type PageOptions struct {
	SortKey   string
	PageSize  int
	Ascending bool // default is most recent first
}

// DefaultPageOptions mirrors the reference site: five items per page, newest
// first by "published".
func DefaultPageOptions() PageOptions {
	return PageOptions{SortKey: KeyPublished, PageSize: 5}
}

// Paginate sorts records by the date at opts.SortKey and splits them into
// pages of at most opts.PageSize. The sort is stable so records with equal
// dates keep their input order. An empty input yields no pages.
func Paginate(records []Record, opts PageOptions) ([]Page, error) {
	if opts.PageSize < 1 {
		return nil, configErr("pageSize", "must be at least 1, got %d", opts.PageSize)
	}
	if opts.SortKey == "" {
		return nil, configErr("sortKey", "must not be empty")
	}
	if len(records) == 0 {
		return nil, nil
	}

	type keyed struct {
		rec Record
		at  time.Time
	}
	sorted := make([]keyed, 0, len(records))
	for _, r := range records {
		at, err := sortTime(r, opts.SortKey)
		if err != nil {
			return nil, err
		}
		sorted = append(sorted, keyed{rec: r, at: at})
	}

	slices.SortStableFunc(sorted, func(a, b keyed) int {
		c := a.at.Compare(b.at)
		if opts.Ascending {
			return c
		}
		return -c
	})

	total := (len(sorted) + opts.PageSize - 1) / opts.PageSize
	pages := make([]Page, 0, total)
	for i := 0; i < total; i++ {
		start := i * opts.PageSize
		end := min(start+opts.PageSize, len(sorted))

		items := make([]Record, 0, end-start)
		for _, k := range sorted[start:end] {
			items = append(items, k.rec)
		}
		pages = append(pages, Page{Index: i + 1, Items: items, Total: total})
	}
	return pages, nil
}
