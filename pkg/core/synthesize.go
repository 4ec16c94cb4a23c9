package core

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Keys written into the data of a synthetic page.
const (
	KeyItems      = "items"
	KeyItemCount  = "itemCount"
	KeyPageIndex  = "pageIndex"
	KeyTotalPages = "totalPages"
	KeyNavigation = "navigation"
	KeyKey        = "key"
	KeyFirst      = "first"
	KeyLast       = "last"
	KeyPrev       = "prev"
	KeyNext       = "next"
	KeyIsFirst    = "isFirst"
	KeyIsLast     = "isLast"
)

// Synthesizer turns pages into standalone index documents.
type Synthesizer struct {
	Title   string
	Layout  string
	Pattern string // must contain exactly one %d
	Logger  *slog.Logger
}

// NewSynthesizer returns a Synthesizer producing "news-<n>.hbs" pages titled
// "News Releases" with the "pagin.hbs" layout.
func NewSynthesizer(logger *slog.Logger) *Synthesizer {
	return &Synthesizer{
		Title:   "News Releases",
		Layout:  "pagin.hbs",
		Pattern: "news-%d.hbs",
		Logger:  logger,
	}
}

// Identifier returns the name of the page with the given 1-based index.
func (s *Synthesizer) Identifier(index int) string {
	return fmt.Sprintf(s.Pattern, index)
}

func (s *Synthesizer) validate() error {
	if strings.Count(s.Pattern, "%") != 1 || strings.Count(s.Pattern, "%d") != 1 {
		return configErr("pagePattern", "%q must contain exactly one %%d verb", s.Pattern)
	}
	return nil
}

// Synthesize builds one SyntheticPage per non-empty page, in input order.
// Each page receives its own deep copy of the page aggregate and of the
// navigation sequence, so changes to one page never show up on another.
// The input records are not modified.
func (s *Synthesizer) Synthesize(pages []Page) ([]SyntheticPage, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, nil
	}

	total := pages[0].Total
	nav := make([]int, total)
	for i := range nav {
		nav[i] = i + 1
	}

	seen := make(map[string]int, len(pages))
	out := make([]SyntheticPage, 0, len(pages))
	for _, p := range pages {
		if len(p.Items) == 0 {
			continue
		}

		id := s.Identifier(p.Index)
		if prev, dup := seen[id]; dup {
			return nil, &DuplicateIdentifierError{Identifier: id, First: prev, Second: p.Index}
		}
		seen[id] = p.Index

		out = append(out, SyntheticPage{
			Identifier: id,
			Index:      p.Index,
			Navigation: slices.Clone(nav),
			Title:      s.Title,
			Layout:     s.Layout,
			Body:       "<h2>Page: " + id + "</h2>",
			Data:       s.pageData(p, nav),
		})

		if s.Logger != nil {
			s.Logger.Debug("page synthesized", "identifier", id, "items", len(p.Items))
		}
	}
	return out, nil
}

func (s *Synthesizer) pageData(p Page, nav []int) Metadata {
	items := make([]Metadata, 0, len(p.Items))
	for _, rec := range p.Items {
		item := rec.Data.Clone()
		if item == nil {
			item = make(Metadata)
		}
		item[KeyKey] = rec.Key
		if rec.FinalPath != "" {
			item[KeyFinalPath] = rec.FinalPath
		}
		items = append(items, item)
	}

	prev, next := 0, 0
	if p.Index > 1 {
		prev = p.Index - 1
	}
	if p.Index < p.Total {
		next = p.Index + 1
	}

	return Metadata{
		KeyItems:      items,
		KeyItemCount:  len(items),
		KeyPageIndex:  p.Index,
		KeyTotalPages: p.Total,
		KeyNavigation: slices.Clone(nav),
		KeyTitle:      s.Title,
		KeyLayout:     s.Layout,
		KeyFirst:      1,
		KeyLast:       p.Total,
		KeyPrev:       prev,
		KeyNext:       next,
		KeyIsFirst:    p.Index == 1,
		KeyIsLast:     p.Index == p.Total,
	}
}
