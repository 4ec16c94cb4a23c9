// Package broadsheet is the Composition Root for the broadsheet site builder.
//
// It wires the filesystem loader to the core build pipeline, which turns a
// folder of dated news items into an ordered, paginated index:
//
//   - **Enrichment**: every news item gets a canonical output path
//     ("templates/news/foo.hbs" is published as "/news/foo.html").
//   - **Pagination**: items are sorted newest first and split into pages of
//     a fixed size (five by default).
//   - **Synthesis**: each page becomes a standalone in-memory document
//     ("news-1.hbs", "news-2.hbs", ...) carrying its items, the full pager
//     sequence, a title and a layout, ready for a renderer.
//
// Rendering is left to the caller through core.Renderer.
//
// Usage:
//
//	site, err := broadsheet.New("./site", broadsheet.WithLogger(logger))
//	build, res, err := site.Build(ctx)
//	for _, p := range res.Pages {
//		fmt.Println(p.Identifier, p.Navigation)
//	}
package broadsheet
