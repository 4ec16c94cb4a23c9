package core

import (
	"log/slog"
	"path"
	"strings"
)

// Enricher derives the output path of news items.
type Enricher struct {
	Namespace string // e.g. "/news/"
	Ext       string // e.g. ".html"
	Logger    *slog.Logger
}

// NewEnricher returns an Enricher with the default "/news/" namespace and
// ".html" extension.
func NewEnricher(logger *slog.Logger) *Enricher {
	return &Enricher{Namespace: "/news/", Ext: ".html", Logger: logger}
}

// FinalPath maps a record key to its published path:
// "templates/news/foo.hbs" becomes "/news/foo.html".
func (e *Enricher) FinalPath(key string) string {
	base := path.Base(strings.ReplaceAll(key, "\\", "/"))
	name := strings.TrimSuffix(base, path.Ext(base))

	ns := e.Namespace
	if !strings.HasPrefix(ns, "/") {
		ns = "/" + ns
	}
	if !strings.HasSuffix(ns, "/") {
		ns += "/"
	}
	ext := e.Ext
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ns + name + ext
}

// Enrich sets FinalPath and Enriched on rec and mirrors them into its data.
// It is idempotent.
func (e *Enricher) Enrich(rec Record) (Record, error) {
	if rec.Key == "" {
		return rec, configErr("key", "cannot enrich a record without a key")
	}
	if rec.Data == nil {
		rec.Data = make(Metadata)
	}

	rec.FinalPath = e.FinalPath(rec.Key)
	rec.Enriched = true
	rec.Data[KeyFinalPath] = rec.FinalPath
	rec.Data[KeyTouch] = "true"

	if e.Logger != nil {
		e.Logger.Debug("record enriched", "key", rec.Key, "final_path", rec.FinalPath)
	}
	return rec, nil
}

// Hook adapts Enrich for Store.OnLoad.
func (e *Enricher) Hook() Hook {
	return e.Enrich
}
