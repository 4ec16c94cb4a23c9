// Package fs reads site sources from disk and writes build manifests.
package fs

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/aretw0/broadsheet/pkg/core"
)

// Config holds the configuration for the filesystem loader.
type Config struct {
	Root        string
	Pattern     string // doublestar pattern relative to Root, e.g. "templates/news/*.hbs"
	Serializers map[string]Serializer
	// DeriveTitle fills a missing "title" from the file name.
	DeriveTitle bool
	Logger      *slog.Logger
}

// Loader implements core.Source over a directory tree.
type Loader struct {
	config Config
	fsys   fs.FS
}

// NewLoader creates a loader rooted at config.Root.
func NewLoader(config Config) *Loader {
	if config.Serializers == nil {
		config.Serializers = DefaultSerializers()
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{config: config, fsys: os.DirFS(config.Root)}
}

// Load parses every file matching the configured pattern. Keys are the
// slash-separated paths relative to the root, returned in lexical order so
// builds are reproducible.
func (l *Loader) Load(ctx context.Context) ([]core.Record, error) {
	if !doublestar.ValidatePattern(l.config.Pattern) {
		return nil, &core.ConfigurationError{Field: "sources", Reason: fmt.Sprintf("invalid pattern %q", l.config.Pattern)}
	}

	matches, err := doublestar.Glob(l.fsys, l.config.Pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", l.config.Pattern, err)
	}
	sort.Strings(matches)

	records := make([]core.Record, 0, len(matches))
	for _, key := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, err := l.parse(key)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			continue
		}
		records = append(records, *rec)
	}

	l.config.Logger.Debug("sources loaded", "root", l.config.Root, "pattern", l.config.Pattern, "count", len(records))
	return records, nil
}

func (l *Loader) parse(key string) (*core.Record, error) {
	ext := strings.ToLower(path.Ext(key))
	s, ok := l.config.Serializers[ext]
	if !ok {
		l.config.Logger.Warn("no serializer for source, skipping", "key", key)
		return nil, nil
	}

	f, err := l.fsys.Open(key)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rec, err := s.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	rec.Key = key

	if l.config.DeriveTitle && rec.Data.String(core.KeyTitle) == "" {
		rec.Data[core.KeyTitle] = TitleFromKey(key)
	}
	return rec, nil
}

// TitleFromKey turns "templates/news/big-launch_day.hbs" into "Big Launch Day".
func TitleFromKey(key string) string {
	base := path.Base(key)
	name := strings.TrimSuffix(base, path.Ext(base))
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return cases.Title(language.English).String(name)
}
