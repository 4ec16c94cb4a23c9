package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/broadsheet/pkg/core"
)

// ManifestEntry is the serialized form of one view.
type ManifestEntry struct {
	Identifier string        `json:"identifier" yaml:"identifier"`
	Data       core.Metadata `json:"data" yaml:"data"`
	Body       string        `json:"body" yaml:"body"`
}

// Manifest groups entries by collection, keeping dispatch order.
type Manifest struct {
	Collections map[string][]ManifestEntry `json:"collections" yaml:"collections"`
}

// ManifestWriter is a core.Renderer that records every view it receives and
// writes them as one JSON or YAML document on Flush. The format follows the
// file extension (.yaml/.yml, JSON otherwise).
type ManifestWriter struct {
	Path string

	mu       sync.Mutex
	manifest Manifest
}

// NewManifestWriter creates a writer targeting path.
func NewManifestWriter(path string) *ManifestWriter {
	return &ManifestWriter{
		Path:     path,
		manifest: Manifest{Collections: make(map[string][]ManifestEntry)},
	}
}

// Render implements core.Renderer.
func (w *ManifestWriter) Render(_ context.Context, v core.View) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.manifest.Collections[v.Collection] = append(w.manifest.Collections[v.Collection], ManifestEntry{
		Identifier: v.Identifier,
		Data:       v.Data,
		Body:       v.Body,
	})
	return nil
}

// Flush writes the collected manifest atomically.
func (w *ManifestWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(w.Path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(w.manifest)
	default:
		data, err = json.MarshalIndent(w.manifest, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	return writeAtomic(w.Path, data)
}

// writeAtomic replaces filename with data through a temp file in the same
// directory, so readers never observe a partial manifest.
func writeAtomic(filename string, data []byte) (err error) {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".broadsheet-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}
	return nil
}

var _ core.Renderer = (*ManifestWriter)(nil)
