package platform

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the name of the site configuration file.
const ConfigFile = "broadsheet.yaml"

// Config is the site configuration read from broadsheet.yaml.
type Config struct {
	Sources       string `yaml:"sources"`        // doublestar pattern of news items, relative to the root
	EnrichPattern string `yaml:"enrich_pattern"` // records the enricher runs on
	PageSize      int    `yaml:"page_size"`
	SortKey       string `yaml:"sort_key"`
	Ascending     bool   `yaml:"ascending"`
	Namespace     string `yaml:"namespace"`
	OutputExt     string `yaml:"output_ext"`
	Layout        string `yaml:"layout"`
	Title         string `yaml:"title"`
	PagePattern   string `yaml:"page_pattern"`
	DeriveTitles  bool   `yaml:"derive_titles"`
}

// DefaultConfig returns the reference site configuration.
func DefaultConfig() Config {
	return Config{
		Sources:       "templates/news/*.hbs",
		EnrichPattern: "**/*.hbs",
		PageSize:      5,
		SortKey:       "published",
		Namespace:     "/news/",
		OutputExt:     ".html",
		Layout:        "pagin.hbs",
		Title:         "News Releases",
		PagePattern:   "news-%d.hbs",
	}
}

// LoadConfig reads path over the defaults. A missing file yields the
// defaults; unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Sources == "":
		return errors.New("config: sources must not be empty")
	case c.PageSize < 1:
		return fmt.Errorf("config: page_size must be at least 1, got %d", c.PageSize)
	case c.SortKey == "":
		return errors.New("config: sort_key must not be empty")
	case c.PagePattern == "":
		return errors.New("config: page_pattern must not be empty")
	}
	return nil
}
