package fs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/broadsheet/pkg/core"
	"gopkg.in/yaml.v3"
)

// Serializer defines how to read a specific source format.
type Serializer interface {
	// Parse reads from r and returns a record without a key.
	Parse(r io.Reader) (*core.Record, error)
}

// DefaultSerializers returns the standard set of serializers.
// Template-like sources carry YAML front matter.
func DefaultSerializers() map[string]Serializer {
	fm := NewFrontMatterSerializer()
	return map[string]Serializer{
		".hbs":      fm,
		".md":       fm,
		".markdown": fm,
		".html":     fm,
		".json":     NewJSONSerializer(),
		".yaml":     NewYAMLSerializer(),
		".yml":      NewYAMLSerializer(),
	}
}

// ErrMissingClosingDelimiter is returned when front matter is opened but never closed.
var ErrMissingClosingDelimiter = errors.New("frontmatter started but no closing delimiter found")

// --- JSON Serializer ---

// JSONSerializer reads a flat JSON object; "content" becomes the body.
type JSONSerializer struct{}

func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{}
}

func (s *JSONSerializer) Parse(r io.Reader) (*core.Record, error) {
	var payload map[string]any
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return fromPayload(payload), nil
}

// --- YAML Serializer ---

// YAMLSerializer reads a flat YAML mapping; "content" becomes the body.
type YAMLSerializer struct{}

func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{}
}

func (s *YAMLSerializer) Parse(r io.Reader) (*core.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return fromPayload(payload), nil
}

func fromPayload(payload map[string]any) *core.Record {
	rec := &core.Record{Data: make(core.Metadata, len(payload))}
	for k, v := range payload {
		rec.Data[k] = v
	}
	if c, ok := payload["content"].(string); ok {
		rec.Content = c
		delete(rec.Data, "content")
	}
	return rec
}

// --- Front Matter Serializer ---

// FrontMatterSerializer reads documents with an optional YAML header
// delimited by "---" lines, followed by the template or markdown body.
type FrontMatterSerializer struct{}

func NewFrontMatterSerializer() *FrontMatterSerializer {
	return &FrontMatterSerializer{}
}

func (s *FrontMatterSerializer) Parse(r io.Reader) (*core.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	rec := &core.Record{Data: make(core.Metadata)}

	nl := "\n"
	if bytes.HasPrefix(data, []byte("---\r\n")) {
		nl = "\r\n"
	} else if !bytes.HasPrefix(data, []byte("---\n")) {
		rec.Content = string(data)
		return rec, nil
	}

	// The closing delimiter is a line holding exactly "---", optionally
	// ending the file.
	rest := data[len("---"+nl):]
	closeLine := []byte("---" + nl)
	var header, body []byte
	switch {
	case bytes.HasPrefix(rest, closeLine):
		body = rest[len(closeLine):]
	case bytes.Equal(rest, []byte("---")):
	default:
		closeSeq := []byte(nl + "---" + nl)
		if idx := bytes.Index(rest, closeSeq); idx >= 0 {
			header = rest[:idx+len(nl)]
			body = rest[idx+len(closeSeq):]
		} else if bytes.HasSuffix(rest, []byte(nl+"---")) {
			header = rest[:len(rest)-len("---")]
		} else {
			return nil, ErrMissingClosingDelimiter
		}
	}

	if err := yaml.Unmarshal(header, &rec.Data); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	if rec.Data == nil {
		rec.Data = make(core.Metadata)
	}

	rec.Content = string(body)
	return rec, nil
}
