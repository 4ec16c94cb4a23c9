package core

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// Hook transforms a record as it is loaded into a collection.
// Returning an error aborts the load.
type Hook func(Record) (Record, error)

type hookEntry struct {
	collection string
	pattern    string
	fn         Hook
}

// ordered keeps values addressable by key while preserving insertion order.
// Replacing a key keeps its original position.
type ordered[T any] struct {
	keys  []string
	items map[string]T
}

func newOrdered[T any]() *ordered[T] {
	return &ordered[T]{items: make(map[string]T)}
}

func (o *ordered[T]) put(key string, v T) {
	if _, ok := o.items[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.items[key] = v
}

func (o *ordered[T]) values() []T {
	out := make([]T, 0, len(o.keys))
	for _, k := range o.keys {
		out = append(out, o.items[k])
	}
	return out
}

// Store holds the named collections of one build.
// Record collections and page collections live in separate namespaces.
type Store struct {
	mu      sync.RWMutex
	records map[string]*ordered[Record]
	pages   map[string]*ordered[SyntheticPage]
	hooks   []hookEntry
	logger  *slog.Logger
}

// NewStore creates an empty store.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		records: make(map[string]*ordered[Record]),
		pages:   make(map[string]*ordered[SyntheticPage]),
		logger:  logger,
	}
}

// Create registers an empty record collection. Creating an existing
// collection is a no-op.
func (s *Store) Create(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[name]; !ok {
		s.records[name] = newOrdered[Record]()
	}
}

// CreatePages registers an empty page collection.
func (s *Store) CreatePages(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pages[name]; !ok {
		s.pages[name] = newOrdered[SyntheticPage]()
	}
}

// OnLoad registers fn to run against every record loaded into collection
// whose key matches the doublestar pattern. Hooks run in registration order.
func (s *Store) OnLoad(collection, pattern string, fn Hook) error {
	if fn == nil {
		return configErr("onLoad", "nil hook registered for %q", pattern)
	}
	if !doublestar.ValidatePattern(pattern) {
		return configErr("onLoad", "invalid pattern %q", pattern)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, hookEntry{collection: collection, pattern: pattern, fn: fn})
	return nil
}

// Load inserts records into collection, running matching hooks on each one
// first. Loading stops at the first hook failure.
func (s *Store) Load(collection string, records ...Record) error {
	s.mu.RLock()
	_, ok := s.records[collection]
	hooks := append([]hookEntry(nil), s.hooks...)
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}

	for _, rec := range records {
		if rec.Key == "" {
			return configErr("key", "record loaded into %q without a key", collection)
		}
		for _, h := range hooks {
			if h.collection != collection {
				continue
			}
			// Pattern was validated on registration.
			if match, _ := doublestar.Match(h.pattern, rec.Key); !match {
				continue
			}
			out, err := h.fn(rec)
			if err != nil {
				return fmt.Errorf("load %s: %w", rec.Key, err)
			}
			rec = out
		}
		if err := s.Insert(collection, rec); err != nil {
			return err
		}
	}
	return nil
}

// Insert adds rec to collection or replaces the record with the same key.
func (s *Store) Insert(collection string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.records[collection]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	col.put(rec.Key, rec)
	return nil
}

// Get returns the record stored under key.
func (s *Store) Get(collection, key string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	col, ok := s.records[collection]
	if !ok {
		return Record{}, false
	}
	rec, ok := col.items[key]
	return rec, ok
}

// Iterate returns the records of collection in insertion order.
// The slice is a copy; records share Data with the store.
func (s *Store) Iterate(collection string) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	col, ok := s.records[collection]
	if !ok {
		return nil
	}
	return col.values()
}

// Len returns the number of records or pages held under name.
func (s *Store) Len(name string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if col, ok := s.records[name]; ok {
		return len(col.keys)
	}
	if col, ok := s.pages[name]; ok {
		return len(col.keys)
	}
	return 0
}

// InsertPage adds p to a page collection, replacing any page with the same
// identifier.
func (s *Store) InsertPage(collection string, p SyntheticPage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.pages[collection]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	col.put(p.Identifier, p)
	return nil
}

// Pages returns the pages of collection in insertion order.
func (s *Store) Pages(collection string) []SyntheticPage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	col, ok := s.pages[collection]
	if !ok {
		return nil
	}
	return col.values()
}

// Reset empties a record or page collection, keeping it registered.
func (s *Store) Reset(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[name]; ok {
		s.records[name] = newOrdered[Record]()
	}
	if _, ok := s.pages[name]; ok {
		s.pages[name] = newOrdered[SyntheticPage]()
	}
	s.logger.Debug("collection reset", "collection", name)
}
