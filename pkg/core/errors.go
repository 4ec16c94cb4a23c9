package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrConfiguration       = errors.New("invalid build configuration")
	ErrMissingSortKey      = errors.New("record has no usable sort key")
	ErrDuplicateIdentifier = errors.New("duplicate page identifier")
	ErrUnknownCollection   = errors.New("unknown collection")
)

// ConfigurationError reports a programmer or configuration mistake that must
// abort the build before any work is done.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("configuration error: %s", e.Reason)
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// MissingSortKeyError is returned when a record cannot be placed in the
// pagination order.
type MissingSortKeyError struct {
	Key     string // record key
	SortKey string
	Value   any
}

func (e *MissingSortKeyError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("record %q: missing %q", e.Key, e.SortKey)
	}
	return fmt.Sprintf("record %q: cannot use %q value %v (%T) as a date", e.Key, e.SortKey, e.Value, e.Value)
}

func (e *MissingSortKeyError) Unwrap() error { return ErrMissingSortKey }

// DuplicateIdentifierError signals that two synthetic pages of one run were
// given the same identifier.
type DuplicateIdentifierError struct {
	Identifier string
	First      int
	Second     int
}

func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("pages %d and %d both named %q", e.First, e.Second, e.Identifier)
}

func (e *DuplicateIdentifierError) Unwrap() error { return ErrDuplicateIdentifier }

func configErr(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
