package core

import (
	"strings"
	"time"
)

// dateLayouts are tried in order when a sort key holds a string.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006",
}

// ParseDate coerces a metadata value into a time.
// yaml.v3 leaves unquoted timestamps as strings when decoding into a map,
// so strings are parsed here rather than in the loader.
func ParseDate(val any) (time.Time, bool) {
	switch v := val.(type) {
	case time.Time:
		return v, !v.IsZero()
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, false
		}
		return *v, true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// sortTime resolves the sort key of r or returns a MissingSortKeyError.
func sortTime(r Record, sortKey string) (time.Time, error) {
	val, ok := r.Data[sortKey]
	if !ok || val == nil {
		return time.Time{}, &MissingSortKeyError{Key: r.Key, SortKey: sortKey}
	}
	t, ok := ParseDate(val)
	if !ok {
		return time.Time{}, &MissingSortKeyError{Key: r.Key, SortKey: sortKey, Value: val}
	}
	return t, nil
}
