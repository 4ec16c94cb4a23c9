// Package core holds the domain of broadsheet: content records, the document
// store, and the pagination and page synthesis stages of a build.
package core

import (
	"reflect"
	"time"
)

// Recognized metadata keys. Any other key is passed through untouched.
const (
	KeyPublished = "published"
	KeyFinalPath = "finalPath"
	KeyTitle     = "title"
	KeyLayout    = "layout"
	KeyTouch     = "touch"
)

// Collection names used by a build.
const (
	PrimaryCollection = "newsitems"
	DerivedCollection = "newslists"
)

// Metadata represents the flexible key-value pairs associated with a record.
type Metadata map[string]any

// String returns the value at key if it is a string.
func (m Metadata) String(key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

// Clone returns a deep copy of m. Nested maps and slices of any type are
// copied so the result shares no mutable storage with m. Pointers other than
// *time.Time, channels and funcs are kept as is.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = deepCopy(v)
	}
	return out
}

func deepCopy(val any) any {
	switch v := val.(type) {
	case Metadata:
		return v.Clone()
	case map[string]any:
		m := make(map[string]any, len(v))
		for k, val := range v {
			m[k] = deepCopy(val)
		}
		return m
	case []any:
		l := make([]any, len(v))
		for i, val := range v {
			l[i] = deepCopy(val)
		}
		return l
	case []Metadata:
		l := make([]Metadata, len(v))
		for i, val := range v {
			l[i] = val.Clone()
		}
		return l
	case []string:
		return append([]string(nil), v...)
	case []int:
		return append([]int(nil), v...)
	case *time.Time:
		if v == nil {
			return v
		}
		t := *v
		return &t
	default:
		return copyReflect(reflect.ValueOf(val))
	}
}

// copyReflect copies maps and slices whose types the fast paths of deepCopy
// do not name, such as map[string]string or []map[string]any.
func copyReflect(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Invalid:
		return nil
	case reflect.Map:
		if v.IsNil() {
			return v.Interface()
		}
		m := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			m.SetMapIndex(iter.Key(), copyElem(iter.Value(), v.Type().Elem()))
		}
		return m.Interface()
	case reflect.Slice:
		if v.IsNil() {
			return v.Interface()
		}
		l := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := range v.Len() {
			l.Index(i).Set(copyElem(v.Index(i), v.Type().Elem()))
		}
		return l.Interface()
	default:
		return v.Interface()
	}
}

func copyElem(v reflect.Value, typ reflect.Type) reflect.Value {
	c := deepCopy(v.Interface())
	if c == nil {
		return reflect.Zero(typ)
	}
	return reflect.ValueOf(c)
}

// Record is a content document of the primary collection.
// Key is derived from the source path and never changes once assigned.
type Record struct {
	Key       string
	Data      Metadata
	Content   string
	FinalPath string
	Enriched  bool
}

// Clone returns a copy of r with its own Data.
func (r Record) Clone() Record {
	r.Data = r.Data.Clone()
	return r
}

// Page is one partition produced by Paginate. It is transient.
type Page struct {
	Index int // 1-based
	Items []Record
	Total int
}

// SyntheticPage is a generated index page of the derived collection.
type SyntheticPage struct {
	Identifier string
	Index      int
	Navigation []int
	Title      string
	Layout     string
	Body       string
	Data       Metadata
}

// View is the shape handed to a Renderer for both records and pages.
type View struct {
	Collection string
	Identifier string
	Data       Metadata
	Body       string
}
