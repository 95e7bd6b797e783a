// Package keypath resolves dotted attribute paths such as "user.name" or
// "items.0.title" against nested Go values.
//
// Maps with string keys, structs (by field name, json tag or
// case-insensitive field name), pointers, interfaces, slices and arrays
// are traversed. A missing segment is reported as an *Error wrapping
// ErrNotFound unless the resolver runs with MissingZero.
package keypath

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

var (
	// ErrNotFound is wrapped when a segment names a key, field or index
	// that does not exist, or when an intermediate value is nil.
	ErrNotFound = errors.New("path segment not found")

	// ErrNotIndexable is wrapped when a segment is applied to a value that
	// has no keys, fields or elements (a number, a string, a func, ...).
	ErrNotIndexable = errors.New("value is not indexable")

	// ErrEmptyPath is wrapped for empty expressions and empty segments
	// ("", "a..b", "a.").
	ErrEmptyPath = errors.New("empty path")
)

// Error describes a failed resolution.
type Error struct {
	Path    string // Full expression as given
	Segment string // Segment that failed
	Index   int    // Zero-based position of Segment in the path
	Err     error  // ErrNotFound, ErrNotIndexable or ErrEmptyPath
}

func (e *Error) Error() string {
	if errors.Is(e.Err, ErrEmptyPath) {
		return fmt.Sprintf("resolve %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("resolve %q: segment %q (#%d): %v", e.Path, e.Segment, e.Index, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// MissingKey controls what happens when a segment cannot be found.
type MissingKey uint8

const (
	// MissingError reports missing segments as *Error (the default).
	MissingError MissingKey = iota
	// MissingZero resolves missing segments to nil without an error, the
	// same value a present JSON null resolves to; both render as "".
	// ErrNotIndexable and ErrEmptyPath are still reported.
	MissingZero
)

// String returns the option spelling used in configuration files.
func (m MissingKey) String() string {
	switch m {
	case MissingError:
		return "error"
	case MissingZero:
		return "zero"
	default:
		return "unknown"
	}
}

// ParseMissingKey parses "error" or "zero". The empty string means error.
func ParseMissingKey(s string) (MissingKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "error":
		return MissingError, nil
	case "zero", "default", "invalid":
		return MissingZero, nil
	}
	return MissingError, fmt.Errorf("unknown missingkey option %q (want error or zero)", s)
}

// Resolver resolves paths with a fixed missing-key policy.
// The zero value uses MissingError.
type Resolver struct {
	Missing MissingKey
}

// Resolve resolves path against root using the default policy.
//
//	Resolve(map[string]any{"a": map[string]any{"b": 7}}, "a.b") // 7, nil
func Resolve(root any, path string) (any, error) {
	return Resolver{}.Resolve(root, path)
}

// Resolve splits path on '.' and indexes into root one segment at a time.
// Surrounding whitespace of the whole path is ignored.
func (r Resolver) Resolve(root any, path string) (any, error) {
	expr := strings.TrimSpace(path)
	if expr == "" {
		return nil, &Error{Path: path, Err: ErrEmptyPath}
	}

	segments := strings.Split(expr, ".")
	for i, seg := range segments {
		if seg == "" {
			return nil, &Error{Path: path, Index: i, Err: ErrEmptyPath}
		}
	}

	cur := root
	for i, seg := range segments {
		next, err := step(cur, seg)
		if err != nil {
			if r.Missing == MissingZero && errors.Is(err, ErrNotFound) {
				return nil, nil
			}
			return nil, &Error{Path: path, Segment: seg, Index: i, Err: err}
		}
		cur = next
	}
	return cur, nil
}

// step applies one segment to in.
func step(in any, seg string) (any, error) {
	// Fast paths for decoded JSON/YAML documents.
	switch m := in.(type) {
	case map[string]any:
		if v, ok := m[seg]; ok {
			return v, nil
		}
		return nil, ErrNotFound
	case []any:
		idx, ok := parseIndex(seg)
		if !ok || idx >= len(m) {
			return nil, ErrNotFound
		}
		return m[idx], nil
	case nil:
		return nil, ErrNotFound
	}

	rv := reflect.ValueOf(in)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, ErrNotFound
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, ErrNotIndexable
		}
		mv := rv.MapIndex(reflect.ValueOf(seg).Convert(rv.Type().Key()))
		if !mv.IsValid() {
			return nil, ErrNotFound
		}
		return mv.Interface(), nil
	case reflect.Struct:
		fv, ok := field(rv, seg)
		if !ok {
			return nil, ErrNotFound
		}
		return fv.Interface(), nil
	case reflect.Slice, reflect.Array:
		idx, ok := parseIndex(seg)
		if !ok || idx >= rv.Len() {
			return nil, ErrNotFound
		}
		return rv.Index(idx).Interface(), nil
	}
	return nil, ErrNotIndexable
}

// field finds an exported struct field by exact name, then json tag, then
// case-insensitive name.
func field(rv reflect.Value, name string) (reflect.Value, bool) {
	typ := rv.Type()
	if sf, ok := typ.FieldByName(name); ok && sf.IsExported() {
		return rv.FieldByIndex(sf.Index), true
	}
	fold := -1
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}
		if tag, _, _ := strings.Cut(sf.Tag.Get("json"), ","); tag == name {
			return rv.Field(i), true
		}
		if fold < 0 && strings.EqualFold(sf.Name, name) {
			fold = i
		}
	}
	if fold >= 0 {
		return rv.Field(fold), true
	}
	return reflect.Value{}, false
}

func parseIndex(seg string) (int, bool) {
	idx, err := strconv.Atoi(seg)
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}
