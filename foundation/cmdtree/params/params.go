// File: params.go
// Title: Parser Parameters
// Description: Immutable key/value bag used to configure argument parsers.
//              Parameters are produced by modifier mappers, merged in the
//              order modifiers are encountered and read by parser factories.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package params

import (
	"sort"
	"strings"
)

// Key names a parser parameter
type Key string

// Standard parameter keys
const (
	// RangeMin holds the lower bound of a numeric parser in its native type
	RangeMin Key = "range_min"
	// RangeMax holds the upper bound of a numeric parser in its native type
	RangeMax Key = "range_max"
	// Completions holds a []string of suggestions for string parsers
	Completions Key = "completions"
	// StringMode holds the consumption mode of a string parser
	StringMode Key = "string_mode"
	// Liberal enables yes/no/on/off for boolean parsers
	Liberal Key = "liberal"
)

// Parameters is an immutable set of parser parameters. The zero value is
// empty and ready to use.
type Parameters struct {
	values map[Key]interface{}
}

// Empty returns parameters with no entries
func Empty() Parameters {
	return Parameters{}
}

// Single returns parameters holding exactly one entry
func Single(key Key, value interface{}) Parameters {
	return Parameters{values: map[Key]interface{}{key: value}}
}

// Of builds parameters from a map. The map is copied.
func Of(values map[Key]interface{}) Parameters {
	if len(values) == 0 {
		return Parameters{}
	}
	copied := make(map[Key]interface{}, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return Parameters{values: copied}
}

// Get returns the raw value stored under key
func (p Parameters) Get(key Key) (interface{}, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Has reports whether key is present
func (p Parameters) Has(key Key) bool {
	_, ok := p.values[key]
	return ok
}

// Len returns the number of entries
func (p Parameters) Len() int {
	return len(p.values)
}

// IsEmpty reports whether there are no entries
func (p Parameters) IsEmpty() bool {
	return len(p.values) == 0
}

// Keys returns the present keys in sorted order
func (p Parameters) Keys() []Key {
	keys := make([]Key, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Merge returns a new set containing the entries of p and other. Entries of
// other replace entries of p with the same key.
func (p Parameters) Merge(other Parameters) Parameters {
	if other.IsEmpty() {
		return p
	}
	if p.IsEmpty() {
		return other
	}
	merged := make(map[Key]interface{}, len(p.values)+len(other.values))
	for k, v := range p.values {
		merged[k] = v
	}
	for k, v := range other.values {
		merged[k] = v
	}
	return Parameters{values: merged}
}

// With returns a copy of p with key set to value
func (p Parameters) With(key Key, value interface{}) Parameters {
	return p.Merge(Single(key, value))
}

// String renders the parameters as {key=value, ...} in key order
func (p Parameters) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range p.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(string(k))
		b.WriteByte('=')
		b.WriteString(formatValue(p.values[k]))
	}
	b.WriteByte('}')
	return b.String()
}

// Lookup returns the value stored under key converted to T, or def when the
// key is absent or holds a value of another type.
func Lookup[T any](p Parameters, key Key, def T) T {
	raw, ok := p.values[key]
	if !ok {
		return def
	}
	v, ok := raw.(T)
	if !ok {
		return def
	}
	return v
}
