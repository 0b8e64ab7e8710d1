// Package normalization resolves user-supplied names to typed values.
package normalization

import (
	"slices"
	"strings"
)

// Func cleans a raw name before lookup.
type Func func(string) string

// Table maps names to values after normalizing both sides with the same Func.
type Table[T any] struct {
	values    map[string]T
	validKeys []string // Cached for error messages
	normalize Func
}

// NewTable creates a table whose lookups ignore case and surrounding space.
func NewTable[T any](values map[string]T) *Table[T] {
	return NewTableWith(values, defaultNormalization)
}

// NewTableWith creates a table with custom normalization.
func NewTableWith[T any](values map[string]T, normalize Func) *Table[T] {
	t := &Table[T]{
		values:    make(map[string]T, len(values)),
		validKeys: make([]string, 0, len(values)),
		normalize: normalize,
	}
	for k, v := range values {
		key := normalize(k)
		t.values[key] = v
		t.validKeys = append(t.validKeys, key)
	}
	slices.Sort(t.validKeys)
	return t
}

// Lookup resolves raw to its value.
func (t *Table[T]) Lookup(raw string) (T, bool) {
	v, ok := t.values[t.normalize(raw)]
	return v, ok
}

// ValidKeys returns all normalized keys, sorted.
func (t *Table[T]) ValidKeys() []string {
	return slices.Clone(t.validKeys)
}

func defaultNormalization(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
