package siteconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"

	"gopkg.in/yaml.v3"
)

// Field is one key/value pair of a Record.
type Field struct {
	Key   string
	Value any
}

// Record is an ordered key/value mapping. Loaders produce Records so that the
// author's key order (which decides sidebar order) survives decoding.
type Record []Field

// Get returns the value stored under key.
func (r Record) Get(key string) (any, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Keys returns the keys in order.
func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Key
	}
	return keys
}

// MarshalYAML emits the record as a mapping node in key order.
func (r Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, f := range r {
		var key, value yaml.Node
		if err := key.Encode(f.Key); err != nil {
			return nil, err
		}
		if err := value.Encode(f.Value); err != nil {
			return nil, fmt.Errorf("encode %q: %w", f.Key, err)
		}
		node.Content = append(node.Content, &key, &value)
	}
	return node, nil
}

// MarshalJSON emits the record as a JSON object in key order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", f.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// asRecord views v as a Record. Go maps carry no order, so their keys are
// sorted to keep validation deterministic. Maps with non-string keys are not
// records.
func asRecord(v any) (Record, bool) {
	switch m := v.(type) {
	case Record:
		return m, true
	case map[string]any:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		rec := make(Record, 0, len(keys))
		for _, k := range keys {
			rec = append(rec, Field{Key: k, Value: m[k]})
		}
		return rec, true
	case nil:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	fields := make(Record, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key()
		if k.Kind() == reflect.Interface {
			k = k.Elem()
		}
		if k.Kind() != reflect.String {
			return nil, false
		}
		fields = append(fields, Field{Key: k.String(), Value: iter.Value().Interface()})
	}
	slices.SortFunc(fields, func(a, b Field) int {
		switch {
		case a.Key < b.Key:
			return -1
		case a.Key > b.Key:
			return 1
		}
		return 0
	})
	return fields, true
}

// asSequence views v as an ordered list. Byte slices and strings are scalars.
func asSequence(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, x := range s {
			out[i] = x
		}
		return out, true
	case Record, []byte, nil:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// describe names the shape of v for error messages.
func describe(v any) string {
	if v == nil {
		return "null"
	}
	if _, ok := asRecord(v); ok {
		return "mapping"
	}
	if _, ok := asSequence(v); ok {
		return "sequence"
	}
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return "number"
	}
	return fmt.Sprintf("%T", v)
}
