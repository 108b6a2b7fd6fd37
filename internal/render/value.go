// Package render turns structured results into terminal output.
//
// Results are expressed as a closed set of value types (Null, Bool,
// Number, Text, Sequence and *Mapping). A Printer writes them either as
// indented JSON or as a human-readable tree with humanized keys.
package render

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Value is a renderable result. The set of implementations is closed.
type Value interface {
	isValue()
	json.Marshaler
}

// Null is the absent/null value.
type Null struct{}

// Bool is a boolean leaf.
type Bool bool

// Number holds a JSON number literal exactly as received.
type Number string

// Text is a string leaf.
type Text string

// Sequence is an ordered list of values.
type Sequence []Value

func (Null) isValue()     {}
func (Bool) isValue()     {}
func (Number) isValue()   {}
func (Text) isValue()     {}
func (Sequence) isValue() {}
func (*Mapping) isValue() {}

// Int returns the Number for n.
func Int(n int64) Number {
	return Number(strconv.FormatInt(n, 10))
}

// Float returns the shortest Number literal for f.
func Float(f float64) Number {
	return Number(strconv.FormatFloat(f, 'f', -1, 64))
}

// Entry is one key/value pair of a Mapping.
type Entry struct {
	Key   string
	Value Value
}

// Mapping is a string-keyed map that remembers insertion order.
type Mapping struct {
	entries []Entry
	index   map[string]int
}

// NewMapping returns an empty Mapping.
func NewMapping() *Mapping {
	return &Mapping{index: make(map[string]int)}
}

// Set stores v under key. An existing key keeps its position.
func (m *Mapping) Set(key string, v Value) *Mapping {
	if v == nil {
		v = Null{}
	}
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[key]; ok {
		m.entries[i].Value = v
		return m
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Value: v})
	return m
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Value, bool) {
	if m == nil {
		return nil, false
	}
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i].Value, true
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Entries returns the entries in insertion order.
func (m *Mapping) Entries() []Entry {
	if m == nil {
		return nil
	}
	return m.entries
}

// Strings converts a string slice to a Sequence of Text.
func Strings(items []string) Sequence {
	seq := make(Sequence, 0, len(items))
	for _, s := range items {
		seq = append(seq, Text(s))
	}
	return seq
}

// OptionalText returns Text(*s), or Null when s is nil.
func OptionalText(s *string) Value {
	if s == nil {
		return Null{}
	}
	return Text(*s)
}

func (Null) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

func (b Bool) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatBool(bool(b))), nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if n == "" {
		return []byte("0"), nil
	}
	return []byte(n), nil
}

func (t Text) MarshalJSON() ([]byte, error) {
	return marshalString(string(t))
}

func (s Sequence) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := marshalValue(v)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func (m *Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m.Entries() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshalString(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		b, err := marshalValue(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalValue(v Value) ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	return v.MarshalJSON()
}

// marshalString encodes s without escaping <, > and &, so HTML bodies
// stay readable in JSON output.
func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
