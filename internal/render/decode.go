package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Decode parses a JSON document into a Value, keeping object key order.
func Decode(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t.String()), nil
	case string:
		return Text(t), nil
	case json.Delim:
		switch t {
		case '[':
			seq := Sequence{}
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				seq = append(seq, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return seq, nil
		case '{':
			m := NewMapping()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("invalid object key %v", keyTok)
				}
				item, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				m.Set(key, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return m, nil
		}
	}
	return nil, fmt.Errorf("unexpected JSON token %v", tok)
}

// opaqueFields hold mappings keyed by user data (email headers, caller
// supplied metadata). Their own key is converted, their contents are not.
var opaqueFields = map[string]bool{
	"headers":  true,
	"metadata": true,
}

// CamelKeys returns a copy of v whose mapping keys are converted from
// snake_case to lowerCamelCase at every depth, except inside the values
// of opaqueFields.
func CamelKeys(v Value) Value {
	switch t := v.(type) {
	case Sequence:
		out := make(Sequence, 0, len(t))
		for _, item := range t {
			out = append(out, CamelKeys(item))
		}
		return out
	case *Mapping:
		out := NewMapping()
		for _, e := range t.Entries() {
			if opaqueFields[e.Key] {
				out.Set(camelCase(e.Key), e.Value)
				continue
			}
			out.Set(camelCase(e.Key), CamelKeys(e.Value))
		}
		return out
	default:
		return v
	}
}

func camelCase(key string) string {
	if !strings.Contains(key, "_") {
		return key
	}
	parts := strings.Split(key, "_")
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(p)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(p[size:])
	}
	return b.String()
}
