package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Mode selects the output presentation.
type Mode int

const (
	// ModeHuman prints an indented, humanized tree.
	ModeHuman Mode = iota
	// ModeJSON prints the value as 2-space indented JSON.
	ModeJSON
)

// ModeFor returns ModeJSON when asJSON is set, ModeHuman otherwise.
func ModeFor(asJSON bool) Mode {
	if asJSON {
		return ModeJSON
	}
	return ModeHuman
}

const indentUnit = "  "

// Printer writes values to an output stream. Every logical line is a
// single Write call.
type Printer struct {
	w    io.Writer
	mode Mode
}

// NewPrinter returns a Printer writing to w in the given mode.
func NewPrinter(w io.Writer, mode Mode) *Printer {
	return &Printer{w: w, mode: mode}
}

// Mode returns the printer's output mode.
func (p *Printer) Mode() Mode {
	return p.mode
}

// Print renders v according to the printer mode.
func (p *Printer) Print(v Value) error {
	if p.mode == ModeJSON {
		return p.JSON(v)
	}
	if t, ok := v.(Text); ok {
		return p.Line(string(t))
	}
	return p.tree(v, 0)
}

// JSON writes v as indented JSON regardless of the printer mode.
func (p *Printer) JSON(v Value) error {
	b, err := MarshalIndent(v)
	if err != nil {
		return err
	}
	_, err = p.w.Write(append(b, '\n'))
	return err
}

// Line writes s followed by a newline.
func (p *Printer) Line(s string) error {
	_, err := io.WriteString(p.w, s+"\n")
	return err
}

// Linef formats according to a format specifier and writes one line.
func (p *Printer) Linef(format string, args ...any) error {
	return p.Line(fmt.Sprintf(format, args...))
}

// MarshalIndent encodes v as JSON with a 2-space indent.
func MarshalIndent(v Value) ([]byte, error) {
	raw, err := marshalValue(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", indentUnit); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (p *Printer) tree(v Value, depth int) error {
	prefix := strings.Repeat(indentUnit, depth)

	switch t := v.(type) {
	case Sequence:
		if len(t) == 0 {
			return p.Line(prefix + "(empty)")
		}
		for i, item := range t {
			if isContainer(item) {
				if err := p.Linef("%s[%d]", prefix, i+1); err != nil {
					return err
				}
				if err := p.tree(item, depth+1); err != nil {
					return err
				}
				continue
			}
			if err := p.Line(prefix + "- " + scalarString(item)); err != nil {
				return err
			}
		}
		return nil

	case *Mapping:
		for _, e := range t.Entries() {
			if err := p.entry(prefix, depth, e); err != nil {
				return err
			}
		}
		return nil

	default:
		return p.Line(prefix + scalarString(v))
	}
}

func (p *Printer) entry(prefix string, depth int, e Entry) error {
	key := HumanizeKey(e.Key)

	switch t := e.Value.(type) {
	case nil, Null:
		return nil

	case *Mapping:
		if err := p.Line(prefix + key + ":"); err != nil {
			return err
		}
		return p.tree(t, depth+1)

	case Sequence:
		if len(t) == 0 {
			return nil
		}
		if allScalars(t) {
			return p.Line(prefix + key + ": " + joinScalars(t))
		}
		if err := p.Line(prefix + key + ":"); err != nil {
			return err
		}
		return p.tree(t, depth+1)

	default:
		return p.Line(prefix + key + ": " + FormatValue(t))
	}
}

func isContainer(v Value) bool {
	switch v.(type) {
	case Sequence, *Mapping:
		return true
	}
	return false
}

func allScalars(seq Sequence) bool {
	for _, item := range seq {
		if isContainer(item) {
			return false
		}
	}
	return true
}
