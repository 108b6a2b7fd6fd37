package render

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// DateTimeLayout is the combined date-and-time layout used for
// timestamps in human output.
const DateTimeLayout = "1/2/2006, 3:04:05 PM"

var (
	caseBoundary = regexp.MustCompile(`([a-z])([A-Z])`)
	idWord       = regexp.MustCompile(`\bId\b`)
	isoPrefix    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`)
)

// zonedLayouts are tried in order when a string looks like an ISO
// timestamp. A timestamp without a zone is local wall-clock time.
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
}

const localLayout = "2006-01-02T15:04:05.999999999"

// HumanizeKey turns an identifier such as "inboxId" or "created_at" into
// a display label ("Inbox ID", "Created At").
func HumanizeKey(key string) string {
	s := strings.ReplaceAll(key, "_", " ")
	s = caseBoundary.ReplaceAllString(s, "$1 $2")

	words := strings.Split(s, " ")
	for i, w := range words {
		words[i] = upperFirst(w)
	}
	s = strings.Join(words, " ")

	s = idWord.ReplaceAllString(s, "ID")
	return strings.TrimSpace(s)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// FormatTime renders t in local time using DateTimeLayout.
func FormatTime(t time.Time) string {
	return t.Local().Format(DateTimeLayout)
}

// FormatValue renders a scalar for the right-hand side of a "Key: value"
// line. Strings that start with an ISO-8601 date-time are shown as local
// date-times; unparsable timestamps are left as they are.
func FormatValue(v Value) string {
	if t, ok := v.(Text); ok {
		s := string(t)
		if isoPrefix.MatchString(s) {
			if ts, ok := parseTimestamp(s); ok {
				return FormatTime(ts)
			}
		}
		return s
	}
	return scalarString(v)
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range zonedLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	if ts, err := time.ParseInLocation(localLayout, s, time.Local); err == nil {
		return ts, true
	}
	return time.Time{}, false
}

// scalarString is the default textual form of a value.
func scalarString(v Value) string {
	switch t := v.(type) {
	case nil, Null:
		return "null"
	case Bool:
		if t {
			return "true"
		}
		return "false"
	case Number:
		return string(t)
	case Text:
		return string(t)
	case Sequence:
		return joinScalars(t)
	case *Mapping:
		b, _ := t.MarshalJSON()
		return string(b)
	}
	return ""
}

// joinScalars joins sequence items with ", ", rendering nulls as empty.
func joinScalars(seq Sequence) string {
	parts := make([]string, 0, len(seq))
	for _, item := range seq {
		switch t := item.(type) {
		case nil, Null:
			parts = append(parts, "")
		case Sequence:
			parts = append(parts, joinScalars(t))
		default:
			parts = append(parts, scalarString(t))
		}
	}
	return strings.Join(parts, ", ")
}
