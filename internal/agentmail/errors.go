package agentmail

import (
	"errors"
	"fmt"
	"net/http"

	"agentmail/internal/render"
)

// ErrNoAPIKey is returned by Accessor.Client when no API key is
// configured.
var ErrNoAPIKey = errors.New("API key not set")

// Error is a non-2xx response from the API.
type Error struct {
	StatusCode int
	// Body is the decoded response body, or nil when it was empty.
	Body render.Value
}

func (e *Error) Error() string {
	name := http.StatusText(e.StatusCode)
	if n, ok := e.bodyField("name"); ok {
		name = n
	}
	if name == "" {
		return fmt.Sprintf("request failed with status code %d", e.StatusCode)
	}
	return fmt.Sprintf("%s (status code %d)", name, e.StatusCode)
}

// Detail returns the "message" field of the error body, if any.
func (e *Error) Detail() (string, bool) {
	return e.bodyField("message")
}

func (e *Error) bodyField(key string) (string, bool) {
	m, ok := e.Body.(*render.Mapping)
	if !ok {
		return "", false
	}
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	switch v.(type) {
	case render.Null, nil:
		return "", false
	}
	return render.FormatValue(v), true
}
