package agentmail

import (
	"sync"
)

// KeySource resolves the API key to authenticate with.
type KeySource interface {
	APIKey() string
}

// Accessor builds the API client on first use and hands out the same
// instance afterwards. A zero-length key yields ErrNoAPIKey and nothing
// is memoized, so a later call can still succeed.
type Accessor struct {
	keys    KeySource
	factory func(apiKey string) API

	mu     sync.Mutex
	client API
}

// NewAccessor returns an Accessor that builds clients with NewClient and
// the given options.
func NewAccessor(keys KeySource, opts ...Option) *Accessor {
	return &Accessor{
		keys: keys,
		factory: func(apiKey string) API {
			return NewClient(apiKey, opts...)
		},
	}
}

// NewAccessorFunc returns an Accessor using a custom client factory.
func NewAccessorFunc(keys KeySource, factory func(apiKey string) API) *Accessor {
	return &Accessor{keys: keys, factory: factory}
}

// StaticAccessor returns an Accessor that always yields api.
func StaticAccessor(api API) *Accessor {
	return &Accessor{client: api}
}

// Client returns the memoized client, building it on first call.
func (a *Accessor) Client() (API, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}

	key := ""
	if a.keys != nil {
		key = a.keys.APIKey()
	}
	if key == "" {
		return nil, ErrNoAPIKey
	}

	a.client = a.factory(key)
	return a.client, nil
}

// Reset drops the memoized client so the next Client call resolves the
// key again. Only long-running modes that watch the config file use it.
func (a *Accessor) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.factory != nil {
		a.client = nil
	}
}
