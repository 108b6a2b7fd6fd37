// Package config stores the CLI configuration in ~/.agentmail/config.json.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// EnvAPIKey is the environment variable that overrides the stored key.
const EnvAPIKey = "AGENTMAIL_API_KEY"

// RootDir is the per-user directory holding the config file.
const RootDir = ".agentmail"

// FileName is the config file name inside RootDir.
const FileName = "config.json"

// Key sources reported by Store.Source.
const (
	SourceEnv    = "environment (" + EnvAPIKey + ")"
	SourceFile   = "config file"
	SourceNotSet = "not set"
)

// Config is the persisted configuration record.
type Config struct {
	APIKey string `json:"apiKey,omitempty"`
}

// Store reads and writes the config file and resolves the API key.
type Store struct {
	// Path is the config file location.
	Path string
	// Getenv looks up environment variables (defaults to os.Getenv).
	Getenv func(string) string
}

// DefaultPath returns ~/.agentmail/config.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, RootDir, FileName), nil
}

// NewStore returns a Store for the given file path.
func NewStore(path string) *Store {
	return &Store{Path: path, Getenv: os.Getenv}
}

func (s *Store) getenv(key string) string {
	if s.Getenv == nil {
		return os.Getenv(key)
	}
	return s.Getenv(key)
}

// Load reads the config file. A missing or unparsable file yields an
// empty Config.
func (s *Store) Load() Config {
	var cfg Config
	data, err := os.ReadFile(s.Path) // #nosec G304 - path is fixed per user
	if err != nil {
		return Config{}
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}

// Save writes cfg as indented JSON, creating the directory if needed.
func (s *Store) Save(cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0750); err != nil { // G301: restricted directory permissions
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0600) // G306: the file holds a credential
}

// APIKey returns the key from the environment, falling back to the file.
func (s *Store) APIKey() string {
	if key := s.getenv(EnvAPIKey); key != "" {
		return key
	}
	return s.Load().APIKey
}

// SetAPIKey stores key in the config file, keeping other settings.
func (s *Store) SetAPIKey(key string) error {
	cfg := s.Load()
	cfg.APIKey = key
	return s.Save(cfg)
}

// Source describes where APIKey finds its value.
func (s *Store) Source() string {
	if s.getenv(EnvAPIKey) != "" {
		return SourceEnv
	}
	if s.Load().APIKey != "" {
		return SourceFile
	}
	return SourceNotSet
}

// Preview masks a key down to its first 8 and last 4 characters.
func Preview(key string) string {
	if key == "" {
		return ""
	}
	head := key
	if len(head) > 8 {
		head = head[:8]
	}
	tail := key
	if len(tail) > 4 {
		tail = tail[len(tail)-4:]
	}
	return head + "..." + tail
}

// LoadEnvFile loads KEY=value pairs from the given .env files (default
// ".env") into the process environment. Variables that are already set
// win, and missing files are ignored.
func LoadEnvFile(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}
