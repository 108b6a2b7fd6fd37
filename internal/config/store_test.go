package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, env map[string]string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), RootDir, FileName)
	return &Store{
		Path:   path,
		Getenv: func(key string) string { return env[key] },
	}
}

func TestStore_LoadMissingFile(t *testing.T) {
	s := newTestStore(t, nil)
	assert.Equal(t, Config{}, s.Load())
}

func TestStore_LoadMalformedFileIsEmpty(t *testing.T) {
	s := newTestStore(t, nil)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path), 0755))
	require.NoError(t, os.WriteFile(s.Path, []byte("{not json"), 0600))

	assert.Equal(t, Config{}, s.Load())
	assert.Equal(t, SourceNotSet, s.Source())
}

func TestStore_SetAPIKeyCreatesDirectoryAndIndents(t *testing.T) {
	s := newTestStore(t, nil)

	require.NoError(t, s.SetAPIKey("am_live_1234567890abcd"))

	data, err := os.ReadFile(s.Path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"apiKey\": \"am_live_1234567890abcd\"\n}", string(data))

	info, err := os.Stat(s.Path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	assert.Equal(t, "am_live_1234567890abcd", s.APIKey())
	assert.Equal(t, SourceFile, s.Source())
}

func TestStore_EnvironmentTakesPrecedence(t *testing.T) {
	s := newTestStore(t, map[string]string{EnvAPIKey: "env-key-000000001111"})
	require.NoError(t, s.SetAPIKey("file-key-000000002222"))

	assert.Equal(t, "env-key-000000001111", s.APIKey())
	assert.Equal(t, "environment (AGENTMAIL_API_KEY)", s.Source())
	assert.Equal(t, "file-key-000000002222", s.Load().APIKey)
}

func TestStore_SaveFailsWhenDirectoryIsAFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, RootDir)
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	s := &Store{Path: filepath.Join(blocker, FileName)}
	assert.Error(t, s.Save(Config{APIKey: "k"}))
}

func TestPreview(t *testing.T) {
	cases := []struct {
		key  string
		want string
	}{
		{key: "", want: ""},
		{key: "am_1234567890abcdef", want: "am_12345...cdef"},
		{key: "short", want: "short...hort"},
	}

	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			assert.Equal(t, tc.want, Preview(tc.key))
		})
	}
}

func TestLoadEnvFile_DoesNotOverrideExisting(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("AGENTMAIL_TEST_A=from-file\nAGENTMAIL_TEST_B=from-file\n"), 0600))

	t.Setenv("AGENTMAIL_TEST_A", "from-env")
	t.Setenv("AGENTMAIL_TEST_B", "")
	require.NoError(t, os.Unsetenv("AGENTMAIL_TEST_B"))

	require.NoError(t, LoadEnvFile(envFile, filepath.Join(dir, "missing.env")))

	assert.Equal(t, "from-env", os.Getenv("AGENTMAIL_TEST_A"))
	assert.Equal(t, "from-file", os.Getenv("AGENTMAIL_TEST_B"))
}
