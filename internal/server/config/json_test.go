package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr_grpc": "www.example:9000",
		"metrics_addr":       ":9100",
		"secret_key":         "my_secret_key",
		"hash_algorithm":     "argon2id",
		"hash_iterations":    3,
		"hash_memory_kib":    65536,
		"hash_salt_length":   24,
		"hash_key_length":    48,
		"log_level":          "debug",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrGRPC)
		assert.Equal(t, ":9100", cfg.MetricsAddr)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, "argon2id", cfg.HashAlgorithm)
		assert.Equal(t, uint(3), cfg.HashIterations)
		assert.Equal(t, uint(65536), cfg.HashMemoryKiB)
		assert.Equal(t, uint(24), cfg.HashSaltLength)
		assert.Equal(t, uint(48), cfg.HashKeyLength)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("no CONFIG and no flags → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{}
		cfg.LoadDefaults()
		want := *cfg

		parseJson(cfg)

		assert.Equal(t, want, *cfg)
	})

	t.Run("partial file keeps other values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{
			"log_level": "warn",
		})
		os.Args = []string{"testbin", "-c", partial}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, ":50051", cfg.EndpointAddrGRPC)
		assert.Equal(t, ":9090", cfg.MetricsAddr)
	})

	t.Run("explicit empty metrics_addr disables metrics", func(t *testing.T) {
		off := writeTempJSON(t, dir, "off.json", map[string]any{
			"metrics_addr": "",
		})
		os.Args = []string{"testbin", "-c", off}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Empty(t, cfg.MetricsAddr)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(dir, "nope.json")}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
