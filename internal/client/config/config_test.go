package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", cfg.ServerBaseURL)
	assert.Equal(t, "imararent.db", cfg.StateDBPath)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"console", "-a", "http://10.0.0.5:9090", "-t", "3"}

	cfg := LoadConfig()
	assert.Equal(t, "http://10.0.0.5:9090", cfg.ServerBaseURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_JsonOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server_base_url": "http://json.example:8080",
		"state_db_path": "custom.db",
		"request_timeout": "7s"
	}`), 0o600))

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"console", "-c", path}

	cfg := LoadConfig()
	assert.Equal(t, "http://json.example:8080", cfg.ServerBaseURL)
	assert.Equal(t, "custom.db", cfg.StateDBPath)
	assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_FlagsBeatJson(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server_base_url": "http://json.example:8080"}`), 0o600))

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"console", "-c", path, "-a", "http://flag.example:8080"}

	cfg := LoadConfig()
	assert.Equal(t, "http://flag.example:8080", cfg.ServerBaseURL)
}
