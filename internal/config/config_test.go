package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evolve/internal/repair"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	v := viper.New()
	SetDefaults(v)
	BindEnv(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	v := newViper(t)
	require.NoError(t, ReadFile(v, ""))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, repair.DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, "evolve", cfg.Backend)
	assert.Equal(t, 0, cfg.MaxRounds)
	assert.Equal(t, time.Duration(0), cfg.RunTimeout)
	assert.Equal(t, DefaultLogFile, cfg.LogFile)
	assert.False(t, cfg.Confirm)
	assert.Empty(t, cfg.FailureMarkers)
}

func TestLoad_ConfigFile(t *testing.T) {
	v := newViper(t)
	path := filepath.Join(t.TempDir(), "evolve.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
endpoint: http://localhost:9000/fix
max_rounds: 5
run_timeout: 30s
failure_markers:
  - panic
  - Traceback
`), 0644))
	require.NoError(t, ReadFile(v, path))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/fix", cfg.Endpoint)
	assert.Equal(t, 5, cfg.MaxRounds)
	assert.Equal(t, 30*time.Second, cfg.RunTimeout)
	assert.Equal(t, []string{"panic", "Traceback"}, cfg.FailureMarkers)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	v := newViper(t)
	path := filepath.Join(t.TempDir(), "evolve.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_rounds: 5\nbackend: evolve\n"), 0644))
	t.Setenv("EVOLVE_MAX_ROUNDS", "2")
	t.Setenv("EVOLVE_BACKEND", "Ollama")
	t.Setenv("EVOLVE_FAILURE_MARKERS", "panic,fatal")
	t.Setenv("OLLAMA_HOST", "http://gpu-box:11434")
	require.NoError(t, ReadFile(v, path))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.MaxRounds)
	assert.Equal(t, "ollama", cfg.Backend)
	assert.Equal(t, []string{"panic", "fatal"}, cfg.FailureMarkers)
	assert.Equal(t, "http://gpu-box:11434", cfg.OllamaHost)
}

func TestReadFile_MissingExplicitFile(t *testing.T) {
	v := newViper(t)
	err := ReadFile(v, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "zero value", cfg: Config{}, wantErr: false},
		{name: "capped rounds", cfg: Config{MaxRounds: 3, Backend: "gemini"}, wantErr: false},
		{name: "negative rounds", cfg: Config{MaxRounds: -1}, wantErr: true},
		{name: "negative run timeout", cfg: Config{RunTimeout: -time.Second}, wantErr: true},
		{name: "negative repair timeout", cfg: Config{RepairTimeout: -time.Second}, wantErr: true},
		{name: "http alias", cfg: Config{Backend: "http"}, wantErr: false},
		{name: "unknown backend", cfg: Config{Backend: "openai"}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
