// ABOUTME: Tests for configuration precedence and validation
// ABOUTME: Each test isolates the environment and config directory

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{
		"NEUROSTUDY_API_URL", "BACKEND_URL", "NEUROSTUDY_TIMEOUT", "NEUROSTUDY_CONFIG_DIR",
		"NEUROSTUDY_COLOR", "NEUROSTUDY_LOG_LEVEL", "LOG_LEVEL", "NEUROSTUDY_LOG_FORMAT", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return filepath.Join(dir, AppName)
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, dir, cfg.ConfigDir)
	assert.Equal(t, "auto", cfg.Color)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("api_url: https://study.example.com/api/v1\ntimeout: 5s\n"), 0600))

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "https://study.example.com/api/v1", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("api_url: https://file.example.com/api/v1\n"), 0600))
	t.Setenv("NEUROSTUDY_API_URL", "https://env.example.com/api/v1")

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com/api/v1", cfg.APIURL)
}

func TestLoad_BackendURLFallback(t *testing.T) {
	isolate(t)
	t.Setenv("BACKEND_URL", "http://10.0.0.5:8080/api/v1")

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:8080/api/v1", cfg.APIURL)
}

func TestLoad_PrefixedBeatsBackendURL(t *testing.T) {
	isolate(t)
	t.Setenv("BACKEND_URL", "http://fallback/api/v1")
	t.Setenv("NEUROSTUDY_API_URL", "http://preferred/api/v1")

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "http://preferred/api/v1", cfg.APIURL)
}

func TestLoad_EnvFile(t *testing.T) {
	isolate(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("NEUROSTUDY_COLOR=never\n"), 0600))
	t.Cleanup(func() { os.Unsetenv("NEUROSTUDY_COLOR") })

	cfg, err := Load(Options{EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, "never", cfg.Color)
}

func TestLoad_MissingEnvFileIsFine(t *testing.T) {
	isolate(t)
	_, err := Load(Options{EnvFile: filepath.Join(t.TempDir(), ".env")})
	assert.NoError(t, err)
}

func TestLoad_ExplicitMissingConfigFile(t *testing.T) {
	isolate(t)
	_, err := Load(Options{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")})
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad url", "NEUROSTUDY_API_URL", "ftp://x"},
		{"bad color", "NEUROSTUDY_COLOR", "sometimes"},
		{"bad level", "LOG_LEVEL", "loud"},
		{"bad format", "LOG_FORMAT", "xml"},
		{"bad timeout", "NEUROSTUDY_TIMEOUT", "-1s"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tc.key, tc.val)
			_, err := Load(Options{})
			assert.Error(t, err)
		})
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, "/tmp/xdg/neurostudy", DefaultConfigDir())
}
