package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("AUTHWAY_API_URL", "https://auth.example.com")
	t.Setenv("AUTHWAY_LOG_LEVEL", "debug")

	cfg, err := load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://auth.example.com", cfg.APIURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := "api_url: https://file.example.com\ntimeout: 5s\n"
	require.NoError(t, os.WriteFile(FilePath(dir), []byte(content), 0o600))

	cfg, err := load(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://file.example.com", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	content := "api_url: https://file.example.com\n"
	require.NoError(t, os.WriteFile(FilePath(dir), []byte(content), 0o600))
	t.Setenv("AUTHWAY_API_URL", "https://env.example.com")

	cfg, err := load(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.APIURL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "valid",
			cfg:     Config{APIURL: "http://localhost:8000", Timeout: time.Second},
			wantErr: false,
		},
		{
			name:    "empty api url",
			cfg:     Config{Timeout: time.Second},
			wantErr: true,
		},
		{
			name:    "relative api url",
			cfg:     Config{APIURL: "localhost:8000/api", Timeout: time.Second},
			wantErr: true,
		},
		{
			name:    "zero timeout",
			cfg:     Config{APIURL: "http://localhost:8000"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWriteDefault(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")

	path, err := WriteDefault(dir)
	require.NoError(t, err)
	require.FileExists(t, path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// Resulting file must load cleanly.
	cfg, err := load(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)

	// Second write refuses to clobber.
	_, err = WriteDefault(dir)
	assert.Error(t, err)
}
