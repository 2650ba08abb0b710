package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/download-it/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
download:
  base_dir: /srv/downloads
  chunk_size: 4096
  progress: false
notification:
  enabled: true
  method: osascript
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, config.Server.Port)
	assert.Equal(t, "localhost", config.Server.Host)
	assert.Equal(t, "/srv/downloads", config.Download.BaseDir)
	assert.Equal(t, 4096, config.Download.ChunkSize)
	assert.False(t, config.Download.Progress)
	assert.True(t, config.Download.Confirm)
	assert.True(t, config.Notification.Enabled)
	assert.Equal(t, "osascript", config.Notification.Method)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9000\n")
	t.Setenv("DOWNLOADIT_SERVER_PORT", "9100")
	t.Setenv("DOWNLOADIT_DOWNLOAD_CONFIRM", "false")

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, config.Server.Port)
	assert.False(t, config.Download.Confirm)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "port", content: "server:\n  port: 70000\n"},
		{name: "chunk size", content: "download:\n  chunk_size: -1\n"},
		{name: "notification method", content: "notification:\n  method: growl\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("DL_TEST_DIR", "/tmp/dl")

	assert.Equal(t, filepath.Join(home, "Downloads"), expandPath("~/Downloads"))
	assert.Equal(t, "/tmp/dl/x", expandPath("$DL_TEST_DIR/x"))
	assert.Equal(t, "/abs", expandPath("/abs"))
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	config := domain.DefaultConfig()
	config.Server.Port = 9200
	config.Download.BaseDir = "/srv/files"
	config.Download.ChunkSize = 1024

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, SaveConfig(config, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9200, loaded.Server.Port)
	assert.Equal(t, "/srv/files", loaded.Download.BaseDir)
	assert.Equal(t, 1024, loaded.Download.ChunkSize)
}
