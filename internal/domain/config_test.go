package domain

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.NotNil(t, config)
	assert.Equal(t, "localhost", config.Server.Host)
	assert.Equal(t, 8089, config.Server.Port)
	assert.Equal(t, ".", config.Download.BaseDir)
	assert.Equal(t, 32*1024, config.Download.ChunkSize)
	assert.True(t, config.Download.Progress)
	assert.True(t, config.Download.Confirm)
	assert.Equal(t, "history.db", filepath.Base(config.Storage.DatabasePath))
	assert.Equal(t, "logs", filepath.Base(config.Download.LogsDir))
	assert.False(t, config.Notification.Enabled)
	assert.Equal(t, "info", config.Logging.Level)
}
