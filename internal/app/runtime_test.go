package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/download-it/internal/domain"
	"github.com/yourusername/download-it/pkg/logger"
)

func TestNewRuntime(t *testing.T) {
	dir := t.TempDir()
	config := domain.DefaultConfig()
	config.Download.LogsDir = filepath.Join(dir, "logs")
	config.Storage.DatabasePath = filepath.Join(dir, "state", "history.db")

	rt, err := NewRuntime(config, nil, prometheus.NewRegistry())
	require.NoError(t, err)

	assert.Equal(t, config.Download.LogsDir, rt.Logs.LogsDir())
	assert.NotNil(t, rt.Metrics)
	assert.FileExists(t, logger.CategoryLogPath(config.Download.LogsDir, logger.CategoryDownload, time.Now().Format("20060102")))
	assert.FileExists(t, config.Storage.DatabasePath)

	count, err := rt.Repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	assert.NoError(t, rt.Close())
}
