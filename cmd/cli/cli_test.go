package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/download-it/api/handlers"
	"github.com/yourusername/download-it/internal/domain"
	"github.com/yourusername/download-it/pkg/logger"
)

func TestPrintHistory(t *testing.T) {
	now := time.Now()
	downloads := []*domain.Download{
		{URL: "http://example.com/a.zip", DestinationPath: "a.zip", Status: domain.StatusCompleted, BytesWritten: 2048, CreatedAt: now.Add(-2 * time.Hour)},
		{URL: "http://example.com/b.zip", DestinationPath: "b.zip", Status: domain.StatusFailed, CreatedAt: now},
	}

	var buf bytes.Buffer
	require.NoError(t, printHistory(&buf, downloads, now))

	out := buf.String()
	assert.Contains(t, out, "STATUS")
	assert.Contains(t, out, "2 hours ago")
	assert.Contains(t, out, "2.0 kB")
	assert.Contains(t, out, "http://example.com/b.zip")
}

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	printStats(&buf, &domain.DownloadStats{Total: 1200, Completed: 1000, Bytes: 1_000_000})

	assert.Contains(t, buf.String(), "Total:      1,200")
	assert.Contains(t, buf.String(), "Written:    1.0 MB")
}

func TestFormatInFlight(t *testing.T) {
	assert.Equal(t, "Idle", formatInFlight(0))
	assert.Equal(t, "1 download in progress", formatInFlight(1))
	assert.Equal(t, "3 downloads in progress", formatInFlight(3))
}

func TestFormatRemoteResult(t *testing.T) {
	assert.Equal(t, "Completed: /data/a.zip (7 bytes in 12ms)", formatRemoteResult(&handlers.DownloadResponse{
		State: domain.StateDone, DestinationPath: "/data/a.zip", BytesWritten: 7, ElapsedMillis: 12,
	}))
	assert.Equal(t, "Failed: Not Found", formatRemoteResult(&handlers.DownloadResponse{State: domain.StateFailed, Error: "Not Found"}))
	assert.Equal(t, "Download cancelled", formatRemoteResult(&handlers.DownloadResponse{State: domain.StateCancelled}))
}

func TestPrintLogEntry(t *testing.T) {
	ts := time.Date(2024, 5, 1, 9, 30, 15, 0, time.Local)

	var buf bytes.Buffer
	printLogEntry(&buf, logger.LogEntry{Timestamp: ts.Format(logTimeLayout), Level: "info", Message: "Started: http://example.com/a.zip"})
	printLogEntry(&buf, logger.LogEntry{Timestamp: "garbage", Level: "error", Message: "boom"})

	assert.Equal(t, "09:30:15 Started: http://example.com/a.zip\ngarbage [error] boom\n", buf.String())
}

func TestNewRemoteRequest_ResolvesRelativePaths(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	req, err := newRemoteRequest("http://example.com/a.zip", filepath.Join("out", "a.zip"), "dl")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "out", "a.zip"), req.Destination)
	assert.Equal(t, filepath.Join(wd, "dl"), req.BaseDir)

	abs := filepath.Join(wd, "elsewhere")
	req, err = newRemoteRequest("http://example.com/a.zip", "", abs)
	require.NoError(t, err)
	assert.Empty(t, req.Destination, "no output leaves the server default")
	assert.Equal(t, abs, req.BaseDir)
}
