package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/yourusername/download-it/internal/domain"
	"github.com/yourusername/download-it/internal/infrastructure"
	"github.com/yourusername/download-it/pkg/logger"
	"go.uber.org/zap"
)

// Runtime holds the long-lived collaborators shared by the CLI and the server
type Runtime struct {
	Config   *domain.Config
	Logs     *logger.LoggerAdapter
	Repo     *infrastructure.SQLiteDownloadRepository
	Notifier *infrastructure.NotificationService
	Metrics  *infrastructure.Metrics
	Manager  *DownloadManager

	multiLogger *logger.MultiLogger
}

// NewRuntime opens the logs and history database described by config.
// A nil registerer skips metrics.
func NewRuntime(config *domain.Config, appLogger *zap.Logger, registerer prometheus.Registerer) (*Runtime, error) {
	multiLogger, err := logger.NewMultiLogger(logger.MultiLoggerConfig{
		Level:   config.Logging.Level,
		LogsDir: config.Download.LogsDir,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logs: %w", err)
	}
	logs := logger.NewLoggerAdapter(appLogger, multiLogger)

	repo, err := infrastructure.NewSQLiteDownloadRepository(config.Storage.DatabasePath)
	if err != nil {
		multiLogger.Close()
		return nil, fmt.Errorf("failed to open history: %w", err)
	}

	var metrics *infrastructure.Metrics
	if registerer != nil {
		metrics = infrastructure.NewMetrics(registerer)
	}

	manager := NewDownloadManager(
		repo,
		infrastructure.NewFileStore(nil),
		infrastructure.NewHTTPFetcher(nil, config.Download.UserAgent),
		metrics,
		NewInFlight(),
		&config.Download,
		logs,
	)

	return &Runtime{
		Config:      config,
		Logs:        logs,
		Repo:        repo,
		Notifier:    infrastructure.NewNotificationService(&config.Notification, logs.App()),
		Metrics:     metrics,
		Manager:     manager,
		multiLogger: multiLogger,
	}, nil
}

// Close flushes the logs and closes the database
func (r *Runtime) Close() error {
	_ = r.Logs.Sync()
	return errors.Join(r.Repo.Close(), r.multiLogger.Close())
}
