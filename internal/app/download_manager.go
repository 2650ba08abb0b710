package app

import (
	"context"
	"fmt"

	"github.com/yourusername/download-it/internal/domain"
	"github.com/yourusername/download-it/internal/infrastructure"
	"github.com/yourusername/download-it/pkg/logger"
	"go.uber.org/zap"
)

// HistoryStore is the persistence the manager records runs into
type HistoryStore interface {
	domain.DownloadRepository
	domain.PreferenceStore
}

// RunOptions are the per-invocation collaborators of a download
type RunOptions struct {
	Prompter  domain.Prompter
	Confirmer domain.Confirmer
	Reporter  domain.Reporter

	// Used when Confirmer is nil
	CreateDirs bool
	Overwrite  bool
}

// DownloadManager runs download workflows and keeps their history
type DownloadManager struct {
	store    HistoryStore
	files    domain.FileStore
	fetcher  domain.Fetcher
	metrics  *infrastructure.Metrics
	inFlight *InFlight
	config   *domain.DownloadConfig
	logger   *logger.LoggerAdapter
}

// NewDownloadManager creates a new download manager
func NewDownloadManager(
	store HistoryStore,
	files domain.FileStore,
	fetcher domain.Fetcher,
	metrics *infrastructure.Metrics,
	inFlight *InFlight,
	config *domain.DownloadConfig,
	log *logger.LoggerAdapter,
) *DownloadManager {
	if inFlight == nil {
		inFlight = NewInFlight()
	}
	if log == nil {
		log = logger.NewLoggerAdapter(nil, nil)
	}
	if config == nil {
		config = &domain.DefaultConfig().Download
	}
	if metrics != nil {
		inFlight.OnChange(metrics.SetInFlight)
	}

	return &DownloadManager{
		store:    store,
		files:    files,
		fetcher:  fetcher,
		metrics:  metrics,
		inFlight: inFlight,
		config:   config,
		logger:   log,
	}
}

// InFlight returns the counter shared by every run of this manager
func (dm *DownloadManager) InFlight() *InFlight {
	return dm.inFlight
}

// Run executes one download workflow. An empty baseDir uses the configured one.
func (dm *DownloadManager) Run(ctx context.Context, baseDir string, opts RunOptions) *domain.DownloadOutcome {
	if baseDir == "" {
		baseDir = dm.config.BaseDir
	}

	wf := NewWorkflow(WorkflowOptions{
		Prompter:    opts.Prompter,
		Confirmer:   opts.Confirmer,
		CreateDirs:  opts.CreateDirs,
		Overwrite:   opts.Overwrite,
		Files:       dm.files,
		Fetcher:     dm.fetcher,
		Preferences: dm.store,
		Reporter:    opts.Reporter,
		InFlight:    dm.inFlight,
		Progress:    dm.config.Progress,
		ChunkSize:   dm.config.ChunkSize,
		Logger:      dm.logger.App(),
	})

	outcome := wf.Run(ctx, baseDir)
	dm.metrics.ObserveOutcome(outcome)
	dm.record(outcome)

	fields := []zap.Field{
		zap.String("state", string(outcome.State)),
		zap.Int64("elapsed_ms", outcome.ElapsedMillis()),
	}
	if outcome.Request != nil {
		fields = append(fields, zap.String("url", outcome.Request.URL))
	}

	switch {
	case outcome.Succeeded():
		dm.logger.App().Info("Download completed", append(fields, zap.Int64("bytes", outcome.BytesWritten))...)
	case outcome.Err != nil:
		dm.logger.LogError("Download failed", append(fields, zap.Error(outcome.Err))...)
	default:
		dm.logger.App().Info("Download cancelled", fields...)
	}

	return outcome
}

// record stores a history entry for runs that got as far as a destination
func (dm *DownloadManager) record(outcome *domain.DownloadOutcome) {
	if dm.store == nil || outcome.Request == nil {
		return
	}

	download := domain.NewDownload(*outcome.Request)
	download.ApplyOutcome(outcome)
	if err := dm.store.Create(download); err != nil {
		dm.logger.LogError("Failed to record download", zap.String("url", download.URL), zap.Error(err))
	}
}

// ListDownloads returns history entries matching filters, newest first
func (dm *DownloadManager) ListDownloads(filters map[string]interface{}) ([]*domain.Download, error) {
	downloads, err := dm.store.FindAll(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list downloads: %w", err)
	}
	return downloads, nil
}

// GetDownload returns one history entry
func (dm *DownloadManager) GetDownload(id string) (*domain.Download, error) {
	download, err := dm.store.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("download not found: %w", err)
	}
	return download, nil
}

// DeleteDownload removes a history entry
func (dm *DownloadManager) DeleteDownload(id string) error {
	if err := dm.store.Delete(id); err != nil {
		return fmt.Errorf("failed to delete download: %w", err)
	}
	dm.logger.App().Info("Download record deleted", zap.String("id", id))
	return nil
}

// Stats returns aggregate history counts
func (dm *DownloadManager) Stats() (*domain.DownloadStats, error) {
	stats, err := dm.store.GetStats()
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return stats, nil
}

// LastURL returns the remembered URL
func (dm *DownloadManager) LastURL() (string, error) {
	return dm.store.LastURL()
}

// ForgetLastURL clears the remembered URL
func (dm *DownloadManager) ForgetLastURL() error {
	if err := dm.store.ClearLastURL(); err != nil {
		return fmt.Errorf("failed to clear remembered url: %w", err)
	}
	return nil
}
