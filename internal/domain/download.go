package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// DownloadStatus represents the recorded status of a download
type DownloadStatus string

const (
	StatusProcessing DownloadStatus = "processing"
	StatusCompleted  DownloadStatus = "completed"
	StatusFailed     DownloadStatus = "failed"
	StatusCancelled  DownloadStatus = "cancelled"
)

// Download is a history entry for one download invocation
type Download struct {
	ID              string         `json:"id" gorm:"primaryKey"`
	URL             string         `json:"url" gorm:"not null"`
	DestinationPath string         `json:"destination_path" gorm:"not null"`
	Status          DownloadStatus `json:"status" gorm:"not null;index"`
	BytesWritten    int64          `json:"bytes_written" gorm:"default:0"`
	ElapsedMillis   int64          `json:"elapsed_millis" gorm:"default:0"`
	ErrorMessage    string         `json:"error_message,omitempty"`
	CreatedAt       time.Time      `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt       time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	CompletedAt     *time.Time     `json:"completed_at,omitempty"`
}

// NewDownload creates a new history entry for a request
func NewDownload(req DownloadRequest) *Download {
	now := time.Now()
	return &Download{
		ID:              uuid.New().String(),
		URL:             req.URL,
		DestinationPath: req.DestinationPath,
		Status:          StatusProcessing,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// MarkCompleted marks the download as completed
func (d *Download) MarkCompleted(bytesWritten int64, elapsed time.Duration) {
	d.Status = StatusCompleted
	d.BytesWritten = bytesWritten
	d.ElapsedMillis = elapsed.Milliseconds()
	d.ErrorMessage = ""
	d.finish()
}

// MarkFailed marks the download as failed
func (d *Download) MarkFailed(err error, elapsed time.Duration) {
	d.Status = StatusFailed
	d.ElapsedMillis = elapsed.Milliseconds()
	if err != nil {
		d.ErrorMessage = err.Error()
	}
	d.finish()
}

// MarkCancelled marks the download as cancelled by the user
func (d *Download) MarkCancelled() {
	d.Status = StatusCancelled
	d.finish()
}

func (d *Download) finish() {
	now := time.Now()
	d.CompletedAt = &now
	d.UpdatedAt = now
}

// IsTerminal checks if the download is in a terminal state
func (d *Download) IsTerminal() bool {
	return d.Status == StatusCompleted || d.Status == StatusFailed || d.Status == StatusCancelled
}

// ApplyOutcome records the terminal outcome of a workflow run
func (d *Download) ApplyOutcome(outcome *DownloadOutcome) {
	switch outcome.State {
	case StateDone:
		d.MarkCompleted(outcome.BytesWritten, outcome.Elapsed)
	case StateFailed:
		d.MarkFailed(outcome.Err, outcome.Elapsed)
	default:
		d.MarkCancelled()
	}
}

// ValidateStatus checks if a status is valid
func ValidateStatus(status DownloadStatus) bool {
	switch status {
	case StatusProcessing, StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// DownloadOutcome is the terminal result of one workflow run.
// Exactly one of success (State == StateDone), failure (StateFailed, Err set)
// or cancellation (StateCancelled, no error) holds.
type DownloadOutcome struct {
	Request      *DownloadRequest
	State        State
	BytesWritten int64
	Elapsed      time.Duration
	Err          error
}

// Succeeded reports whether the file was written
func (o *DownloadOutcome) Succeeded() bool {
	return o.State == StateDone && o.Err == nil
}

// Cancelled reports whether the user aborted the workflow
func (o *DownloadOutcome) Cancelled() bool {
	return o.State == StateCancelled
}

// ElapsedMillis returns the elapsed time in milliseconds, never negative
func (o *DownloadOutcome) ElapsedMillis() int64 {
	if o.Elapsed < 0 {
		return 0
	}
	return o.Elapsed.Milliseconds()
}

// ErrorMessage returns the failure message, empty unless the run failed
func (o *DownloadOutcome) ErrorMessage() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

var (
	// ErrPromptCancelled is returned by prompters when the user dismisses an input
	ErrPromptCancelled = errors.New("prompt cancelled")

	// ErrInvalidURL is returned for input that is not an absolute http(s) URL
	ErrInvalidURL = errors.New("invalid url")

	// ErrEmptyDestination is returned for an empty destination path
	ErrEmptyDestination = errors.New("destination path is required")
)

// HTTPStatusError is a non-success HTTP response
type HTTPStatusError struct {
	StatusCode int
	StatusText string
}

func (e *HTTPStatusError) Error() string {
	return e.StatusText
}
