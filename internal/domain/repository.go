package domain

// DownloadRepository defines the interface for download history persistence
type DownloadRepository interface {
	// Create creates a new download
	Create(download *Download) error

	// Update updates an existing download
	Update(download *Download) error

	// Delete deletes a download by ID
	Delete(id string) error

	// FindByID finds a download by ID
	FindByID(id string) (*Download, error)

	// FindByStatus finds downloads by status
	FindByStatus(status DownloadStatus) ([]*Download, error)

	// FindAll finds all downloads with optional filters, newest first
	FindAll(filters map[string]interface{}) ([]*Download, error)

	// Count returns the total number of downloads
	Count() (int64, error)

	// CountByStatus returns the number of downloads by status
	CountByStatus(status DownloadStatus) (int64, error)

	// GetStats returns download statistics
	GetStats() (*DownloadStats, error)
}

// DownloadStats represents download statistics
type DownloadStats struct {
	Total      int64 `json:"total"`
	Processing int64 `json:"processing"`
	Completed  int64 `json:"completed"`
	Failed     int64 `json:"failed"`
	Cancelled  int64 `json:"cancelled"`
	Bytes      int64 `json:"bytes"`
}

// PreferenceKeyLastURL stores the most recently entered URL
const PreferenceKeyLastURL = "last_url"

// PreferenceStore persists the remembered URL between invocations
type PreferenceStore interface {
	// LastURL returns the remembered URL, empty when none was stored
	LastURL() (string, error)

	// SetLastURL remembers url for the next invocation
	SetLastURL(url string) error

	// ClearLastURL forgets the remembered URL
	ClearLastURL() error
}
