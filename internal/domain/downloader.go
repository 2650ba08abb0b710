package domain

import (
	"context"
	"io"
)

// FetchResponse is an open HTTP response whose body has not been read yet
type FetchResponse struct {
	StatusCode int
	StatusText string
	// ContentLength is the declared body length, -1 when unknown
	ContentLength int64
	Body          io.ReadCloser
}

// OK reports a 2xx status
func (r *FetchResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Fetcher issues the GET request for a download
type Fetcher interface {
	// Fetch sends a GET to url and returns the response with an unread body
	Fetch(ctx context.Context, url string) (*FetchResponse, error)
}

// Prompt describes one free-text input shown to the user
type Prompt struct {
	Title       string
	Placeholder string
	// Value pre-fills the input
	Value string
	// Message is shown when the previous answer was rejected
	Message string
}

// Prompter collects free-text input.
// Input returns ErrPromptCancelled when the user dismisses the prompt.
type Prompter interface {
	Input(ctx context.Context, prompt Prompt) (string, error)
}

// Confirmer asks yes/no questions
type Confirmer interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// FileStore is the local storage a download is written to
type FileStore interface {
	DirExists(path string) bool
	FileExists(path string) bool
	// MakeDir creates path; its parent must already exist
	MakeDir(path string) error
	// WriteFile replaces the content of path with data
	WriteFile(path string, data []byte) error
}

// Reporter renders workflow progress and outcomes to the user
type Reporter interface {
	Started(req DownloadRequest)
	Progress(req DownloadRequest, percent int)
	Finished(outcome *DownloadOutcome)
	// Notice shows a transient message, e.g. a cancellation
	Notice(msg string)
}
