package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/yourusername/download-it/internal/domain"
	"go.uber.org/zap"
)

const (
	urlPromptTitle  = "Download URL"
	urlPlaceholder  = "https://example.com/file.zip"
	pathPromptTitle = "Destination Path"

	msgInvalidURL       = "Please enter a valid URL"
	msgEmptyDestination = "Destination path is required"
	msgCancelled        = "Download cancelled"

	defaultURLValue = "http://"
)

// WorkflowOptions are the capabilities one workflow run uses
type WorkflowOptions struct {
	Prompter domain.Prompter
	// Confirmer asks before creating a directory or overwriting a file.
	// Without one, CreateDirs and Overwrite decide.
	Confirmer  domain.Confirmer
	CreateDirs bool
	Overwrite  bool

	Files       domain.FileStore
	Fetcher     domain.Fetcher
	Preferences domain.PreferenceStore
	Reporter    domain.Reporter
	InFlight    *InFlight

	// Progress enables percentage reports while streaming
	Progress  bool
	ChunkSize int

	Logger *zap.Logger
}

// Workflow drives one download from the URL prompt to the written file.
// It is a state machine over domain.State; a Workflow runs once.
type Workflow struct {
	opts WorkflowOptions
	log  *zap.Logger

	state   domain.State
	baseDir string

	rawURL  string
	message string
	req     *domain.DownloadRequest
	resp    *domain.FetchResponse
	data    []byte

	started time.Time
	counted bool
	notice  string
	err     error
}

// NewWorkflow creates a workflow. Prompter, Files, Fetcher and Reporter are required.
func NewWorkflow(opts WorkflowOptions) *Workflow {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	return &Workflow{
		opts:  opts,
		log:   opts.Logger,
		state: domain.StateCollectingURL,
	}
}

// State returns the current state
func (w *Workflow) State() domain.State {
	return w.state
}

// Run executes the workflow and returns its terminal outcome.
// baseDir is joined with the URL's file name to form the default destination.
func (w *Workflow) Run(ctx context.Context, baseDir string) *domain.DownloadOutcome {
	w.baseDir = baseDir

	for !w.state.IsTerminal() {
		next := w.step(ctx)
		if !w.state.CanTransition(next) {
			w.err = &domain.TransitionError{From: w.state, To: next}
			w.log.Error("Workflow stopped", zap.Error(w.err))
			next = domain.StateFailed
		}
		w.log.Debug("Workflow transition",
			zap.String("from", string(w.state)),
			zap.String("to", string(next)))
		w.state = next
	}

	return w.finish()
}

func (w *Workflow) step(ctx context.Context) domain.State {
	switch w.state {
	case domain.StateCollectingURL:
		return w.collectURL(ctx)
	case domain.StateCollectingPath:
		return w.collectPath(ctx)
	case domain.StateConfirmingDirectory:
		return w.confirmDirectory(ctx)
	case domain.StateConfirmingOverwrite:
		return w.confirmOverwrite(ctx)
	case domain.StateFetching:
		return w.fetch(ctx)
	case domain.StateStreaming:
		return w.stream()
	case domain.StateWriting:
		return w.write()
	}
	return domain.StateFailed
}

func (w *Workflow) collectURL(ctx context.Context) domain.State {
	value := w.rawURL
	if value == "" {
		value = defaultURLValue
		if w.opts.Preferences != nil {
			last, err := w.opts.Preferences.LastURL()
			if err != nil {
				w.log.Warn("Failed to load remembered URL", zap.Error(err))
			} else if last != "" {
				value = last
			}
		}
	}

	input, err := w.opts.Prompter.Input(ctx, domain.Prompt{
		Title:       urlPromptTitle,
		Placeholder: urlPlaceholder,
		Value:       value,
		Message:     w.message,
	})
	if err != nil {
		return w.promptAborted(err)
	}

	w.rawURL = input
	if err := domain.ValidateURL(input); err != nil {
		w.message = msgInvalidURL
		return domain.StateCollectingURL
	}

	w.message = ""
	return domain.StateCollectingPath
}

func (w *Workflow) collectPath(ctx context.Context) domain.State {
	defaultDest := domain.DefaultDestination(w.baseDir, w.rawURL)

	input, err := w.opts.Prompter.Input(ctx, domain.Prompt{
		Title:       pathPromptTitle,
		Placeholder: defaultDest,
		Value:       defaultDest,
		Message:     w.message,
	})
	if err != nil {
		return w.promptAborted(err)
	}

	if err := domain.ValidateDestination(input); err != nil {
		w.message = msgEmptyDestination
		return domain.StateCollectingPath
	}

	w.message = ""
	w.req = &domain.DownloadRequest{URL: w.rawURL, DestinationPath: input}
	return domain.StateConfirmingDirectory
}

func (w *Workflow) confirmDirectory(ctx context.Context) domain.State {
	dir := filepath.Dir(w.req.DestinationPath)
	if w.opts.Files.DirExists(dir) {
		return domain.StateConfirmingOverwrite
	}

	ok, err := w.confirm(ctx, fmt.Sprintf("Directory %q does not exist. Create it?", dir), w.opts.CreateDirs)
	if err != nil || !ok {
		w.notice = msgCancelled
		return domain.StateCancelled
	}

	if err := w.opts.Files.MakeDir(dir); err != nil {
		w.err = err
		return domain.StateFailed
	}
	w.log.Info("Created destination directory", zap.String("dir", dir))
	return domain.StateConfirmingOverwrite
}

func (w *Workflow) confirmOverwrite(ctx context.Context) domain.State {
	dest := w.req.DestinationPath
	if w.opts.Files.FileExists(dest) {
		ok, err := w.confirm(ctx, fmt.Sprintf("File %q already exists. Overwrite it?", dest), w.opts.Overwrite)
		if err != nil || !ok {
			w.notice = msgCancelled
			return domain.StateCancelled
		}
	}

	if w.opts.Preferences != nil {
		if err := w.opts.Preferences.SetLastURL(w.req.URL); err != nil {
			w.log.Warn("Failed to remember URL", zap.Error(err))
		}
	}
	return domain.StateFetching
}

func (w *Workflow) fetch(ctx context.Context) domain.State {
	if w.opts.InFlight != nil {
		w.opts.InFlight.Inc()
		w.counted = true
	}
	w.opts.Reporter.Started(*w.req)

	w.started = time.Now()
	// A started transfer runs to completion even if the caller goes away.
	resp, err := w.opts.Fetcher.Fetch(context.WithoutCancel(ctx), w.req.URL)
	if err != nil {
		w.err = err
		return domain.StateFailed
	}
	w.resp = resp

	if !resp.OK() {
		w.err = &domain.HTTPStatusError{StatusCode: resp.StatusCode, StatusText: resp.StatusText}
		return domain.StateFailed
	}
	return domain.StateStreaming
}

func (w *Workflow) stream() domain.State {
	var onPercent func(int)
	if w.opts.Progress {
		req := *w.req
		onPercent = func(percent int) {
			w.opts.Reporter.Progress(req, percent)
		}
	}

	data, err := ReadBody(w.resp.Body, w.resp.ContentLength, w.opts.ChunkSize, onPercent)
	if err != nil {
		w.err = err
		return domain.StateFailed
	}
	w.data = data
	return domain.StateWriting
}

func (w *Workflow) write() domain.State {
	if err := w.opts.Files.WriteFile(w.req.DestinationPath, w.data); err != nil {
		w.err = err
		return domain.StateFailed
	}
	return domain.StateDone
}

// confirm asks the Confirmer, or applies policy when there is none
func (w *Workflow) confirm(ctx context.Context, question string, policy bool) (bool, error) {
	if w.opts.Confirmer == nil {
		return policy, nil
	}
	ok, err := w.opts.Confirmer.Confirm(ctx, question)
	if err != nil {
		w.log.Warn("Confirmation failed", zap.String("question", question), zap.Error(err))
		return false, err
	}
	return ok, nil
}

func (w *Workflow) promptAborted(err error) domain.State {
	if !errors.Is(err, domain.ErrPromptCancelled) {
		w.log.Warn("Prompt aborted", zap.String("state", string(w.state)), zap.Error(err))
	}
	return domain.StateCancelled
}

func (w *Workflow) finish() *domain.DownloadOutcome {
	if w.resp != nil && w.resp.Body != nil {
		w.resp.Body.Close()
	}

	outcome := &domain.DownloadOutcome{
		Request: w.req,
		State:   w.state,
		Err:     w.err,
	}
	if !w.started.IsZero() {
		outcome.Elapsed = time.Since(w.started)
	}
	if w.state == domain.StateDone {
		outcome.BytesWritten = int64(len(w.data))
	}

	if w.counted {
		w.opts.InFlight.Dec()
	}

	switch {
	case w.state == domain.StateCancelled:
		if w.notice != "" {
			w.opts.Reporter.Notice(w.notice)
		}
	case w.req != nil:
		w.opts.Reporter.Finished(outcome)
	}

	w.data = nil
	return outcome
}
