package infrastructure

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/yourusername/download-it/internal/domain"
	"go.uber.org/zap"
)

// Notifier shows transient pop-up messages
type Notifier interface {
	Notify(message string)
}

// Theme styles the lines echoed to a terminal
type Theme struct {
	Progress lipgloss.Style
	Success  lipgloss.Style
	Failure  lipgloss.Style
	Notice   lipgloss.Style
}

// DefaultTheme returns the terminal colors used by the CLI
func DefaultTheme() *Theme {
	return &Theme{
		Progress: lipgloss.NewStyle().Faint(true),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Failure:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Notice:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

// PlainTheme renders lines unstyled
func PlainTheme() *Theme {
	return &Theme{
		Progress: lipgloss.NewStyle(),
		Success:  lipgloss.NewStyle(),
		Failure:  lipgloss.NewStyle(),
		Notice:   lipgloss.NewStyle(),
	}
}

// OutputReporter implements domain.Reporter. Status lines go to the download
// log and, when out is set, to the terminal; notices and outcomes also pop up.
type OutputReporter struct {
	log      *zap.Logger
	out      io.Writer
	theme    *Theme
	notifier Notifier
	mu       sync.Mutex
}

// NewOutputReporter creates a reporter. Any of out, theme and notifier may be nil.
func NewOutputReporter(log *zap.Logger, out io.Writer, theme *Theme, notifier Notifier) *OutputReporter {
	if log == nil {
		log = zap.NewNop()
	}
	if theme == nil {
		theme = PlainTheme()
	}
	return &OutputReporter{
		log:      log,
		out:      out,
		theme:    theme,
		notifier: notifier,
	}
}

// Started reports that the transfer is about to begin
func (r *OutputReporter) Started(req domain.DownloadRequest) {
	r.line(FormatStarted(req), r.theme.Progress,
		zap.String("event", "started"),
		zap.String("url", req.URL),
		zap.String("destination", req.DestinationPath))
	r.notify("Downloading is started...")
}

// Progress reports a new integer percentage
func (r *OutputReporter) Progress(req domain.DownloadRequest, percent int) {
	r.line(FormatProgress(req, percent), r.theme.Progress,
		zap.String("event", "progress"),
		zap.String("url", req.URL),
		zap.Int("percent", percent))
}

// Finished reports the terminal outcome of a transfer
func (r *OutputReporter) Finished(outcome *domain.DownloadOutcome) {
	msg := FormatOutcome(outcome)
	fields := []zap.Field{
		zap.String("event", string(outcome.State)),
		zap.Int64("elapsed_ms", outcome.ElapsedMillis()),
	}
	if outcome.Request != nil {
		fields = append(fields, zap.String("url", outcome.Request.URL))
	}

	style := r.theme.Success
	if outcome.Err != nil {
		style = r.theme.Failure
		fields = append(fields, zap.String("error", outcome.ErrorMessage()))
	} else {
		fields = append(fields, zap.Int64("bytes", outcome.BytesWritten))
	}

	r.line(msg, style, fields...)
	r.notify(msg)
}

// Notice shows a transient message without logging it
func (r *OutputReporter) Notice(msg string) {
	r.write(msg, r.theme.Notice)
	r.notify(msg)
}

func (r *OutputReporter) line(msg string, style lipgloss.Style, fields ...zap.Field) {
	r.log.Info(msg, fields...)
	r.write(msg, style)
}

func (r *OutputReporter) write(msg string, style lipgloss.Style) {
	if r.out == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, style.Render(msg))
}

func (r *OutputReporter) notify(msg string) {
	if r.notifier != nil {
		r.notifier.Notify(msg)
	}
}

// FormatStarted renders the line written when a transfer starts
func FormatStarted(req domain.DownloadRequest) string {
	return fmt.Sprintf("Started: %s >>> %s", req.URL, req.DestinationPath)
}

// FormatProgress renders a progress line with the percentage right-aligned to 3 columns
func FormatProgress(req domain.DownloadRequest, percent int) string {
	return fmt.Sprintf("[%3d%%] %s >>> %s", percent, req.URL, req.DestinationPath)
}

// FormatOutcome renders the terminal line with the elapsed seconds
func FormatOutcome(outcome *domain.DownloadOutcome) string {
	var message string
	switch {
	case outcome.Err != nil:
		message = fmt.Sprintf("Failed due to \"%s\"...", outcome.ErrorMessage())
	case outcome.State == domain.StateCancelled:
		message = "Download cancelled"
	default:
		dest := ""
		if outcome.Request != nil {
			dest = outcome.Request.DestinationPath
		}
		message = fmt.Sprintf("Completed: \"%s\" (%s bytes)", dest, humanize.Comma(outcome.BytesWritten))
	}

	return fmt.Sprintf("%s [elapsed: %.3f sec.]", message, float64(outcome.ElapsedMillis())/1000)
}
