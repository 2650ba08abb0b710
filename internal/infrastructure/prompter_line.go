package infrastructure

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/yourusername/download-it/internal/domain"
)

// TerminalPrompter collects input and confirmations from the user
type TerminalPrompter interface {
	domain.Prompter
	domain.Confirmer
}

// NewTerminalPrompter picks the interactive prompter when in is a terminal
// and plain is false, the line prompter otherwise.
func NewTerminalPrompter(in io.Reader, out io.Writer, plain bool) TerminalPrompter {
	if !plain {
		if f, ok := in.(*os.File); ok && isTerminal(f) {
			return NewTUIPrompter(in, out)
		}
	}
	return NewLinePrompter(in, out)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// LinePrompter reads answers line by line, for pipes and dumb terminals.
// End of input cancels the prompt.
type LinePrompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewLinePrompter creates a line-oriented prompter
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// Input prints the prompt and reads one line; an empty line keeps the pre-filled value
func (p *LinePrompter) Input(ctx context.Context, prompt domain.Prompt) (string, error) {
	if prompt.Message != "" {
		fmt.Fprintf(p.out, "! %s\n", prompt.Message)
	}
	if prompt.Value != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", prompt.Title, prompt.Value)
	} else {
		fmt.Fprintf(p.out, "%s: ", prompt.Title)
	}

	line, err := p.readLine(ctx)
	if err != nil {
		return "", err
	}
	if line == "" {
		return prompt.Value, nil
	}
	return line, nil
}

// Confirm asks a yes/no question, anything but y/yes is a no
func (p *LinePrompter) Confirm(ctx context.Context, question string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)

	line, err := p.readLine(ctx)
	if err == domain.ErrPromptCancelled {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func (p *LinePrompter) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		fmt.Fprintln(p.out)
		return "", domain.ErrPromptCancelled
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}
