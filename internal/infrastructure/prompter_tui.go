package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yourusername/download-it/internal/domain"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle    = lipgloss.NewStyle().Faint(true)
)

// TUIPrompter shows each prompt as a small bubbletea program
type TUIPrompter struct {
	in  io.Reader
	out io.Writer
}

// NewTUIPrompter creates an interactive prompter
func NewTUIPrompter(in io.Reader, out io.Writer) *TUIPrompter {
	return &TUIPrompter{in: in, out: out}
}

// Input shows a pre-filled text field. Esc or Ctrl+C cancels.
func (p *TUIPrompter) Input(ctx context.Context, prompt domain.Prompt) (string, error) {
	ti := textinput.New()
	ti.Placeholder = prompt.Placeholder
	ti.SetValue(prompt.Value)
	ti.Width = 72
	ti.Focus()

	final, err := p.run(ctx, inputModel{prompt: prompt, input: ti})
	if err != nil {
		return "", err
	}

	m := final.(inputModel)
	if !m.submitted {
		return "", domain.ErrPromptCancelled
	}
	return strings.TrimSpace(m.input.Value()), nil
}

// Confirm asks a yes/no question; dismissing it answers no
func (p *TUIPrompter) Confirm(ctx context.Context, question string) (bool, error) {
	final, err := p.run(ctx, confirmModel{question: question})
	if err != nil {
		if errors.Is(err, domain.ErrPromptCancelled) {
			return false, nil
		}
		return false, err
	}
	return final.(confirmModel).yes, nil
}

func (p *TUIPrompter) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	program := tea.NewProgram(model,
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
		tea.WithContext(ctx),
	)

	final, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, domain.ErrPromptCancelled
		}
		return nil, fmt.Errorf("prompt failed: %w", err)
	}
	return final, nil
}

type inputModel struct {
	prompt    domain.Prompt
	input     textinput.Model
	submitted bool
	done      bool
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.submitted = true
			m.done = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.prompt.Title))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.prompt.Message != "" {
		b.WriteString(messageStyle.Render(m.prompt.Message))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("enter to confirm • esc to cancel"))
	b.WriteString("\n")
	return b.String()
}

type confirmModel struct {
	question string
	yes      bool
	done     bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch strings.ToLower(key.String()) {
	case "y":
		m.yes = true
		m.done = true
		return m, tea.Quit
	case "n", "esc", "ctrl+c", "enter":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s\n", titleStyle.Render(m.question), hintStyle.Render("[y/N]"))
}
