package infrastructure

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/download-it/internal/domain"
)

func TestLinePrompter_Input(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("http://example.com/a.zip\n\n"), &out)

	url, err := p.Input(context.Background(), domain.Prompt{Title: "Download URL", Value: "http://"})
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/a.zip", url)

	dest, err := p.Input(context.Background(), domain.Prompt{Title: "Destination Path", Value: "a.zip", Message: "Destination path is required"})
	require.NoError(t, err)
	assert.Equal(t, "a.zip", dest, "empty line keeps the pre-filled value")

	assert.Contains(t, out.String(), "Download URL [http://]: ")
	assert.Contains(t, out.String(), "! Destination path is required")
}

func TestLinePrompter_EOFCancels(t *testing.T) {
	p := NewLinePrompter(strings.NewReader(""), &bytes.Buffer{})

	_, err := p.Input(context.Background(), domain.Prompt{Title: "Download URL"})
	assert.ErrorIs(t, err, domain.ErrPromptCancelled)

	ok, err := p.Confirm(context.Background(), "Overwrite?")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLinePrompter_Confirm(t *testing.T) {
	p := NewLinePrompter(strings.NewReader("y\nYES\nno\n\n"), &bytes.Buffer{})

	for _, expected := range []bool{true, true, false, false} {
		ok, err := p.Confirm(context.Background(), "Create it?")
		require.NoError(t, err)
		assert.Equal(t, expected, ok)
	}
}

func TestNewTerminalPrompter_FallsBackToLines(t *testing.T) {
	p := NewTerminalPrompter(strings.NewReader(""), &bytes.Buffer{}, false)
	_, ok := p.(*LinePrompter)
	assert.True(t, ok)
}

func TestInputModel_Keys(t *testing.T) {
	m := inputModel{prompt: domain.Prompt{Title: "Download URL"}}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, next.(inputModel).submitted)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, next.(inputModel).submitted)
	assert.True(t, next.(inputModel).done)
}

func TestConfirmModel_Keys(t *testing.T) {
	m := confirmModel{question: "Overwrite it?"}
	assert.Contains(t, m.View(), "Overwrite it?")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	assert.True(t, next.(confirmModel).yes)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	assert.False(t, next.(confirmModel).yes)
	assert.True(t, next.(confirmModel).done)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.False(t, next.(confirmModel).done)
}
