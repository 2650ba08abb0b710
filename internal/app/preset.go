package app

import (
	"context"

	"github.com/yourusername/download-it/internal/domain"
)

// PresetPrompter answers the workflow prompts with fixed values for callers
// that cannot ask a user. An empty answer accepts the pre-filled value and a
// rejected answer cancels the run instead of asking again.
type PresetPrompter struct {
	URL             string
	DestinationPath string
}

// Input implements domain.Prompter
func (p *PresetPrompter) Input(_ context.Context, prompt domain.Prompt) (string, error) {
	if prompt.Message != "" {
		return "", domain.ErrPromptCancelled
	}

	var answer string
	switch prompt.Title {
	case urlPromptTitle:
		answer = p.URL
	case pathPromptTitle:
		answer = p.DestinationPath
	default:
		return "", domain.ErrPromptCancelled
	}

	if answer == "" {
		return prompt.Value, nil
	}
	return answer, nil
}
