package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_CanTransition(t *testing.T) {
	tests := []struct {
		from, to State
		allowed  bool
	}{
		{StateCollectingURL, StateCollectingPath, true},
		{StateCollectingURL, StateCancelled, true},
		{StateCollectingURL, StateFetching, false},
		{StateCollectingPath, StateConfirmingDirectory, true},
		{StateConfirmingDirectory, StateFailed, true},
		{StateConfirmingOverwrite, StateFetching, true},
		{StateConfirmingOverwrite, StateFailed, false},
		{StateFetching, StateStreaming, true},
		{StateFetching, StateCancelled, false},
		{StateStreaming, StateWriting, true},
		{StateWriting, StateDone, true},
		{StateDone, StateFailed, false},
		{StateCancelled, StateCollectingURL, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to))
		})
	}
}

func TestState_IsTerminal(t *testing.T) {
	assert.True(t, StateDone.IsTerminal())
	assert.True(t, StateFailed.IsTerminal())
	assert.True(t, StateCancelled.IsTerminal())
	assert.False(t, StateStreaming.IsTerminal())
	assert.False(t, StateCollectingURL.IsTerminal())
}

func TestTransitionError(t *testing.T) {
	err := &TransitionError{From: StateDone, To: StateFetching}
	assert.Equal(t, "invalid workflow transition: done -> fetching", err.Error())
}
