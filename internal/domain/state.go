package domain

import "fmt"

// State is a step of the download workflow
type State string

const (
	StateCollectingURL       State = "collecting_url"
	StateCollectingPath      State = "collecting_path"
	StateConfirmingDirectory State = "confirming_directory"
	StateConfirmingOverwrite State = "confirming_overwrite"
	StateFetching            State = "fetching"
	StateStreaming           State = "streaming"
	StateWriting             State = "writing"
	StateDone                State = "done"
	StateFailed              State = "failed"
	StateCancelled           State = "cancelled"
)

// transitions lists the states reachable from each non-terminal state
var transitions = map[State][]State{
	StateCollectingURL:       {StateCollectingURL, StateCollectingPath, StateCancelled},
	StateCollectingPath:      {StateCollectingPath, StateConfirmingDirectory, StateCancelled},
	StateConfirmingDirectory: {StateConfirmingOverwrite, StateCancelled, StateFailed},
	StateConfirmingOverwrite: {StateFetching, StateCancelled},
	StateFetching:            {StateStreaming, StateFailed},
	StateStreaming:           {StateWriting, StateFailed},
	StateWriting:             {StateDone, StateFailed},
}

// IsTerminal reports whether no transition leaves s
func (s State) IsTerminal() bool {
	return s == StateDone || s == StateFailed || s == StateCancelled
}

// CanTransition reports whether the workflow may move from s to next
func (s State) CanTransition(next State) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionError is an attempt to leave a state along an undefined edge
type TransitionError struct {
	From State
	To   State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid workflow transition: %s -> %s", e.From, e.To)
}

// Status maps a terminal workflow state onto a history status
func (s State) Status() DownloadStatus {
	switch s {
	case StateDone:
		return StatusCompleted
	case StateFailed:
		return StatusFailed
	case StateCancelled:
		return StatusCancelled
	default:
		return StatusProcessing
	}
}
