package infrastructure

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/download-it/internal/domain"
)

type recordedCommand struct {
	name string
	args []string
}

func newTestNotifier(config *domain.NotificationConfig, runErr error) (*NotificationService, *[]recordedCommand) {
	var calls []recordedCommand
	n := NewNotificationService(config, nil)
	n.run = func(name string, args ...string) error {
		calls = append(calls, recordedCommand{name: name, args: args})
		return runErr
	}
	return n, &calls
}

func TestNotificationService_Disabled(t *testing.T) {
	n, calls := newTestNotifier(&domain.NotificationConfig{Enabled: false, Method: "notify-send"}, nil)

	assert.NoError(t, n.Send("title", "message"))
	assert.Empty(t, *calls)
}

func TestNotificationService_NotifySend(t *testing.T) {
	n, calls := newTestNotifier(&domain.NotificationConfig{Enabled: true, Method: "notify-send"}, nil)

	n.Notify("Downloading is started...")

	assert.Equal(t, []recordedCommand{{name: "notify-send", args: []string{"Download It", "Downloading is started..."}}}, *calls)
}

func TestNotificationService_OSAScriptEscapes(t *testing.T) {
	n, calls := newTestNotifier(&domain.NotificationConfig{Enabled: true, Method: "osascript"}, nil)

	assert.NoError(t, n.Send("Download It", `Completed: "a.zip"`))

	if assert.Len(t, *calls, 1) {
		assert.Equal(t, "osascript", (*calls)[0].name)
		assert.Equal(t, `display notification "Completed: \"a.zip\"" with title "Download It"`, (*calls)[0].args[1])
	}
}

func TestNotificationService_ReturnsCommandError(t *testing.T) {
	n, _ := newTestNotifier(&domain.NotificationConfig{Enabled: true, Method: "notify-send"}, errors.New("not installed"))

	assert.Error(t, n.Send("t", "m"))
}

func TestNotificationService_UnknownMethod(t *testing.T) {
	n, calls := newTestNotifier(&domain.NotificationConfig{Enabled: true, Method: "pigeon"}, nil)

	assert.NoError(t, n.Send("t", "m"))
	assert.Empty(t, *calls)
}
