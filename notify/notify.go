// Package notify dispatches desktop notifications. Delivery is fire-and-forget;
// a toggle that succeeded is never failed retroactively by a notification
// problem.
package notify

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"gopause/process"
)

const sendTimeout = 5 * time.Second

// Notification carries the fields of the freedesktop notification contract
// this tool uses.
type Notification struct {
	Title     string
	Body      string
	TimeoutMS int // Display duration; the daemon's default when 0
}

// Notifier dispatches a desktop notification
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}

// NotifySend dispatches through the notify-send helper. A production D-Bus
// client is not warranted for a one-shot CLI; notify-send speaks
// org.freedesktop.Notifications for us.
type NotifySend struct {
	appName string
	run     func(ctx context.Context, name string, args ...string) error
}

// New creates a NotifySend notifier with the given app name
func New(appName string) *NotifySend {
	return &NotifySend{
		appName: appName,
		run: func(ctx context.Context, name string, args ...string) error {
			return exec.CommandContext(ctx, name, args...).Run()
		},
	}
}

var _ Notifier = (*NotifySend)(nil)

// Send dispatches the notification
func (n *NotifySend) Send(ctx context.Context, note Notification) error {
	sctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	args := []string{"-a", n.appName}
	if note.TimeoutMS > 0 {
		args = append(args, "-t", strconv.Itoa(note.TimeoutMS))
	}
	args = append(args, note.Title, note.Body)

	return n.run(sctx, "notify-send", args...)
}

// Toggled builds the notification for a completed toggle
func Toggled(pid process.ProcessID, newState process.ProcessState, timeoutMS int) Notification {
	title := "Process suspended"
	if newState == process.ProcessRunning {
		title = "Process resumed"
	}
	return Notification{
		Title:     title,
		Body:      fmt.Sprintf("pid %d", int(pid)),
		TimeoutMS: timeoutMS,
	}
}
