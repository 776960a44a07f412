// Package session resolves the graphical session context (windowing protocol
// and desktop environment) that window-query backends are selected by.
package session

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"gopause/exitcode"
)

// Context describes the graphical session. Both fields are lowercased for
// reliable comparison. Resolved once per invocation and immutable afterward.
type Context struct {
	Type    string // Windowing protocol family, e.g. "wayland", "x11", "tty"
	Desktop string // Desktop environment identifier, e.g. "kde", "hyprland"
}

const loginctlTimeout = 5 * time.Second

// Detector resolves the session context from the login session manager with
// environment-variable fallback.
type Detector struct {
	run    func(ctx context.Context, name string, args ...string) ([]byte, error)
	getenv func(key string) string
}

// NewDetector creates a Detector backed by loginctl and the real environment
func NewDetector() *Detector {
	return &Detector{
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
		getenv: os.Getenv,
	}
}

// Detect resolves the session context. Order: the active login session's Type
// and Desktop properties, then XDG_SESSION_TYPE / XDG_CURRENT_DESKTOP for
// whichever field is still missing. If either field remains empty the
// invocation cannot proceed, since every window-query backend is keyed off
// this context.
func (d *Detector) Detect(ctx context.Context) (Context, error) {
	sessionType, desktop := d.queryLoginSession(ctx)

	if sessionType == "" {
		sessionType = strings.TrimSpace(d.getenv("XDG_SESSION_TYPE"))
	}
	if desktop == "" {
		desktop = strings.TrimSpace(d.getenv("XDG_CURRENT_DESKTOP"))
	}

	if sessionType == "" || desktop == "" {
		return Context{}, exitcode.New(exitcode.ErrEnvironment,
			"unable to detect session type and desktop environment")
	}

	return Context{
		Type:    strings.ToLower(sessionType),
		Desktop: strings.ToLower(desktop),
	}, nil
}

// queryLoginSession asks loginctl for the active session's Type and Desktop.
// Any failure (loginctl missing, no session, timeout) yields empty fields and
// the caller falls back to the environment.
func (d *Detector) queryLoginSession(ctx context.Context) (sessionType, desktop string) {
	qctx, cancel := context.WithTimeout(ctx, loginctlTimeout)
	defer cancel()

	out, err := d.run(qctx, "loginctl", "show-session", "self",
		"--property=Type", "--property=Desktop")
	if err != nil {
		return "", ""
	}
	return parseLoginctlOutput(string(out))
}

// parseLoginctlOutput extracts Type= and Desktop= from loginctl's
// Key=Value lines.
func parseLoginctlOutput(out string) (sessionType, desktop string) {
	for _, line := range strings.Split(out, "\n") {
		key, value, found := strings.Cut(strings.TrimSpace(line), "=")
		if !found {
			continue
		}
		switch key {
		case "Type":
			sessionType = strings.TrimSpace(value)
		case "Desktop":
			desktop = strings.TrimSpace(value)
		}
	}
	return sessionType, desktop
}
