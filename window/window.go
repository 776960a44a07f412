// Package window abstracts the desktop-environment window query tools behind
// capability interfaces. Each backend shells out to one external helper and
// resolves the owning PID of a window; the helpers are external collaborators
// with their own output contracts, not reimplemented here.
package window

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"gopause/exitcode"
	"gopause/process"
	"gopause/session"
)

// ActiveWindowQuerier resolves the currently focused window's owning process
type ActiveWindowQuerier interface {
	ActiveWindowPID(ctx context.Context) (process.ProcessID, error)
}

// Picker resolves a window chosen interactively by the user
type Picker interface {
	PickWindowPID(ctx context.Context) (process.ProcessID, error)
}

type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func defaultRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// QuerierFor selects the active-window backend for the session context.
// Desktop matching is substring-based because XDG_CURRENT_DESKTOP is often a
// colon list like "ubuntu:GNOME".
func QuerierFor(sc session.Context) (ActiveWindowQuerier, error) {
	switch {
	case strings.Contains(sc.Desktop, "hyprland"):
		return &HyprlandQuerier{run: defaultRunner}, nil
	case strings.Contains(sc.Desktop, "sway"):
		return &SwayQuerier{run: defaultRunner}, nil
	case strings.Contains(sc.Desktop, "kde"), strings.Contains(sc.Desktop, "plasma"):
		return &KDEQuerier{run: defaultRunner}, nil
	case strings.Contains(sc.Desktop, "gnome"):
		return &GNOMEQuerier{run: defaultRunner}, nil
	case sc.Type == "x11":
		// Any X11 desktop without a dedicated backend can be served by xdotool
		return &XdotoolQuerier{run: defaultRunner}, nil
	default:
		return nil, exitcode.Newf(exitcode.ErrEnvironment,
			"no active-window backend for desktop %q (session type %q)", sc.Desktop, sc.Type)
	}
}

// PickerFor selects the interactive window picker for the session context.
// An environment with no picker at all is distinct from a picker whose binary
// is not installed; the latter surfaces at invocation time as a missing
// helper.
func PickerFor(sc session.Context) (Picker, error) {
	switch {
	case strings.Contains(sc.Desktop, "hyprland"):
		return &HyprlandPicker{run: defaultRunner}, nil
	case strings.Contains(sc.Desktop, "kde"), strings.Contains(sc.Desktop, "plasma"):
		return &KDEPicker{run: defaultRunner}, nil
	case sc.Type == "x11":
		return &XpropPicker{run: defaultRunner}, nil
	default:
		return nil, exitcode.Newf(exitcode.ErrEnvironment,
			"no interactive window picker for desktop %q (session type %q)", sc.Desktop, sc.Type)
	}
}

// classifyRunError maps helper invocation failures onto the exit-code
// taxonomy: missing binary, timed-out query, or a generic helper failure.
func classifyRunError(ctx context.Context, tool string, err error) error {
	if errors.Is(err, exec.ErrNotFound) {
		return exitcode.Newf(exitcode.ErrHelperMissing, "required helper %q is not installed", tool)
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return exitcode.Newf(exitcode.ErrGeneral, "%s query timed out", tool)
	}
	return exitcode.Wrap(exitcode.ErrGeneral, fmt.Sprintf("%s query failed", tool), err)
}
