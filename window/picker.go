package window

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"gopause/exitcode"
	"gopause/process"
)

// HyprlandPicker lets the user pick a window through hyprprop, which blocks
// until a window is clicked and prints its properties as JSON with a pid
// field, the same contract the active-window queriers consume.
type HyprlandPicker struct {
	run runner
}

func (p *HyprlandPicker) PickWindowPID(ctx context.Context) (process.ProcessID, error) {
	out, err := p.run(ctx, "hyprprop")
	if err != nil {
		return 0, classifyRunError(ctx, "hyprprop", err)
	}

	var win struct {
		PID int `json:"pid"`
	}
	if err := json.Unmarshal(out, &win); err != nil {
		return 0, exitcode.Wrap(exitcode.ErrGeneral, "hyprprop returned malformed JSON", err)
	}
	if win.PID <= 0 {
		return 0, exitcode.New(exitcode.ErrGeneral, "picked window does not expose its pid")
	}
	return process.ProcessID(win.PID), nil
}

// XpropPicker lets the user click a window on X11. xprop blocks until a
// window is picked and prints the property, e.g. "_NET_WM_PID(CARDINAL) = 4821".
type XpropPicker struct {
	run runner
}

func (p *XpropPicker) PickWindowPID(ctx context.Context) (process.ProcessID, error) {
	out, err := p.run(ctx, "xprop", "_NET_WM_PID")
	if err != nil {
		return 0, classifyRunError(ctx, "xprop", err)
	}
	return parseXpropPID(string(out))
}

func parseXpropPID(out string) (process.ProcessID, error) {
	_, value, found := strings.Cut(strings.TrimSpace(out), "=")
	if !found {
		// Windows without the property report "_NET_WM_PID: not found."
		return 0, exitcode.New(exitcode.ErrGeneral, "picked window does not expose its pid")
	}
	pid, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || pid <= 0 {
		return 0, exitcode.Newf(exitcode.ErrGeneral, "xprop did not return a window pid: %q", strings.TrimSpace(out))
	}
	return process.ProcessID(pid), nil
}

// KDEPicker lets the user pick a window through kdotool
type KDEPicker struct {
	run runner
}

func (p *KDEPicker) PickWindowPID(ctx context.Context) (process.ProcessID, error) {
	out, err := p.run(ctx, "kdotool", "selectwindow", "getwindowpid")
	if err != nil {
		return 0, classifyRunError(ctx, "kdotool", err)
	}
	return parsePIDOutput("kdotool", out)
}
