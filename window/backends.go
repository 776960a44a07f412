package window

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"gopause/exitcode"
	"gopause/process"
)

// HyprlandQuerier reads the focused window from hyprctl's JSON output
type HyprlandQuerier struct {
	run runner
}

func (q *HyprlandQuerier) ActiveWindowPID(ctx context.Context) (process.ProcessID, error) {
	out, err := q.run(ctx, "hyprctl", "activewindow", "-j")
	if err != nil {
		return 0, classifyRunError(ctx, "hyprctl", err)
	}

	var win struct {
		PID int `json:"pid"`
	}
	if err := json.Unmarshal(out, &win); err != nil {
		return 0, exitcode.Wrap(exitcode.ErrGeneral, "hyprctl returned malformed JSON", err)
	}
	if win.PID <= 0 {
		return 0, exitcode.New(exitcode.ErrGeneral, "no active window")
	}
	return process.ProcessID(win.PID), nil
}

// SwayQuerier walks swaymsg's layout tree for the focused node
type SwayQuerier struct {
	run runner
}

type swayNode struct {
	Focused       bool       `json:"focused"`
	PID           int        `json:"pid"`
	Nodes         []swayNode `json:"nodes"`
	FloatingNodes []swayNode `json:"floating_nodes"`
}

func (q *SwayQuerier) ActiveWindowPID(ctx context.Context) (process.ProcessID, error) {
	out, err := q.run(ctx, "swaymsg", "-t", "get_tree")
	if err != nil {
		return 0, classifyRunError(ctx, "swaymsg", err)
	}

	var root swayNode
	if err := json.Unmarshal(out, &root); err != nil {
		return 0, exitcode.Wrap(exitcode.ErrGeneral, "swaymsg returned malformed JSON", err)
	}
	if pid := findFocusedPID(&root); pid > 0 {
		return process.ProcessID(pid), nil
	}
	return 0, exitcode.New(exitcode.ErrGeneral, "no active window")
}

func findFocusedPID(node *swayNode) int {
	if node.Focused && node.PID > 0 {
		return node.PID
	}
	for i := range node.Nodes {
		if pid := findFocusedPID(&node.Nodes[i]); pid > 0 {
			return pid
		}
	}
	for i := range node.FloatingNodes {
		if pid := findFocusedPID(&node.FloatingNodes[i]); pid > 0 {
			return pid
		}
	}
	return 0
}

// KDEQuerier resolves the active window through kdotool
type KDEQuerier struct {
	run runner
}

func (q *KDEQuerier) ActiveWindowPID(ctx context.Context) (process.ProcessID, error) {
	out, err := q.run(ctx, "kdotool", "getactivewindow", "getwindowpid")
	if err != nil {
		return 0, classifyRunError(ctx, "kdotool", err)
	}
	return parsePIDOutput("kdotool", out)
}

// GNOMEQuerier evaluates the focused window's PID through GNOME Shell's
// D-Bus Eval interface. The reply has the form (true, '1234').
type GNOMEQuerier struct {
	run runner
}

func (q *GNOMEQuerier) ActiveWindowPID(ctx context.Context) (process.ProcessID, error) {
	out, err := q.run(ctx, "gdbus", "call", "--session",
		"--dest", "org.gnome.Shell",
		"--object-path", "/org/gnome/Shell",
		"--method", "org.gnome.Shell.Eval",
		"global.display.focus_window.get_pid()")
	if err != nil {
		return 0, classifyRunError(ctx, "gdbus", err)
	}
	return parseGdbusEvalPID(string(out))
}

func parseGdbusEvalPID(reply string) (process.ProcessID, error) {
	reply = strings.TrimSpace(reply)
	if !strings.HasPrefix(reply, "(true,") {
		return 0, exitcode.Newf(exitcode.ErrGeneral, "gnome shell rejected the query: %s", reply)
	}
	start := strings.Index(reply, "'")
	end := strings.LastIndex(reply, "'")
	if start < 0 || end <= start {
		return 0, exitcode.Newf(exitcode.ErrGeneral, "unexpected gnome shell reply: %s", reply)
	}
	pid, err := strconv.Atoi(reply[start+1 : end])
	if err != nil || pid <= 0 {
		return 0, exitcode.New(exitcode.ErrGeneral, "no active window")
	}
	return process.ProcessID(pid), nil
}

// XdotoolQuerier serves any X11 desktop without a dedicated backend
type XdotoolQuerier struct {
	run runner
}

func (q *XdotoolQuerier) ActiveWindowPID(ctx context.Context) (process.ProcessID, error) {
	out, err := q.run(ctx, "xdotool", "getactivewindow", "getwindowpid")
	if err != nil {
		return 0, classifyRunError(ctx, "xdotool", err)
	}
	return parsePIDOutput("xdotool", out)
}

// parsePIDOutput parses a helper's bare-integer stdout
func parsePIDOutput(tool string, out []byte) (process.ProcessID, error) {
	pid, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil || pid <= 0 {
		return 0, exitcode.Newf(exitcode.ErrGeneral,
			"%s did not return a window pid: %q", tool, strings.TrimSpace(string(out)))
	}
	return process.ProcessID(pid), nil
}
