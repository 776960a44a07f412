// Package report prints the post-action diagnostic snapshot for --info.
// Everything here is read-only; a failure to render never affects the
// already-completed toggle.
package report

import (
	"fmt"
	"io"

	"gopause/process"
	"gopause/session"

	"github.com/Moonlight-Companies/gologger/logger"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/jedib0t/go-pretty/v6/table"
)

var heading = color.New(color.FgCyan, color.Bold)

// Reporter renders the diagnostic snapshot from a process finder
type Reporter struct {
	finder process.ProcessFinder
	log    *logger.Logger
}

// New creates a Reporter over the given finder
func New(finder process.ProcessFinder) *Reporter {
	return &Reporter{finder: finder}
}

// SetDebugLogger enables the debug trace. A nil logger keeps the reporter quiet.
func (r *Reporter) SetDebugLogger(log *logger.Logger) {
	r.log = log
}

// PrintInfo emits the session context, the process tree, the per-thread
// listing, and the root process id/name/state. The tree and thread sections
// are best effort: a section whose read fails is skipped, with the cause on
// the debug trace.
func (r *Reporter) PrintInfo(w io.Writer, sc session.Context, pid process.ProcessID) error {
	info, err := r.finder.FindProcessByPID(pid)
	if err != nil {
		return fmt.Errorf("process %d vanished before reporting: %w", int(pid), err)
	}

	heading.Fprintln(w, "Session")
	st := table.NewWriter()
	st.SetOutputMirror(w)
	st.SetStyle(table.StyleLight)
	st.AppendRow(table.Row{"Type", sc.Type})
	st.AppendRow(table.Row{"Desktop", sc.Desktop})
	st.Render()

	heading.Fprintln(w, "Process")
	pt := table.NewWriter()
	pt.SetOutputMirror(w)
	pt.SetStyle(table.StyleLight)
	pt.AppendRow(table.Row{"PID", int(info.PID)})
	pt.AppendRow(table.Row{"Name", info.Name})
	pt.AppendRow(table.Row{"State", fmt.Sprintf("%s (%s)", info.State, info.StateCode)})
	pt.AppendRow(table.Row{"Threads", info.Threads})
	pt.Render()

	tree, err := r.finder.GetProcessTree(pid)
	if err != nil {
		r.debugln("process tree unavailable:", err)
	} else {
		heading.Fprintln(w, "Process tree")
		lw := list.NewWriter()
		lw.SetOutputMirror(w)
		lw.SetStyle(list.StyleConnectedLight)
		appendTree(lw, tree)
		lw.Render()
	}

	threads, err := r.finder.FindProcessThreads(pid)
	if err != nil {
		r.debugln("thread listing unavailable:", err)
	} else if len(threads) > 0 {
		heading.Fprintln(w, "Threads")
		tt := table.NewWriter()
		tt.SetOutputMirror(w)
		tt.SetStyle(table.StyleLight)
		tt.AppendHeader(table.Row{"TID", "Name"})
		for _, th := range threads {
			tt.AppendRow(table.Row{th.TID, th.Name})
		}
		tt.Render()
	}

	return nil
}

func appendTree(lw list.Writer, node *process.ProcessTreeNode) {
	lw.AppendItem(fmt.Sprintf("%d %s [%s]", int(node.Process.PID), node.Process.Name, node.Process.StateCode))
	if len(node.Children) > 0 {
		lw.Indent()
		for _, child := range node.Children {
			appendTree(lw, child)
		}
		lw.UnIndent()
	}
}

func (r *Reporter) debugln(args ...interface{}) {
	if r.log != nil {
		r.log.Debugln(args...)
	}
}
