// Package toggle implements the process-tree suspend/resume controller.
//
// The whole tree is signaled rather than just the root: launcher shims are
// common (a game started through a launcher keeps running in a child), and
// stopping only the root would leave the children consuming CPU.
package toggle

import (
	"errors"
	"os"
	"strconv"

	"gopause/exitcode"
	"gopause/process"

	"github.com/Moonlight-Companies/gologger/logger"
)

// Result describes the outcome of a toggle
type Result struct {
	NewState    process.ProcessState // State after the toggle (or the would-be state under dry run)
	ProcessName string               // Name of the root process
	Signaled    []process.ProcessID  // PIDs the signal was delivered to; empty under dry run
}

// Controller toggles the suspended/running state of a process tree
type Controller struct {
	finder   process.ProcessFinder
	signaler process.ProcessSignaler
	selfPID  process.ProcessID
	log      *logger.Logger
}

// NewController creates a Controller over the given finder and signaler
func NewController(finder process.ProcessFinder, signaler process.ProcessSignaler) *Controller {
	return &Controller{
		finder:   finder,
		signaler: signaler,
		selfPID:  process.ProcessID(os.Getpid()),
	}
}

// SetDebugLogger enables the debug trace. A nil logger keeps the controller quiet.
func (c *Controller) SetDebugLogger(log *logger.Logger) {
	c.log = log
}

// Toggle suspends or resumes the process tree rooted at pidArg. The direction
// is decided solely by the root's current state: stopped resumes, anything
// else suspends. Under dryRun no signal is sent and the would-be state is
// reported.
func (c *Controller) Toggle(pidArg string, dryRun bool) (*Result, error) {
	pid, err := parsePid(pidArg)
	if err != nil {
		return nil, err
	}

	info, err := c.finder.FindProcessByPID(pid)
	if err != nil {
		if errors.Is(err, process.ErrProcessNotExist) {
			return nil, exitcode.Newf(exitcode.ErrEnvironment, "process %d not found", pid)
		}
		// The process exists but could not be inspected, e.g. a
		// permission-denied status read on someone else's pid
		return nil, exitcode.Wrap(exitcode.ErrGeneral, "failed to inspect process", err)
	}

	pids, err := c.finder.FindDescendantProcesses(pid)
	if err != nil {
		return nil, exitcode.Wrap(exitcode.ErrGeneral, "failed to enumerate process tree", err)
	}
	c.debugln("process tree of", int(pid), "has", len(pids), "processes")

	// Signaling our own tree would stop this invocation mid-flight and hang
	// it permanently. Checked before any signal is sent.
	for _, p := range pids {
		if p == c.selfPID {
			return nil, exitcode.Newf(exitcode.ErrGeneral,
				"refusing to toggle: own process %d is inside the target tree", int(c.selfPID))
		}
	}

	newState := info.State.Toggled()

	if dryRun {
		c.debugln("dry run: would set", len(pids), "processes to", string(newState))
		return &Result{NewState: newState, ProcessName: info.Name}, nil
	}

	signaled, err := c.signalAll(pid, pids, newState)
	if err != nil {
		return nil, err
	}

	return &Result{NewState: newState, ProcessName: info.Name, Signaled: signaled}, nil
}

// signalAll delivers the signal to every pid in the tree. A non-root pid
// failing (typically it exited between enumeration and delivery) is
// tolerated; the root failing fails the operation.
func (c *Controller) signalAll(root process.ProcessID, pids []process.ProcessID, newState process.ProcessState) ([]process.ProcessID, error) {
	deliver := c.signaler.Stop
	if newState == process.ProcessRunning {
		deliver = c.signaler.Continue
	}

	var signaled []process.ProcessID
	for _, pid := range pids {
		if err := deliver(pid); err != nil {
			if pid == root {
				return nil, exitcode.Wrap(exitcode.ErrGeneral,
					"signal delivery to root process failed", err)
			}
			c.debugln("signal to pid", int(pid), "failed:", err)
			continue
		}
		signaled = append(signaled, pid)
	}
	return signaled, nil
}

// parsePid validates that the pid argument is a non-negative decimal integer.
// Window queries in headless or broken sessions hand back sentinels like
// "null" or an empty string; those must be rejected before any lookup.
func parsePid(pidArg string) (process.ProcessID, error) {
	// ParseUint permits no sign prefix, so negatives and "+5" are rejected
	// along with "null" and the empty string. 22 bits covers any pid_max.
	pid, err := strconv.ParseUint(pidArg, 10, 22)
	if err != nil {
		return 0, exitcode.Newf(exitcode.ErrInvalidPid, "invalid pid %q", pidArg)
	}
	return process.ProcessID(pid), nil
}

func (c *Controller) debugln(args ...interface{}) {
	if c.log != nil {
		c.log.Debugln(args...)
	}
}
