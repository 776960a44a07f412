package process

import "errors"

// ErrProcessNotExist reports that a PID had no live process at lookup time.
// Finder implementations wrap it so callers can tell nonexistence apart from
// a read failure on a live process (e.g. permission denied).
var ErrProcessNotExist = errors.New("process does not exist")

// ProcessFinder defines operations for discovering processes and their relationships
type ProcessFinder interface {
	// FindProcessByPID finds a process by its PID
	FindProcessByPID(pid ProcessID) (*ProcessInfo, error)

	// FindProcessByName finds processes by their name (exact match),
	// ordered by ascending PID
	FindProcessByName(name string) ([]ProcessInfo, error)

	// FindProcessThreads lists the threads of a process
	FindProcessThreads(pid ProcessID) ([]ThreadInfo, error)

	// Process hierarchy operations
	ProcessHierarchy
}

// ProcessHierarchy defines operations for working with process relationships
type ProcessHierarchy interface {
	// FindDescendantProcesses returns the PIDs of the process tree rooted at
	// rootPID, inclusive of rootPID itself, root first. The walk tolerates
	// processes exiting while it runs.
	FindDescendantProcesses(rootPID ProcessID) ([]ProcessID, error)

	// GetProcessTree returns a tree-like representation of processes starting from a root PID
	GetProcessTree(rootPID ProcessID) (*ProcessTreeNode, error)
}
