//go:build linux

package process_linux

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopause/process"

	gops "github.com/shirou/gopsutil/v3/process"
)

// LinuxProcessFinder implements the process.ProcessFinder interface
type LinuxProcessFinder struct {
	procRoot string
}

// NewProcessFinder creates a new LinuxProcessFinder
func NewProcessFinder() *LinuxProcessFinder {
	return &LinuxProcessFinder{procRoot: "/proc"}
}

var _ process.ProcessFinder = (*LinuxProcessFinder)(nil)

// FindProcessByPID finds a process by its PID
func (f *LinuxProcessFinder) FindProcessByPID(pid process.ProcessID) (*process.ProcessInfo, error) {
	gp, err := gops.NewProcess(int32(pid))
	if err != nil {
		return nil, fmt.Errorf("pid %d: %w", pid, process.ErrProcessNotExist)
	}
	return f.infoFor(gp)
}

// FindProcessByName finds processes by their name (exact match), ordered by
// ascending PID. The name is compared against /proc/[pid]/comm, which the
// kernel truncates to 15 characters.
func (f *LinuxProcessFinder) FindProcessByName(name string) ([]process.ProcessInfo, error) {
	procs, err := gops.Processes()
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	var results []process.ProcessInfo
	for _, gp := range procs {
		pname, err := gp.Name()
		if err != nil {
			// Process may have terminated while we were reading
			continue
		}
		if pname != name {
			continue
		}
		info, err := f.infoFor(gp)
		if err != nil {
			continue
		}
		results = append(results, *info)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].PID < results[j].PID
	})

	return results, nil
}

// FindDescendantProcesses returns the PIDs of the tree rooted at rootPID,
// inclusive, root first. A single process-table snapshot is taken and walked
// by parent PID, so a process forking mid-call may be missed; that is
// acceptable because the caller re-enumerates on every invocation.
func (f *LinuxProcessFinder) FindDescendantProcesses(rootPID process.ProcessID) ([]process.ProcessID, error) {
	children, err := childrenByParent()
	if err != nil {
		return nil, err
	}

	pids := []process.ProcessID{rootPID}
	seen := map[process.ProcessID]bool{rootPID: true}

	for i := 0; i < len(pids); i++ {
		for _, child := range children[pids[i]] {
			if seen[child] {
				continue
			}
			seen[child] = true
			pids = append(pids, child)
		}
	}

	return pids, nil
}

// GetProcessTree returns a tree-like representation of processes starting from a root PID
func (f *LinuxProcessFinder) GetProcessTree(rootPID process.ProcessID) (*process.ProcessTreeNode, error) {
	root, err := f.FindProcessByPID(rootPID)
	if err != nil {
		return nil, err
	}

	children, err := childrenByParent()
	if err != nil {
		return nil, err
	}

	return f.buildTreeNode(*root, children, map[process.ProcessID]bool{rootPID: true}), nil
}

func (f *LinuxProcessFinder) buildTreeNode(info process.ProcessInfo, children map[process.ProcessID][]process.ProcessID, seen map[process.ProcessID]bool) *process.ProcessTreeNode {
	node := &process.ProcessTreeNode{Process: info}
	for _, child := range children[info.PID] {
		if seen[child] {
			continue
		}
		seen[child] = true
		childInfo, err := f.FindProcessByPID(child)
		if err != nil {
			// Vanished between snapshot and lookup
			continue
		}
		node.Children = append(node.Children, f.buildTreeNode(*childInfo, children, seen))
	}
	return node
}

// FindProcessThreads lists the threads of a process from /proc/[pid]/task
func (f *LinuxProcessFinder) FindProcessThreads(pid process.ProcessID) ([]process.ThreadInfo, error) {
	taskDir := filepath.Join(f.procRoot, strconv.Itoa(int(pid)), "task")
	entries, err := os.ReadDir(taskDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", taskDir, err)
	}

	var threads []process.ThreadInfo
	for _, e := range entries {
		tid, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		name := ""
		if comm, err := os.ReadFile(filepath.Join(taskDir, e.Name(), "comm")); err == nil {
			name = strings.TrimSpace(string(comm))
		}
		threads = append(threads, process.ThreadInfo{TID: tid, Name: name})
	}

	sort.Slice(threads, func(i, j int) bool { return threads[i].TID < threads[j].TID })

	return threads, nil
}

// infoFor builds a ProcessInfo from a gopsutil handle plus a direct status
// read. gopsutil's Status() folds stopped and tracing-stop into one coarse
// bucket; the toggle direction needs the exact /proc state character.
func (f *LinuxProcessFinder) infoFor(gp *gops.Process) (*process.ProcessInfo, error) {
	name, err := gp.Name()
	if err != nil {
		return nil, fmt.Errorf("failed to read process name: %w", err)
	}

	ppid, _ := gp.Ppid()
	threads, _ := gp.NumThreads()

	code, err := f.readStateCode(process.ProcessID(gp.Pid))
	if err != nil {
		return nil, err
	}

	return &process.ProcessInfo{
		PID:       process.ProcessID(gp.Pid),
		PPID:      process.ProcessID(ppid),
		Name:      name,
		State:     process.StateFromCode(code),
		StateCode: code,
		Threads:   int(threads),
	}, nil
}

// readStateCode parses the State: line of /proc/[pid]/status and returns the
// single state character (R, S, D, T, t, Z, ...).
func (f *LinuxProcessFinder) readStateCode(pid process.ProcessID) (string, error) {
	statusPath := filepath.Join(f.procRoot, strconv.Itoa(int(pid)), "status")
	statusBytes, err := os.ReadFile(statusPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Vanished between the table snapshot and this read
			return "", fmt.Errorf("pid %d: %w", pid, process.ErrProcessNotExist)
		}
		return "", fmt.Errorf("failed to read process status: %w", err)
	}
	return parseStatusState(string(statusBytes))
}

func parseStatusState(status string) (string, error) {
	for _, line := range strings.Split(status, "\n") {
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) != "State" {
			continue
		}
		value := strings.TrimSpace(parts[1])
		if value == "" {
			break
		}
		return value[0:1], nil
	}
	return "", fmt.Errorf("no State field in process status")
}

// childrenByParent snapshots the process table into a parent -> children map
func childrenByParent() (map[process.ProcessID][]process.ProcessID, error) {
	procs, err := gops.Processes()
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	children := make(map[process.ProcessID][]process.ProcessID, len(procs))
	for _, gp := range procs {
		ppid, err := gp.Ppid()
		if err != nil {
			continue
		}
		children[process.ProcessID(ppid)] = append(children[process.ProcessID(ppid)], process.ProcessID(gp.Pid))
	}

	for _, c := range children {
		sort.Slice(c, func(i, j int) bool { return c[i] < c[j] })
	}

	return children, nil
}
