package process

// ProcessID represents a unique identifier for a process
type ProcessID int

// ProcessInfo contains basic information about a process
type ProcessInfo struct {
	PID       ProcessID    // Process ID
	PPID      ProcessID    // Parent Process ID
	Name      string       // Process name from /proc/[pid]/comm
	State     ProcessState // Derived toggle state (running or stopped)
	StateCode string       // Raw /proc state character (R, S, T, ...)
	Threads   int          // Number of threads
}

// ThreadInfo describes a single thread of a process
type ThreadInfo struct {
	TID  int    // Thread ID
	Name string // Thread name from /proc/[pid]/task/[tid]/comm
}

// ProcessTreeNode represents a node in a process tree
type ProcessTreeNode struct {
	Process  ProcessInfo
	Children []*ProcessTreeNode
}
