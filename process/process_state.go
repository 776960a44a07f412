package process

// ProcessState represents the toggle-relevant state of a process
type ProcessState string

const (
	ProcessRunning ProcessState = "running" // Anything the scheduler may run (R, S, D, ...)
	ProcessStopped ProcessState = "stopped" // Stopped on a signal (T) or by the tracer (t)
)

// StateFromCode maps a /proc state character to a toggle state.
// Only T and t count as stopped; zombies and sleepers are treated as
// running because SIGCONT is harmless to them and SIGSTOP is what the
// caller asked for.
func StateFromCode(code string) ProcessState {
	switch code {
	case "T", "t":
		return ProcessStopped
	default:
		return ProcessRunning
	}
}

// Toggled returns the opposite state.
func (s ProcessState) Toggled() ProcessState {
	if s == ProcessStopped {
		return ProcessRunning
	}
	return ProcessStopped
}
