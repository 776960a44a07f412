package process

// ProcessSignaler defines the suspend/resume signal operations. Keeping it
// separate from ProcessFinder lets the toggle controller be exercised with a
// fake that records signals instead of delivering them.
type ProcessSignaler interface {
	// Stop delivers the stop signal (SIGSTOP) to a single process
	Stop(pid ProcessID) error

	// Continue delivers the continue signal (SIGCONT) to a single process
	Continue(pid ProcessID) error
}
