//go:build linux

package process_linux

import (
	"gopause/process"

	"golang.org/x/sys/unix"
)

// LinuxProcessSignaler implements the process.ProcessSignaler interface using
// raw kill so it works for non-child processes.
type LinuxProcessSignaler struct{}

// NewProcessSignaler creates a new LinuxProcessSignaler
func NewProcessSignaler() *LinuxProcessSignaler {
	return &LinuxProcessSignaler{}
}

var _ process.ProcessSignaler = (*LinuxProcessSignaler)(nil)

// Stop delivers SIGSTOP to a single process. SIGSTOP cannot be caught or
// ignored, so the process is unconditionally stopped.
func (s *LinuxProcessSignaler) Stop(pid process.ProcessID) error {
	return unix.Kill(int(pid), unix.SIGSTOP)
}

// Continue delivers SIGCONT to a single process
func (s *LinuxProcessSignaler) Continue(pid process.ProcessID) error {
	return unix.Kill(int(pid), unix.SIGCONT)
}
