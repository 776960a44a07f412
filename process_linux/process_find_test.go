//go:build linux

package process_linux

import (
	"os"
	"path/filepath"
	"testing"

	"gopause/process"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatusState(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		want    string
		wantErr bool
	}{
		{"running", "Name:\tgame\nState:\tR (running)\nPid:\t4821\n", "R", false},
		{"stopped", "State:\tT (stopped)\n", "T", false},
		{"tracing stop", "State:\tt (tracing stop)\n", "t", false},
		{"sleeping", "State:\tS (sleeping)\n", "S", false},
		{"missing field", "Name:\tgame\nPid:\t4821\n", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseStatusState(tt.status)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindProcessThreads(t *testing.T) {
	procRoot := t.TempDir()
	taskDir := filepath.Join(procRoot, "4821", "task")
	for tid, name := range map[string]string{"4821": "game", "4830": "game-audio"} {
		require.NoError(t, os.MkdirAll(filepath.Join(taskDir, tid), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(taskDir, tid, "comm"), []byte(name+"\n"), 0o644))
	}

	f := &LinuxProcessFinder{procRoot: procRoot}
	threads, err := f.FindProcessThreads(4821)
	require.NoError(t, err)

	assert.Equal(t, []process.ThreadInfo{
		{TID: 4821, Name: "game"},
		{TID: 4830, Name: "game-audio"},
	}, threads)
}

func TestFindProcessThreadsMissingProcess(t *testing.T) {
	f := &LinuxProcessFinder{procRoot: t.TempDir()}
	_, err := f.FindProcessThreads(4821)
	require.Error(t, err)
}

// The finder against the live process table, using this test process as the
// known-good subject.
func TestFindProcessByPIDSelf(t *testing.T) {
	f := NewProcessFinder()

	info, err := f.FindProcessByPID(process.ProcessID(os.Getpid()))
	require.NoError(t, err)

	assert.Equal(t, process.ProcessID(os.Getpid()), info.PID)
	assert.NotEmpty(t, info.Name)
	assert.Equal(t, process.ProcessRunning, info.State)
	assert.GreaterOrEqual(t, info.Threads, 1)
}

func TestFindProcessByPIDNotFound(t *testing.T) {
	f := NewProcessFinder()
	// Above any realistic pid_max
	_, err := f.FindProcessByPID(1 << 22)
	require.Error(t, err)
	assert.ErrorIs(t, err, process.ErrProcessNotExist)
}

// A status file that exists but cannot be read is a read failure, not
// nonexistence.
func TestReadStateCodeUnreadableStatus(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("root ignores file permission bits")
	}
	procRoot := t.TempDir()
	dir := filepath.Join(procRoot, "4821")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "status"), []byte("State:\tR (running)\n"), 0o000))

	f := &LinuxProcessFinder{procRoot: procRoot}
	_, err := f.readStateCode(4821)
	require.Error(t, err)
	assert.NotErrorIs(t, err, process.ErrProcessNotExist)
}

func TestReadStateCodeMissingProcess(t *testing.T) {
	f := &LinuxProcessFinder{procRoot: t.TempDir()}
	_, err := f.readStateCode(4821)
	require.Error(t, err)
	assert.ErrorIs(t, err, process.ErrProcessNotExist)
}

func TestFindDescendantProcessesIncludesRootFirst(t *testing.T) {
	f := NewProcessFinder()
	self := process.ProcessID(os.Getpid())

	pids, err := f.FindDescendantProcesses(self)
	require.NoError(t, err)

	require.NotEmpty(t, pids)
	assert.Equal(t, self, pids[0])
}
