package toggle

import (
	"errors"
	"fmt"
	"testing"

	"gopause/exitcode"
	"gopause/process"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFinder struct {
	infos    map[process.ProcessID]*process.ProcessInfo
	infoErrs map[process.ProcessID]error
	trees    map[process.ProcessID][]process.ProcessID
}

func (f *fakeFinder) FindProcessByPID(pid process.ProcessID) (*process.ProcessInfo, error) {
	if err := f.infoErrs[pid]; err != nil {
		return nil, err
	}
	if info, ok := f.infos[pid]; ok {
		return info, nil
	}
	return nil, fmt.Errorf("pid %d: %w", pid, process.ErrProcessNotExist)
}

func (f *fakeFinder) FindProcessByName(name string) ([]process.ProcessInfo, error) {
	var out []process.ProcessInfo
	for _, info := range f.infos {
		if info.Name == name {
			out = append(out, *info)
		}
	}
	return out, nil
}

func (f *fakeFinder) FindProcessThreads(pid process.ProcessID) ([]process.ThreadInfo, error) {
	return nil, nil
}

func (f *fakeFinder) FindDescendantProcesses(rootPID process.ProcessID) ([]process.ProcessID, error) {
	if tree, ok := f.trees[rootPID]; ok {
		return tree, nil
	}
	return []process.ProcessID{rootPID}, nil
}

func (f *fakeFinder) GetProcessTree(rootPID process.ProcessID) (*process.ProcessTreeNode, error) {
	info, err := f.FindProcessByPID(rootPID)
	if err != nil {
		return nil, err
	}
	return &process.ProcessTreeNode{Process: *info}, nil
}

type fakeSignaler struct {
	stopped  []process.ProcessID
	resumed  []process.ProcessID
	failPids map[process.ProcessID]error
}

func (s *fakeSignaler) Stop(pid process.ProcessID) error {
	if err := s.failPids[pid]; err != nil {
		return err
	}
	s.stopped = append(s.stopped, pid)
	return nil
}

func (s *fakeSignaler) Continue(pid process.ProcessID) error {
	if err := s.failPids[pid]; err != nil {
		return err
	}
	s.resumed = append(s.resumed, pid)
	return nil
}

func (s *fakeSignaler) total() int {
	return len(s.stopped) + len(s.resumed)
}

func gameTree(state process.ProcessState) *fakeFinder {
	code := "S"
	if state == process.ProcessStopped {
		code = "T"
	}
	return &fakeFinder{
		infos: map[process.ProcessID]*process.ProcessInfo{
			4821: {PID: 4821, Name: "game", State: state, StateCode: code},
			4830: {PID: 4830, PPID: 4821, Name: "game-worker", State: state, StateCode: code},
		},
		trees: map[process.ProcessID][]process.ProcessID{
			4821: {4821, 4830},
		},
	}
}

func TestToggleSuspendsWholeTree(t *testing.T) {
	finder := gameTree(process.ProcessRunning)
	sig := &fakeSignaler{}
	c := NewController(finder, sig)

	res, err := c.Toggle("4821", false)
	require.NoError(t, err)

	assert.Equal(t, process.ProcessStopped, res.NewState)
	assert.Equal(t, "game", res.ProcessName)
	assert.Equal(t, []process.ProcessID{4821, 4830}, sig.stopped)
	assert.Empty(t, sig.resumed)
	assert.Equal(t, []process.ProcessID{4821, 4830}, res.Signaled)
}

func TestToggleResumesStoppedTree(t *testing.T) {
	finder := gameTree(process.ProcessStopped)
	sig := &fakeSignaler{}
	c := NewController(finder, sig)

	res, err := c.Toggle("4821", false)
	require.NoError(t, err)

	assert.Equal(t, process.ProcessRunning, res.NewState)
	assert.Equal(t, []process.ProcessID{4821, 4830}, sig.resumed)
	assert.Empty(t, sig.stopped)
}

// Toggling twice returns to the original state.
func TestToggleInvolution(t *testing.T) {
	finder := gameTree(process.ProcessRunning)
	sig := &fakeSignaler{}
	c := NewController(finder, sig)

	res, err := c.Toggle("4821", false)
	require.NoError(t, err)
	require.Equal(t, process.ProcessStopped, res.NewState)

	// The real process table would now report the tree stopped
	for _, info := range finder.infos {
		info.State = process.ProcessStopped
		info.StateCode = "T"
	}

	res, err = c.Toggle("4821", false)
	require.NoError(t, err)
	assert.Equal(t, process.ProcessRunning, res.NewState)
	assert.Equal(t, "game", res.ProcessName)
}

func TestToggleInvalidPid(t *testing.T) {
	tests := []struct {
		name   string
		pidArg string
	}{
		{"null sentinel", "null"},
		{"empty", ""},
		{"negative", "-5"},
		{"plus sign", "+5"},
		{"trailing garbage", "48x"},
		{"huge", "99999999999999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := &fakeSignaler{}
			c := NewController(gameTree(process.ProcessRunning), sig)

			_, err := c.Toggle(tt.pidArg, false)
			require.Error(t, err)
			assert.Equal(t, exitcode.ErrInvalidPid, exitcode.Code(err))
			assert.Zero(t, sig.total())
		})
	}
}

func TestToggleProcessNotFound(t *testing.T) {
	sig := &fakeSignaler{}
	c := NewController(gameTree(process.ProcessRunning), sig)

	_, err := c.Toggle("99999", false)
	require.Error(t, err)
	assert.Equal(t, exitcode.ErrEnvironment, exitcode.Code(err))
	assert.Zero(t, sig.total())
}

// A process that exists but cannot be inspected (say, an EACCES on its status
// file) is not "not found"; the failure surfaces as a general error.
func TestToggleInspectFailureIsNotNotFound(t *testing.T) {
	finder := gameTree(process.ProcessRunning)
	finder.infoErrs = map[process.ProcessID]error{
		4821: errors.New("failed to read process status: permission denied"),
	}
	sig := &fakeSignaler{}
	c := NewController(finder, sig)

	_, err := c.Toggle("4821", false)
	require.Error(t, err)
	assert.Equal(t, exitcode.ErrGeneral, exitcode.Code(err))
	assert.Contains(t, err.Error(), "permission denied")
	assert.Zero(t, sig.total())
}

func TestToggleRejectsSelfTarget(t *testing.T) {
	finder := gameTree(process.ProcessRunning)
	finder.trees[4821] = append(finder.trees[4821], 777)
	sig := &fakeSignaler{}

	c := NewController(finder, sig)
	c.selfPID = 777

	_, err := c.Toggle("4821", false)
	require.Error(t, err)
	assert.Equal(t, exitcode.ErrGeneral, exitcode.Code(err))
	assert.Contains(t, err.Error(), "own process")
	assert.Zero(t, sig.total(), "no signal may be sent once the own pid is found in the tree")
}

func TestToggleDryRun(t *testing.T) {
	finder := gameTree(process.ProcessRunning)
	sig := &fakeSignaler{}
	c := NewController(finder, sig)

	res, err := c.Toggle("4821", true)
	require.NoError(t, err)

	// Reports exactly what a real run would, but delivers nothing
	assert.Equal(t, process.ProcessStopped, res.NewState)
	assert.Equal(t, "game", res.ProcessName)
	assert.Empty(t, res.Signaled)
	assert.Zero(t, sig.total())
}

func TestToggleRootSignalFailureFailsOperation(t *testing.T) {
	finder := gameTree(process.ProcessRunning)
	sig := &fakeSignaler{failPids: map[process.ProcessID]error{4821: errors.New("operation not permitted")}}
	c := NewController(finder, sig)

	_, err := c.Toggle("4821", false)
	require.Error(t, err)
	assert.Equal(t, exitcode.ErrGeneral, exitcode.Code(err))
	assert.Contains(t, err.Error(), "root process")
}

func TestToggleChildSignalFailureIsBestEffort(t *testing.T) {
	finder := gameTree(process.ProcessRunning)
	// Child exits between enumeration and delivery
	sig := &fakeSignaler{failPids: map[process.ProcessID]error{4830: errors.New("no such process")}}
	c := NewController(finder, sig)

	res, err := c.Toggle("4821", false)
	require.NoError(t, err)
	assert.Equal(t, process.ProcessStopped, res.NewState)
	assert.Equal(t, []process.ProcessID{4821}, res.Signaled)
}

func TestParsePid(t *testing.T) {
	pid, err := parsePid("4821")
	require.NoError(t, err)
	assert.Equal(t, process.ProcessID(4821), pid)

	// Zero is syntactically valid; existence validation rejects it later
	pid, err = parsePid("0")
	require.NoError(t, err)
	assert.Equal(t, process.ProcessID(0), pid)
}
