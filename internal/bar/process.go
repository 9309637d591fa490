package bar

import (
	"fmt"
	"syscall"

	"github.com/mitchellh/go-ps"
	"golang.org/x/sys/unix"
)

// ProcessSignaller delivers visibility signals directly to the bar process by
// pid, with distinct show and hide signals. Distinct signals make delivery a
// "set", not a "toggle", so a lost signal can never invert the mapping between
// belief and actual state.
type ProcessSignaller struct {
	processName string
	showSignal  syscall.Signal
	hideSignal  syscall.Signal
}

// NewProcessSignaller creates a signaller for the named bar process.
func NewProcessSignaller(processName string, show, hide syscall.Signal) *ProcessSignaller {
	return &ProcessSignaller{
		processName: processName,
		showSignal:  show,
		hideSignal:  hide,
	}
}

var _ Signaller = (*ProcessSignaller)(nil)

// Signal rediscovers the bar process and sends the signal matching visible.
// Discovery runs per call: the bar may have restarted under a new pid since
// the last delivery.
func (s *ProcessSignaller) Signal(visible bool) error {
	pid, err := findProcess(s.processName)
	if err != nil {
		return err
	}

	sig := s.hideSignal
	if visible {
		sig = s.showSignal
	}

	if err := unix.Kill(pid, sig); err != nil {
		return fmt.Errorf("failed to signal %s (pid %d): %w", s.processName, pid, err)
	}
	return nil
}

// findProcess returns the pid of the first process whose executable matches
// name. Not finding one is a normal, retryable outcome while the bar restarts.
func findProcess(name string) (int, error) {
	procs, err := ps.Processes()
	if err != nil {
		return 0, fmt.Errorf("failed to list processes: %w", err)
	}
	for _, p := range procs {
		if p.Executable() == name {
			return p.Pid(), nil
		}
	}
	return 0, fmt.Errorf("process %q not found", name)
}
