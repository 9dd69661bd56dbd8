package process

import (
	"errors"
	"syscall"
	"time"

	gops "github.com/shirou/gopsutil/v4/process"

	"github.com/proc-cli/proc/internal/exitcode"
)

// pollInterval is how often exit waits re-check the process table.
const pollInterval = 100 * time.Millisecond

// Exists reports whether a process with the given pid is present.
func Exists(pid uint32) bool {
	ok, err := gops.PidExists(int32(pid))
	return err == nil && ok
}

// Kill sends SIGKILL (or the platform equivalent forced termination).
func Kill(pid uint32) error {
	p, err := handle(pid)
	if err != nil {
		return err
	}
	return signalErr(pid, p.Kill())
}

// Terminate sends SIGTERM, asking the process to exit cleanly. The
// process may ignore it; pair with WaitForExit and escalate to Kill.
func Terminate(pid uint32) error {
	p, err := handle(pid)
	if err != nil {
		return err
	}
	return signalErr(pid, p.Terminate())
}

// WaitForExit polls until the process disappears or the timeout elapses.
// Returns true when the process is gone.
func WaitForExit(pid uint32, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if !Exists(pid) {
			return true
		}
		time.Sleep(pollInterval)
	}
	return !Exists(pid)
}

// KillAndWait force-kills and blocks until the pid leaves the process
// table, so callers can trust that the pid is free afterwards.
func KillAndWait(pid uint32, timeout time.Duration) error {
	if err := Kill(pid); err != nil {
		// Dying between the existence check and the signal is a win.
		if !Exists(pid) {
			return nil
		}
		return err
	}
	if !WaitForExit(pid, timeout) {
		return exitcode.Timeout("waiting for process exit")
	}
	return nil
}

func handle(pid uint32) (*gops.Process, error) {
	p, err := gops.NewProcess(int32(pid))
	if err != nil {
		if errors.Is(err, gops.ErrorProcessNotRunning) {
			return nil, exitcode.ProcessGone(pid)
		}
		return nil, exitcode.Wrapf(exitcode.KindSystem, err, "inspecting pid %d", pid)
	}
	return p, nil
}

// signalErr maps a raw signal delivery error onto the error taxonomy.
func signalErr(pid uint32, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, syscall.ESRCH) || errors.Is(err, gops.ErrorProcessNotRunning) {
		return exitcode.ProcessGone(pid)
	}
	if errors.Is(err, syscall.EPERM) || errors.Is(err, syscall.EACCES) {
		return exitcode.PermissionDenied(pid)
	}
	return exitcode.SignalFailed(pid, err)
}
