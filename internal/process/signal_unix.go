//go:build unix

package process

import (
	"golang.org/x/sys/unix"

	"github.com/proc-cli/proc/internal/exitcode"
)

// SupportsRecoverySignals reports whether SIGCONT/SIGINT nudges are
// available. On Unix they are; elsewhere recovery degrades straight to
// terminate/kill.
func SupportsRecoverySignals() bool { return true }

// SignalContinue sends SIGCONT, resuming a stopped process.
func SignalContinue(pid uint32) error {
	return sendSignal(pid, unix.SIGCONT)
}

// SignalInterrupt sends SIGINT, the same interrupt Ctrl-C delivers.
func SignalInterrupt(pid uint32) error {
	return sendSignal(pid, unix.SIGINT)
}

func sendSignal(pid uint32, sig unix.Signal) error {
	err := unix.Kill(int(pid), sig)
	switch err {
	case nil:
		return nil
	case unix.ESRCH:
		return exitcode.ProcessGone(pid)
	case unix.EPERM:
		return exitcode.PermissionDenied(pid)
	default:
		return exitcode.SignalFailed(pid, err)
	}
}
