//go:build !unix

package process

import "github.com/proc-cli/proc/internal/exitcode"

// SupportsRecoverySignals reports whether SIGCONT/SIGINT nudges are
// available on this platform.
func SupportsRecoverySignals() bool { return false }

// SignalContinue is unavailable; recovery skips straight to terminate.
func SignalContinue(pid uint32) error {
	return exitcode.NotSupported("SIGCONT")
}

// SignalInterrupt is unavailable; recovery skips straight to terminate.
func SignalInterrupt(pid uint32) error {
	return exitcode.NotSupported("SIGINT")
}
