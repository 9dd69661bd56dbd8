// Package exitcode defines structured errors and exit codes for proc commands.
// Coded errors let scripts and AI agents handle specific failure conditions
// programmatically without parsing error messages.
//
// # Exit Codes
//
//   - 0: Success
//   - 1: General error (system, timeout, signal delivery, process vanished)
//   - 2: Not found (process or port)
//   - 3: Permission denied
//   - 4: Invalid input
//
// # Usage
//
// Create errors with specific kinds:
//
//	return exitcode.ProcessNotFound("node")      // Exit code 2
//	return exitcode.Newf(exitcode.KindInvalidInput, "bad sort key: %s", key)
//
// Extract codes from errors (works with wrapped errors):
//
//	if exitcode.IsKind(err, exitcode.KindProcessGone) {
//	    // Handle the resolution race
//	}
//	code := exitcode.Code(err)  // Returns ErrGeneral for non-coded errors
package exitcode

import (
	"errors"
	"fmt"
)

// Exit codes for proc commands.
const (
	// Success indicates the command completed successfully.
	Success = 0

	// ErrGeneral is any error without a more specific surface.
	ErrGeneral = 1
	// ErrNotFound means the target process or port does not exist.
	ErrNotFound = 2
	// ErrPermission means the OS refused the operation.
	ErrPermission = 3
	// ErrUsage means the input could not be interpreted.
	ErrUsage = 4
)

// Kind classifies an error beyond its exit code. Several kinds share an
// exit code but stay distinguishable in-process: a port with no listener
// (KindPortNotFound) and a listener whose process exited mid-resolution
// (KindProcessGone) both surface as failures, but only one is a user error.
type Kind int

const (
	// KindGeneral is an unclassified error.
	KindGeneral Kind = iota
	// KindProcessNotFound - no process matched the target.
	KindProcessNotFound
	// KindPortNotFound - no listener on the requested port.
	KindPortNotFound
	// KindPermissionDenied - the OS refused the operation.
	KindPermissionDenied
	// KindInvalidInput - the input could not be interpreted.
	KindInvalidInput
	// KindSystem - an OS call or subprocess failed.
	KindSystem
	// KindTimeout - an operation exceeded its deadline.
	KindTimeout
	// KindParse - output or data could not be parsed.
	KindParse
	// KindNotSupported - the platform lacks the capability.
	KindNotSupported
	// KindProcessGone - the resource existed but its process exited
	// before it could be used (a race, not a user error).
	KindProcessGone
	// KindSignal - signal delivery failed.
	KindSignal
)

// exitFor maps a kind to its command exit code.
func exitFor(kind Kind) int {
	switch kind {
	case KindProcessNotFound, KindPortNotFound:
		return ErrNotFound
	case KindPermissionDenied:
		return ErrPermission
	case KindInvalidInput:
		return ErrUsage
	default:
		return ErrGeneral
	}
}

// Error wraps an error with a kind and its derived exit code.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// ExitCode returns the command exit code for this error.
func (e *Error) ExitCode() int {
	return exitFor(e.Kind)
}

// New creates a new coded error.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates a new coded error with printf-style formatting.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with a kind and message.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Wrapf wraps an existing error with a kind and printf-style message.
func Wrapf(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Code extracts the exit code from an error.
// Returns ErrGeneral (1) if the error doesn't carry a kind.
func Code(err error) int {
	if err == nil {
		return Success
	}
	var coded *Error
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	return ErrGeneral
}

// KindOf extracts the kind from an error.
// Returns KindGeneral for non-coded errors.
func KindOf(err error) Kind {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Kind
	}
	return KindGeneral
}

// IsKind checks if an error has a specific kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Convenience constructors for common error kinds.
// These make error creation more readable and ensure correct codes.

// ProcessNotFound returns an error for a target that matched no process.
func ProcessNotFound(target string) *Error {
	return Newf(KindProcessNotFound, "no process found matching '%s'", target)
}

// PortNotFound returns an error for a port with no listener.
func PortNotFound(port uint16) *Error {
	return Newf(KindPortNotFound, "no process listening on port %d", port)
}

// ProcessGone returns an error for a process that exited mid-resolution.
func ProcessGone(pid uint32) *Error {
	return Newf(KindProcessGone, "process %d is no longer running", pid)
}

// PermissionDenied returns a permission error for a pid.
func PermissionDenied(pid uint32) *Error {
	return Newf(KindPermissionDenied, "permission denied for PID %d", pid)
}

// InvalidInput returns a usage error.
func InvalidInput(msg string) *Error {
	return New(KindInvalidInput, msg)
}

// SignalFailed returns an error for failed signal delivery.
func SignalFailed(pid uint32, cause error) *Error {
	return Wrapf(KindSignal, cause, "signal to PID %d failed", pid)
}

// Timeout returns a timeout error.
func Timeout(operation string) *Error {
	return Newf(KindTimeout, "operation timed out: %s", operation)
}

// NotSupported returns a platform-gap error.
func NotSupported(feature string) *Error {
	return Newf(KindNotSupported, "not supported on this platform: %s", feature)
}
