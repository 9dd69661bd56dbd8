// Package process models point-in-time views of OS processes and the
// lifecycle operations (signal delivery, existence checks, exit waits)
// the command layer and recovery engine build on.
//
// Records are immutable snapshot values: a fresh provider call produces
// fresh records, and nothing here caches OS state. Pids are process-table
// identifiers only - the OS may reuse them after a process dies, so a
// record is trustworthy only for the command invocation that captured it.
package process

// Status is the scheduler state of a process at snapshot time.
type Status string

const (
	// StatusRunning - actively executing on CPU.
	StatusRunning Status = "running"
	// StatusSleeping - waiting for an event or resource.
	StatusSleeping Status = "sleeping"
	// StatusStopped - stopped, e.g. by SIGSTOP.
	StatusStopped Status = "stopped"
	// StatusZombie - terminated but not yet reaped by its parent.
	StatusZombie Status = "zombie"
	// StatusDead - being torn down.
	StatusDead Status = "dead"
	// StatusUnknown - state could not be determined.
	StatusUnknown Status = "unknown"
)

// Record is a single process observation.
type Record struct {
	// PID is unique within one snapshot but may be reused by the OS
	// after the process dies.
	PID  uint32 `json:"pid"`
	Name string `json:"name"`
	// ExePath is the executable path, when readable.
	ExePath string `json:"exe_path,omitempty"`
	// Cwd is the working directory, when readable.
	Cwd string `json:"cwd,omitempty"`
	// Command is the full command line, when readable.
	Command string `json:"command,omitempty"`
	// CPUPercent is instantaneous and may exceed 100 on multi-core hosts.
	CPUPercent float64 `json:"cpu_percent"`
	MemoryMB   float64 `json:"memory_mb"`
	Status     Status  `json:"status"`
	User       string  `json:"user,omitempty"`
	ParentPID  uint32  `json:"parent_pid,omitempty"`
	// StartTime is unix seconds; zero when unknown.
	StartTime int64 `json:"start_time,omitempty"`
}

// Snapshotter enumerates processes on demand. Each call re-reads the OS
// process table; there is no cache to invalidate. The interface exists so
// the resolver, stuck detector, and recovery engine can run on scripted
// fakes in tests.
type Snapshotter interface {
	// Snapshot returns every visible process.
	Snapshot() ([]Record, error)

	// Lookup returns the record for one pid, or nil when no such
	// process exists. The nil return is not an error: callers decide
	// whether absence is ProcessNotFound or ProcessGone.
	Lookup(pid uint32) (*Record, error)
}
