package stuck

import (
	"encoding/json"
	"time"

	"github.com/proc-cli/proc/internal/process"
)

// Escalation waits between recovery steps.
const (
	continueWait  = 1 * time.Second
	interruptWait = 3 * time.Second
	terminateWait = 5 * time.Second
)

// Outcome is the terminal result of one recovery attempt. Outcomes are
// final: once an attempt reports one, no further signals are sent to
// that process.
type Outcome int

const (
	// OutcomeRecovered - the process calmed down below the recovered
	// CPU threshold without dying.
	OutcomeRecovered Outcome = iota
	// OutcomeTerminated - the process exited during recovery.
	OutcomeTerminated
	// OutcomeStillStuck - gentle signals did not help and escalation
	// was not authorized.
	OutcomeStillStuck
	// OutcomeNotStuck - the explicitly targeted process was not
	// actually burning CPU.
	OutcomeNotStuck
	// OutcomeFailed - the process survived every signal including
	// SIGKILL, or delivery failed outright.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRecovered:
		return "recovered"
	case OutcomeTerminated:
		return "terminated"
	case OutcomeStillStuck:
		return "still_stuck"
	case OutcomeNotStuck:
		return "not_stuck"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalJSON renders outcomes as their string names.
func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// Result is the outcome of one recovery attempt.
type Result struct {
	PID     uint32  `json:"pid"`
	Name    string  `json:"name"`
	Outcome Outcome `json:"outcome"`
	// Reason explains a failed outcome.
	Reason string `json:"reason,omitempty"`
}

// Observer is the fresh-state view the engine needs between steps.
// Recovery decisions are always made on re-observed state, never on
// the snapshot that selected the process.
type Observer interface {
	Lookup(pid uint32) (*process.Record, error)
	Exists(pid uint32) bool
}

// Signaler delivers the recovery ladder's signals.
type Signaler interface {
	Continue(pid uint32) error
	Interrupt(pid uint32) error
	Terminate(pid uint32) error
	Kill(pid uint32) error

	// SupportsRecoverySignals reports whether the gentle rungs
	// (SIGCONT, SIGINT) exist on this platform. When false the
	// ladder starts at terminate.
	SupportsRecoverySignals() bool
}

// Engine walks processes through graduated recovery: SIGCONT, SIGINT,
// then with Force also SIGTERM and SIGKILL. Sleep defaults to the real
// clock; tests inject it.
type Engine struct {
	Procs   Observer
	Signals Signaler
	Sleep   func(time.Duration)

	// Force authorizes the destructive rungs (SIGTERM, SIGKILL).
	Force bool

	// Targeted marks an explicitly named process, which gets an
	// entry check: if it is not actually busy, report NotStuck
	// instead of signaling it.
	Targeted bool
}

// Attempt runs the recovery ladder against one process and returns its
// terminal outcome.
func (e *Engine) Attempt(rec process.Record) Result {
	pid := rec.PID
	res := Result{PID: pid, Name: rec.Name}

	if e.Targeted && rec.CPUPercent < RecoveredCPUThreshold {
		res.Outcome = OutcomeNotStuck
		return res
	}

	if e.Signals.SupportsRecoverySignals() {
		// A stopped process looks stuck; SIGCONT alone may clear it.
		// Delivery failure is not terminal, the next rung re-checks.
		_ = e.Signals.Continue(pid)
		e.sleep(continueWait)
		if e.calmed(pid) {
			res.Outcome = OutcomeRecovered
			return res
		}

		if err := e.Signals.Interrupt(pid); err != nil && !e.Procs.Exists(pid) {
			res.Outcome = OutcomeTerminated
			return res
		}
		e.sleep(interruptWait)
		if !e.Procs.Exists(pid) {
			res.Outcome = OutcomeTerminated
			return res
		}
		if e.calmed(pid) {
			res.Outcome = OutcomeRecovered
			return res
		}
	}

	if !e.Force {
		res.Outcome = OutcomeStillStuck
		return res
	}

	if err := e.Signals.Terminate(pid); err != nil && !e.Procs.Exists(pid) {
		res.Outcome = OutcomeTerminated
		return res
	}
	e.sleep(terminateWait)
	if !e.Procs.Exists(pid) {
		res.Outcome = OutcomeTerminated
		return res
	}

	if err := e.Signals.Kill(pid); err != nil {
		// Losing the race to a dying process is still a win.
		if !e.Procs.Exists(pid) {
			res.Outcome = OutcomeTerminated
			return res
		}
		res.Outcome = OutcomeFailed
		res.Reason = err.Error()
		return res
	}
	res.Outcome = OutcomeTerminated
	return res
}

// Run attempts recovery on each process and aggregates the outcomes.
func (e *Engine) Run(records []process.Record) Report {
	report := Report{Results: make([]Result, 0, len(records))}
	for _, rec := range records {
		report.Add(e.Attempt(rec))
	}
	return report
}

// calmed re-observes the process and reports whether its CPU has
// dropped below the recovered threshold. A vanished process is not
// calmed; existence checks handle that case.
func (e *Engine) calmed(pid uint32) bool {
	rec, err := e.Procs.Lookup(pid)
	if err != nil || rec == nil {
		return false
	}
	return rec.CPUPercent < RecoveredCPUThreshold
}

func (e *Engine) sleep(dur time.Duration) {
	if e.Sleep != nil {
		e.Sleep(dur)
		return
	}
	time.Sleep(dur)
}

// Report aggregates recovery outcomes across processes.
type Report struct {
	Results    []Result `json:"results"`
	Recovered  int      `json:"recovered"`
	Terminated int      `json:"terminated"`
	StillStuck int      `json:"still_stuck"`
	NotStuck   int      `json:"not_stuck"`
	Failed     int      `json:"failed"`
}

// Add records one result in the tallies.
func (r *Report) Add(res Result) {
	r.Results = append(r.Results, res)
	switch res.Outcome {
	case OutcomeRecovered:
		r.Recovered++
	case OutcomeTerminated:
		r.Terminated++
	case OutcomeStillStuck:
		r.StillStuck++
	case OutcomeNotStuck:
		r.NotStuck++
	case OutcomeFailed:
		r.Failed++
	}
}

// Success reports whether every process ended in an acceptable state.
// StillStuck counts as failure: the point of recovery is that nothing
// stays stuck.
func (r *Report) Success() bool {
	return r.Failed == 0 && r.StillStuck == 0
}

// SystemObserver adapts the live process table to the Observer interface.
type SystemObserver struct {
	Procs process.Snapshotter
}

func (o *SystemObserver) Lookup(pid uint32) (*process.Record, error) {
	return o.Procs.Lookup(pid)
}

func (o *SystemObserver) Exists(pid uint32) bool {
	return process.Exists(pid)
}

// SystemSignaler delivers real signals.
type SystemSignaler struct{}

func (SystemSignaler) Continue(pid uint32) error  { return process.SignalContinue(pid) }
func (SystemSignaler) Interrupt(pid uint32) error { return process.SignalInterrupt(pid) }
func (SystemSignaler) Terminate(pid uint32) error { return process.Terminate(pid) }
func (SystemSignaler) Kill(pid uint32) error      { return process.Kill(pid) }
func (SystemSignaler) SupportsRecoverySignals() bool {
	return process.SupportsRecoverySignals()
}
