package stuck

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/proc-cli/proc/internal/process"
)

// fakeWorld scripts one process's reaction to the recovery ladder. It
// implements both Observer and Signaler.
type fakeWorld struct {
	alive   bool
	cpu     []float64 // successive Lookup readings; the last repeats
	cpuIdx  int
	unix    bool
	dieOn   string           // signal name that kills the process
	errOn   map[string]error // signal name -> delivery error
	calls   []string
}

func newWorld(cpu ...float64) *fakeWorld {
	return &fakeWorld{alive: true, cpu: cpu, unix: true}
}

func (w *fakeWorld) Lookup(pid uint32) (*process.Record, error) {
	if !w.alive {
		return nil, nil
	}
	idx := w.cpuIdx
	if idx >= len(w.cpu) {
		idx = len(w.cpu) - 1
	}
	w.cpuIdx++
	return &process.Record{PID: pid, Name: "victim", CPUPercent: w.cpu[idx]}, nil
}

func (w *fakeWorld) Exists(pid uint32) bool { return w.alive }

func (w *fakeWorld) signal(name string) error {
	w.calls = append(w.calls, name)
	if w.dieOn == name {
		w.alive = false
	}
	if w.errOn != nil {
		return w.errOn[name]
	}
	return nil
}

func (w *fakeWorld) Continue(pid uint32) error     { return w.signal("continue") }
func (w *fakeWorld) Interrupt(pid uint32) error    { return w.signal("interrupt") }
func (w *fakeWorld) Terminate(pid uint32) error    { return w.signal("terminate") }
func (w *fakeWorld) Kill(pid uint32) error         { return w.signal("kill") }
func (w *fakeWorld) SupportsRecoverySignals() bool { return w.unix }

func engine(w *fakeWorld, force, targeted bool) *Engine {
	return &Engine{
		Procs:    w,
		Signals:  w,
		Sleep:    func(time.Duration) {},
		Force:    force,
		Targeted: targeted,
	}
}

func stuckRecord() process.Record {
	return process.Record{PID: 42, Name: "victim", CPUPercent: 95}
}

func TestAttempt_RecoveredAfterContinue(t *testing.T) {
	w := newWorld(3) // calm on first re-observation
	res := engine(w, false, false).Attempt(stuckRecord())

	if res.Outcome != OutcomeRecovered {
		t.Fatalf("outcome = %v, want recovered", res.Outcome)
	}
	if !reflect.DeepEqual(w.calls, []string{"continue"}) {
		t.Errorf("signals = %v, want just continue", w.calls)
	}
}

func TestAttempt_DiesAfterInterrupt(t *testing.T) {
	w := newWorld(90)
	w.dieOn = "interrupt"
	res := engine(w, false, false).Attempt(stuckRecord())

	if res.Outcome != OutcomeTerminated {
		t.Fatalf("outcome = %v, want terminated", res.Outcome)
	}
	if !reflect.DeepEqual(w.calls, []string{"continue", "interrupt"}) {
		t.Errorf("signals = %v, want continue then interrupt", w.calls)
	}
}

func TestAttempt_InterruptSendFailsButGone(t *testing.T) {
	// Delivery failure plus a vanished process means it died under us.
	w := newWorld(90)
	w.dieOn = "interrupt"
	w.errOn = map[string]error{"interrupt": errors.New("no such process")}
	res := engine(w, false, false).Attempt(stuckRecord())

	if res.Outcome != OutcomeTerminated {
		t.Errorf("outcome = %v, want terminated", res.Outcome)
	}
}

func TestAttempt_StillStuckWithoutForce(t *testing.T) {
	w := newWorld(90) // never calms down
	res := engine(w, false, false).Attempt(stuckRecord())

	if res.Outcome != OutcomeStillStuck {
		t.Fatalf("outcome = %v, want still_stuck", res.Outcome)
	}
	// Without force the destructive rungs are never reached.
	for _, call := range w.calls {
		if call == "terminate" || call == "kill" {
			t.Errorf("destructive signal %q sent without force", call)
		}
	}
}

func TestAttempt_ForceEscalatesToKill(t *testing.T) {
	w := newWorld(90)
	w.dieOn = "kill"
	res := engine(w, true, false).Attempt(stuckRecord())

	if res.Outcome != OutcomeTerminated {
		t.Fatalf("outcome = %v, want terminated", res.Outcome)
	}
	want := []string{"continue", "interrupt", "terminate", "kill"}
	if !reflect.DeepEqual(w.calls, want) {
		t.Errorf("signals = %v, want full ladder %v", w.calls, want)
	}
}

func TestAttempt_DiesOnTerminate(t *testing.T) {
	w := newWorld(90)
	w.dieOn = "terminate"
	res := engine(w, true, false).Attempt(stuckRecord())

	if res.Outcome != OutcomeTerminated {
		t.Fatalf("outcome = %v, want terminated", res.Outcome)
	}
	for _, call := range w.calls {
		if call == "kill" {
			t.Error("kill sent after terminate already worked")
		}
	}
}

func TestAttempt_KillFailsProcessSurvives(t *testing.T) {
	w := newWorld(90)
	w.errOn = map[string]error{"kill": errors.New("operation not permitted")}
	res := engine(w, true, false).Attempt(stuckRecord())

	if res.Outcome != OutcomeFailed {
		t.Fatalf("outcome = %v, want failed", res.Outcome)
	}
	if res.Reason == "" {
		t.Error("failed outcome should carry a reason")
	}
}

func TestAttempt_KillFailsButProcessGone(t *testing.T) {
	w := newWorld(90)
	w.dieOn = "kill"
	w.errOn = map[string]error{"kill": errors.New("no such process")}
	res := engine(w, true, false).Attempt(stuckRecord())

	if res.Outcome != OutcomeTerminated {
		t.Errorf("outcome = %v, want terminated (lost the race, still a win)", res.Outcome)
	}
}

func TestAttempt_TargetedNotStuck(t *testing.T) {
	w := newWorld(90)
	rec := process.Record{PID: 42, Name: "victim", CPUPercent: 2}
	res := engine(w, false, true).Attempt(rec)

	if res.Outcome != OutcomeNotStuck {
		t.Fatalf("outcome = %v, want not_stuck", res.Outcome)
	}
	if len(w.calls) != 0 {
		t.Errorf("signals = %v, want none for a not-stuck target", w.calls)
	}
}

func TestAttempt_UntargetedSkipsEntryCheck(t *testing.T) {
	// Detector-selected processes already passed the heuristic; the
	// entry check only applies to explicit targets.
	w := newWorld(2)
	rec := process.Record{PID: 42, Name: "victim", CPUPercent: 2}
	res := engine(w, false, false).Attempt(rec)

	if res.Outcome != OutcomeRecovered {
		t.Errorf("outcome = %v, want recovered (ladder ran)", res.Outcome)
	}
}

func TestAttempt_NoRecoverySignals(t *testing.T) {
	w := newWorld(90)
	w.unix = false
	w.dieOn = "terminate"
	res := engine(w, true, false).Attempt(stuckRecord())

	if res.Outcome != OutcomeTerminated {
		t.Fatalf("outcome = %v, want terminated", res.Outcome)
	}
	if !reflect.DeepEqual(w.calls, []string{"terminate"}) {
		t.Errorf("signals = %v, want terminate only (no gentle rungs)", w.calls)
	}
}

func TestAttempt_NoRecoverySignalsWithoutForce(t *testing.T) {
	w := newWorld(90)
	w.unix = false
	res := engine(w, false, false).Attempt(stuckRecord())

	if res.Outcome != OutcomeStillStuck {
		t.Fatalf("outcome = %v, want still_stuck", res.Outcome)
	}
	if len(w.calls) != 0 {
		t.Errorf("signals = %v, want none", w.calls)
	}
}

func TestReport(t *testing.T) {
	var r Report
	r.Add(Result{PID: 1, Outcome: OutcomeRecovered})
	r.Add(Result{PID: 2, Outcome: OutcomeTerminated})
	r.Add(Result{PID: 3, Outcome: OutcomeNotStuck})

	if !r.Success() {
		t.Error("report with no failures should be a success")
	}
	if r.Recovered != 1 || r.Terminated != 1 || r.NotStuck != 1 {
		t.Errorf("tallies = %+v", r)
	}

	r.Add(Result{PID: 4, Outcome: OutcomeStillStuck})
	if r.Success() {
		t.Error("a still-stuck process should fail the report")
	}

	var r2 Report
	r2.Add(Result{PID: 5, Outcome: OutcomeFailed, Reason: "eperm"})
	if r2.Success() {
		t.Error("a failed process should fail the report")
	}
}

func TestOutcome_String(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomeRecovered, "recovered"},
		{OutcomeTerminated, "terminated"},
		{OutcomeStillStuck, "still_stuck"},
		{OutcomeNotStuck, "not_stuck"},
		{OutcomeFailed, "failed"},
	}
	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
