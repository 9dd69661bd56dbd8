package stuck

import (
	"testing"
	"time"

	"github.com/proc-cli/proc/internal/process"
)

// scriptedSnapshotter returns a different snapshot on each call.
type scriptedSnapshotter struct {
	snapshots [][]process.Record
	calls     int
}

func (s *scriptedSnapshotter) Snapshot() ([]process.Record, error) {
	idx := s.calls
	if idx >= len(s.snapshots) {
		idx = len(s.snapshots) - 1
	}
	s.calls++
	return s.snapshots[idx], nil
}

func (s *scriptedSnapshotter) Lookup(pid uint32) (*process.Record, error) {
	recs, _ := s.Snapshot()
	for i := range recs {
		if recs[i].PID == pid {
			return &recs[i], nil
		}
	}
	return nil, nil
}

func TestDetector_Find(t *testing.T) {
	now := time.Unix(10_000, 0)
	old := now.Add(-10 * time.Minute).Unix()
	fresh := now.Add(-5 * time.Second).Unix()

	// First snapshot primes CPU sampling; only the second decides.
	snaps := &scriptedSnapshotter{snapshots: [][]process.Record{
		{
			{PID: 1, Name: "spinner", CPUPercent: 0, StartTime: old},
		},
		{
			{PID: 1, Name: "spinner", CPUPercent: 98, StartTime: old},
			{PID: 2, Name: "idle", CPUPercent: 1, StartTime: old},
			{PID: 3, Name: "young-spinner", CPUPercent: 95, StartTime: fresh},
			{PID: 4, Name: "no-start-time", CPUPercent: 99, StartTime: 0},
			{PID: 5, Name: "borderline", CPUPercent: 50, StartTime: old},
		},
	}}

	var slept []time.Duration
	d := &Detector{
		Procs: snaps,
		Sleep: func(dur time.Duration) { slept = append(slept, dur) },
		Now:   func() time.Time { return now },
	}

	got, err := d.Find(5 * time.Minute)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}

	if len(got) != 1 || got[0].PID != 1 {
		t.Fatalf("Find() = %v, want just pid 1", got)
	}
	if snaps.calls != 2 {
		t.Errorf("snapshot calls = %d, want 2 (prime + measure)", snaps.calls)
	}
	if len(slept) != 1 || slept[0] != SettleInterval {
		t.Errorf("slept %v, want one settle interval of %v", slept, SettleInterval)
	}
}

func TestDetector_Find_ThresholdIsExclusive(t *testing.T) {
	old := time.Unix(0, 0).Unix()
	snaps := &scriptedSnapshotter{snapshots: [][]process.Record{
		{},
		{{PID: 1, Name: "exactly-fifty", CPUPercent: HighCPUThreshold, StartTime: old}},
	}}
	d := &Detector{
		Procs: snaps,
		Sleep: func(time.Duration) {},
		Now:   func() time.Time { return time.Unix(10_000, 0) },
	}

	got, err := d.Find(time.Minute)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("CPU exactly at the threshold should not count as stuck, got %v", got)
	}
}
