// Package stuck detects runaway processes and walks them through a
// graduated recovery ladder.
//
// "Stuck" is a heuristic: sustained high CPU over a meaningful run
// time. Detection takes two snapshots separated by a short settle so
// the CPU figure reflects current behavior, not a lifetime average.
package stuck

import (
	"time"

	"github.com/proc-cli/proc/internal/process"
)

const (
	// HighCPUThreshold is the CPU percentage above which a
	// long-running process is considered stuck.
	HighCPUThreshold = 50.0

	// RecoveredCPUThreshold is the CPU percentage below which a
	// process counts as calmed down.
	RecoveredCPUThreshold = 10.0

	// SettleInterval separates the two detection snapshots. The first
	// primes per-process CPU sampling; the second yields deltas.
	SettleInterval = 500 * time.Millisecond
)

// Detector finds stuck processes. Sleep and Now default to the real
// clock; tests inject both.
type Detector struct {
	Procs process.Snapshotter
	Sleep func(time.Duration)
	Now   func() time.Time
}

// Find returns processes burning more than HighCPUThreshold that have
// been running longer than minRunTime. Processes with an unknown start
// time are skipped since their run time cannot be established.
func (d *Detector) Find(minRunTime time.Duration) ([]process.Record, error) {
	if _, err := d.Procs.Snapshot(); err != nil {
		return nil, err
	}
	d.sleep(SettleInterval)
	records, err := d.Procs.Snapshot()
	if err != nil {
		return nil, err
	}

	now := d.now()
	matches := make([]process.Record, 0, 4)
	for _, rec := range records {
		if rec.CPUPercent <= HighCPUThreshold {
			continue
		}
		if rec.StartTime == 0 {
			continue
		}
		runTime := now.Sub(time.Unix(rec.StartTime, 0))
		if runTime > minRunTime {
			matches = append(matches, rec)
		}
	}
	return matches, nil
}

func (d *Detector) sleep(dur time.Duration) {
	if d.Sleep != nil {
		d.Sleep(dur)
		return
	}
	time.Sleep(dur)
}

func (d *Detector) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}
