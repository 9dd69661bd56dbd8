package process

import (
	"errors"
	"strings"

	gops "github.com/shirou/gopsutil/v4/process"

	"github.com/proc-cli/proc/internal/exitcode"
)

// SystemSnapshotter reads the live process table via gopsutil.
//
// It retains one gopsutil handle per pid across calls. Percent(0) on a
// retained handle reports CPU usage since the previous call on that same
// handle, which is what makes two Snapshot calls separated by a short
// sleep yield a meaningful instantaneous CPU figure. The very first
// observation of a pid reports its lifetime average instead.
type SystemSnapshotter struct {
	handles map[int32]*gops.Process
}

// NewSystemSnapshotter returns a snapshotter backed by the OS process table.
func NewSystemSnapshotter() *SystemSnapshotter {
	return &SystemSnapshotter{handles: make(map[int32]*gops.Process)}
}

// Snapshot enumerates every visible process. Processes that vanish
// mid-enumeration are silently skipped.
func (s *SystemSnapshotter) Snapshot() ([]Record, error) {
	procs, err := gops.Processes()
	if err != nil {
		return nil, exitcode.Wrap(exitcode.KindSystem, "listing processes", err)
	}

	records := make([]Record, 0, len(procs))
	seen := make(map[int32]struct{}, len(procs))
	for _, p := range procs {
		rec, ok := s.observe(p)
		if !ok {
			continue
		}
		seen[p.Pid] = struct{}{}
		records = append(records, rec)
	}

	// Drop handles for pids that no longer exist so a long-lived
	// snapshotter does not accumulate dead entries.
	for pid := range s.handles {
		if _, ok := seen[pid]; !ok {
			delete(s.handles, pid)
		}
	}

	return records, nil
}

// Lookup returns the record for one pid, or nil when the process does
// not exist.
func (s *SystemSnapshotter) Lookup(pid uint32) (*Record, error) {
	p, err := gops.NewProcess(int32(pid))
	if err != nil {
		if errors.Is(err, gops.ErrorProcessNotRunning) {
			return nil, nil
		}
		return nil, exitcode.Wrapf(exitcode.KindSystem, err, "inspecting pid %d", pid)
	}
	rec, ok := s.observe(p)
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// observe builds a Record from a gopsutil handle. Returns ok=false when
// the process disappeared under us.
func (s *SystemSnapshotter) observe(p *gops.Process) (Record, bool) {
	// Name failing is the reliable "process is gone" signal; the
	// remaining attributes are best-effort.
	name, err := p.Name()
	if err != nil {
		delete(s.handles, p.Pid)
		return Record{}, false
	}

	rec := Record{
		PID:    uint32(p.Pid),
		Name:   name,
		Status: StatusUnknown,
	}

	rec.CPUPercent, _ = s.retain(p).Percent(0)

	if mem, err := p.MemoryInfo(); err == nil && mem != nil {
		rec.MemoryMB = float64(mem.RSS) / (1024 * 1024)
	}
	if statuses, err := p.Status(); err == nil && len(statuses) > 0 {
		rec.Status = parseStatus(statuses[0])
	}
	if user, err := p.Username(); err == nil {
		rec.User = user
	}
	if exe, err := p.Exe(); err == nil {
		rec.ExePath = exe
	}
	if cwd, err := p.Cwd(); err == nil {
		rec.Cwd = cwd
	}
	if cmdline, err := p.Cmdline(); err == nil {
		rec.Command = cmdline
	}
	if ppid, err := p.Ppid(); err == nil && ppid > 0 {
		rec.ParentPID = uint32(ppid)
	}
	if created, err := p.CreateTime(); err == nil && created > 0 {
		rec.StartTime = created / 1000
	}

	return rec, true
}

// retain returns the long-lived handle for a pid, registering the given
// one on first sight. CPU sampling state lives on the handle, so the
// same handle must be reused across snapshots.
func (s *SystemSnapshotter) retain(p *gops.Process) *gops.Process {
	if h, ok := s.handles[p.Pid]; ok {
		return h
	}
	s.handles[p.Pid] = p
	return p
}

func parseStatus(raw string) Status {
	switch strings.ToLower(raw) {
	case gops.Running:
		return StatusRunning
	case gops.Sleep, gops.Idle, gops.Blocked, gops.Wait, gops.Lock:
		return StatusSleeping
	case gops.Stop:
		return StatusStopped
	case gops.Zombie:
		return StatusZombie
	case "dead":
		return StatusDead
	default:
		return StatusUnknown
	}
}
