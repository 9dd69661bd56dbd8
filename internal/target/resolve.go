package target

import (
	"github.com/proc-cli/proc/internal/exitcode"
	"github.com/proc-cli/proc/internal/ports"
	"github.com/proc-cli/proc/internal/process"
)

// Resolver maps parsed targets onto live processes.
type Resolver struct {
	Procs process.Snapshotter
	Socks ports.Provider
}

// Resolve returns every process a target refers to.
//
// Failures are distinguished by kind: a port nobody listens on is
// PortNotFound; a port whose listener vanished between the socket
// lookup and the process lookup is ProcessGone; a pid or name with no
// match is ProcessNotFound.
func (r *Resolver) Resolve(raw string) ([]process.Record, error) {
	t := Parse(raw)

	switch t.Kind {
	case KindPort:
		sock, err := ports.FindByPort(r.Socks, t.Port)
		if err != nil {
			return nil, err
		}
		if sock == nil {
			return nil, exitcode.PortNotFound(t.Port)
		}
		// Pid 0 means the socket table would not reveal the owner,
		// which happens for other users' sockets without privileges.
		if sock.PID == 0 {
			return nil, exitcode.Newf(exitcode.KindPermissionDenied,
				"owner of port %d is not visible; try elevated privileges", t.Port)
		}
		rec, err := r.Procs.Lookup(sock.PID)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, exitcode.ProcessGone(sock.PID)
		}
		return []process.Record{*rec}, nil

	case KindPid:
		rec, err := r.Procs.Lookup(t.PID)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, exitcode.ProcessNotFound(raw)
		}
		return []process.Record{*rec}, nil

	default:
		all, err := r.Procs.Snapshot()
		if err != nil {
			return nil, err
		}
		matches := make([]process.Record, 0, 4)
		for _, rec := range all {
			if process.MatchName(rec, t.Name) {
				matches = append(matches, rec)
			}
		}
		if len(matches) == 0 {
			return nil, exitcode.ProcessNotFound(raw)
		}
		return matches, nil
	}
}

// ResolveSingle resolves a target that must identify exactly one
// process. Multiple matches are an input error, not a silent pick.
func (r *Resolver) ResolveSingle(raw string) (process.Record, error) {
	matches, err := r.Resolve(raw)
	if err != nil {
		return process.Record{}, err
	}
	if len(matches) > 1 {
		return process.Record{}, exitcode.Newf(exitcode.KindInvalidInput,
			"target %q matches %d processes; use a pid or port to pick one", raw, len(matches))
	}
	return matches[0], nil
}

// ResolveAll resolves a list of targets with per-target isolation: one
// target failing to resolve never aborts the others. The returned
// records are deduplicated by pid in first-seen order, and notFound
// lists the targets that resolved to nothing.
func (r *Resolver) ResolveAll(raws []string) (records []process.Record, notFound []string) {
	seen := make(map[uint32]struct{})
	for _, raw := range raws {
		matches, err := r.Resolve(raw)
		if err != nil {
			notFound = append(notFound, raw)
			continue
		}
		for _, rec := range matches {
			if _, dup := seen[rec.PID]; dup {
				continue
			}
			seen[rec.PID] = struct{}{}
			records = append(records, rec)
		}
	}
	return records, notFound
}

// PortsFor returns the listening sockets owned by a pid.
func (r *Resolver) PortsFor(pid uint32) ([]ports.Record, error) {
	return ports.ForPID(r.Socks, pid)
}
