package ports

import (
	"syscall"

	gnet "github.com/shirou/gopsutil/v4/net"
	gops "github.com/shirou/gopsutil/v4/process"

	"github.com/proc-cli/proc/internal/exitcode"
)

// SystemProvider reads live socket tables via gopsutil.
type SystemProvider struct {
	// names caches pid -> process name for the lifetime of the provider.
	// One Listening call can touch the same pid dozens of times.
	names map[uint32]string
}

// NewSystemProvider returns a provider backed by the OS socket tables.
func NewSystemProvider() *SystemProvider {
	return &SystemProvider{names: make(map[uint32]string)}
}

// Listening returns every TCP socket in LISTEN state plus every bound
// UDP socket. Ephemeral client connections are excluded.
func (s *SystemProvider) Listening() ([]Record, error) {
	conns, err := gnet.Connections("inet")
	if err != nil {
		return nil, exitcode.Wrap(exitcode.KindSystem, "reading socket tables", err)
	}

	type key struct {
		port  uint16
		proto Protocol
		pid   uint32
	}
	seen := make(map[key]struct{}, len(conns))
	records := make([]Record, 0, len(conns))

	for _, c := range conns {
		var proto Protocol
		switch c.Type {
		case syscall.SOCK_STREAM:
			// Only sockets accepting connections count as listeners.
			if c.Status != "LISTEN" {
				continue
			}
			proto = TCP
		case syscall.SOCK_DGRAM:
			// UDP has no LISTEN state; a bound local port with no
			// remote peer is the closest equivalent.
			if c.Laddr.Port == 0 || c.Raddr.Port != 0 {
				continue
			}
			proto = UDP
		default:
			continue
		}

		pid := uint32(0)
		if c.Pid > 0 {
			pid = uint32(c.Pid)
		}

		k := key{port: uint16(c.Laddr.Port), proto: proto, pid: pid}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}

		records = append(records, Record{
			Port:        uint16(c.Laddr.Port),
			Protocol:    proto,
			PID:         pid,
			ProcessName: s.processName(pid),
			Address:     c.Laddr.IP,
		})
	}

	SortRecords(records)
	return records, nil
}

func (s *SystemProvider) processName(pid uint32) string {
	if pid == 0 {
		return "unknown"
	}
	if name, ok := s.names[pid]; ok {
		return name
	}
	name := "unknown"
	if p, err := gops.NewProcess(int32(pid)); err == nil {
		if n, err := p.Name(); err == nil && n != "" {
			name = n
		}
	}
	s.names[pid] = name
	return name
}
