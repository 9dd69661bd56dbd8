// Package ports discovers listening TCP and UDP sockets and ties them
// back to owning processes.
package ports

import (
	"sort"
	"strings"
)

// Protocol identifies the transport of a listening socket.
type Protocol string

const (
	TCP Protocol = "tcp"
	UDP Protocol = "udp"
)

// Record is one listening socket observation.
type Record struct {
	Port     uint16   `json:"port"`
	Protocol Protocol `json:"protocol"`
	// PID may be zero when socket ownership is unreadable, which is
	// common for other users' processes without elevated privileges.
	PID         uint32 `json:"pid"`
	ProcessName string `json:"process_name"`
	// Address is the bound local address, e.g. "127.0.0.1" or "0.0.0.0".
	Address string `json:"address,omitempty"`
}

// Exposed reports whether the socket accepts traffic from other hosts,
// i.e. it is bound to a non-loopback address.
func (r Record) Exposed() bool {
	return !r.Local()
}

// Local reports whether the socket is bound to a loopback address only.
func (r Record) Local() bool {
	switch r.Address {
	case "127.0.0.1", "::1", "localhost":
		return true
	}
	return strings.HasPrefix(r.Address, "127.")
}

// Provider enumerates listening sockets. The interface exists so the
// resolver and the ports command can be tested against scripted data.
type Provider interface {
	Listening() ([]Record, error)
}

// FindByPort returns the socket listening on port, or nil when no
// process is listening there. When both protocols share the port the
// TCP listener wins.
func FindByPort(p Provider, port uint16) (*Record, error) {
	records, err := p.Listening()
	if err != nil {
		return nil, err
	}
	var udpMatch *Record
	for i := range records {
		if records[i].Port != port {
			continue
		}
		if records[i].Protocol == TCP {
			return &records[i], nil
		}
		if udpMatch == nil {
			udpMatch = &records[i]
		}
	}
	return udpMatch, nil
}

// ForPID returns every listening socket owned by the given pid, sorted
// by port.
func ForPID(p Provider, pid uint32) ([]Record, error) {
	records, err := p.Listening()
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, 4)
	for _, r := range records {
		if r.PID == pid && r.PID != 0 {
			out = append(out, r)
		}
	}
	SortRecords(out)
	return out, nil
}

// SortRecords orders sockets by port, then protocol, for stable output.
func SortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Port != records[j].Port {
			return records[i].Port < records[j].Port
		}
		return records[i].Protocol < records[j].Protocol
	})
}
