// Package target turns user-supplied target strings into process sets.
//
// A target is one of three shapes, tried in order:
//
//	:3000     port  - leading colon followed by a valid u16
//	1234      pid   - all decimal digits
//	node      name  - anything else, matched as substring
//
// A colon-prefixed string that does not parse as a port, such as
// ":abc", falls through to name matching rather than failing.
package target

import (
	"strconv"
	"strings"
)

// Kind discriminates the target union.
type Kind int

const (
	KindName Kind = iota
	KindPid
	KindPort
)

// Target is a parsed target string. Exactly one payload field is
// meaningful, selected by Kind.
type Target struct {
	Kind Kind
	Name string
	PID  uint32
	Port uint16
}

func (t Target) String() string {
	switch t.Kind {
	case KindPort:
		return ":" + strconv.Itoa(int(t.Port))
	case KindPid:
		return strconv.FormatUint(uint64(t.PID), 10)
	default:
		return t.Name
	}
}

// Parse classifies one target string. Parsing never fails: unparseable
// input is a name target.
func Parse(s string) Target {
	s = strings.TrimSpace(s)

	if rest, ok := strings.CutPrefix(s, ":"); ok {
		if port, err := strconv.ParseUint(rest, 10, 16); err == nil {
			return Target{Kind: KindPort, Port: uint16(port)}
		}
		// Not a port after all; treat the whole string as a name.
		return Target{Kind: KindName, Name: s}
	}

	if s != "" && allDigits(s) {
		if pid, err := strconv.ParseUint(s, 10, 32); err == nil {
			return Target{Kind: KindPid, PID: uint32(pid)}
		}
	}

	return Target{Kind: KindName, Name: s}
}

// ParseList splits a comma-separated target list, trimming whitespace
// and dropping empty entries while preserving order.
func ParseList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
