package process

import (
	"sort"
	"strings"
)

// MatchName reports whether pattern case-insensitively matches the
// process name or appears anywhere in its command line.
func MatchName(r Record, pattern string) bool {
	p := strings.ToLower(pattern)
	if strings.Contains(strings.ToLower(r.Name), p) {
		return true
	}
	return strings.Contains(strings.ToLower(r.Command), p)
}

// Filter narrows a snapshot. Zero values mean "no constraint".
type Filter struct {
	Name string // case-insensitive substring on name or command line

	// Dir keeps processes whose working directory is Dir or below it.
	Dir string

	// ExePath keeps processes whose executable lives at or under ExePath.
	ExePath string

	MinCPU float64 // percent
	MinMem float64 // megabytes
	Status string  // e.g. "running", "sleeping"; prefix match
}

// Matches reports whether a record passes every set constraint.
func (f Filter) Matches(r Record) bool {
	if f.Name != "" && !MatchName(r, f.Name) {
		return false
	}
	if f.Dir != "" && !underDir(r.Cwd, f.Dir) {
		return false
	}
	if f.ExePath != "" && !underDir(r.ExePath, f.ExePath) {
		return false
	}
	if f.MinCPU > 0 && r.CPUPercent < f.MinCPU {
		return false
	}
	if f.MinMem > 0 && r.MemoryMB < f.MinMem {
		return false
	}
	if f.Status != "" && !matchStatus(r.Status, f.Status) {
		return false
	}
	return true
}

// Apply returns the records passing the filter, preserving input order.
func Apply(records []Record, f Filter) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// SortBy orders records in place. Keys: "cpu" and "mem" sort descending,
// "pid" and "name" ascending. Unknown keys leave the order untouched.
func SortBy(records []Record, key string) {
	switch strings.ToLower(key) {
	case "cpu":
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].CPUPercent > records[j].CPUPercent
		})
	case "mem", "memory":
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].MemoryMB > records[j].MemoryMB
		})
	case "pid":
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].PID < records[j].PID
		})
	case "name":
		sort.SliceStable(records, func(i, j int) bool {
			return strings.ToLower(records[i].Name) < strings.ToLower(records[j].Name)
		})
	}
}

// Limit truncates to at most n records; n <= 0 means no limit.
func Limit(records []Record, n int) []Record {
	if n <= 0 || len(records) <= n {
		return records
	}
	return records[:n]
}

// underDir reports whether path equals dir or is nested inside it.
// Both sides are compared as given; callers resolve to absolute paths.
func underDir(path, dir string) bool {
	if path == "" {
		return false
	}
	dir = strings.TrimRight(dir, "/")
	if dir == "" {
		dir = "/"
	}
	if path == dir {
		return true
	}
	if dir == "/" {
		return strings.HasPrefix(path, "/")
	}
	return strings.HasPrefix(path, dir+"/")
}

// matchStatus accepts "sleep" for "sleeping" and similar shorthands.
func matchStatus(got Status, want string) bool {
	w := strings.ToLower(strings.TrimSpace(want))
	if w == "" {
		return true
	}
	g := string(got)
	return g == w || strings.HasPrefix(g, w)
}
