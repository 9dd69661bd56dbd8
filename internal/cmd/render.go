package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/proc-cli/proc/internal/ports"
	"github.com/proc-cli/proc/internal/process"
	"github.com/proc-cli/proc/internal/style"
)

// renderProcessTable renders the standard process listing. Verbose adds
// owner, uptime, and the command line.
func renderProcessTable(records []process.Record, verbose bool) string {
	columns := []style.Column{
		{Name: "PID", Width: 7, Align: style.AlignRight, Style: style.Accent},
		{Name: "NAME", Width: 20},
		{Name: "CPU%", Width: 6, Align: style.AlignRight},
		{Name: "MEM(MB)", Width: 8, Align: style.AlignRight},
		{Name: "STATUS", Width: 9},
	}
	if verbose {
		columns = append(columns,
			style.Column{Name: "USER", Width: 10},
			style.Column{Name: "UPTIME", Width: 7},
			style.Column{Name: "COMMAND", Width: 40, Style: style.Dim},
		)
	}

	tbl := style.NewTable(columns...)
	for _, rec := range records {
		row := []string{
			strconv.FormatUint(uint64(rec.PID), 10),
			rec.Name,
			fmt.Sprintf("%.1f", rec.CPUPercent),
			fmt.Sprintf("%.1f", rec.MemoryMB),
			string(rec.Status),
		}
		if verbose {
			row = append(row, rec.User, uptime(rec), rec.Command)
		}
		tbl.AddRow(row...)
	}
	return tbl.Render()
}

// renderPortsTable renders the listening-socket listing.
func renderPortsTable(records []ports.Record, verbose bool) string {
	columns := []style.Column{
		{Name: "PORT", Width: 6, Align: style.AlignRight, Style: style.Accent},
		{Name: "PROTO", Width: 5},
		{Name: "PID", Width: 7, Align: style.AlignRight},
		{Name: "PROCESS", Width: 20},
	}
	if verbose {
		columns = append(columns, style.Column{Name: "ADDRESS", Width: 24, Style: style.Dim})
	}

	tbl := style.NewTable(columns...)
	for _, rec := range records {
		row := []string{
			strconv.Itoa(int(rec.Port)),
			string(rec.Protocol),
			strconv.FormatUint(uint64(rec.PID), 10),
			rec.ProcessName,
		}
		if verbose {
			row = append(row, rec.Address)
		}
		tbl.AddRow(row...)
	}
	return tbl.Render()
}

// listItem is the one-line confirmation form used before destructive
// actions: "→ node [PID 1234] - 45.2% CPU, 312.0 MB".
func listItem(rec process.Record) string {
	return fmt.Sprintf("%s %s [PID %s] - %.1f%% CPU, %.1f MB",
		style.ArrowPrefix,
		style.Bold.Render(rec.Name),
		style.Accent.Render(strconv.FormatUint(uint64(rec.PID), 10)),
		rec.CPUPercent, rec.MemoryMB)
}

// printFoundHeader prints the "Found N ..." line above listings.
func printFoundHeader(n int, noun, pluralSuffix string) {
	fmt.Printf("Found %s %s%s\n\n",
		style.Accent.Render(strconv.Itoa(n)), noun, style.Plural(n, pluralSuffix))
}

// uptime formats how long a process has been running, or "-" when its
// start time is unknown.
func uptime(rec process.Record) string {
	if rec.StartTime == 0 {
		return "-"
	}
	return formatDuration(time.Since(time.Unix(rec.StartTime, 0)))
}

// formatDuration renders durations at the precision people read at a
// glance: 32s, 5m, 2h 10m, 3d 4h.
func formatDuration(d time.Duration) string {
	secs := int64(d.Seconds())
	if secs < 0 {
		secs = 0
	}
	switch {
	case secs < 60:
		return fmt.Sprintf("%ds", secs)
	case secs < 3600:
		return fmt.Sprintf("%dm", secs/60)
	case secs < 86400:
		h, m := secs/3600, (secs%3600)/60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh %dm", h, m)
	default:
		days, h := secs/86400, (secs%86400)/3600
		if h == 0 {
			return fmt.Sprintf("%dd", days)
		}
		return fmt.Sprintf("%dd %dh", days, h)
	}
}

// portList renders "  :3000 (tcp), :8080 (tcp)" fragments.
func portList(records []ports.Record) string {
	parts := make([]string, 0, len(records))
	for _, rec := range records {
		parts = append(parts, fmt.Sprintf("%s (%s)",
			style.Accent.Render(":"+strconv.Itoa(int(rec.Port))), rec.Protocol))
	}
	return strings.Join(parts, ", ")
}
