package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/proc-cli/proc/internal/exitcode"
	"github.com/proc-cli/proc/internal/output"
	"github.com/proc-cli/proc/internal/process"
	"github.com/proc-cli/proc/internal/style"
)

var infoCmd = &cobra.Command{
	Use:     "info TARGET[,TARGET...]",
	Aliases: []string{"i"},
	GroupID: GroupDiscover,
	Short:   "Show details for one or more processes",
	Long: `Show detailed information for each target: resources, owner,
uptime, paths, command line, and listening ports.

Targets can be given as a comma list, separate arguments, or both.

Examples:
  proc info node
  proc info 1234,:3000
  proc info node :8080`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

var infoJSON bool

func init() {
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(infoCmd)
}

type infoOutput struct {
	Action    string           `json:"action"`
	Success   bool             `json:"success"`
	Count     int              `json:"count"`
	Processes []process.Record `json:"processes"`
	NotFound  []string         `json:"not_found,omitempty"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	targets := flattenTargets(args)
	if len(targets) == 0 {
		return exitcode.InvalidInput("no targets given")
	}

	records, notFound := resolver().ResolveAll(targets)

	if infoJSON {
		return output.PrintJSON(infoOutput{
			Action:    "info",
			Success:   len(notFound) == 0,
			Count:     len(records),
			Processes: records,
			NotFound:  notFound,
		})
	}

	for _, miss := range notFound {
		style.PrintWarning("no process found matching '%s'", miss)
	}
	if len(records) == 0 {
		return exitcode.ProcessNotFound(joinTargets(targets))
	}

	for i, rec := range records {
		if i > 0 {
			fmt.Println()
		}
		printProcessDetail(rec)
	}
	return nil
}

func printProcessDetail(rec process.Record) {
	fmt.Printf("%s %s [PID %s]\n",
		style.SuccessPrefix,
		style.Bold.Render(rec.Name),
		style.Accent.Render(strconv.FormatUint(uint64(rec.PID), 10)))

	detail := func(label, value string) {
		if value != "" {
			fmt.Printf("  %s %s\n", style.Dim.Render(fmt.Sprintf("%-9s", label+":")), value)
		}
	}

	detail("Status", string(rec.Status))
	detail("CPU", fmt.Sprintf("%.1f%%", rec.CPUPercent))
	detail("Memory", fmt.Sprintf("%.1f MB", rec.MemoryMB))
	detail("User", rec.User)
	if rec.StartTime != 0 {
		detail("Uptime", uptime(rec))
	}
	if rec.ParentPID != 0 {
		detail("Parent", strconv.FormatUint(uint64(rec.ParentPID), 10))
	}
	detail("Exe", rec.ExePath)
	detail("Dir", rec.Cwd)
	detail("Command", rec.Command)

	if owned, err := resolver().PortsFor(rec.PID); err == nil && len(owned) > 0 {
		detail("Ports", portList(owned))
	}
}
