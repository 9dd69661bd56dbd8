package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/proc-cli/proc/internal/exitcode"
	"github.com/proc-cli/proc/internal/output"
	"github.com/proc-cli/proc/internal/ports"
	"github.com/proc-cli/proc/internal/style"
)

var portsCmd = &cobra.Command{
	Use:     "ports",
	Aliases: []string{"p"},
	GroupID: GroupDiscover,
	Short:   "List listening ports",
	Long: `List every listening TCP and UDP socket with its owning process.

Examples:
  proc ports                  # everything
  proc ports --filter node    # only node's ports
  proc ports --exposed        # reachable from other hosts
  proc ports --local          # loopback only`,
	Args: cobra.NoArgs,
	RunE: runPorts,
}

var (
	portsFilter  string
	portsExposed bool
	portsLocal   bool
	portsSort    string
	portsJSON    bool
	portsVerbose bool
)

func init() {
	portsCmd.Flags().StringVar(&portsFilter, "filter", "", "Only ports owned by processes matching NAME")
	portsCmd.Flags().BoolVar(&portsExposed, "exposed", false, "Only ports bound beyond loopback")
	portsCmd.Flags().BoolVar(&portsLocal, "local", false, "Only ports bound to loopback")
	portsCmd.Flags().StringVar(&portsSort, "sort", "port", "Sort by port, pid, or name")
	portsCmd.Flags().BoolVar(&portsJSON, "json", false, "Output as JSON")
	portsCmd.Flags().BoolVarP(&portsVerbose, "verbose", "v", false, "Show bind addresses")
	rootCmd.AddCommand(portsCmd)
}

type portsOutput struct {
	Action  string         `json:"action"`
	Success bool           `json:"success"`
	Count   int            `json:"count"`
	Ports   []ports.Record `json:"ports"`
}

func runPorts(cmd *cobra.Command, args []string) error {
	if portsExposed && portsLocal {
		return exitcode.InvalidInput("--exposed and --local are mutually exclusive")
	}

	records, err := socks().Listening()
	if err != nil {
		return err
	}

	filtered := records[:0]
	for _, rec := range records {
		if portsFilter != "" && !strings.Contains(strings.ToLower(rec.ProcessName), strings.ToLower(portsFilter)) {
			continue
		}
		if portsExposed && !rec.Exposed() {
			continue
		}
		if portsLocal && !rec.Local() {
			continue
		}
		filtered = append(filtered, rec)
	}
	records = filtered

	switch portsSort {
	case "port":
		// Already sorted by port by the provider.
	case "pid":
		sort.SliceStable(records, func(i, j int) bool { return records[i].PID < records[j].PID })
	case "name":
		sort.SliceStable(records, func(i, j int) bool {
			return strings.ToLower(records[i].ProcessName) < strings.ToLower(records[j].ProcessName)
		})
	default:
		return exitcode.Newf(exitcode.KindInvalidInput,
			"invalid sort key %q (expected port, pid, or name)", portsSort)
	}

	if portsJSON {
		return output.PrintJSON(portsOutput{
			Action:  "ports",
			Success: true,
			Count:   len(records),
			Ports:   records,
		})
	}

	if len(records) == 0 {
		fmt.Println(style.Dim.Render("No listening ports found."))
		return nil
	}
	printFoundHeader(len(records), "listening port", "s")
	fmt.Print(renderPortsTable(records, portsVerbose))
	return nil
}
