package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/proc-cli/proc/internal/output"
	"github.com/proc-cli/proc/internal/process"
	"github.com/proc-cli/proc/internal/style"
)

var listCmd = &cobra.Command{
	Use:     "list [name]",
	Aliases: []string{"l", "ps"},
	GroupID: GroupDiscover,
	Short:   "List processes with optional filters",
	Long: `List processes, optionally filtered by name, directory, executable
path, resource usage, or status.

Examples:
  proc list                      # everything, busiest first
  proc list node                 # name or command line contains "node"
  proc list --in                 # working under the current directory
  proc list --in ~/work/api      # working under a specific directory
  proc list --min-cpu 50         # burning more than half a core
  proc list --sort mem --limit 5 # top five by memory`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

var (
	listFilters filterFlags
	listSort    sortFlags
	listJSON    bool
	listVerbose bool
)

func init() {
	listFilters.register(listCmd)
	listSort.register(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	listCmd.Flags().BoolVarP(&listVerbose, "verbose", "v", false, "Show user, uptime, and command line")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	return runListing(cmd, "list", name, &listFilters, &listSort, listJSON, listVerbose)
}

// listOutput is the JSON envelope shared by list, by, and in.
type listOutput struct {
	Action    string           `json:"action"`
	Success   bool             `json:"success"`
	Count     int              `json:"count"`
	Processes []process.Record `json:"processes"`
}

// runListing is the shared body of the three listing verbs; they differ
// only in how the filter is assembled.
func runListing(cmd *cobra.Command, action, name string, ff *filterFlags, sf *sortFlags, jsonOut, verbose bool) error {
	filter, err := ff.build()
	if err != nil {
		return err
	}
	filter.Name = name

	key, limit, err := sf.resolve(cmd)
	if err != nil {
		return err
	}

	records, err := procs().Snapshot()
	if err != nil {
		return err
	}
	records = process.Apply(records, filter)
	process.SortBy(records, key)
	records = process.Limit(records, limit)

	if jsonOut {
		return output.PrintJSON(listOutput{
			Action:    action,
			Success:   true,
			Count:     len(records),
			Processes: records,
		})
	}

	if len(records) == 0 {
		fmt.Println(style.Dim.Render("No matching processes found."))
		return nil
	}
	printFoundHeader(len(records), "process", "es")
	fmt.Print(renderProcessTable(records, verbose))
	return nil
}
