package cmd

import (
	"github.com/spf13/cobra"
)

var byCmd = &cobra.Command{
	Use:     "by NAME",
	Aliases: []string{"b"},
	GroupID: GroupDiscover,
	Short:   "Find processes by name",
	Long: `Find processes whose name or command line contains NAME,
case-insensitively. Same filters as list.

Examples:
  proc by node
  proc by server.js --in ~/work/api
  proc by postgres --min-mem 500`,
	Args: cobra.ExactArgs(1),
	RunE: runBy,
}

var (
	byFilters filterFlags
	bySort    sortFlags
	byJSON    bool
	byVerbose bool
)

func init() {
	byFilters.register(byCmd)
	bySort.register(byCmd)
	byCmd.Flags().BoolVar(&byJSON, "json", false, "Output as JSON")
	byCmd.Flags().BoolVarP(&byVerbose, "verbose", "v", false, "Show user, uptime, and command line")
	rootCmd.AddCommand(byCmd)
}

func runBy(cmd *cobra.Command, args []string) error {
	return runListing(cmd, "by", args[0], &byFilters, &bySort, byJSON, byVerbose)
}
