package cmd

import (
	"github.com/spf13/cobra"
)

var inCmd = &cobra.Command{
	Use:     "in DIR",
	GroupID: GroupDiscover,
	Short:   "Find processes working under a directory",
	Long: `Find processes whose working directory is DIR or below it.
Relative paths resolve against the current directory.

Examples:
  proc in .                  # processes working here
  proc in ~/work/api         # processes under a project
  proc in . --by node        # narrow by name as well`,
	Args: cobra.ExactArgs(1),
	RunE: runIn,
}

var (
	inBy      string
	inFilters filterFlags
	inSort    sortFlags
	inJSON    bool
	inVerbose bool
)

func init() {
	inCmd.Flags().StringVar(&inBy, "by", "", "Also require NAME in the process name or command line")
	inCmd.Flags().StringVar(&inFilters.path, "path", "", "Only processes whose executable is under EXE")
	inFilters.registerThresholds(inCmd)
	inSort.register(inCmd)
	inCmd.Flags().BoolVar(&inJSON, "json", false, "Output as JSON")
	inCmd.Flags().BoolVarP(&inVerbose, "verbose", "v", false, "Show user, uptime, and command line")
	rootCmd.AddCommand(inCmd)
}

func runIn(cmd *cobra.Command, args []string) error {
	// The positional directory is the same constraint as --in elsewhere.
	inFilters.in = args[0]
	return runListing(cmd, "in", inBy, &inFilters, &inSort, inJSON, inVerbose)
}
