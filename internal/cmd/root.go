// Package cmd provides CLI commands for the proc tool.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/proc-cli/proc/internal/config"
	"github.com/proc-cli/proc/internal/exitcode"
	"github.com/proc-cli/proc/internal/style"
)

var rootCmd = &cobra.Command{
	Use:     "proc",
	Short:   "Semantic process management",
	Version: Version,
	Long: `proc finds, inspects, and controls processes using the names you
actually think in: a process name, a PID, or :port.

Targets work everywhere a command takes one:
  node        any process whose name or command line contains "node"
  1234        the process with PID 1234
  :3000       whatever is listening on port 3000

Several commands accept comma lists: proc kill node,:3000,1234`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error
		cfg, err = config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", style.WarningPrefix, err)
			cfg = config.Default()
		}
	},
}

// cfg holds user defaults loaded before any command runs. Flags that
// the user set explicitly always win over it.
var cfg = config.Default()

// Execute runs the root command and returns an exit code.
// The caller (main) should call os.Exit with this code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", style.ErrorPrefix, err)
		return exitcode.Code(err)
	}
	return exitcode.Success
}

// Command group IDs - used by subcommands to organize help output
const (
	GroupDiscover  = "discover"
	GroupLifecycle = "lifecycle"
	GroupRecovery  = "recovery"
)

func init() {
	// Let "proc po" reach "proc ports".
	cobra.EnablePrefixMatching = true

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupDiscover, Title: "Discovery:"},
		&cobra.Group{ID: GroupLifecycle, Title: "Lifecycle:"},
		&cobra.Group{ID: GroupRecovery, Title: "Recovery:"},
	)

	rootCmd.SetHelpCommandGroupID(GroupDiscover)
	rootCmd.SetCompletionCommandGroupID(GroupDiscover)
}
