package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/proc-cli/proc/internal/exitcode"
	"github.com/proc-cli/proc/internal/output"
	"github.com/proc-cli/proc/internal/process"
	"github.com/proc-cli/proc/internal/style"
)

var stopCmd = &cobra.Command{
	Use:     "stop TARGET",
	Aliases: []string{"s"},
	GroupID: GroupLifecycle,
	Short:   "Stop processes gracefully, escalating if needed",
	Long: `Ask the target to exit with SIGTERM, wait up to --timeout for it to
comply, then force-kill whatever is still running.

Examples:
  proc stop node
  proc stop :3000 --timeout 30
  proc stop 1234 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runStop,
}

var (
	stopYes     bool
	stopTimeout int
	stopJSON    bool
)

func init() {
	stopCmd.Flags().BoolVarP(&stopYes, "yes", "y", false, "Skip confirmation prompt")
	stopCmd.Flags().IntVar(&stopTimeout, "timeout", 10, "Seconds to wait for a graceful exit")
	stopCmd.Flags().BoolVar(&stopJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(stopCmd)
}

type stopEntry struct {
	PID    uint32 `json:"pid"`
	Name   string `json:"name"`
	Forced bool   `json:"forced,omitempty"`
	Error  string `json:"error,omitempty"`
}

type stopOutput struct {
	Action  string      `json:"action"`
	Success bool        `json:"success"`
	Stopped []stopEntry `json:"stopped"`
	Failed  []stopEntry `json:"failed,omitempty"`
}

func runStop(cmd *cobra.Command, args []string) error {
	records, err := resolver().Resolve(args[0])
	if err != nil {
		return err
	}

	timeout := time.Duration(stopTimeout) * time.Second
	if !cmd.Flags().Changed("timeout") && cfg.Stop.TimeoutSecs > 0 {
		timeout = time.Duration(cfg.Stop.TimeoutSecs) * time.Second
	}

	if promptNeeded(stopJSON, stopYes) {
		fmt.Printf("About to stop %d process%s:\n", len(records), style.Plural(len(records), "es"))
		for _, rec := range records {
			fmt.Println(listItem(rec))
		}
		if !confirm("Continue?") {
			fmt.Println(style.Dim.Render("Aborted."))
			return nil
		}
	}

	var stopped, failed []stopEntry
	for _, rec := range records {
		entry := stopEntry{PID: rec.PID, Name: rec.Name}
		forced, err := stopOne(rec.PID, timeout)
		entry.Forced = forced
		if err != nil {
			entry.Error = err.Error()
			failed = append(failed, entry)
			if !stopJSON {
				style.PrintError("could not stop %s [PID %d]: %v", rec.Name, rec.PID, err)
			}
			continue
		}
		stopped = append(stopped, entry)
		if !stopJSON {
			if forced {
				style.PrintSuccess("Stopped %s [PID %d] (forced after %s)", rec.Name, rec.PID, timeout)
			} else {
				style.PrintSuccess("Stopped %s [PID %d]", rec.Name, rec.PID)
			}
		}
	}

	if stopJSON {
		if err := output.PrintJSON(stopOutput{
			Action:  "stop",
			Success: len(failed) == 0,
			Stopped: stopped,
			Failed:  failed,
		}); err != nil {
			return err
		}
	}

	if len(failed) > 0 {
		return exitcode.Newf(exitcode.KindSignal, "%d process%s could not be stopped",
			len(failed), style.Plural(len(failed), "es"))
	}
	return nil
}

// stopOne runs the graceful-then-forceful ladder for a single pid.
// forced reports whether the graceful wait expired and the kill had to
// finish the job.
func stopOne(pid uint32, timeout time.Duration) (forced bool, err error) {
	if err := process.Terminate(pid); err != nil {
		if exitcode.IsKind(err, exitcode.KindProcessGone) {
			return false, nil
		}
		return false, err
	}
	if process.WaitForExit(pid, timeout) {
		return false, nil
	}
	return true, process.KillAndWait(pid, 5*time.Second)
}
