package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/proc-cli/proc/internal/exitcode"
	"github.com/proc-cli/proc/internal/output"
	"github.com/proc-cli/proc/internal/process"
	"github.com/proc-cli/proc/internal/style"
	"github.com/proc-cli/proc/internal/stuck"
)

var stuckCmd = &cobra.Command{
	Use:     "stuck",
	Aliases: []string{"x"},
	GroupID: GroupRecovery,
	Short:   "Find processes that look stuck",
	Long: `Find processes burning high CPU for longer than --timeout.

Detection samples CPU twice with a short settle in between, so the
figure reflects what the process is doing right now. It is a
heuristic: a legitimately busy build matches too, which is why --kill
asks before acting.

Examples:
  proc stuck                   # running hot for 5+ minutes
  proc stuck --timeout 60      # running hot for 1+ minute
  proc stuck --kill            # find and kill, with confirmation`,
	Args: cobra.NoArgs,
	RunE: runStuck,
}

var (
	stuckTimeout int
	stuckKill    bool
	stuckYes     bool
	stuckJSON    bool
)

func init() {
	stuckCmd.Flags().IntVar(&stuckTimeout, "timeout", 300, "Minimum run time in seconds before a busy process counts")
	stuckCmd.Flags().BoolVar(&stuckKill, "kill", false, "Kill the stuck processes after confirmation")
	stuckCmd.Flags().BoolVarP(&stuckYes, "yes", "y", false, "Skip confirmation prompt")
	stuckCmd.Flags().BoolVar(&stuckJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(stuckCmd)
}

type stuckOutput struct {
	Action    string           `json:"action"`
	Success   bool             `json:"success"`
	Count     int              `json:"count"`
	Processes []process.Record `json:"processes"`
	Killed    []killedEntry    `json:"killed,omitempty"`
	Failed    []killedEntry    `json:"failed,omitempty"`
}

func runStuck(cmd *cobra.Command, args []string) error {
	timeout := stuckTimeout
	if !cmd.Flags().Changed("timeout") && cfg.Stuck.TimeoutSecs > 0 {
		timeout = cfg.Stuck.TimeoutSecs
	}

	detector := &stuck.Detector{Procs: procs()}
	records, err := detector.Find(time.Duration(timeout) * time.Second)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		if stuckJSON {
			return output.PrintJSON(stuckOutput{
				Action: "stuck", Success: true, Count: 0, Processes: []process.Record{},
			})
		}
		style.PrintSuccess("No stuck processes found.")
		return nil
	}

	if !stuckKill {
		if stuckJSON {
			return output.PrintJSON(stuckOutput{
				Action: "stuck", Success: true, Count: len(records), Processes: records,
			})
		}
		printFoundHeader(len(records), "stuck process", "es")
		fmt.Print(renderProcessTable(records, true))
		fmt.Printf("\n%s use 'proc unstick' to attempt recovery, or 'proc stuck --kill'\n",
			style.InfoPrefix)
		return nil
	}

	if promptNeeded(stuckJSON, stuckYes) {
		fmt.Printf("About to kill %d stuck process%s:\n", len(records), style.Plural(len(records), "es"))
		for _, rec := range records {
			fmt.Printf("%s (running %s)\n", listItem(rec), uptime(rec))
		}
		if !confirm("Continue?") {
			fmt.Println(style.Dim.Render("Aborted."))
			return nil
		}
	}

	var killed, failed []killedEntry
	for _, rec := range records {
		entry := killedEntry{PID: rec.PID, Name: rec.Name}
		// KillAndWait so the pid is confirmed reaped, not just signaled.
		if err := process.KillAndWait(rec.PID, 5*time.Second); err != nil {
			entry.Error = err.Error()
			failed = append(failed, entry)
			if !stuckJSON {
				style.PrintError("could not kill %s [PID %d]: %v", rec.Name, rec.PID, err)
			}
			continue
		}
		killed = append(killed, entry)
		if !stuckJSON {
			style.PrintSuccess("Killed %s [PID %d]", rec.Name, rec.PID)
		}
	}

	if stuckJSON {
		if err := output.PrintJSON(stuckOutput{
			Action:    "stuck",
			Success:   len(failed) == 0,
			Count:     len(records),
			Processes: records,
			Killed:    killed,
			Failed:    failed,
		}); err != nil {
			return err
		}
	}

	if len(failed) > 0 {
		return exitcode.Newf(exitcode.KindSignal, "%d stuck process%s could not be killed",
			len(failed), style.Plural(len(failed), "es"))
	}
	return nil
}
