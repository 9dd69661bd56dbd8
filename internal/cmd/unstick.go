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

var unstickCmd = &cobra.Command{
	Use:     "unstick [TARGET]",
	Aliases: []string{"u"},
	GroupID: GroupRecovery,
	Short:   "Try to recover stuck processes gently",
	Long: `Walk stuck processes through graduated recovery: wake them with
SIGCONT, nudge them with SIGINT, and only with --force escalate to
SIGTERM and SIGKILL.

Without a target, recovery runs on whatever 'proc stuck' would find.
With a target, it runs on exactly those processes.

Examples:
  proc unstick                # recover everything that looks stuck
  proc unstick node           # recover a specific process
  proc unstick node --force   # authorize termination if gentle fails
  proc unstick --dry-run      # show the plan without signaling`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUnstick,
}

var (
	unstickTimeout int
	unstickForce   bool
	unstickYes     bool
	unstickDryRun  bool
	unstickJSON    bool
)

func init() {
	unstickCmd.Flags().IntVar(&unstickTimeout, "timeout", 300, "Minimum run time in seconds for auto-discovery")
	unstickCmd.Flags().BoolVarP(&unstickForce, "force", "f", false, "Escalate to SIGTERM/SIGKILL if gentle signals fail")
	unstickCmd.Flags().BoolVarP(&unstickYes, "yes", "y", false, "Skip confirmation prompt")
	unstickCmd.Flags().BoolVar(&unstickDryRun, "dry-run", false, "Show the plan without sending signals")
	unstickCmd.Flags().BoolVar(&unstickJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(unstickCmd)
}

type unstickOutput struct {
	Action string `json:"action"`
	// Success means nothing failed and nothing stayed stuck.
	Success bool `json:"success"`
	DryRun  bool `json:"dry_run,omitempty"`
	Force   bool `json:"force,omitempty"`
	// Processes lists the would-be targets in dry-run mode.
	Processes []process.Record `json:"processes,omitempty"`
	stuck.Report
}

func runUnstick(cmd *cobra.Command, args []string) error {
	timeout := unstickTimeout
	if !cmd.Flags().Changed("timeout") && cfg.Stuck.TimeoutSecs > 0 {
		timeout = cfg.Stuck.TimeoutSecs
	}

	var records []process.Record
	targeted := len(args) == 1
	if targeted {
		var err error
		records, err = resolver().Resolve(args[0])
		if err != nil {
			return err
		}
	} else {
		detector := &stuck.Detector{Procs: procs()}
		var err error
		records, err = detector.Find(time.Duration(timeout) * time.Second)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			if unstickJSON {
				return output.PrintJSON(unstickOutput{
					Action: "unstick", Success: true,
					Report: stuck.Report{Results: []stuck.Result{}},
				})
			}
			style.PrintSuccess("No stuck processes found.")
			return nil
		}
	}

	if unstickDryRun {
		return reportUnstickDryRun(records)
	}

	if promptNeeded(unstickJSON, unstickYes) {
		fmt.Printf("About to attempt recovery on %d process%s:\n",
			len(records), style.Plural(len(records), "es"))
		for _, rec := range records {
			fmt.Println(listItem(rec))
		}
		if unstickForce {
			style.PrintWarning("--force is set: unrecovered processes will be terminated")
		}
		if !confirm("Continue?") {
			fmt.Println(style.Dim.Render("Aborted."))
			return nil
		}
	}

	engine := &stuck.Engine{
		Procs:    &stuck.SystemObserver{Procs: procs()},
		Signals:  stuck.SystemSignaler{},
		Force:    unstickForce,
		Targeted: targeted,
	}
	report := engine.Run(records)

	if unstickJSON {
		if err := output.PrintJSON(unstickOutput{
			Action:  "unstick",
			Success: report.Success(),
			Force:   unstickForce,
			Report:  report,
		}); err != nil {
			return err
		}
	} else {
		printUnstickReport(report)
	}

	if !report.Success() {
		return exitcode.Newf(exitcode.KindGeneral, "%d process%s not recovered",
			report.Failed+report.StillStuck, style.Plural(report.Failed+report.StillStuck, "es"))
	}
	return nil
}

func printUnstickReport(report stuck.Report) {
	for _, res := range report.Results {
		label := fmt.Sprintf("%s [PID %d]", style.Bold.Render(res.Name), res.PID)
		switch res.Outcome {
		case stuck.OutcomeRecovered:
			style.PrintSuccess("%s recovered", label)
		case stuck.OutcomeTerminated:
			style.PrintSuccess("%s terminated", label)
		case stuck.OutcomeNotStuck:
			fmt.Printf("%s %s is not stuck\n", style.InfoPrefix, label)
		case stuck.OutcomeStillStuck:
			style.PrintWarning("%s still stuck (re-run with --force to terminate)", label)
		case stuck.OutcomeFailed:
			style.PrintError("%s recovery failed: %s", label, res.Reason)
		}
	}

	fmt.Printf("\n%d recovered, %d terminated, %d still stuck, %d not stuck, %d failed\n",
		report.Recovered, report.Terminated, report.StillStuck, report.NotStuck, report.Failed)
}

func reportUnstickDryRun(records []process.Record) error {
	if unstickJSON {
		return output.PrintJSON(unstickOutput{
			Action:    "unstick",
			Success:   true,
			DryRun:    true,
			Force:     unstickForce,
			Processes: records,
			Report:    stuck.Report{Results: []stuck.Result{}},
		})
	}
	fmt.Printf("Would attempt recovery on %d process%s:\n",
		len(records), style.Plural(len(records), "es"))
	for _, rec := range records {
		fmt.Println(listItem(rec))
	}
	ladder := "SIGCONT, then SIGINT"
	if unstickForce {
		ladder += ", then SIGTERM, then SIGKILL"
	}
	fmt.Printf("\nEscalation: %s\n", style.Dim.Render(ladder))
	return nil
}
