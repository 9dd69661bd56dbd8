package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/proc-cli/proc/internal/exitcode"
	"github.com/proc-cli/proc/internal/output"
	"github.com/proc-cli/proc/internal/process"
	"github.com/proc-cli/proc/internal/style"
)

var killCmd = &cobra.Command{
	Use:     "kill TARGET[,TARGET...]",
	Aliases: []string{"k"},
	GroupID: GroupLifecycle,
	Short:   "Kill processes",
	Long: `Kill every process the targets resolve to. The default signal is
forceful (SIGKILL); --graceful asks nicely with SIGTERM instead.

Examples:
  proc kill node               # everything matching "node"
  proc kill :3000              # whatever holds port 3000
  proc kill node,:3000 --yes   # no confirmation
  proc kill 1234 --graceful    # SIGTERM
  proc kill node --dry-run     # show what would die`,
	Args: cobra.MinimumNArgs(1),
	RunE: runKill,
}

var (
	killYes      bool
	killDryRun   bool
	killGraceful bool
	killJSON     bool
)

func init() {
	killCmd.Flags().BoolVarP(&killYes, "yes", "y", false, "Skip confirmation prompt")
	killCmd.Flags().BoolVar(&killDryRun, "dry-run", false, "Show targets without killing")
	killCmd.Flags().BoolVar(&killGraceful, "graceful", false, "Send SIGTERM instead of SIGKILL")
	killCmd.Flags().BoolVar(&killJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(killCmd)
}

// killedEntry is one per-process outcome in the JSON envelope.
type killedEntry struct {
	PID   uint32 `json:"pid"`
	Name  string `json:"name"`
	Error string `json:"error,omitempty"`
}

type killOutput struct {
	Action   string        `json:"action"`
	Success  bool          `json:"success"`
	DryRun   bool          `json:"dry_run,omitempty"`
	Graceful bool          `json:"graceful,omitempty"`
	Killed   []killedEntry `json:"killed"`
	Failed   []killedEntry `json:"failed,omitempty"`
	NotFound []string      `json:"not_found,omitempty"`
}

func runKill(cmd *cobra.Command, args []string) error {
	targets := flattenTargets(args)
	if len(targets) == 0 {
		return exitcode.InvalidInput("no targets given")
	}

	records, notFound := resolver().ResolveAll(targets)

	if !killJSON {
		for _, miss := range notFound {
			style.PrintWarning("no process found matching '%s'", miss)
		}
	}
	if len(records) == 0 {
		if killJSON {
			_ = output.PrintJSON(killOutput{
				Action: "kill", Success: false, Killed: []killedEntry{}, NotFound: notFound,
			})
		}
		return exitcode.ProcessNotFound(joinTargets(targets))
	}

	if killDryRun {
		return reportKillDryRun(records, notFound)
	}

	if promptNeeded(killJSON, killYes) {
		fmt.Printf("About to kill %d process%s:\n", len(records), style.Plural(len(records), "es"))
		for _, rec := range records {
			fmt.Println(listItem(rec))
		}
		if !confirm("Continue?") {
			fmt.Println(style.Dim.Render("Aborted."))
			return nil
		}
	}

	send := process.Kill
	verb := "Killed"
	if killGraceful {
		send = process.Terminate
		verb = "Terminated"
	}

	var killed, failed []killedEntry
	for _, rec := range records {
		entry := killedEntry{PID: rec.PID, Name: rec.Name}
		if err := send(rec.PID); err != nil {
			// A process that died before the signal landed is done
			// either way.
			if exitcode.IsKind(err, exitcode.KindProcessGone) {
				killed = append(killed, entry)
				if !killJSON {
					style.PrintSuccess("%s %s [PID %d] (already gone)", verb, rec.Name, rec.PID)
				}
				continue
			}
			entry.Error = err.Error()
			failed = append(failed, entry)
			if !killJSON {
				style.PrintError("could not kill %s [PID %d]: %v", rec.Name, rec.PID, err)
			}
			continue
		}
		killed = append(killed, entry)
		if !killJSON {
			style.PrintSuccess("%s %s [PID %d]", verb, rec.Name, rec.PID)
		}
	}

	if killJSON {
		if err := output.PrintJSON(killOutput{
			Action:   "kill",
			Success:  len(failed) == 0 && len(notFound) == 0,
			Graceful: killGraceful,
			Killed:   killed,
			Failed:   failed,
			NotFound: notFound,
		}); err != nil {
			return err
		}
	}

	if len(failed) > 0 {
		return exitcode.Newf(exitcode.KindSignal, "%d process%s could not be killed",
			len(failed), style.Plural(len(failed), "es"))
	}
	return nil
}

func reportKillDryRun(records []process.Record, notFound []string) error {
	if killJSON {
		entries := make([]killedEntry, 0, len(records))
		for _, rec := range records {
			entries = append(entries, killedEntry{PID: rec.PID, Name: rec.Name})
		}
		return output.PrintJSON(killOutput{
			Action:   "kill",
			Success:  len(notFound) == 0,
			DryRun:   true,
			Graceful: killGraceful,
			Killed:   entries,
			NotFound: notFound,
		})
	}
	fmt.Printf("Would kill %d process%s:\n", len(records), style.Plural(len(records), "es"))
	for _, rec := range records {
		fmt.Println(listItem(rec))
	}
	return nil
}
