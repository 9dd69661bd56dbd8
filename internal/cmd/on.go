package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/proc-cli/proc/internal/exitcode"
	"github.com/proc-cli/proc/internal/output"
	"github.com/proc-cli/proc/internal/ports"
	"github.com/proc-cli/proc/internal/process"
	"github.com/proc-cli/proc/internal/style"
)

var onCmd = &cobra.Command{
	Use:     "on TARGET[,TARGET...]",
	Aliases: []string{":"},
	GroupID: GroupDiscover,
	Short:   "Connect ports and processes in either direction",
	Long: `Answer "what is on port X" and "what ports does Y hold" with one verb.

A port target shows the process listening there. A name or pid target
shows the ports that process is listening on.

Examples:
  proc on :3000              # who is on port 3000
  proc on node               # what ports node holds
  proc on :3000,:5432,node   # mix freely`,
	Args: cobra.MinimumNArgs(1),
	RunE: runOn,
}

var (
	onIn   string
	onJSON bool
)

func init() {
	onCmd.Flags().StringVar(&onIn, "in", "", "Only processes working under DIR")
	onCmd.Flags().Lookup("in").NoOptDefVal = "."
	onCmd.Flags().BoolVar(&onJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(onCmd)
}

type onMatch struct {
	Target  string         `json:"target"`
	Process process.Record `json:"process"`
	Ports   []ports.Record `json:"ports"`
}

type onOutput struct {
	Action   string    `json:"action"`
	Success  bool      `json:"success"`
	Matches  []onMatch `json:"matches"`
	NotFound []string  `json:"not_found,omitempty"`
}

func runOn(cmd *cobra.Command, args []string) error {
	targets := flattenTargets(args)
	if len(targets) == 0 {
		return exitcode.InvalidInput("no targets given")
	}

	filter := process.Filter{}
	if onIn != "" {
		ff := filterFlags{in: onIn}
		built, err := ff.build()
		if err != nil {
			return err
		}
		filter = built
	}

	res := resolver()
	var matches []onMatch
	var notFound []string
	var firstErr error
	seen := make(map[uint32]struct{})

	for _, raw := range targets {
		records, err := res.Resolve(raw)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			notFound = append(notFound, raw)
			continue
		}
		for _, rec := range records {
			if !filter.Matches(rec) {
				continue
			}
			if _, dup := seen[rec.PID]; dup {
				continue
			}
			seen[rec.PID] = struct{}{}

			owned, err := res.PortsFor(rec.PID)
			if err != nil {
				return err
			}
			matches = append(matches, onMatch{Target: raw, Process: rec, Ports: owned})
		}
	}

	if onJSON {
		return output.PrintJSON(onOutput{
			Action:   "on",
			Success:  len(notFound) == 0 && len(matches) > 0,
			Matches:  matches,
			NotFound: notFound,
		})
	}

	for _, miss := range notFound {
		style.PrintWarning("nothing found for '%s'", miss)
	}
	if len(matches) == 0 {
		// Single-target misses keep their precise kind (port vs process).
		if len(targets) == 1 && firstErr != nil {
			return firstErr
		}
		return exitcode.ProcessNotFound(joinTargets(targets))
	}

	for _, m := range matches {
		fmt.Printf("%s %s [PID %s]\n",
			style.SuccessPrefix,
			style.Bold.Render(m.Process.Name),
			style.Accent.Render(strconv.FormatUint(uint64(m.Process.PID), 10)))
		if len(m.Ports) == 0 {
			fmt.Printf("  %s\n", style.Dim.Render("no listening ports"))
			continue
		}
		fmt.Printf("  listening on %s\n", portList(m.Ports))
	}
	return nil
}
