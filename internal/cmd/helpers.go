package cmd

import (
	"fmt"
	"strings"

	"github.com/proc-cli/proc/internal/ports"
	"github.com/proc-cli/proc/internal/process"
	"github.com/proc-cli/proc/internal/style"
	"github.com/proc-cli/proc/internal/target"
	"github.com/proc-cli/proc/internal/ui"
)

// One provider of each kind per invocation. The process snapshotter in
// particular must be shared: CPU deltas only work across calls on the
// same instance.
var (
	sysProcs *process.SystemSnapshotter
	sysPorts *ports.SystemProvider
)

func procs() process.Snapshotter {
	if sysProcs == nil {
		sysProcs = process.NewSystemSnapshotter()
	}
	return sysProcs
}

func socks() ports.Provider {
	if sysPorts == nil {
		sysPorts = ports.NewSystemProvider()
	}
	return sysPorts
}

func resolver() *target.Resolver {
	return &target.Resolver{Procs: procs(), Socks: socks()}
}

// flattenTargets merges space-separated args and comma lists into one
// clean target list: `proc info node, :3000 1234` works as expected.
func flattenTargets(args []string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		out = append(out, target.ParseList(arg)...)
	}
	return out
}

// promptNeeded reports whether a destructive command should ask for
// confirmation. JSON mode is non-interactive: stdout must carry exactly
// one JSON document, so machine callers never see a prompt.
func promptNeeded(jsonOut, yes bool) bool {
	return !yes && !jsonOut
}

// confirm asks a y/N question on stdout and reads one line. Without a
// terminal on stdin it refuses: scripts must pass --yes.
func confirm(prompt string) bool {
	if !ui.CanPrompt() {
		style.PrintWarning("cannot prompt without a terminal; pass --yes to proceed")
		return false
	}
	fmt.Printf("%s [y/N]: ", prompt)
	var response string
	_, _ = fmt.Scanln(&response)
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

func joinTargets(targets []string) string {
	return strings.Join(targets, ", ")
}
