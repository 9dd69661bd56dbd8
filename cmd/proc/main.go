// Command proc is a semantic process manager: list, inspect, kill,
// stop, and recover processes by name, pid, or :port.
package main

import (
	"os"

	"github.com/proc-cli/proc/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
