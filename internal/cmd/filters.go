package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/proc-cli/proc/internal/exitcode"
	"github.com/proc-cli/proc/internal/process"
)

// filterFlags is the filter predicate set shared by list, by, and in.
type filterFlags struct {
	in     string
	path   string
	minCPU float64
	minMem float64
	status string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.in, "in", "", "Only processes working under DIR")
	cmd.Flags().Lookup("in").NoOptDefVal = "."
	cmd.Flags().StringVar(&f.path, "path", "", "Only processes whose executable is under EXE")
	f.registerThresholds(cmd)
}

// registerThresholds adds the subset that also applies to tree.
func (f *filterFlags) registerThresholds(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.minCPU, "min-cpu", 0, "Minimum CPU percent")
	cmd.Flags().Float64Var(&f.minMem, "min-mem", 0, "Minimum memory in MB")
	cmd.Flags().StringVar(&f.status, "status", "", "Process status (running, sleeping, ...)")
}

// build resolves relative directories against the current working
// directory and produces the process filter.
func (f *filterFlags) build() (process.Filter, error) {
	filter := process.Filter{
		MinCPU: f.minCPU,
		MinMem: f.minMem,
		Status: f.status,
	}
	if f.in != "" {
		abs, err := filepath.Abs(f.in)
		if err != nil {
			return filter, exitcode.Wrapf(exitcode.KindInvalidInput, err, "resolving directory %q", f.in)
		}
		filter.Dir = abs
	}
	if f.path != "" {
		abs, err := filepath.Abs(f.path)
		if err != nil {
			return filter, exitcode.Wrapf(exitcode.KindInvalidInput, err, "resolving path %q", f.path)
		}
		filter.ExePath = abs
	}
	return filter, nil
}

// sortFlags is the sort/limit pair shared by the listing commands.
type sortFlags struct {
	key   string
	limit int
}

func (s *sortFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.key, "sort", "", "Sort by cpu, mem, pid, or name (default cpu)")
	cmd.Flags().IntVar(&s.limit, "limit", 0, "Show at most N processes")
}

// resolve applies config defaults for flags the user did not set and
// validates the sort key.
func (s *sortFlags) resolve(cmd *cobra.Command) (string, int, error) {
	key := s.key
	if !cmd.Flags().Changed("sort") || key == "" {
		key = cfg.List.Sort
	}
	switch key {
	case "cpu", "mem", "pid", "name":
	default:
		return "", 0, exitcode.Newf(exitcode.KindInvalidInput,
			"invalid sort key %q (expected cpu, mem, pid, or name)", key)
	}

	limit := s.limit
	if !cmd.Flags().Changed("limit") && cfg.List.Limit > 0 {
		limit = cfg.List.Limit
	}
	return key, limit, nil
}
