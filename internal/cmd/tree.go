package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/proc-cli/proc/internal/output"
	"github.com/proc-cli/proc/internal/process"
	"github.com/proc-cli/proc/internal/style"
)

var treeCmd = &cobra.Command{
	Use:     "tree [TARGET]",
	Aliases: []string{"t"},
	GroupID: GroupDiscover,
	Short:   "Show process trees",
	Long: `Show parent/child process relationships.

Without a target, prints the whole forest. With a target, prints each
matching process and its descendants. --ancestors walks the other way,
from the root of the tree down to the target.

Examples:
  proc tree                   # everything
  proc tree node              # node and its children
  proc tree 1234 --ancestors  # how pid 1234 came to exist
  proc tree --min-cpu 20      # subtrees of busy processes`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTree,
}

var (
	treeAncestors bool
	treeDepth     int
	treeCompact   bool
	treeFilters   filterFlags
	treeJSON      bool
)

func init() {
	treeCmd.Flags().BoolVar(&treeAncestors, "ancestors", false, "Show the chain from root to target")
	treeCmd.Flags().IntVar(&treeDepth, "depth", 10, "Maximum tree depth")
	treeCmd.Flags().BoolVar(&treeCompact, "compact", false, "PID-only nodes")
	treeFilters.registerThresholds(treeCmd)
	treeCmd.Flags().BoolVar(&treeJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(treeCmd)
}

// ancestorGuard caps the parent walk; a ppid cycle would otherwise
// loop forever.
const ancestorGuard = 100

type treeNode struct {
	process.Record
	Children []*treeNode `json:"children,omitempty"`
}

type treeOutput struct {
	Action  string      `json:"action"`
	Success bool        `json:"success"`
	Trees   []*treeNode `json:"trees"`
}

// treeIndex holds the snapshot reshaped for tree walks.
type treeIndex struct {
	byPid    map[uint32]process.Record
	children map[uint32][]uint32 // ppid -> child pids, sorted
}

func indexSnapshot(records []process.Record) *treeIndex {
	idx := &treeIndex{
		byPid:    make(map[uint32]process.Record, len(records)),
		children: make(map[uint32][]uint32),
	}
	for _, rec := range records {
		idx.byPid[rec.PID] = rec
		if rec.ParentPID != 0 {
			idx.children[rec.ParentPID] = append(idx.children[rec.ParentPID], rec.PID)
		}
	}
	for _, kids := range idx.children {
		sort.Slice(kids, func(i, j int) bool { return kids[i] < kids[j] })
	}
	return idx
}

// roots returns pids with no visible parent, sorted.
func (idx *treeIndex) roots() []uint32 {
	var out []uint32
	for pid, rec := range idx.byPid {
		if rec.ParentPID == 0 {
			out = append(out, pid)
			continue
		}
		if _, ok := idx.byPid[rec.ParentPID]; !ok {
			out = append(out, pid)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// subtree builds the descendant tree for a pid. visited guards against
// ppid cycles in a torn snapshot.
func (idx *treeIndex) subtree(pid uint32, depth int, visited map[uint32]bool) *treeNode {
	rec, ok := idx.byPid[pid]
	if !ok || visited[pid] {
		return nil
	}
	visited[pid] = true
	node := &treeNode{Record: rec}
	if depth <= 1 {
		return node
	}
	for _, child := range idx.children[pid] {
		if sub := idx.subtree(child, depth-1, visited); sub != nil {
			node.Children = append(node.Children, sub)
		}
	}
	return node
}

// ancestry builds the root-to-target chain as a nested single-child tree.
func (idx *treeIndex) ancestry(rec process.Record) *treeNode {
	chain := []process.Record{rec}
	cur := rec
	for i := 0; i < ancestorGuard; i++ {
		parent, ok := idx.byPid[cur.ParentPID]
		if !ok || cur.ParentPID == 0 {
			break
		}
		chain = append(chain, parent)
		cur = parent
	}

	// chain is target-first; nest it root-first.
	node := &treeNode{Record: chain[0]}
	for _, rec := range chain[1:] {
		node = &treeNode{Record: rec, Children: []*treeNode{node}}
	}
	return node
}

func runTree(cmd *cobra.Command, args []string) error {
	filter, err := treeFilters.build()
	if err != nil {
		return err
	}

	snapshot, err := procs().Snapshot()
	if err != nil {
		return err
	}
	idx := indexSnapshot(snapshot)

	var highlight map[uint32]bool // targets highlighted in ancestor output
	var trees []*treeNode

	switch {
	case len(args) == 1 && treeAncestors:
		records, err := resolver().Resolve(args[0])
		if err != nil {
			return err
		}
		highlight = highlightPids(records)
		for _, rec := range records {
			trees = append(trees, idx.ancestry(rec))
		}

	case len(args) == 1:
		records, err := resolver().Resolve(args[0])
		if err != nil {
			return err
		}
		visited := make(map[uint32]bool)
		for _, rec := range records {
			if node := idx.subtree(rec.PID, treeDepth, visited); node != nil {
				trees = append(trees, node)
			}
		}

	case filterActive(filter):
		// With filters but no target, each matching process roots its
		// own subtree.
		visited := make(map[uint32]bool)
		for _, rec := range process.Apply(snapshot, filter) {
			if node := idx.subtree(rec.PID, treeDepth, visited); node != nil {
				trees = append(trees, node)
			}
		}

	default:
		visited := make(map[uint32]bool)
		for _, pid := range idx.roots() {
			if node := idx.subtree(pid, treeDepth, visited); node != nil {
				trees = append(trees, node)
			}
		}
	}

	if treeJSON {
		return output.PrintJSON(treeOutput{Action: "tree", Success: true, Trees: trees})
	}

	if len(trees) == 0 {
		fmt.Println(style.Dim.Render("No matching processes found."))
		return nil
	}
	var sb strings.Builder
	for i, node := range trees {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(treeLabel(node.Record, highlight))
		sb.WriteString("\n")
		renderChildren(&sb, node, "", highlight)
	}
	fmt.Print(sb.String())
	return nil
}

func filterActive(f process.Filter) bool {
	return f.MinCPU > 0 || f.MinMem > 0 || f.Status != ""
}

// highlightPids collects the pids of resolved targets so every match
// keeps its highlight when a name target resolves to several processes.
func highlightPids(records []process.Record) map[uint32]bool {
	out := make(map[uint32]bool, len(records))
	for _, rec := range records {
		out[rec.PID] = true
	}
	return out
}

func renderChildren(sb *strings.Builder, node *treeNode, prefix string, highlight map[uint32]bool) {
	for i, child := range node.Children {
		connector, extension := "├─ ", "│  "
		if i == len(node.Children)-1 {
			connector, extension = "└─ ", "   "
		}
		sb.WriteString(prefix)
		sb.WriteString(style.Dim.Render(connector))
		sb.WriteString(treeLabel(child.Record, highlight))
		sb.WriteString("\n")
		renderChildren(sb, child, prefix+extension, highlight)
	}
}

func treeLabel(rec process.Record, highlight map[uint32]bool) string {
	pid := strconv.FormatUint(uint64(rec.PID), 10)
	if treeCompact {
		return style.Accent.Render("[" + pid + "]")
	}
	name := rec.Name
	if highlight[rec.PID] {
		name = style.Success.Render(name)
	} else {
		name = style.Bold.Render(name)
	}
	return fmt.Sprintf("%s [%s] %s", name, style.Accent.Render(pid),
		style.Dim.Render(fmt.Sprintf("%.1f%% %.1fMB", rec.CPUPercent, rec.MemoryMB)))
}
