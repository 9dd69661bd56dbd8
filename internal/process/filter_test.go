package process

import (
	"testing"
)

func sample() []Record {
	return []Record{
		{PID: 100, Name: "node", Command: "node server.js", Cwd: "/home/dev/api", CPUPercent: 45.2, MemoryMB: 312, Status: StatusRunning},
		{PID: 200, Name: "postgres", Command: "postgres -D /var/lib/pg", Cwd: "/var/lib/pg", CPUPercent: 2.1, MemoryMB: 890, Status: StatusSleeping},
		{PID: 300, Name: "cargo", Command: "cargo build --release", Cwd: "/home/dev/api/sub", ExePath: "/usr/bin/cargo", CPUPercent: 97.5, MemoryMB: 1200, Status: StatusRunning},
		{PID: 400, Name: "bash", Command: "", Cwd: "", CPUPercent: 0, MemoryMB: 4, Status: StatusSleeping},
	}
}

func TestMatchName(t *testing.T) {
	tests := []struct {
		name    string
		rec     Record
		pattern string
		want    bool
	}{
		{"exact name", Record{Name: "node"}, "node", true},
		{"substring of name", Record{Name: "postgres"}, "gres", true},
		{"case insensitive", Record{Name: "Node"}, "NODE", true},
		{"matches command line", Record{Name: "node", Command: "node server.js"}, "server.js", true},
		{"no match", Record{Name: "bash", Command: "bash -l"}, "zsh", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchName(tt.rec, tt.pattern); got != tt.want {
				t.Errorf("MatchName(%q) = %v, want %v", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestApply_Dir(t *testing.T) {
	got := Apply(sample(), Filter{Dir: "/home/dev/api"})
	if len(got) != 2 {
		t.Fatalf("filtered = %d records, want 2", len(got))
	}
	if got[0].PID != 100 || got[1].PID != 300 {
		t.Errorf("pids = %d, %d, want 100, 300", got[0].PID, got[1].PID)
	}
}

func TestApply_DirNoPartialComponentMatch(t *testing.T) {
	recs := []Record{{PID: 1, Name: "x", Cwd: "/home/dev/api-v2"}}
	if got := Apply(recs, Filter{Dir: "/home/dev/api"}); len(got) != 0 {
		t.Errorf("'/home/dev/api-v2' should not match dir '/home/dev/api'")
	}
}

func TestApply_EmptyCwdNeverMatchesDir(t *testing.T) {
	got := Apply(sample(), Filter{Dir: "/"})
	for _, r := range got {
		if r.Cwd == "" {
			t.Errorf("pid %d with empty cwd matched dir filter", r.PID)
		}
	}
}

func TestApply_Thresholds(t *testing.T) {
	got := Apply(sample(), Filter{MinCPU: 40})
	if len(got) != 2 {
		t.Fatalf("min-cpu filter = %d records, want 2", len(got))
	}

	got = Apply(sample(), Filter{MinMem: 500})
	if len(got) != 2 {
		t.Fatalf("min-mem filter = %d records, want 2", len(got))
	}

	got = Apply(sample(), Filter{MinCPU: 40, MinMem: 500})
	if len(got) != 1 || got[0].PID != 300 {
		t.Fatalf("combined filter = %v, want just pid 300", got)
	}
}

func TestApply_Status(t *testing.T) {
	got := Apply(sample(), Filter{Status: "sleep"})
	if len(got) != 2 {
		t.Fatalf("status filter = %d records, want 2 (prefix match)", len(got))
	}
	got = Apply(sample(), Filter{Status: "running"})
	if len(got) != 2 {
		t.Fatalf("status filter = %d records, want 2", len(got))
	}
}

func TestApply_ExePath(t *testing.T) {
	got := Apply(sample(), Filter{ExePath: "/usr/bin"})
	if len(got) != 1 || got[0].PID != 300 {
		t.Fatalf("exe filter = %v, want just pid 300", got)
	}
}

func TestSortBy(t *testing.T) {
	tests := []struct {
		key  string
		want []uint32
	}{
		{"cpu", []uint32{300, 100, 200, 400}},
		{"mem", []uint32{300, 200, 100, 400}},
		{"pid", []uint32{100, 200, 300, 400}},
		{"name", []uint32{400, 300, 100, 200}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			recs := sample()
			SortBy(recs, tt.key)
			for i, want := range tt.want {
				if recs[i].PID != want {
					t.Errorf("position %d = pid %d, want %d", i, recs[i].PID, want)
				}
			}
		})
	}
}

func TestSortBy_UnknownKeyKeepsOrder(t *testing.T) {
	recs := sample()
	SortBy(recs, "bogus")
	for i, want := range []uint32{100, 200, 300, 400} {
		if recs[i].PID != want {
			t.Errorf("position %d = pid %d, want %d", i, recs[i].PID, want)
		}
	}
}

func TestLimit(t *testing.T) {
	recs := sample()
	if got := Limit(recs, 2); len(got) != 2 {
		t.Errorf("Limit(2) = %d records, want 2", len(got))
	}
	if got := Limit(recs, 0); len(got) != 4 {
		t.Errorf("Limit(0) = %d records, want all 4", len(got))
	}
	if got := Limit(recs, 10); len(got) != 4 {
		t.Errorf("Limit(10) = %d records, want all 4", len(got))
	}
}
