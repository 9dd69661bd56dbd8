package cmd

import (
	"testing"
	"time"

	"github.com/proc-cli/proc/internal/process"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{32 * time.Second, "32s"},
		{5 * time.Minute, "5m"},
		{59*time.Minute + 59*time.Second, "59m"},
		{2 * time.Hour, "2h"},
		{2*time.Hour + 10*time.Minute, "2h 10m"},
		{3*24*time.Hour + 4*time.Hour, "3d 4h"},
		{7 * 24 * time.Hour, "7d"},
		{-5 * time.Second, "0s"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestUptime_UnknownStartTime(t *testing.T) {
	if got := uptime(process.Record{}); got != "-" {
		t.Errorf("uptime without start time = %q, want -", got)
	}
}

func TestPromptNeeded(t *testing.T) {
	tests := []struct {
		name    string
		jsonOut bool
		yes     bool
		want    bool
	}{
		{"interactive default", false, false, true},
		{"yes skips prompt", false, true, false},
		// JSON mode is non-interactive: stdout carries exactly one
		// JSON document, never prompt text.
		{"json skips prompt", true, false, false},
		{"json with yes", true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := promptNeeded(tt.jsonOut, tt.yes); got != tt.want {
				t.Errorf("promptNeeded(json=%v, yes=%v) = %v, want %v", tt.jsonOut, tt.yes, got, tt.want)
			}
		})
	}
}

func TestFlattenTargets(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"single", []string{"node"}, []string{"node"}},
		{"comma list", []string{"node,:3000"}, []string{"node", ":3000"}},
		{"space separated", []string{"node", ":3000"}, []string{"node", ":3000"}},
		{"mixed with stray commas", []string{"node,", ",:3000", "1234"}, []string{"node", ":3000", "1234"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := flattenTargets(tt.args)
			if len(got) != len(tt.want) {
				t.Fatalf("flattenTargets(%v) = %v, want %v", tt.args, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("flattenTargets(%v)[%d] = %q, want %q", tt.args, i, got[i], tt.want[i])
				}
			}
		})
	}
}
