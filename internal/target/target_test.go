package target

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Target
	}{
		{"port", ":3000", Target{Kind: KindPort, Port: 3000}},
		{"port max", ":65535", Target{Kind: KindPort, Port: 65535}},
		{"port zero", ":0", Target{Kind: KindPort, Port: 0}},
		{"pid", "1234", Target{Kind: KindPid, PID: 1234}},
		{"pid with spaces", "  1234  ", Target{Kind: KindPid, PID: 1234}},
		{"name", "node", Target{Kind: KindName, Name: "node"}},
		{"name with digits", "node2", Target{Kind: KindName, Name: "node2"}},
		{"colon non-numeric falls through to name", ":abc", Target{Kind: KindName, Name: ":abc"}},
		{"colon port overflow falls through to name", ":99999", Target{Kind: KindName, Name: ":99999"}},
		{"bare colon is a name", ":", Target{Kind: KindName, Name: ":"}},
		{"digits too big for pid become a name", "99999999999", Target{Kind: KindName, Name: "99999999999"}},
		{"negative number is a name", "-5", Target{Kind: KindName, Name: "-5"}},
		{"empty", "", Target{Kind: KindName, Name: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.input); got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single", "node", []string{"node"}},
		{"multiple", "node,1234,:3000", []string{"node", "1234", ":3000"}},
		{"whitespace trimmed", " node , 1234 ", []string{"node", "1234"}},
		{"empty entries dropped", "node,,1234,", []string{"node", "1234"}},
		{"all empty", ",,,", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseList(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseList(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTarget_String(t *testing.T) {
	tests := []struct {
		target Target
		want   string
	}{
		{Target{Kind: KindPort, Port: 3000}, ":3000"},
		{Target{Kind: KindPid, PID: 42}, "42"},
		{Target{Kind: KindName, Name: "node"}, "node"},
	}

	for _, tt := range tests {
		if got := tt.target.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
