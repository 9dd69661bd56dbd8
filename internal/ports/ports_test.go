package ports

import "testing"

type fakeProvider struct {
	records []Record
	err     error
}

func (f *fakeProvider) Listening() ([]Record, error) {
	return f.records, f.err
}

func listeners() *fakeProvider {
	return &fakeProvider{records: []Record{
		{Port: 8080, Protocol: TCP, PID: 200, ProcessName: "caddy", Address: "0.0.0.0"},
		{Port: 3000, Protocol: TCP, PID: 100, ProcessName: "node", Address: "127.0.0.1"},
		{Port: 5353, Protocol: UDP, PID: 300, ProcessName: "avahi", Address: "0.0.0.0"},
		{Port: 3000, Protocol: UDP, PID: 100, ProcessName: "node", Address: "0.0.0.0"},
		{Port: 9000, Protocol: TCP, PID: 0, ProcessName: "unknown", Address: "::"},
	}}
}

func TestFindByPort(t *testing.T) {
	rec, err := FindByPort(listeners(), 8080)
	if err != nil {
		t.Fatalf("FindByPort() error = %v", err)
	}
	if rec == nil {
		t.Fatal("FindByPort(8080) = nil, want record")
	}
	if rec.PID != 200 || rec.ProcessName != "caddy" {
		t.Errorf("record = pid %d %q, want pid 200 caddy", rec.PID, rec.ProcessName)
	}
}

func TestFindByPort_PrefersTCP(t *testing.T) {
	rec, err := FindByPort(listeners(), 3000)
	if err != nil {
		t.Fatalf("FindByPort() error = %v", err)
	}
	if rec == nil || rec.Protocol != TCP {
		t.Errorf("port 3000 should resolve to the tcp listener, got %+v", rec)
	}
}

func TestFindByPort_UDPOnly(t *testing.T) {
	rec, err := FindByPort(listeners(), 5353)
	if err != nil {
		t.Fatalf("FindByPort() error = %v", err)
	}
	if rec == nil || rec.Protocol != UDP {
		t.Errorf("port 5353 should resolve to the udp listener, got %+v", rec)
	}
}

func TestFindByPort_Missing(t *testing.T) {
	rec, err := FindByPort(listeners(), 4444)
	if err != nil {
		t.Fatalf("FindByPort() error = %v", err)
	}
	if rec != nil {
		t.Errorf("FindByPort(4444) = %+v, want nil", rec)
	}
}

func TestForPID(t *testing.T) {
	recs, err := ForPID(listeners(), 100)
	if err != nil {
		t.Fatalf("ForPID() error = %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("ForPID(100) = %d records, want 2", len(recs))
	}
	// sorted by port then protocol
	if recs[0].Protocol != TCP || recs[1].Protocol != UDP {
		t.Errorf("expected tcp before udp on the same port, got %v then %v", recs[0].Protocol, recs[1].Protocol)
	}
}

func TestForPID_ZeroPidNeverMatches(t *testing.T) {
	recs, err := ForPID(listeners(), 0)
	if err != nil {
		t.Fatalf("ForPID() error = %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("ForPID(0) = %d records, want 0 (unowned sockets excluded)", len(recs))
	}
}

func TestRecord_Local(t *testing.T) {
	tests := []struct {
		addr string
		want bool
	}{
		{"127.0.0.1", true},
		{"127.1.2.3", true},
		{"::1", true},
		{"0.0.0.0", false},
		{"::", false},
		{"192.168.1.10", false},
	}

	for _, tt := range tests {
		r := Record{Address: tt.addr}
		if got := r.Local(); got != tt.want {
			t.Errorf("Local(%q) = %v, want %v", tt.addr, got, tt.want)
		}
		if got := r.Exposed(); got == tt.want {
			t.Errorf("Exposed(%q) = %v, want %v", tt.addr, got, !tt.want)
		}
	}
}
