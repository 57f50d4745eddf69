package synscan

import "testing"

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid range", Config{LoPort: 1, HiPort: 1024, Concurrency: 10}, false},
		{"single port", Config{LoPort: 80, HiPort: 80, Concurrency: 1}, false},
		{"lo below 1", Config{LoPort: 0, HiPort: 100, Concurrency: 1}, true},
		{"hi above 65535", Config{LoPort: 1, HiPort: 65536, Concurrency: 1}, true},
		{"lo greater than hi", Config{LoPort: 100, HiPort: 1, Concurrency: 1}, true},
		{"zero concurrency", Config{LoPort: 1, HiPort: 100, Concurrency: 0}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.cfg.Validate()
			if (err != nil) != c.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, c.wantErr)
			}
		})
	}
}

func TestReportRows(t *testing.T) {
	rep := Report{OpenPorts: map[string]map[int]bool{
		"10.0.0.1": {22: true, 80: true},
		"10.0.0.2": {443: false},
	}}
	rows := rep.Rows()
	if len(rows) != 2 {
		t.Fatalf("Rows() returned %d rows, want 2 (443 is marked closed and must be excluded)", len(rows))
	}
	for _, r := range rows {
		if r.Dst == "10.0.0.2" {
			t.Errorf("unexpected row for 10.0.0.2 with a false open flag: %+v", r)
		}
	}
}

func TestPortRowTabularData(t *testing.T) {
	r := PortRow{Dst: "10.0.0.1", Port: 22}
	rows := r.Rows()
	if len(rows) != 1 || len(rows[0]) != len(r.Headers()) {
		t.Fatalf("Rows() = %+v, want 1 row matching Headers() width", rows)
	}
	if rows[0][2] != "open" {
		t.Errorf("state column = %q, want \"open\"", rows[0][2])
	}
}
