package alive

import (
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Timeout: 2 * time.Second, Interval: time.Second, Count: 4}, false},
		{"negative timeout", Config{Timeout: -1, Interval: 0, Count: 1}, true},
		{"negative interval", Config{Timeout: time.Second, Interval: -1, Count: 1}, true},
		{"zero count", Config{Timeout: time.Second, Interval: 0, Count: 0}, true},
		{"timeout less than interval", Config{Timeout: time.Second, Interval: 2 * time.Second, Count: 1}, true},
		{"zero timeout and interval is fine", Config{Timeout: 0, Interval: 0, Count: 1}, false},
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

func TestFinalizeStatsAllReplied(t *testing.T) {
	s := Stats{Dst: "10.0.0.1", Sent: 4, Received: 4}
	rtts := []time.Duration{10 * time.Millisecond, 30 * time.Millisecond, 20 * time.Millisecond}
	got := finalizeStats(s, rtts)

	if got.LossPct != 0 {
		t.Errorf("LossPct = %v, want 0", got.LossPct)
	}
	if !got.Success {
		t.Error("Success = false, want true")
	}
	if got.MinRTT != 10*time.Millisecond {
		t.Errorf("MinRTT = %v, want 10ms", got.MinRTT)
	}
	if got.MaxRTT != 30*time.Millisecond {
		t.Errorf("MaxRTT = %v, want 30ms", got.MaxRTT)
	}
	// (10+30+20)/3 = 20ms
	if got.AvgRTT != 20*time.Millisecond {
		t.Errorf("AvgRTT = %v, want 20ms", got.AvgRTT)
	}
}

func TestFinalizeStatsNoReplies(t *testing.T) {
	s := Stats{Dst: "10.0.0.2", Sent: 4, Received: 0}
	got := finalizeStats(s, nil)

	if got.LossPct != 100 {
		t.Errorf("LossPct = %v, want 100", got.LossPct)
	}
	if got.Success {
		t.Error("Success = true, want false")
	}
	if got.MinRTT != 0 || got.MaxRTT != 0 || got.AvgRTT != 0 {
		t.Errorf("RTT fields should stay zero with no replies, got %+v", got)
	}
}

func TestFinalizeStatsPartialLoss(t *testing.T) {
	s := Stats{Dst: "10.0.0.3", Sent: 4, Received: 3}
	got := finalizeStats(s, []time.Duration{time.Millisecond})
	// 1 lost of 4 sent = 25%
	if got.LossPct != 25 {
		t.Errorf("LossPct = %v, want 25", got.LossPct)
	}
}

func TestStatsRows(t *testing.T) {
	s := Stats{Dst: "10.0.0.1", Sent: 4, Received: 4, LossPct: 0, Success: true}
	rows := s.Rows()
	if len(rows) != 1 || len(rows[0]) != len(s.Headers()) {
		t.Fatalf("Rows() = %+v, want 1 row matching Headers() width", rows)
	}
	if rows[0][0] != "10.0.0.1" {
		t.Errorf("first cell = %q, want dst", rows[0][0])
	}
}
