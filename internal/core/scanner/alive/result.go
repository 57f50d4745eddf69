// Package alive implements the ICMP ping manager (spec §4.10): sequenced
// echo requests per destination with sent/received/loss statistics.
package alive

import (
	"fmt"
	"time"
)

// Stats is one destination's ping run outcome.
type Stats struct {
	Dst      string        `json:"dst"`
	Sent     int           `json:"sent"`
	Received int           `json:"received"`
	LossPct  float64       `json:"loss_pct"`
	Success  bool          `json:"success"`
	MinRTT   time.Duration `json:"min_rtt,omitempty"`
	MaxRTT   time.Duration `json:"max_rtt,omitempty"`
	AvgRTT   time.Duration `json:"avg_rtt,omitempty"`
}

// Headers implements reporter.TabularData.
func (Stats) Headers() []string {
	return []string{"Destination", "Sent", "Received", "Loss%", "Min", "Avg", "Max", "Alive"}
}

// Rows implements reporter.TabularData.
func (s Stats) Rows() [][]string {
	alive := "NO"
	if s.Success {
		alive = "YES"
	}
	return [][]string{{
		s.Dst,
		fmt.Sprintf("%d", s.Sent),
		fmt.Sprintf("%d", s.Received),
		fmt.Sprintf("%.1f", s.LossPct),
		s.MinRTT.String(),
		s.AvgRTT.String(),
		s.MaxRTT.String(),
		alive,
	}}
}
