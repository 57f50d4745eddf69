// Package synscan implements the TCP SYN half-open scanner (spec §4.11):
// per-(host,port) handshake attempts under a bounded semaphore, aggregated
// into an open-port report.
package synscan

import "fmt"

// Report is spec §4.11's {dst -> {port -> true}} aggregate.
type Report struct {
	OpenPorts map[string]map[int]bool
}

// PortRow is one open-port finding, used only for tabular rendering.
type PortRow struct {
	Dst  string
	Port int
}

func (PortRow) Headers() []string { return []string{"Destination", "Port", "State"} }

func (r PortRow) Rows() [][]string {
	return [][]string{{r.Dst, fmt.Sprintf("%d", r.Port), "open"}}
}

// Rows flattens the report into tabular rows for the console reporter.
func (rep Report) Rows() []PortRow {
	var rows []PortRow
	for dst, ports := range rep.OpenPorts {
		for port, open := range ports {
			if open {
				rows = append(rows, PortRow{Dst: dst, Port: port})
			}
		}
	}
	return rows
}
