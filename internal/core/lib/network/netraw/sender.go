package netraw

import "net"

// Sender wraps a RawSocket for outbound frames only. Probe issuers depend
// on this narrower interface so tests can substitute a fake without also
// faking Receive/Close.
type Sender interface {
	Send(dst net.IP, packet []byte) error
}
