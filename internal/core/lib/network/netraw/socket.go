package netraw

import (
	"net"
	"time"
)

// SocketKind selects one of the two raw-socket flavors the probe engine
// builds: a pure-ICMP socket (kernel writes the IP header) or a
// IP_HDRINCL TCP socket (caller supplies the entire IP+TCP packet).
type SocketKind int

const (
	// RawICMP4 creates AF_INET/SOCK_RAW/IPPROTO_ICMP. The caller supplies
	// ICMP bytes only; the kernel prepends the IP header.
	RawICMP4 SocketKind = iota
	// RawTCP4 creates AF_INET/SOCK_RAW/IPPROTO_TCP with IP_HDRINCL set, so
	// the caller supplies the entire IP+TCP packet.
	RawTCP4
)

// RawSocket is a non-blocking raw IPv4 socket abstraction. Send submits a
// single datagram; Receive reads at most one frame per call, returning
// ErrTimeout when no frame arrived within the deadline without treating
// that as a hard error. Close releases the underlying file descriptor; a
// second Close call returns an error.
type RawSocket interface {
	Send(dst net.IP, packet []byte) error
	Receive(buf []byte, timeout time.Duration) (n int, from net.IP, err error)
	Close() error
}

// MaxFrameSize is the largest frame the receiver loop ever reads in one
// call — the maximum possible IPv4 total length.
const MaxFrameSize = 65535
