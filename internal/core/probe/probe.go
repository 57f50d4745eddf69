// Package probe implements the probe/response correlator: it tracks
// in-flight ICMP and TCP probes and resolves them against inbound frames
// read by a single receiver loop.
package probe

import (
	"net"
	"time"

	"github.com/google/uuid"
)

// Kind discriminates the two probe flavors the correlator tracks.
type Kind int

const (
	KindICMPEcho Kind = iota
	KindTCPSyn
)

// ResultKind enumerates the ProbeResult variants from spec §3.
type ResultKind int

const (
	ResultEchoReply ResultKind = iota
	ResultDestUnreachable
	ResultRedirect
	ResultTimeExceeded
	ResultParamProblem
	ResultTCPSynAck
	ResultTCPRstAck
	ResultTimeout
)

// Result is the resolved outcome of a probe.
type Result struct {
	Kind        ResultKind
	Code        uint8 // ICMP error sub-code (DestUnreachable, Redirect, TimeExceeded, ParamProblem); zero otherwise
	RTT         time.Duration
	RemoteSeq   uint32 // TCP: remote's sequence number, for flow handoff
	RemoteMSS   uint16 // TCP: MSS option from SYN+ACK, if present
}

// Probe is an in-flight request record. Exactly one of the two identity
// tuples below is meaningful, selected by Kind.
type Probe struct {
	ID   uuid.UUID
	Dst  net.IP
	Kind Kind

	// ICMP identity
	EchoID  uint16
	EchoSeq uint16

	// TCP identity
	SrcIP   net.IP
	SrcPort uint16
	DstPort uint16

	StartTS time.Time
	Timeout time.Duration

	resultCh chan Result
}

// NewICMPProbe builds an unregistered probe for an ICMP echo exchange.
// StartTS is stamped here, not left for the caller, so armDeadline always
// sees a real send time instead of the zero time.Time (which time.Since
// would otherwise saturate to ~maxDuration, firing the deadline on the
// next scheduler tick).
func NewICMPProbe(dst net.IP, echoID, echoSeq uint16, timeout time.Duration) *Probe {
	return &Probe{
		ID:       uuid.New(),
		Dst:      dst,
		Kind:     KindICMPEcho,
		EchoID:   echoID,
		EchoSeq:  echoSeq,
		StartTS:  time.Now(),
		Timeout:  timeout,
		resultCh: make(chan Result, 1),
	}
}

// NewTCPProbe builds an unregistered probe for a TCP SYN exchange. See
// NewICMPProbe for why StartTS is stamped here rather than by the caller.
func NewTCPProbe(srcIP net.IP, srcPort uint16, dst net.IP, dstPort uint16, timeout time.Duration) *Probe {
	return &Probe{
		ID:       uuid.New(),
		Dst:      dst,
		Kind:     KindTCPSyn,
		SrcIP:    srcIP,
		SrcPort:  srcPort,
		DstPort:  dstPort,
		StartTS:  time.Now(),
		Timeout:  timeout,
		resultCh: make(chan Result, 1),
	}
}

// resolve delivers r to the single waiter. Only the correlator's receiver
// loop and its deadline clock call this. The first call wins; a later call
// (for example the deadline firing after a reply was already delivered)
// finds the one-slot channel full and is dropped without blocking, which
// is how later-arriving duplicates for an already-resolved probe are ignored.
func (p *Probe) resolve(r Result) {
	select {
	case p.resultCh <- r:
	default:
		// already resolved; duplicate ignored per spec §4.8
	}
}

// Await blocks until the probe resolves, either via a matched reply or
// the correlator's own deadline clock delivering Timeout.
func (p *Probe) Await() Result {
	return <-p.resultCh
}
