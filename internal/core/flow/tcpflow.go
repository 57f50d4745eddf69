// Package flow implements the TCP flow controller: a single half-open (or
// fully driven) TCP connection built directly on raw IPv4/TCP frames,
// advancing its own sequence/ack counters through the handshake and,
// optionally, payload exchange and teardown.
package flow

import (
	"context"
	"fmt"
	"math/rand"
	"net"
	"sync"
	"time"

	"neoagent/internal/core/lib/network/netraw"
	"neoagent/internal/core/probe"
	"neoagent/internal/pkg/logger"
)

// State is the flow's position in spec §4.9's state machine.
type State int

const (
	StateInit State = iota
	StateSynSent
	StateEstablished
	StateFinSent
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateSynSent:
		return "SYN_SENT"
	case StateEstablished:
		return "ESTABLISHED"
	case StateFinSent:
		return "FIN_SENT"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// Flow drives one TCP connection attempt over a shared raw socket and
// correlator. It owns its own next_ip_id/next_seq/next_ack counters, per
// spec §4.9 — these never cross flows.
type Flow struct {
	mu sync.Mutex

	sock  netraw.Sender
	corr  *probe.Correlator
	srcIP net.IP
	dstIP net.IP

	srcPort uint16
	dstPort uint16

	state State

	nextIPID uint16
	seq      uint32
	ack      uint32

	handshakeCompleted bool
	reset              bool
	remoteMSS          uint16

	timeout time.Duration

	cancel context.CancelFunc
}

// New builds a flow in state INIT. initialIPID seeds next_ip_id; the
// first transmitted packet uses initialIPID and next_ip_id becomes
// initialIPID+1 immediately after, per spec §4.9.
func New(sock netraw.Sender, corr *probe.Correlator, srcIP, dstIP net.IP, srcPort, dstPort uint16, initialIPID uint16, timeout time.Duration) *Flow {
	return &Flow{
		sock:     sock,
		corr:     corr,
		srcIP:    srcIP,
		dstIP:    dstIP,
		srcPort:  srcPort,
		dstPort:  dstPort,
		state:    StateInit,
		nextIPID: initialIPID,
		seq:      rand.Uint32(),
		timeout:  timeout,
	}
}

// State returns the flow's current state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// HandshakeCompleted reports whether a SYN+ACK was received and ACKed.
func (f *Flow) HandshakeCompleted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.handshakeCompleted
}

// Reset reports whether the peer answered with RST.
func (f *Flow) Reset() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reset
}

func (f *Flow) transmit(flags netraw.TCPFlags, payload []byte) error {
	ipID := f.nextIPID
	f.nextIPID++

	seg, err := netraw.BuildTCPSegment(f.srcIP, f.dstIP, netraw.TCPHeader{
		SourcePort:      f.srcPort,
		DestinationPort: f.dstPort,
		SequenceNumber:  f.seq,
		AckNumber:       f.ack,
		Flags:           flags,
		WindowSize:      64240,
	}, payload)
	if err != nil {
		return err
	}

	ipPacket, err := netraw.BuildIPv4Header(netraw.IPv4Header{
		TotalLength:    uint16(20 + len(seg)),
		Identification: ipID,
		Flags:          netraw.IPv4FlagDF,
		TTL:            64,
		Protocol:       netraw.ProtocolTCP,
		Source:         f.srcIP,
		Destination:    f.dstIP,
	})
	if err != nil {
		return err
	}

	return f.sock.Send(f.dstIP, append(ipPacket, seg...))
}

// Open transmits SYN, registers the handshake probe with the correlator,
// and blocks until SYN+ACK, RST, or timeout resolves it (spec §4.9's
// INIT -> SYN_SENT transition and its three SYN_SENT exits, collapsed
// into one synchronous call since the scanner drives one flow at a time
// per goroutine).
func (f *Flow) Open(ctx context.Context) error {
	f.mu.Lock()
	if f.state != StateInit {
		f.mu.Unlock()
		return fmt.Errorf("flow: Open called from state %s", f.state)
	}
	f.state = StateSynSent
	ctx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.mu.Unlock()

	p := probe.NewTCPProbe(f.srcIP, f.srcPort, f.dstIP, f.dstPort, f.timeout)
	f.corr.RegisterTCP(p)

	if err := f.transmit(netraw.TCPFlagSYN, nil); err != nil {
		f.closeListener()
		return fmt.Errorf("flow: send SYN: %w", err)
	}
	f.seq++ // SYN consumes one sequence number

	result := p.Await()

	f.mu.Lock()
	defer f.mu.Unlock()

	switch result.Kind {
	case probe.ResultTCPSynAck:
		f.ack = result.RemoteSeq + 1
		f.remoteMSS = result.RemoteMSS
		f.state = StateEstablished
		if err := f.transmit(netraw.TCPFlagACK, nil); err != nil {
			return fmt.Errorf("flow: send ACK: %w", err)
		}
		f.handshakeCompleted = true
		logger.Debugf("flow %s:%d -> %s:%d: handshake complete, remote mss=%d", f.srcIP, f.srcPort, f.dstIP, f.dstPort, f.remoteMSS)
		return nil
	case probe.ResultTCPRstAck:
		f.reset = true
		f.state = StateClosed
		f.closeListenerLocked()
		return nil
	case probe.ResultTimeout:
		f.state = StateClosed
		f.closeListenerLocked()
		return nil
	default:
		f.state = StateClosed
		f.closeListenerLocked()
		return fmt.Errorf("flow: unexpected probe result kind %d during handshake", result.Kind)
	}
}

// Send transmits payload as ACK+PSH data on an ESTABLISHED flow and
// advances seq by len(data) (spec §4.9).
func (f *Flow) Send(data []byte) error {
	f.mu.Lock()
	if f.state != StateEstablished {
		f.mu.Unlock()
		return fmt.Errorf("flow: Send called from state %s", f.state)
	}
	f.mu.Unlock()

	if err := f.transmit(netraw.TCPFlagACK|netraw.TCPFlagPSH, data); err != nil {
		return err
	}
	f.mu.Lock()
	f.seq += uint32(len(data))
	f.mu.Unlock()
	return nil
}

// Close transmits FIN+ACK if the flow is ESTABLISHED (from any other open
// state nothing is sent), then moves the flow to CLOSED and cancels its
// listener. It does not wait for the peer's ACK of the FIN. closeSocket is
// not acted on: the flow never closes the shared socket.
func (f *Flow) Close(closeSocket bool) error {
	f.mu.Lock()
	if f.state == StateClosed {
		f.mu.Unlock()
		return nil
	}
	wasEstablished := f.state == StateEstablished
	f.state = StateFinSent
	f.mu.Unlock()

	var sendErr error
	if wasEstablished {
		sendErr = f.transmit(netraw.TCPFlagFIN|netraw.TCPFlagACK, nil)
		f.mu.Lock()
		f.seq++
		f.mu.Unlock()
	}

	f.mu.Lock()
	f.state = StateClosed
	f.mu.Unlock()
	f.closeListener()

	return sendErr
}

// CloseForce cancels the listener (and, if requested, would close the
// shared socket — the scanner owns the socket lifecycle, so this flow
// never closes it itself) from any state, per spec §4.9's "any -> close(force)".
func (f *Flow) CloseForce() {
	f.mu.Lock()
	f.state = StateClosed
	f.mu.Unlock()
	f.closeListener()
}

func (f *Flow) closeListener() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closeListenerLocked()
}

func (f *Flow) closeListenerLocked() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}
