package flow

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"neoagent/internal/core/lib/network/netraw"
	"neoagent/internal/core/probe"
)

// fakeSender records every packet handed to Send and never errors.
type fakeSender struct {
	mu      sync.Mutex
	packets [][]byte
}

func (s *fakeSender) Send(dst net.IP, packet []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.packets = append(s.packets, append([]byte{}, packet...))
	return nil
}

func (s *fakeSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.packets)
}

func TestFlowOpenHandshakeSuccess(t *testing.T) {
	corr := probe.NewCorrelator()
	defer corr.Close()

	srcIP := net.ParseIP("10.0.0.1")
	dstIP := net.ParseIP("10.0.0.2")
	sender := &fakeSender{}

	f := New(sender, corr, srcIP, dstIP, 40000, 443, 1000, time.Second)
	if f.State() != StateInit {
		t.Fatalf("initial state = %s, want INIT", f.State())
	}

	done := make(chan error, 1)
	go func() { done <- f.Open(context.Background()) }()

	// Wait for the SYN to be sent and the probe to register, then reply.
	deadline := time.After(time.Second)
	for sender.count() < 1 {
		select {
		case <-deadline:
			t.Fatal("SYN was never sent")
		case <-time.After(time.Millisecond):
		}
	}

	segHdr := netraw.TCPHeader{
		SourcePort:      443,
		DestinationPort: 40000,
		SequenceNumber:  5000,
		Flags:           netraw.TCPFlagSYN | netraw.TCPFlagACK,
	}
	seg, err := netraw.BuildTCPSegment(dstIP, srcIP, segHdr, nil)
	if err != nil {
		t.Fatalf("BuildTCPSegment: %v", err)
	}
	ipHdr := netraw.IPv4Header{TotalLength: uint16(20 + len(seg)), TTL: 64, Protocol: netraw.ProtocolTCP, Source: dstIP, Destination: srcIP}
	ipBuf, err := netraw.BuildIPv4Header(ipHdr)
	if err != nil {
		t.Fatalf("BuildIPv4Header: %v", err)
	}
	corr.HandleFrame(netraw.Frame{From: dstIP, Data: append(ipBuf, seg...)})

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Open returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Open never returned")
	}

	if f.State() != StateEstablished {
		t.Errorf("state = %s, want ESTABLISHED", f.State())
	}
	if !f.HandshakeCompleted() {
		t.Error("HandshakeCompleted = false, want true")
	}
	if f.Reset() {
		t.Error("Reset = true, want false")
	}
	// SYN then ACK.
	if sender.count() != 2 {
		t.Errorf("packets sent = %d, want 2 (SYN, ACK)", sender.count())
	}
}

func TestFlowOpenHandshakeReset(t *testing.T) {
	corr := probe.NewCorrelator()
	defer corr.Close()

	srcIP := net.ParseIP("10.0.0.1")
	dstIP := net.ParseIP("10.0.0.3")
	sender := &fakeSender{}
	f := New(sender, corr, srcIP, dstIP, 40001, 80, 1, time.Second)

	done := make(chan error, 1)
	go func() { done <- f.Open(context.Background()) }()

	deadline := time.After(time.Second)
	for sender.count() < 1 {
		select {
		case <-deadline:
			t.Fatal("SYN was never sent")
		case <-time.After(time.Millisecond):
		}
	}

	segHdr := netraw.TCPHeader{SourcePort: 80, DestinationPort: 40001, Flags: netraw.TCPFlagRST}
	seg, err := netraw.BuildTCPSegment(dstIP, srcIP, segHdr, nil)
	if err != nil {
		t.Fatalf("BuildTCPSegment: %v", err)
	}
	ipHdr := netraw.IPv4Header{TotalLength: uint16(20 + len(seg)), TTL: 64, Protocol: netraw.ProtocolTCP, Source: dstIP, Destination: srcIP}
	ipBuf, err := netraw.BuildIPv4Header(ipHdr)
	if err != nil {
		t.Fatalf("BuildIPv4Header: %v", err)
	}
	corr.HandleFrame(netraw.Frame{From: dstIP, Data: append(ipBuf, seg...)})

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Open returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Open never returned")
	}

	if f.State() != StateClosed {
		t.Errorf("state = %s, want CLOSED", f.State())
	}
	if !f.Reset() {
		t.Error("Reset = false, want true")
	}
	if f.HandshakeCompleted() {
		t.Error("HandshakeCompleted = true, want false")
	}
}

func TestFlowOpenTimeout(t *testing.T) {
	corr := probe.NewCorrelator()
	defer corr.Close()

	f := New(&fakeSender{}, corr, net.ParseIP("10.0.0.1"), net.ParseIP("10.0.0.9"), 40002, 443, 1, 20*time.Millisecond)

	if err := f.Open(context.Background()); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if f.State() != StateClosed {
		t.Errorf("state = %s, want CLOSED after timeout", f.State())
	}
	if f.HandshakeCompleted() || f.Reset() {
		t.Error("neither HandshakeCompleted nor Reset should be true after a timeout")
	}
}

func TestFlowOpenRejectsReopen(t *testing.T) {
	corr := probe.NewCorrelator()
	defer corr.Close()

	f := New(&fakeSender{}, corr, net.ParseIP("10.0.0.1"), net.ParseIP("10.0.0.9"), 40003, 443, 1, 10*time.Millisecond)
	if err := f.Open(context.Background()); err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if err := f.Open(context.Background()); err == nil {
		t.Error("second Open from a non-INIT state should return an error")
	}
}

func TestFlowSendRejectsNonEstablished(t *testing.T) {
	corr := probe.NewCorrelator()
	defer corr.Close()

	f := New(&fakeSender{}, corr, net.ParseIP("10.0.0.1"), net.ParseIP("10.0.0.9"), 40004, 443, 1, time.Second)
	if err := f.Send([]byte("x")); err == nil {
		t.Error("Send before handshake should fail")
	}
}

func TestFlowCloseIsIdempotent(t *testing.T) {
	corr := probe.NewCorrelator()
	defer corr.Close()

	f := New(&fakeSender{}, corr, net.ParseIP("10.0.0.1"), net.ParseIP("10.0.0.9"), 40005, 443, 1, 10*time.Millisecond)
	_ = f.Open(context.Background())
	if err := f.Close(false); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := f.Close(false); err != nil {
		t.Fatalf("second Close (already CLOSED) should be a no-op, got: %v", err)
	}
}
