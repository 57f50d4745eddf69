package probe

import (
	"net"
	"testing"
	"time"

	"neoagent/internal/core/lib/network/netraw"
)

func buildFrame(t *testing.T, src, dst net.IP, protocol uint8, l4 []byte) netraw.Frame {
	t.Helper()
	hdr := netraw.IPv4Header{
		TotalLength: uint16(20 + len(l4)),
		TTL:         64,
		Protocol:    protocol,
		Source:      src,
		Destination: dst,
	}
	ipBuf, err := netraw.BuildIPv4Header(hdr)
	if err != nil {
		t.Fatalf("BuildIPv4Header: %v", err)
	}
	return netraw.Frame{From: src, Data: append(ipBuf, l4...)}
}

func TestCorrelatorResolvesICMPEchoReply(t *testing.T) {
	c := NewCorrelator()
	defer c.Close()

	remote := net.ParseIP("203.0.113.1")
	local := net.ParseIP("203.0.113.2")

	p := NewICMPProbe(remote, 0x42, 1, time.Second)
	c.RegisterICMP(p)

	reply := netraw.BuildICMPEchoRequest(0x42, 1, nil)
	reply[0] = netraw.ICMPTypeEchoReply
	// recompute checksum for the mutated type byte
	reply[2], reply[3] = 0, 0
	sum := netraw.Checksum(reply)
	reply[2] = byte(sum >> 8)
	reply[3] = byte(sum)

	c.HandleFrame(buildFrame(t, remote, local, netraw.ProtocolICMP, reply))

	select {
	case r := <-p.resultCh:
		if r.Kind != ResultEchoReply {
			t.Errorf("result kind = %v, want ResultEchoReply", r.Kind)
		}
	case <-time.After(time.Second):
		t.Fatal("probe never resolved")
	}
}

func TestCorrelatorTakeICMPIsOneShot(t *testing.T) {
	c := NewCorrelator()
	defer c.Close()

	remote := net.ParseIP("203.0.113.1")
	p := NewICMPProbe(remote, 7, 1, time.Second)
	c.RegisterICMP(p)

	key := icmpKey{dst: remote.String(), echoID: 7, echoSeq: 1}
	if _, ok := c.takeICMP(key); !ok {
		t.Fatal("expected first takeICMP to find the probe")
	}
	if _, ok := c.takeICMP(key); ok {
		t.Error("second takeICMP should find nothing — probe already claimed")
	}
}

func TestCorrelatorResolvesTCPSynAck(t *testing.T) {
	c := NewCorrelator()
	defer c.Close()

	local := net.ParseIP("10.0.0.1")
	remote := net.ParseIP("10.0.0.2")

	p := NewTCPProbe(local, 40000, remote, 443, time.Second)
	c.RegisterTCP(p)

	segHdr := netraw.TCPHeader{
		SourcePort:      443,
		DestinationPort: 40000,
		SequenceNumber:  999,
		Flags:           netraw.TCPFlagSYN | netraw.TCPFlagACK,
		WindowSize:      65535,
		Options:         []netraw.TCPOption{netraw.NewMSSOption(1400)},
	}
	seg, err := netraw.BuildTCPSegment(remote, local, segHdr, nil)
	if err != nil {
		t.Fatalf("BuildTCPSegment: %v", err)
	}

	c.HandleFrame(buildFrame(t, remote, local, netraw.ProtocolTCP, seg))

	select {
	case r := <-p.resultCh:
		if r.Kind != ResultTCPSynAck {
			t.Errorf("result kind = %v, want ResultTCPSynAck", r.Kind)
		}
		if r.RemoteSeq != 999 || r.RemoteMSS != 1400 {
			t.Errorf("seq/mss = %d/%d, want 999/1400", r.RemoteSeq, r.RemoteMSS)
		}
	case <-time.After(time.Second):
		t.Fatal("probe never resolved")
	}
}

func TestCorrelatorResolvesTCPRst(t *testing.T) {
	c := NewCorrelator()
	defer c.Close()

	local := net.ParseIP("10.0.0.1")
	remote := net.ParseIP("10.0.0.2")
	p := NewTCPProbe(local, 40001, remote, 80, time.Second)
	c.RegisterTCP(p)

	segHdr := netraw.TCPHeader{
		SourcePort:      80,
		DestinationPort: 40001,
		Flags:           netraw.TCPFlagRST,
	}
	seg, err := netraw.BuildTCPSegment(remote, local, segHdr, nil)
	if err != nil {
		t.Fatalf("BuildTCPSegment: %v", err)
	}

	c.HandleFrame(buildFrame(t, remote, local, netraw.ProtocolTCP, seg))

	select {
	case r := <-p.resultCh:
		if r.Kind != ResultTCPRstAck {
			t.Errorf("result kind = %v, want ResultTCPRstAck", r.Kind)
		}
	case <-time.After(time.Second):
		t.Fatal("probe never resolved")
	}
}

func TestCorrelatorDeadlineResolvesTimeout(t *testing.T) {
	c := NewCorrelator()
	defer c.Close()

	p := NewICMPProbe(net.ParseIP("198.51.100.1"), 1, 1, 20*time.Millisecond)
	c.RegisterICMP(p)

	select {
	case r := <-p.resultCh:
		if r.Kind != ResultTimeout {
			t.Errorf("result kind = %v, want ResultTimeout", r.Kind)
		}
	case <-time.After(time.Second):
		t.Fatal("deadline never fired")
	}
}

func TestCorrelatorResolvesICMPDestUnreachable(t *testing.T) {
	c := NewCorrelator()
	defer c.Close()

	local := net.ParseIP("10.0.0.1")
	remote := net.ParseIP("10.0.0.2")

	p := NewICMPProbe(remote, 0x99, 3, time.Second)
	c.RegisterICMP(p)

	// The quoted original datagram: the IP header our echo request went
	// out under, plus the echo request itself.
	echo := netraw.BuildICMPEchoRequest(0x99, 3, nil)
	quotedIPHdr := netraw.IPv4Header{
		TotalLength: uint16(20 + len(echo)),
		TTL:         1,
		Protocol:    netraw.ProtocolICMP,
		Source:      local,
		Destination: remote,
	}
	quotedIPBuf, err := netraw.BuildIPv4Header(quotedIPHdr)
	if err != nil {
		t.Fatalf("BuildIPv4Header (quoted): %v", err)
	}
	quoted := append(quotedIPBuf, echo...)

	// Dest Unreachable (type 3, code 1 host unreachable), reported by the
	// destination itself, quoting the datagram above.
	icmpErr := make([]byte, 8+len(quoted))
	icmpErr[0] = netraw.ICMPTypeDestUnreachable
	icmpErr[1] = 1
	copy(icmpErr[8:], quoted)
	sum := netraw.Checksum(icmpErr)
	icmpErr[2] = byte(sum >> 8)
	icmpErr[3] = byte(sum)

	c.HandleFrame(buildFrame(t, remote, local, netraw.ProtocolICMP, icmpErr))

	select {
	case r := <-p.resultCh:
		if r.Kind != ResultDestUnreachable {
			t.Errorf("result kind = %v, want ResultDestUnreachable", r.Kind)
		}
		if r.Code != 1 {
			t.Errorf("code = %d, want 1", r.Code)
		}
	case <-time.After(time.Second):
		t.Fatal("probe never resolved")
	}
}

func TestCorrelatorIgnoresUnclaimedFrame(t *testing.T) {
	c := NewCorrelator()
	defer c.Close()

	remote := net.ParseIP("203.0.113.9")
	local := net.ParseIP("203.0.113.10")
	reply := netraw.BuildICMPEchoRequest(99, 99, nil)
	reply[0] = netraw.ICMPTypeEchoReply
	reply[2], reply[3] = 0, 0
	sum := netraw.Checksum(reply)
	reply[2] = byte(sum >> 8)
	reply[3] = byte(sum)

	// No probe registered — HandleFrame must not panic and must simply drop it.
	c.HandleFrame(buildFrame(t, remote, local, netraw.ProtocolICMP, reply))
}
