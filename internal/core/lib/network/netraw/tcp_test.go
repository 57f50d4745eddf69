package netraw

import (
	"net"
	"testing"
)

func TestTCPSegmentRoundTrip(t *testing.T) {
	srcIP := net.ParseIP("192.168.0.1")
	dstIP := net.ParseIP("192.168.0.2")
	h := TCPHeader{
		SourcePort:      54321,
		DestinationPort: 443,
		SequenceNumber:  0xDEADBEEF,
		AckNumber:       0,
		Flags:           TCPFlagSYN,
		WindowSize:      65535,
		Options:         []TCPOption{NewMSSOption(1460)},
	}

	buf, err := BuildTCPSegment(srcIP, dstIP, h, nil)
	if err != nil {
		t.Fatalf("BuildTCPSegment: %v", err)
	}

	parsed, payload, err := ParseTCPSegment(buf)
	if err != nil {
		t.Fatalf("ParseTCPSegment: %v", err)
	}
	if parsed.SourcePort != h.SourcePort || parsed.DestinationPort != h.DestinationPort {
		t.Errorf("ports = %d/%d, want %d/%d", parsed.SourcePort, parsed.DestinationPort, h.SourcePort, h.DestinationPort)
	}
	if parsed.SequenceNumber != h.SequenceNumber {
		t.Errorf("seq = %#x, want %#x", parsed.SequenceNumber, h.SequenceNumber)
	}
	if !parsed.Flags.Has(TCPFlagSYN) || parsed.Flags.Has(TCPFlagACK) {
		t.Errorf("flags = %#x, want SYN only", parsed.Flags)
	}
	if len(payload) != 0 {
		t.Errorf("payload = %d bytes, want 0", len(payload))
	}
	if len(parsed.Options) != 1 || parsed.Options[0].Kind != TCPOptionMSS || parsed.Options[0].MSS != 1460 {
		t.Errorf("options = %+v, want single MSS(1460)", parsed.Options)
	}

	if !VerifyTCPChecksum(srcIP, dstIP, buf) {
		t.Error("VerifyTCPChecksum should validate a freshly-built segment")
	}

	// Flip one payload-independent bit and confirm the checksum catches it.
	corrupt := append([]byte{}, buf...)
	corrupt[0] ^= 0xFF
	if VerifyTCPChecksum(srcIP, dstIP, corrupt) {
		t.Error("VerifyTCPChecksum should reject a corrupted segment")
	}
}

func TestBuildTCPSegmentRejectsNonIPv4Addresses(t *testing.T) {
	h := TCPHeader{SourcePort: 1, DestinationPort: 2}
	if _, err := BuildTCPSegment(net.ParseIP("::1"), net.ParseIP("::2"), h, nil); err == nil {
		t.Error("expected error for IPv6 addresses")
	}
}

func TestParseTCPSegmentRejectsShortFrames(t *testing.T) {
	if _, _, err := ParseTCPSegment(make([]byte, 10)); err == nil {
		t.Error("expected error for frame shorter than minimum TCP header")
	}
}

func TestParseTCPSegmentRejectsInconsistentDataOffset(t *testing.T) {
	buf := make([]byte, 20)
	// data offset nibble = 0, below the minimum of 5.
	buf[12] = 0x00
	if _, _, err := ParseTCPSegment(buf); err == nil {
		t.Error("expected error for data offset below minimum")
	}
}
