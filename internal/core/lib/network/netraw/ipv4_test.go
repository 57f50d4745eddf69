package netraw

import (
	"net"
	"testing"
)

func TestIPv4HeaderRoundTrip(t *testing.T) {
	h := IPv4Header{
		DSCP:           0,
		ECN:            0,
		TotalLength:    60,
		Identification: 0x1234,
		Flags:          IPv4FlagDF,
		TTL:            128,
		Protocol:       ProtocolICMP,
		Source:         net.ParseIP("10.0.0.1"),
		Destination:    net.ParseIP("10.0.0.2"),
	}

	buf, err := BuildIPv4Header(h)
	if err != nil {
		t.Fatalf("BuildIPv4Header: %v", err)
	}
	if len(buf) != 20 {
		t.Fatalf("header length = %d, want 20 (no options)", len(buf))
	}
	// A correctly-built header with its checksum field filled in must
	// itself checksum to zero.
	if Checksum(buf) != 0 {
		t.Errorf("built header checksum does not validate, got %#04x", Checksum(buf))
	}

	parsed, payload, err := ParseIPv4Header(append(buf, []byte{0xAA, 0xBB}...))
	if err != nil {
		t.Fatalf("ParseIPv4Header: %v", err)
	}
	if parsed.IHL != 5 {
		t.Errorf("IHL = %d, want 5", parsed.IHL)
	}
	if parsed.TotalLength != h.TotalLength {
		t.Errorf("TotalLength = %d, want %d", parsed.TotalLength, h.TotalLength)
	}
	if parsed.Identification != h.Identification {
		t.Errorf("Identification = %#04x, want %#04x", parsed.Identification, h.Identification)
	}
	if parsed.Flags != IPv4FlagDF {
		t.Errorf("Flags = %v, want DF", parsed.Flags)
	}
	if parsed.TTL != h.TTL || parsed.Protocol != h.Protocol {
		t.Errorf("TTL/Protocol = %d/%d, want %d/%d", parsed.TTL, parsed.Protocol, h.TTL, h.Protocol)
	}
	if !parsed.Source.Equal(h.Source) || !parsed.Destination.Equal(h.Destination) {
		t.Errorf("Source/Destination = %v/%v, want %v/%v", parsed.Source, parsed.Destination, h.Source, h.Destination)
	}
	if string(payload) != "\xaa\xbb" {
		t.Errorf("payload = %x, want aabb", payload)
	}
}

func TestBuildIPv4HeaderRejectsOutOfRangeFields(t *testing.T) {
	base := IPv4Header{
		TotalLength: 20,
		Source:      net.ParseIP("1.1.1.1"),
		Destination: net.ParseIP("2.2.2.2"),
	}

	cases := []struct {
		name string
		mut  func(h *IPv4Header)
	}{
		{"dscp out of range", func(h *IPv4Header) { h.DSCP = 64 }},
		{"ecn out of range", func(h *IPv4Header) { h.ECN = 4 }},
		{"ihl out of range", func(h *IPv4Header) { h.IHL = 16 }},
		{"fragment offset out of range", func(h *IPv4Header) { h.FragmentOffset = 1 << 13 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := base
			c.mut(&h)
			if _, err := BuildIPv4Header(h); err == nil {
				t.Errorf("expected error for %s", c.name)
			}
		})
	}
}

func TestParseIPv4HeaderRejectsBadFrames(t *testing.T) {
	if _, _, err := ParseIPv4Header(make([]byte, 10)); err == nil {
		t.Errorf("expected error for frame shorter than minimum header")
	}
	// version nibble set to 6 instead of 4
	frame := make([]byte, 20)
	frame[0] = (6 << 4) | 5
	if _, _, err := ParseIPv4Header(frame); err == nil {
		t.Errorf("expected error for wrong IP version")
	}
}

func TestIPv4HeaderWithOptions(t *testing.T) {
	h := IPv4Header{
		IHL:         6,
		TotalLength: 24,
		Source:      net.ParseIP("172.16.0.1"),
		Destination: net.ParseIP("172.16.0.2"),
		Options:     []byte{0x01, 0x01, 0x01, 0x00},
	}
	buf, err := BuildIPv4Header(h)
	if err != nil {
		t.Fatalf("BuildIPv4Header: %v", err)
	}
	if len(buf) != 24 {
		t.Fatalf("header length = %d, want 24", len(buf))
	}
	parsed, _, err := ParseIPv4Header(buf)
	if err != nil {
		t.Fatalf("ParseIPv4Header: %v", err)
	}
	if len(parsed.Options) != 4 {
		t.Errorf("options length = %d, want 4", len(parsed.Options))
	}
}
