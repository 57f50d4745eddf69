package netraw

import "testing"

func TestICMPEchoRoundTrip(t *testing.T) {
	payload := []byte("probe-payload")
	buf := BuildICMPEchoRequest(0x1111, 7, payload)

	if Checksum(buf) != 0 {
		t.Errorf("built echo request checksum does not validate, got %#04x", Checksum(buf))
	}

	msg, err := ParseICMPMessage(buf)
	if err != nil {
		t.Fatalf("ParseICMPMessage: %v", err)
	}
	if msg.Type != ICMPTypeEchoRequest || msg.Code != 0 {
		t.Errorf("type/code = %d/%d, want %d/0", msg.Type, msg.Code, ICMPTypeEchoRequest)
	}
	if msg.Identifier != 0x1111 || msg.Sequence != 7 {
		t.Errorf("identifier/sequence = %#x/%d, want 0x1111/7", msg.Identifier, msg.Sequence)
	}
	if string(msg.Payload) != string(payload) {
		t.Errorf("payload = %q, want %q", msg.Payload, payload)
	}
}

func TestParseICMPMessageErrorType(t *testing.T) {
	// A minimal Dest Unreachable (type 3) quoting a fake 8-byte original header.
	quoted := []byte{0x45, 0x00, 0x00, 0x3c, 0x00, 0x00, 0x00, 0x00}
	buf := make([]byte, 8+len(quoted))
	buf[0] = ICMPTypeDestUnreachable
	buf[1] = 1 // host unreachable
	copy(buf[8:], quoted)

	msg, err := ParseICMPMessage(buf)
	if err != nil {
		t.Fatalf("ParseICMPMessage: %v", err)
	}
	if msg.Type != ICMPTypeDestUnreachable || msg.Code != 1 {
		t.Errorf("type/code = %d/%d, want %d/1", msg.Type, msg.Code, ICMPTypeDestUnreachable)
	}
	if string(msg.Payload) != string(quoted) {
		t.Errorf("quoted payload = %x, want %x", msg.Payload, quoted)
	}
}

func TestParseICMPMessageRejectsShortFrames(t *testing.T) {
	if _, err := ParseICMPMessage(make([]byte, 4)); err == nil {
		t.Error("expected error for frame shorter than 8-byte minimum")
	}
}

func TestQuotedDatagramPrefix(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	if got := QuotedDatagramPrefix(data, 3); len(got) != 3 {
		t.Errorf("truncated length = %d, want 3", len(got))
	}
	// Never extends beyond what's available.
	if got := QuotedDatagramPrefix(data, 10); len(got) != len(data) {
		t.Errorf("length = %d, want %d (no extension beyond input)", len(got), len(data))
	}
}
