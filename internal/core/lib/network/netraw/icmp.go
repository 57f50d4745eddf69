package netraw

import (
	"encoding/binary"
	"fmt"
)

// ICMP types/codes the probe engine sends or matches against.
const (
	ICMPTypeEchoReply           = 0
	ICMPTypeDestUnreachable     = 3
	ICMPTypeRedirect            = 5
	ICMPTypeEchoRequest         = 8
	ICMPTypeTimeExceeded        = 11
	ICMPTypeParamProblem        = 12
)

// ICMPEcho is the decoded form of an ICMP Echo Request/Reply message.
type ICMPEcho struct {
	Type       uint8
	Code       uint8
	Checksum   uint16
	Identifier uint16
	Sequence   uint16
	Payload    []byte
}

// BuildICMPEchoRequest encodes an ICMP Echo Request (type 8, code 0) with
// the given identifier/sequence and payload, computing the checksum over
// the ICMP message only (no pseudo-header — ICMP has none).
func BuildICMPEchoRequest(identifier, sequence uint16, payload []byte) []byte {
	return buildICMPEcho(ICMPTypeEchoRequest, 0, identifier, sequence, payload)
}

func buildICMPEcho(typ, code uint8, identifier, sequence uint16, payload []byte) []byte {
	buf := make([]byte, 8+len(payload))
	buf[0] = typ
	buf[1] = code
	binary.BigEndian.PutUint16(buf[4:], identifier)
	binary.BigEndian.PutUint16(buf[6:], sequence)
	copy(buf[8:], payload)

	checksum := Checksum(buf)
	binary.BigEndian.PutUint16(buf[2:], checksum)
	return buf
}

// ParseICMPMessage decodes an ICMP message's common header fields. For
// Echo Request/Reply this fully populates Identifier/Sequence/Payload; for
// error types (DestUnreachable/Redirect/TimeExceeded/ParamProblem) the
// "Identifier"/"Sequence" fields are meaningless and Payload instead holds
// the quoted original datagram (IP header + >=8 bytes), per RFC 792.
func ParseICMPMessage(data []byte) (ICMPEcho, error) {
	if len(data) < 8 {
		return ICMPEcho{}, fmt.Errorf("%w: ICMP message shorter than 8-byte minimum", ErrMalformedFrame)
	}
	msg := ICMPEcho{
		Type:     data[0],
		Code:     data[1],
		Checksum: binary.BigEndian.Uint16(data[2:4]),
	}
	switch msg.Type {
	case ICMPTypeEchoRequest, ICMPTypeEchoReply:
		msg.Identifier = binary.BigEndian.Uint16(data[4:6])
		msg.Sequence = binary.BigEndian.Uint16(data[6:8])
		msg.Payload = data[8:]
	default:
		// DestUnreachable/Redirect/TimeExceeded/ParamProblem: bytes 4-7 are
		// type-specific (unused, next-hop, pointer, ...); the quoted
		// datagram starts at byte 8.
		msg.Payload = data[8:]
	}
	return msg, nil
}

// QuotedDatagramPrefix returns the leading bytes of an ICMP error message's
// quoted original datagram, truncated (never extended) to n bytes. Per
// RFC 792 this is the offending IP header plus at least 8 bytes of its
// payload; spec.md requires matching on >=28 bytes (20-byte IPv4 header +
// 8 bytes of the quoted L4 header).
func QuotedDatagramPrefix(icmpPayload []byte, n int) []byte {
	if len(icmpPayload) < n {
		return icmpPayload
	}
	return icmpPayload[:n]
}
