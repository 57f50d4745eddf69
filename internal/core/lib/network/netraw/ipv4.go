package netraw

import (
	"encoding/binary"
	"fmt"
	"net"
)

// IPv4 protocol numbers used by the probe engine.
const (
	ProtocolICMP = 1
	ProtocolTCP  = 6
	ProtocolUDP  = 17
)

// IPv4Flags is the 3-bit flags field (bit2=reserved/must-be-zero in RFC 791,
// bit1=DF, bit0=MF). The probe engine never sets the reserved bit.
type IPv4Flags uint8

const (
	IPv4FlagNone IPv4Flags = 0
	IPv4FlagDF   IPv4Flags = 1 << 1
	IPv4FlagMF   IPv4Flags = 1 << 0
)

// IPv4Header is the decoded form of a 20-byte IPv4 header (no IP options —
// the probe engine never emits them; Options is preserved verbatim on
// parse for round-trip fidelity).
type IPv4Header struct {
	IHL             uint8 // header length in 32-bit words, [5,15]
	DSCP            uint8 // [0,63]
	ECN             uint8 // [0,3]
	TotalLength     uint16
	Identification  uint16
	Flags           IPv4Flags
	FragmentOffset  uint16 // [0, 2^13-1]
	TTL             uint8
	Protocol        uint8
	Checksum        uint16 // zero on Build input means "compute it"
	Source          net.IP
	Destination     net.IP
	Options         []byte
}

// HeaderLen returns the header length in bytes (IHL*4).
func (h IPv4Header) HeaderLen() int { return int(h.IHL) * 4 }

// BuildIPv4Header encodes h into its 20-byte-plus-options wire form. If
// h.IHL is zero it defaults to 5 (no options). If h.Checksum is zero on
// input, the checksum is computed over the header with the checksum field
// zeroed; a caller-supplied non-zero checksum is used verbatim (so tests
// can exercise known-good frames without recomputation).
func BuildIPv4Header(h IPv4Header) ([]byte, error) {
	ihl := h.IHL
	if ihl == 0 {
		ihl = 5
	}
	if ihl < 5 || ihl > 15 {
		return nil, fmt.Errorf("%w: IHL %d out of [5,15]", ErrEncode, ihl)
	}
	if h.DSCP > 63 {
		return nil, fmt.Errorf("%w: DSCP %d out of [0,63]", ErrEncode, h.DSCP)
	}
	if h.ECN > 3 {
		return nil, fmt.Errorf("%w: ECN %d out of [0,3]", ErrEncode, h.ECN)
	}
	if h.FragmentOffset > 1<<13-1 {
		return nil, fmt.Errorf("%w: fragment offset %d out of range", ErrEncode, h.FragmentOffset)
	}
	if h.TotalLength > 65535 {
		return nil, fmt.Errorf("%w: total length %d exceeds 65535", ErrEncode, h.TotalLength)
	}
	src4 := h.Source.To4()
	dst4 := h.Destination.To4()
	if src4 == nil || dst4 == nil {
		return nil, fmt.Errorf("%w: source/destination must be IPv4", ErrEncode)
	}
	headerLen := int(ihl) * 4
	if len(h.Options) != headerLen-20 {
		return nil, fmt.Errorf("%w: options length %d does not match IHL %d", ErrEncode, len(h.Options), ihl)
	}

	buf := make([]byte, headerLen)
	buf[0] = (4 << 4) | ihl
	buf[1] = (h.DSCP << 2) | h.ECN
	binary.BigEndian.PutUint16(buf[2:], h.TotalLength)
	binary.BigEndian.PutUint16(buf[4:], h.Identification)
	binary.BigEndian.PutUint16(buf[6:], (uint16(h.Flags)<<13)|h.FragmentOffset)
	buf[8] = h.TTL
	buf[9] = h.Protocol
	// buf[10:12] checksum left zero for now
	copy(buf[12:16], src4)
	copy(buf[16:20], dst4)
	copy(buf[20:], h.Options)

	checksum := h.Checksum
	if checksum == 0 {
		checksum = Checksum(buf)
	}
	binary.BigEndian.PutUint16(buf[10:], checksum)

	return buf, nil
}

// ParseIPv4Header decodes an IPv4 header (and any IP options) from data,
// returning the header view and the remaining payload bytes.
func ParseIPv4Header(data []byte) (IPv4Header, []byte, error) {
	if len(data) < 20 {
		return IPv4Header{}, nil, fmt.Errorf("%w: frame shorter than IPv4 minimum header", ErrMalformedFrame)
	}
	version := data[0] >> 4
	if version != 4 {
		return IPv4Header{}, nil, fmt.Errorf("%w: IP version %d != 4", ErrMalformedFrame, version)
	}
	ihl := data[0] & 0x0F
	headerLen := int(ihl) * 4
	if headerLen < 20 || headerLen > len(data) {
		return IPv4Header{}, nil, fmt.Errorf("%w: IHL %d inconsistent with frame length %d", ErrMalformedFrame, ihl, len(data))
	}

	flagsFrag := binary.BigEndian.Uint16(data[6:8])

	h := IPv4Header{
		IHL:            ihl,
		DSCP:           data[1] >> 2,
		ECN:            data[1] & 0x03,
		TotalLength:    binary.BigEndian.Uint16(data[2:4]),
		Identification: binary.BigEndian.Uint16(data[4:6]),
		Flags:          IPv4Flags(flagsFrag >> 13),
		FragmentOffset: flagsFrag & (1<<13 - 1),
		TTL:            data[8],
		Protocol:       data[9],
		Checksum:       binary.BigEndian.Uint16(data[10:12]),
		Source:         net.IP(append(net.IP{}, data[12:16]...)),
		Destination:    net.IP(append(net.IP{}, data[16:20]...)),
	}
	if headerLen > 20 {
		h.Options = append([]byte{}, data[20:headerLen]...)
	}

	payload := data[headerLen:]
	return h, payload, nil
}
