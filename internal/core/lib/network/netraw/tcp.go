package netraw

import (
	"encoding/binary"
	"fmt"
	"net"
)

// TCPFlags is the 9-bit flags field (RFC 793 + RFC 3168 ECN bits + RFC 3540 NS).
type TCPFlags uint16

const (
	TCPFlagFIN TCPFlags = 0x001
	TCPFlagSYN TCPFlags = 0x002
	TCPFlagRST TCPFlags = 0x004
	TCPFlagPSH TCPFlags = 0x008
	TCPFlagACK TCPFlags = 0x010
	TCPFlagURG TCPFlags = 0x020
	TCPFlagECE TCPFlags = 0x040
	TCPFlagCWR TCPFlags = 0x080
	TCPFlagNS  TCPFlags = 0x100

	tcpFlagsMask = 0x1FF
)

func (f TCPFlags) Has(bit TCPFlags) bool { return f&bit != 0 }

// TCPHeader is the decoded form of a TCP segment header (including options).
type TCPHeader struct {
	SourcePort      uint16
	DestinationPort uint16
	SequenceNumber  uint32
	AckNumber       uint32
	Reserved        uint8 // 3 bits, must be 0
	Flags           TCPFlags
	WindowSize      uint16
	Checksum        uint16 // zero on Build input means "compute it"
	UrgentPointer   uint16
	Options         []TCPOption
}

// BuildTCPSegment encodes h and appends payload, computing the checksum
// over the pseudo-header (srcIP, dstIP, 0x00, protocol=6, tcp_len) plus the
// TCP header (checksum zeroed), options and payload. tcp_len is
// data_offset*4 + len(payload).
func BuildTCPSegment(srcIP, dstIP net.IP, h TCPHeader, payload []byte) ([]byte, error) {
	optBytes, err := EncodeOptions(h.Options)
	if err != nil {
		return nil, err
	}

	headerLen := 20 + len(optBytes)
	if headerLen > 60 {
		return nil, fmt.Errorf("%w: TCP header %d bytes exceeds 60-byte maximum", ErrEncode, headerLen)
	}
	dataOffset := headerLen / 4

	buf := make([]byte, headerLen+len(payload))
	binary.BigEndian.PutUint16(buf[0:], h.SourcePort)
	binary.BigEndian.PutUint16(buf[2:], h.DestinationPort)
	binary.BigEndian.PutUint32(buf[4:], h.SequenceNumber)
	binary.BigEndian.PutUint32(buf[8:], h.AckNumber)
	offsetResFlags := uint16(dataOffset)<<12 | uint16(h.Reserved&0x7)<<9 | (uint16(h.Flags) & tcpFlagsMask)
	binary.BigEndian.PutUint16(buf[12:], offsetResFlags)
	binary.BigEndian.PutUint16(buf[14:], h.WindowSize)
	// buf[16:18] checksum left zero for now
	binary.BigEndian.PutUint16(buf[18:], h.UrgentPointer)
	copy(buf[20:], optBytes)
	copy(buf[headerLen:], payload)

	checksum := h.Checksum
	if checksum == 0 {
		src4 := srcIP.To4()
		dst4 := dstIP.To4()
		if src4 == nil || dst4 == nil {
			return nil, fmt.Errorf("%w: source/destination must be IPv4", ErrEncode)
		}
		pseudo := make([]byte, 12, 12+len(buf))
		copy(pseudo[0:4], src4)
		copy(pseudo[4:8], dst4)
		pseudo[8] = 0
		pseudo[9] = ProtocolTCP
		binary.BigEndian.PutUint16(pseudo[10:12], uint16(headerLen+len(payload)))
		pseudo = append(pseudo, buf...)
		checksum = Checksum(pseudo)
	}
	binary.BigEndian.PutUint16(buf[16:], checksum)

	return buf, nil
}

// ParseTCPSegment decodes a TCP header (including options) and returns the
// remaining payload. It does not verify the checksum — callers that need
// checksum verification should recompute it over the pseudo-header built
// from the enclosing IPv4 header.
func ParseTCPSegment(data []byte) (TCPHeader, []byte, error) {
	if len(data) < 20 {
		return TCPHeader{}, nil, fmt.Errorf("%w: frame shorter than TCP minimum header", ErrMalformedFrame)
	}
	offsetResFlags := binary.BigEndian.Uint16(data[12:14])
	dataOffset := int(offsetResFlags >> 12)
	headerLen := dataOffset * 4
	if dataOffset < 5 || dataOffset > 15 || headerLen > len(data) {
		return TCPHeader{}, nil, fmt.Errorf("%w: data offset %d inconsistent with frame length %d", ErrMalformedFrame, dataOffset, len(data))
	}

	options, err := DecodeOptions(data[20:headerLen])
	if err != nil {
		return TCPHeader{}, nil, err
	}

	h := TCPHeader{
		SourcePort:      binary.BigEndian.Uint16(data[0:2]),
		DestinationPort: binary.BigEndian.Uint16(data[2:4]),
		SequenceNumber:  binary.BigEndian.Uint32(data[4:8]),
		AckNumber:       binary.BigEndian.Uint32(data[8:12]),
		Reserved:        uint8(offsetResFlags>>9) & 0x7,
		Flags:           TCPFlags(offsetResFlags & tcpFlagsMask),
		WindowSize:      binary.BigEndian.Uint16(data[14:16]),
		Checksum:        binary.BigEndian.Uint16(data[16:18]),
		UrgentPointer:   binary.BigEndian.Uint16(data[18:20]),
		Options:         options,
	}
	return h, data[headerLen:], nil
}

// VerifyTCPChecksum recomputes the TCP checksum of segment (as received,
// checksum field included) against the given pseudo-header addresses and
// reports whether it verifies (i.e. the word-sum folds to 0xFFFF, so its
// complement, which is what Checksum returns, is 0).
func VerifyTCPChecksum(srcIP, dstIP net.IP, segment []byte) bool {
	src4 := srcIP.To4()
	dst4 := dstIP.To4()
	if src4 == nil || dst4 == nil {
		return false
	}
	pseudo := make([]byte, 12, 12+len(segment))
	copy(pseudo[0:4], src4)
	copy(pseudo[4:8], dst4)
	pseudo[8] = 0
	pseudo[9] = ProtocolTCP
	binary.BigEndian.PutUint16(pseudo[10:12], uint16(len(segment)))
	pseudo = append(pseudo, segment...)
	return Checksum(pseudo) == 0
}
