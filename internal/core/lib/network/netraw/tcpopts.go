package netraw

import (
	"encoding/binary"
	"fmt"
)

// TCP option kinds (RFC 793/1323/2018).
const (
	TCPOptionEOL        = 0
	TCPOptionNOP        = 1
	TCPOptionMSS        = 2
	TCPOptionWScale     = 3
	TCPOptionSACKPermit = 4
	TCPOptionSACK       = 5
	TCPOptionTimestamp  = 8
)

// SACKBlock is one (left, right) byte-range pair of a SACK option.
type SACKBlock struct {
	Left  uint32
	Right uint32
}

// TCPOption is a single TCP option in its decoded form. Exactly one of the
// typed accessor fields is meaningful, selected by Kind; callers should use
// the typed constructors (NewMSSOption, ...) rather than populating these
// directly, except for Unknown options where Raw carries the opaque value.
type TCPOption struct {
	Kind uint8

	MSS       uint16      // TCPOptionMSS
	WScale    uint8       // TCPOptionWScale
	Timestamp [2]uint32   // TCPOptionTimestamp: [ts, echo]
	SACK      []SACKBlock // TCPOptionSACK

	Raw []byte // unknown kinds: opaque value bytes (length-prefixed on the wire)
}

func NewMSSOption(mss uint16) TCPOption    { return TCPOption{Kind: TCPOptionMSS, MSS: mss} }
func NewWScaleOption(shift uint8) TCPOption { return TCPOption{Kind: TCPOptionWScale, WScale: shift} }
func NewSACKPermittedOption() TCPOption     { return TCPOption{Kind: TCPOptionSACKPermit} }
func NewNOPOption() TCPOption               { return TCPOption{Kind: TCPOptionNOP} }
func NewEOLOption() TCPOption               { return TCPOption{Kind: TCPOptionEOL} }
func NewTimestampOption(ts, echo uint32) TCPOption {
	return TCPOption{Kind: TCPOptionTimestamp, Timestamp: [2]uint32{ts, echo}}
}
func NewSACKOption(blocks []SACKBlock) TCPOption {
	return TCPOption{Kind: TCPOptionSACK, SACK: blocks}
}

// encodedBody returns the option's on-wire bytes excluding any alignment
// padding: kind, then length (if the variant carries one), then value.
func (o TCPOption) encodedBody() ([]byte, error) {
	switch o.Kind {
	case TCPOptionEOL, TCPOptionNOP:
		return []byte{o.Kind}, nil
	case TCPOptionMSS:
		b := make([]byte, 4)
		b[0], b[1] = TCPOptionMSS, 4
		binary.BigEndian.PutUint16(b[2:], o.MSS)
		return b, nil
	case TCPOptionWScale:
		return []byte{TCPOptionWScale, 3, o.WScale}, nil
	case TCPOptionSACKPermit:
		return []byte{TCPOptionSACKPermit, 2}, nil
	case TCPOptionSACK:
		if len(o.SACK) == 0 {
			return nil, fmt.Errorf("%w: SACK option with no blocks", ErrEncode)
		}
		length := 2 + 8*len(o.SACK)
		if length > 255 {
			return nil, fmt.Errorf("%w: SACK option too large (%d blocks)", ErrEncode, len(o.SACK))
		}
		b := make([]byte, length)
		b[0], b[1] = TCPOptionSACK, uint8(length)
		off := 2
		for _, blk := range o.SACK {
			if blk.Left > blk.Right {
				return nil, fmt.Errorf("%w: SACK block left > right", ErrEncode)
			}
			binary.BigEndian.PutUint32(b[off:], blk.Left)
			binary.BigEndian.PutUint32(b[off+4:], blk.Right)
			off += 8
		}
		return b, nil
	case TCPOptionTimestamp:
		b := make([]byte, 10)
		b[0], b[1] = TCPOptionTimestamp, 10
		binary.BigEndian.PutUint32(b[2:], o.Timestamp[0])
		binary.BigEndian.PutUint32(b[6:], o.Timestamp[1])
		return b, nil
	default:
		length := 2 + len(o.Raw)
		if length > 255 {
			return nil, fmt.Errorf("%w: unknown option kind %d too large", ErrEncode, o.Kind)
		}
		b := make([]byte, 2, length)
		b[0], b[1] = o.Kind, uint8(length)
		b = append(b, o.Raw...)
		return b, nil
	}
}

// EncodeOptions renders a TCP option list to its padded on-wire form.
//
// Each option is individually padded: if its own encoded width is not a
// multiple of 4 bytes, (4 - width%4) NOP options are prefixed immediately
// before it, so the option block as a whole is a multiple of 4 bytes
// without any single option straddling a word boundary differently than
// the reference encoder (see spec S2/S3 test vectors).
func EncodeOptions(options []TCPOption) ([]byte, error) {
	var out []byte
	for _, opt := range options {
		body, err := opt.encodedBody()
		if err != nil {
			return nil, err
		}
		if pad := (4 - len(body)%4) % 4; pad > 0 {
			for i := 0; i < pad; i++ {
				out = append(out, TCPOptionNOP)
			}
		}
		out = append(out, body...)
	}
	return out, nil
}

// DecodeOptions parses a raw TCP options area (already isolated by data
// offset) into its constituent options. Scanning stops at kind=0 (EOL) or
// once the declared length is exhausted. A length byte that overshoots the
// remaining bytes is reported as ErrMalformedFrame — the caller (matcher
// chain) discards the frame rather than treating this as fatal.
func DecodeOptions(data []byte) ([]TCPOption, error) {
	var opts []TCPOption
	i := 0
	for i < len(data) {
		kind := data[i]
		switch kind {
		case TCPOptionEOL:
			opts = append(opts, TCPOption{Kind: TCPOptionEOL})
			return opts, nil
		case TCPOptionNOP:
			opts = append(opts, TCPOption{Kind: TCPOptionNOP})
			i++
			continue
		}

		if i+1 >= len(data) {
			return nil, fmt.Errorf("%w: option kind %d missing length byte", ErrMalformedFrame, kind)
		}
		length := int(data[i+1])
		if length < 2 || i+length > len(data) {
			return nil, fmt.Errorf("%w: option kind %d length %d overshoots options area", ErrMalformedFrame, kind, length)
		}
		value := data[i+2 : i+length]

		switch kind {
		case TCPOptionMSS:
			if length != 4 {
				return nil, fmt.Errorf("%w: MSS option length %d != 4", ErrMalformedFrame, length)
			}
			opts = append(opts, TCPOption{Kind: TCPOptionMSS, MSS: binary.BigEndian.Uint16(value)})
		case TCPOptionWScale:
			if length != 3 {
				return nil, fmt.Errorf("%w: WScale option length %d != 3", ErrMalformedFrame, length)
			}
			opts = append(opts, TCPOption{Kind: TCPOptionWScale, WScale: value[0]})
		case TCPOptionSACKPermit:
			if length != 2 {
				return nil, fmt.Errorf("%w: SACK-Permitted option length %d != 2", ErrMalformedFrame, length)
			}
			opts = append(opts, TCPOption{Kind: TCPOptionSACKPermit})
		case TCPOptionSACK:
			if (length-2)%8 != 0 {
				return nil, fmt.Errorf("%w: SACK option length %d not 2+8k", ErrMalformedFrame, length)
			}
			blocks := make([]SACKBlock, 0, (length-2)/8)
			for off := 0; off < len(value); off += 8 {
				blocks = append(blocks, SACKBlock{
					Left:  binary.BigEndian.Uint32(value[off:]),
					Right: binary.BigEndian.Uint32(value[off+4:]),
				})
			}
			opts = append(opts, TCPOption{Kind: TCPOptionSACK, SACK: blocks})
		case TCPOptionTimestamp:
			if length != 10 {
				return nil, fmt.Errorf("%w: Timestamp option length %d != 10", ErrMalformedFrame, length)
			}
			opts = append(opts, TCPOption{
				Kind:      TCPOptionTimestamp,
				Timestamp: [2]uint32{binary.BigEndian.Uint32(value), binary.BigEndian.Uint32(value[4:])},
			})
		default:
			raw := make([]byte, len(value))
			copy(raw, value)
			opts = append(opts, TCPOption{Kind: kind, Raw: raw})
		}
		i += length
	}
	return opts, nil
}
