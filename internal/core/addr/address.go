package addr

import (
	"net"
	"strconv"
	"strings"
)

// ParseIPv4 parses a dotted-decimal string into a 4-byte address,
// validating octet count and range the way IPv4IPStringValidator does:
// split on '.', reject anything that isn't exactly 4 decimal octets in
// [0,255].
func ParseIPv4(s string) (net.IP, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return nil, newErr(BadOctetCount, s, "expected 4 octets")
	}
	out := make(net.IP, 4)
	for i, part := range parts {
		if part == "" {
			return nil, newErr(MalformedSyntax, s, "empty octet")
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, newErr(MalformedSyntax, s, "non-numeric octet: "+part)
		}
		if v < 0 || v > 255 {
			return nil, newErr(OctetOutOfRange, s, "octet out of range: "+part)
		}
		out[i] = byte(v)
	}
	return out, nil
}

// ParseIPv6 parses a colon-hex string into a 16-byte address. It defers
// the colon-hex grammar itself (::-compression, embedded IPv4 tails) to
// net.ParseIP — stdlib's parser already implements RFC 4291 exactly.
// Grammar failures, bare dotted-quad input and addresses that net.ParseIP
// maps to IPv4 are reported as MalformedSyntax; BadOctetCount is returned
// if the expanded form is not 16 bytes. There is no per-octet range check,
// so OctetOutOfRange is never returned: every byte of the parsed address
// is already in [0,255].
func ParseIPv6(s string) (net.IP, error) {
	if strings.Contains(s, ".") && !strings.Contains(s, ":") {
		return nil, newErr(MalformedSyntax, s, "not a colon-hex address")
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return nil, newErr(MalformedSyntax, s, "does not appear to be an IPv6 address")
	}
	v6 := ip.To16()
	if v6 == nil || ip.To4() != nil {
		return nil, newErr(MalformedSyntax, s, "does not appear to be an IPv6 address")
	}
	if len(v6) != 16 {
		return nil, newErr(BadOctetCount, s, "expected 16 octets")
	}
	return v6, nil
}
