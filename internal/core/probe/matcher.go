package probe

import "neoagent/internal/core/lib/network/netraw"

// matchICMPEchoReply claims ICMP Echo Reply frames whose (identifier,
// sequence, remote_ip) match a live ICMP probe (spec §4.8).
func matchICMPEchoReply(c *Correlator, ipHdr netraw.IPv4Header, l4 []byte) bool {
	if ipHdr.Protocol != netraw.ProtocolICMP {
		return false
	}
	msg, err := netraw.ParseICMPMessage(l4)
	if err != nil || msg.Type != netraw.ICMPTypeEchoReply {
		return false
	}
	key := icmpKey{dst: ipHdr.Source.String(), echoID: msg.Identifier, echoSeq: msg.Sequence}
	p, ok := c.takeICMP(key)
	if !ok {
		return false
	}
	p.resolve(Result{Kind: ResultEchoReply})
	return true
}

// icmpErrorMatch is shared by the four ICMP error matchers: each carries
// the offending datagram's first bytes in its payload and differs only by
// type/code and the ProbeResult variant it produces.
func icmpErrorMatch(c *Correlator, ipHdr netraw.IPv4Header, l4 []byte, wantType uint8, build func(code uint8) Result) bool {
	if ipHdr.Protocol != netraw.ProtocolICMP {
		return false
	}
	msg, err := netraw.ParseICMPMessage(l4)
	if err != nil || msg.Type != wantType {
		return false
	}
	p, _, ok := c.findICMPByQuotedPrefix(ipHdr.Source, msg.Payload)
	if !ok {
		return false
	}
	p.resolve(build(msg.Code))
	return true
}

func matchICMPDestUnreachable(c *Correlator, ipHdr netraw.IPv4Header, l4 []byte) bool {
	return icmpErrorMatch(c, ipHdr, l4, netraw.ICMPTypeDestUnreachable, func(code uint8) Result {
		return Result{Kind: ResultDestUnreachable, Code: code}
	})
}

func matchICMPRedirect(c *Correlator, ipHdr netraw.IPv4Header, l4 []byte) bool {
	return icmpErrorMatch(c, ipHdr, l4, netraw.ICMPTypeRedirect, func(code uint8) Result {
		return Result{Kind: ResultRedirect, Code: code}
	})
}

func matchICMPTimeExceeded(c *Correlator, ipHdr netraw.IPv4Header, l4 []byte) bool {
	return icmpErrorMatch(c, ipHdr, l4, netraw.ICMPTypeTimeExceeded, func(code uint8) Result {
		return Result{Kind: ResultTimeExceeded, Code: code}
	})
}

func matchICMPParamProblem(c *Correlator, ipHdr netraw.IPv4Header, l4 []byte) bool {
	return icmpErrorMatch(c, ipHdr, l4, netraw.ICMPTypeParamProblem, func(code uint8) Result {
		return Result{Kind: ResultParamProblem, Code: code}
	})
}

// matchTCP claims TCP frames addressed to a live TCP probe's
// (remote_ip, remote_port, local_port) tuple (spec §4.8). A SYN+ACK
// resolves TcpSynAck and carries the remote sequence/MSS back to the
// flow controller; an RST resolves TcpRstAck; any other combination
// (plain ACK, data) is left unclaimed here — the flow controller reads
// post-handshake traffic itself once ESTABLISHED.
func matchTCP(c *Correlator, ipHdr netraw.IPv4Header, l4 []byte) bool {
	if ipHdr.Protocol != netraw.ProtocolTCP {
		return false
	}
	tcpHdr, _, err := netraw.ParseTCPSegment(l4)
	if err != nil {
		return false
	}
	if !tcpHdr.Flags.Has(netraw.TCPFlagSYN) && !tcpHdr.Flags.Has(netraw.TCPFlagRST) {
		return false
	}

	key := tcpKey{dst: ipHdr.Source.String(), dstPort: tcpHdr.SourcePort, srcPort: tcpHdr.DestinationPort}
	p, ok := c.takeTCP(key)
	if !ok {
		return false
	}

	switch {
	case tcpHdr.Flags.Has(netraw.TCPFlagRST):
		p.resolve(Result{Kind: ResultTCPRstAck})
	case tcpHdr.Flags.Has(netraw.TCPFlagSYN) && tcpHdr.Flags.Has(netraw.TCPFlagACK):
		mss := uint16(0)
		for _, opt := range tcpHdr.Options {
			if opt.Kind == netraw.TCPOptionMSS {
				mss = opt.MSS
			}
		}
		p.resolve(Result{Kind: ResultTCPSynAck, RemoteSeq: tcpHdr.SequenceNumber, RemoteMSS: mss})
	default:
		return false
	}
	return true
}
