package probe

import (
	"net"
	"sync"
	"time"

	"neoagent/internal/core/lib/network/netraw"
	"neoagent/internal/pkg/logger"
)

// icmpKey identifies a live ICMP probe by the tuple spec §3 requires
// unique across live ICMP probes from the same socket.
type icmpKey struct {
	dst     string
	echoID  uint16
	echoSeq uint16
}

// tcpKey identifies a live TCP probe by its 3-tuple (plus local port,
// which together with dst/dstPort spec §3 requires unique).
type tcpKey struct {
	dst     string
	dstPort uint16
	srcPort uint16
}

// Correlator owns the in-flight probe maps. RegisterICMP/RegisterTCP
// (called from the sending goroutines), HandleFrame (invoked from the
// single receiver loop) and the per-probe deadline goroutines all mutate
// them, serialized by mu.
type Correlator struct {
	mu        sync.Mutex
	icmp      map[icmpKey]*Probe
	tcp       map[tcpKey]*Probe
	matchers  []matcherFunc
	closeOnce sync.Once
	done      chan struct{}
}

// matcherFunc attempts to resolve ipHdr/l4Payload against c's registry,
// reporting whether it claimed the frame. The chain tries each in a fixed
// order; the first match wins and later matchers never see the frame.
type matcherFunc func(c *Correlator, ipHdr netraw.IPv4Header, l4Payload []byte) bool

// NewCorrelator builds an empty correlator with the fixed matcher chain
// from spec §4.8: ICMP error/reply matchers first, then the TCP matcher.
func NewCorrelator() *Correlator {
	c := &Correlator{
		icmp: make(map[icmpKey]*Probe),
		tcp:  make(map[tcpKey]*Probe),
		done: make(chan struct{}),
	}
	c.matchers = []matcherFunc{
		matchICMPEchoReply,
		matchICMPDestUnreachable,
		matchICMPRedirect,
		matchICMPTimeExceeded,
		matchICMPParamProblem,
		matchTCP,
	}
	return c
}

// RegisterICMP adds p to the registry under its (dst, echo_id, seq) key.
func (c *Correlator) RegisterICMP(p *Probe) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.icmp[icmpKey{dst: p.Dst.String(), echoID: p.EchoID, echoSeq: p.EchoSeq}] = p
	c.armDeadline(p)
}

// RegisterTCP adds p to the registry under its (dst, dst_port, src_port) key.
func (c *Correlator) RegisterTCP(p *Probe) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tcp[tcpKey{dst: p.Dst.String(), dstPort: p.DstPort, srcPort: p.SrcPort}] = p
	c.armDeadline(p)
}

// armDeadline starts p's own timeout clock; remaining time is recomputed
// from p.StartTS so an interrupted wait never resets the budget (spec §5).
func (c *Correlator) armDeadline(p *Probe) {
	go func() {
		remaining := p.Timeout - time.Since(p.StartTS)
		if remaining < 0 {
			remaining = 0
		}
		timer := time.NewTimer(remaining)
		defer timer.Stop()
		select {
		case <-timer.C:
			c.mu.Lock()
			delete(c.icmp, icmpKey{dst: p.Dst.String(), echoID: p.EchoID, echoSeq: p.EchoSeq})
			delete(c.tcp, tcpKey{dst: p.Dst.String(), dstPort: p.DstPort, srcPort: p.SrcPort})
			c.mu.Unlock()
			p.resolve(Result{Kind: ResultTimeout})
		case <-c.done:
		}
	}()
}

// HandleFrame is the single callback passed to netraw.RunReceiveLoop. It
// parses the IPv4 view and runs the matcher chain; an unparseable frame is
// logged at Debug and discarded, never fatal to the loop (spec §7).
func (c *Correlator) HandleFrame(f netraw.Frame) {
	ipHdr, l4, err := netraw.ParseIPv4Header(f.Data)
	if err != nil {
		logger.WithFields(map[string]interface{}{"from": f.From, "err": err}).Debug("probe: discarding malformed frame")
		return
	}
	for _, m := range c.matchers {
		if m(c, ipHdr, l4) {
			return
		}
	}
	// unclaimed frame: not an error, just not ours (spec §4.8)
}

// Close stops every armed deadline goroutine. Call once, after the scan
// or ping run that owns this correlator has finished.
func (c *Correlator) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

func (c *Correlator) takeICMP(key icmpKey) (*Probe, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.icmp[key]
	if ok {
		delete(c.icmp, key)
	}
	return p, ok
}

func (c *Correlator) takeTCP(key tcpKey) (*Probe, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.tcp[key]
	if ok {
		delete(c.tcp, key)
	}
	return p, ok
}

// findICMPByQuotedPrefix looks up the live ICMP probe identified by the
// quoted original datagram an ICMP error carries (spec §4.8, testable
// property 6). quoted starts with the quoted IPv4 header itself (RFC 792:
// "internet header ... plus the first 8 bytes"), so the echo's
// identifier/sequence sit 4/6 bytes into the ICMP header that *follows*
// the quoted IP header — not at a fixed offset into quoted, since that
// header's own length varies with IP options. The probe's destination is
// taken from the quoted header too, not from the error's sender: a router
// reporting Time Exceeded or Redirect is not the probe's destination.
func (c *Correlator) findICMPByQuotedPrefix(_ net.IP, quoted []byte) (*Probe, icmpKey, bool) {
	quotedIPHdr, quotedL4, err := netraw.ParseIPv4Header(quoted)
	if err != nil || quotedIPHdr.Protocol != netraw.ProtocolICMP || len(quotedL4) < 8 {
		return nil, icmpKey{}, false
	}
	id := uint16(quotedL4[4])<<8 | uint16(quotedL4[5])
	seq := uint16(quotedL4[6])<<8 | uint16(quotedL4[7])

	c.mu.Lock()
	defer c.mu.Unlock()
	key := icmpKey{dst: quotedIPHdr.Destination.String(), echoID: id, echoSeq: seq}
	p, ok := c.icmp[key]
	if !ok {
		return nil, icmpKey{}, false
	}
	delete(c.icmp, key)
	return p, key, true
}
