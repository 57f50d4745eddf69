package synscan

import (
	"context"
	"fmt"
	"math/rand"
	"net"
	"sync"
	"time"

	gopsnet "github.com/shirou/gopsutil/v3/net"

	"neoagent/internal/core/firewall"
	"neoagent/internal/core/flow"
	"neoagent/internal/core/lib/network/netraw"
	"neoagent/internal/core/lib/network/qos"
	"neoagent/internal/core/probe"
	"neoagent/internal/pkg/logger"
)

// Config carries one scan invocation's parameters (spec §4.11).
type Config struct {
	SrcIP       net.IP
	LoPort      int
	HiPort      int
	Timeout     time.Duration
	Concurrency int
}

// Validate enforces spec §4.11's contract: 1 <= lo <= hi <= 65535.
func (c Config) Validate() error {
	if c.LoPort < 1 || c.HiPort > 65535 || c.LoPort > c.HiPort {
		return fmt.Errorf("%w: port range [%d,%d] invalid", netraw.ErrInvalidConfig, c.LoPort, c.HiPort)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be >= 1", netraw.ErrInvalidConfig)
	}
	return nil
}

// Scanner drives the TCP SYN half-open scan: one shared raw socket and
// correlator across every (dst, port) attempt, a firewall guard scoped
// to the ephemeral source-port pool it draws from, and a bounded AIMD
// limiter capping in-flight handshakes (spec §5: "one raw socket per
// scan instance ... only the send side may be called concurrently").
type Scanner struct {
	sock netraw.RawSocket
	corr *probe.Correlator
	cfg  Config

	guard *firewall.Guard

	loopCancel context.CancelFunc
	loopDone   chan struct{}

	portPool    []int
	excludedSet map[int]bool
}

// New opens the raw TCP socket, starts its receiver loop, and seeds the
// ephemeral source-port pool by excluding ports gopsutil reports as
// already locally bound, so the scanner never collides with the host's
// own sockets (SPEC_FULL domain-stack wiring for gopsutil/v3/net).
func New(cfg Config) (*Scanner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sock, err := netraw.NewRawTCP4Socket()
	if err != nil {
		return nil, err
	}
	corr := probe.NewCorrelator()
	ctx, cancel := context.WithCancel(context.Background())

	s := &Scanner{
		sock:        sock,
		corr:        corr,
		cfg:         cfg,
		guard:       firewall.New(ephemeralLo, ephemeralHi),
		loopCancel:  cancel,
		loopDone:    make(chan struct{}),
		excludedSet: map[int]bool{},
	}
	s.seedExcludedPorts()

	go func() {
		defer close(s.loopDone)
		netraw.RunReceiveLoop(ctx, sock, corr.HandleFrame)
	}()
	return s, nil
}

const (
	ephemeralLo = 20000
	ephemeralHi = 60000
)

func (s *Scanner) seedExcludedPorts() {
	conns, err := gopsnet.Connections("tcp")
	if err != nil {
		logger.Warnf("synscan: failed to enumerate local tcp connections: %v", err)
		return
	}
	for _, c := range conns {
		s.excludedSet[int(c.Laddr.Port)] = true
	}
}

func (s *Scanner) nextSourcePort() uint16 {
	for {
		p := ephemeralLo + rand.Intn(ephemeralHi-ephemeralLo)
		if !s.excludedSet[p] {
			return uint16(p)
		}
	}
}

// Close stops the receiver loop and releases the raw socket. The caller
// should have already called Release on any in-progress Run's guard.
func (s *Scanner) Close() error {
	s.loopCancel()
	<-s.loopDone
	s.corr.Close()
	return s.sock.Close()
}

// Run scans the Cartesian product of dsts x [lo,hi] for open ports,
// installing the RST-suppression guard before scanning and removing it
// on every exit path including cancellation (spec §4.11).
func (s *Scanner) Run(ctx context.Context, dsts []net.IP) (Report, error) {
	if err := s.guard.Acquire(ctx); err != nil {
		return Report{}, err
	}
	defer s.guard.Release(context.Background())

	limiter := qos.NewAdaptiveLimiter(s.cfg.Concurrency, 1, s.cfg.Concurrency)

	report := Report{OpenPorts: make(map[string]map[int]bool)}
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, dst := range dsts {
		dst := dst
		for port := s.cfg.LoPort; port <= s.cfg.HiPort; port++ {
			port := port
			if err := limiter.Acquire(ctx); err != nil {
				wg.Wait()
				return report, err
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer limiter.Release()

				open := s.probePort(ctx, dst, uint16(port))
				if open {
					limiter.OnSuccess()
				} else {
					limiter.OnFailure()
				}
				if open {
					mu.Lock()
					if report.OpenPorts[dst.String()] == nil {
						report.OpenPorts[dst.String()] = map[int]bool{}
					}
					report.OpenPorts[dst.String()][port] = true
					mu.Unlock()
				}
			}()
		}
	}
	wg.Wait()
	return report, nil
}

// probePort drives one half-open handshake attempt, closing it without
// closing the shared socket, per spec §4.11.
func (s *Scanner) probePort(ctx context.Context, dst net.IP, dstPort uint16) bool {
	srcPort := s.nextSourcePort()
	initialID := uint16(rand.Intn(1 << 16))

	f := flow.New(s.sock, s.corr, s.cfg.SrcIP, dst, srcPort, dstPort, initialID, s.cfg.Timeout)

	openCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	if err := f.Open(openCtx); err != nil {
		logger.Debugf("synscan %s:%d: %v", dst, dstPort, err)
		return false
	}

	open := f.HandshakeCompleted() && !f.Reset()
	_ = f.Close(false)
	return open
}
