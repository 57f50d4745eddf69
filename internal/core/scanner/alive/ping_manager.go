package alive

import (
	"context"
	"fmt"
	"math/rand"
	"net"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"neoagent/internal/core/lib/network/netraw"
	"neoagent/internal/core/lib/network/qos"
	"neoagent/internal/core/probe"
	"neoagent/internal/pkg/logger"
)

// Config carries one ping invocation's parameters (spec §4.10).
type Config struct {
	Timeout     time.Duration
	Interval    time.Duration
	Count       int
	Verbose     bool
	Concurrency int // across destinations in a multi-destination run
}

// Validate enforces spec §4.10's contract: timeout >= 0, interval >= 0,
// count >= 1, timeout >= interval.
func (c Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must be >= 0", netraw.ErrInvalidConfig)
	}
	if c.Interval < 0 {
		return fmt.Errorf("%w: interval must be >= 0", netraw.ErrInvalidConfig)
	}
	if c.Count < 1 {
		return fmt.Errorf("%w: count must be >= 1", netraw.ErrInvalidConfig)
	}
	if c.Timeout < c.Interval {
		return fmt.Errorf("%w: timeout must be >= interval", netraw.ErrInvalidConfig)
	}
	return nil
}

// PingManager drives one or more destinations' echo sequences over a
// single shared raw ICMP socket and a single receiver loop, per spec §5's
// "one raw socket per ping manager invocation" resource model.
type PingManager struct {
	sock netraw.RawSocket
	corr *probe.Correlator

	srcID uint16 // base ICMP identifier, randomized per manager instance

	loopCancel context.CancelFunc
	loopDone   chan struct{}
}

// NewPingManager opens the raw ICMP socket and starts its receiver loop.
// Callers must call Close when done to release the socket and stop the loop.
func NewPingManager() (*PingManager, error) {
	sock, err := netraw.NewRawICMP4Socket()
	if err != nil {
		return nil, err
	}
	corr := probe.NewCorrelator()
	ctx, cancel := context.WithCancel(context.Background())
	m := &PingManager{
		sock:       sock,
		corr:       corr,
		srcID:      uint16(rand.Intn(1 << 16)),
		loopCancel: cancel,
		loopDone:   make(chan struct{}),
	}
	go func() {
		defer close(m.loopDone)
		netraw.RunReceiveLoop(ctx, sock, corr.HandleFrame)
	}()
	return m, nil
}

// Close stops the receiver loop and releases the raw socket.
func (m *PingManager) Close() error {
	m.loopCancel()
	<-m.loopDone
	m.corr.Close()
	return m.sock.Close()
}

// Run pings a single destination count times, per spec §4.10.
func (m *PingManager) Run(ctx context.Context, dst net.IP, cfg Config) (Stats, error) {
	if err := cfg.Validate(); err != nil {
		return Stats{}, err
	}

	stats := Stats{Dst: dst.String()}
	var rtts []time.Duration

	for seq := 0; seq < cfg.Count; seq++ {
		select {
		case <-ctx.Done():
			return finalizeStats(stats, rtts), ctx.Err()
		default:
		}

		p := probe.NewICMPProbe(dst, m.srcID, uint16(seq), cfg.Timeout)
		m.corr.RegisterICMP(p)

		echo := netraw.BuildICMPEchoRequest(m.srcID, uint16(seq), []byte("neoagent-probe"))
		sendTime := time.Now()
		stats.Sent++
		if err := m.sock.Send(dst, echo); err != nil {
			logger.Warnf("ping %s: send failed: %v", dst, err)
		} else {
			result := p.Await()
			if result.Kind == probe.ResultEchoReply {
				rtt := time.Since(sendTime)
				stats.Received++
				rtts = append(rtts, rtt)
				if cfg.Verbose {
					logger.Infof("ping %s: seq=%d rtt=%s", dst, seq, rtt)
				}
			} else if cfg.Verbose {
				logger.Infof("ping %s: seq=%d no reply (%v)", dst, seq, result.Kind)
			}
		}

		if seq < cfg.Count-1 && cfg.Interval > 0 {
			select {
			case <-time.After(cfg.Interval):
			case <-ctx.Done():
				return finalizeStats(stats, rtts), ctx.Err()
			}
		}
	}

	return finalizeStats(stats, rtts), nil
}

func finalizeStats(s Stats, rtts []time.Duration) Stats {
	if s.Sent > 0 {
		s.LossPct = 100 * float64(s.Sent-s.Received) / float64(s.Sent)
	}
	s.Success = s.Received > 0
	if len(rtts) > 0 {
		s.MinRTT, s.MaxRTT = rtts[0], rtts[0]
		var sum time.Duration
		for _, r := range rtts {
			if r < s.MinRTT {
				s.MinRTT = r
			}
			if r > s.MaxRTT {
				s.MaxRTT = r
			}
			sum += r
		}
		s.AvgRTT = sum / time.Duration(len(rtts))
	}
	return s
}

// RunMulti fans out one goroutine per destination, bounded by
// cfg.Concurrency via an AdaptiveLimiter — reusing the teacher's AIMD
// concurrency primitive in place of a fixed semaphore, so a run against
// many unresponsive hosts backs itself off rather than holding every
// slot open until each individual timeout fires.
func (m *PingManager) RunMulti(ctx context.Context, dsts []net.IP, cfg Config) (map[string]Stats, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	limiter := qos.NewAdaptiveLimiter(concurrency, 1, concurrency)
	limit := rate.NewLimiter(rate.Every(time.Millisecond), concurrency)

	results := make(map[string]Stats, len(dsts))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, dst := range dsts {
		dst := dst
		if err := limiter.Acquire(ctx); err != nil {
			break
		}
		if err := limit.Wait(ctx); err != nil {
			limiter.Release()
			break
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer limiter.Release()
			s, err := m.Run(ctx, dst, cfg)
			if err != nil || !s.Success {
				limiter.OnFailure()
			} else {
				limiter.OnSuccess()
			}
			mu.Lock()
			results[dst.String()] = s
			mu.Unlock()
		}()
	}
	wg.Wait()
	return results, nil
}
