package alive

import (
	"context"
	"errors"
	"net"
	"time"

	probing "github.com/prometheus-community/pro-bing"

	"neoagent/internal/core/lib/network/netraw"
	"neoagent/internal/pkg/logger"
)

// RunWithFallback opens a raw-socket PingManager and, if raw-socket
// creation fails with ErrPermission (unprivileged process, or Windows —
// see netraw/socket_windows.go), falls back to pro-bing's privileged
// ICMP helper for a best-effort liveness check instead of failing the
// whole command, exercising spec §7's Permission error kind as a
// degraded-but-working path rather than a hard stop.
func RunWithFallback(ctx context.Context, dsts []net.IP, cfg Config) (map[string]Stats, error) {
	mgr, err := NewPingManager()
	if err != nil {
		if errors.Is(err, netraw.ErrPermission) {
			logger.Warnf("ping: raw socket unavailable (%v), falling back to privileged ICMP helper", err)
			return runFallback(ctx, dsts, cfg)
		}
		return nil, err
	}
	defer mgr.Close()
	return mgr.RunMulti(ctx, dsts, cfg)
}

func runFallback(ctx context.Context, dsts []net.IP, cfg Config) (map[string]Stats, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	results := make(map[string]Stats, len(dsts))
	for _, dst := range dsts {
		pinger, err := probing.NewPinger(dst.String())
		if err != nil {
			results[dst.String()] = Stats{Dst: dst.String()}
			continue
		}
		pinger.SetPrivileged(true)
		pinger.Count = cfg.Count
		pinger.Interval = cfg.Interval
		pinger.Timeout = cfg.Timeout * time.Duration(cfg.Count)

		runCtx, cancel := context.WithTimeout(ctx, pinger.Timeout+time.Second)
		done := make(chan error, 1)
		go func() { done <- pinger.RunWithContext(runCtx) }()
		select {
		case <-done:
		case <-runCtx.Done():
		}
		cancel()

		stats := pinger.Statistics()
		results[dst.String()] = Stats{
			Dst:      dst.String(),
			Sent:     stats.PacketsSent,
			Received: stats.PacketsRecv,
			LossPct:  stats.PacketLoss,
			Success:  stats.PacketsRecv > 0,
			MinRTT:   stats.MinRtt,
			MaxRTT:   stats.MaxRtt,
			AvgRTT:   stats.AvgRtt,
		}
	}
	return results, nil
}
