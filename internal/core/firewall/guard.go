// Package firewall implements the scoped RST-suppression guard (C12): an
// acquire/release resource that drops the kernel's own outbound TCP RST
// for source ports the scanner is using, so a half-open scan doesn't race
// its own OS against the probe it just sent.
package firewall

import (
	"context"
	"fmt"
	"os/exec"
	"sync"

	"neoagent/internal/pkg/logger"
)

// Guard owns exactly the iptables rule it installed and removes exactly
// that rule on Release, idempotently, grounded on the original
// implementation's apply/remove-filter try/finally pair
// (ttlinks FirewallTools.apply_global_tcp_rst_filter /
// remove_global_tcp_rst_filter).
type Guard struct {
	mu        sync.Mutex
	installed bool
	loPort    int
	hiPort    int
}

// New returns a guard scoped to the source-port range the scanner will
// bind from. It installs nothing until Acquire is called.
func New(loPort, hiPort int) *Guard {
	return &Guard{loPort: loPort, hiPort: hiPort}
}

// Acquire installs the RST-suppression rule. Idempotent: calling Acquire
// twice without an intervening Release is a no-op.
func (g *Guard) Acquire(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.installed {
		return nil
	}
	if err := g.run(ctx, "-A"); err != nil {
		return fmt.Errorf("firewall: install RST filter: %w", err)
	}
	g.installed = true
	return nil
}

// Release removes exactly the rule Acquire installed. Best-effort: a
// failure here is logged, not propagated, per spec §7 ("the firewall
// guard's release is best-effort but logged on failure") — a scan that
// already completed or failed should not itself fail because cleanup
// hit a transient error.
func (g *Guard) Release(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.installed {
		return
	}
	if err := g.run(ctx, "-D"); err != nil {
		logger.Warnf("firewall: failed to remove RST filter (ports %d-%d): %v", g.loPort, g.hiPort, err)
		return
	}
	g.installed = false
}

// run shells out to iptables, matching the teacher's os/exec.CommandContext
// pattern for external-tool invocation. No go-iptables-style library exists in the
// dependency pack, so this is the teacher's own idiom generalized to a
// different external command.
func (g *Guard) run(ctx context.Context, action string) error {
	portRange := fmt.Sprintf("%d:%d", g.loPort, g.hiPort)
	cmd := exec.CommandContext(ctx, "iptables", action, "OUTPUT",
		"-p", "tcp",
		"--tcp-flags", "RST", "RST",
		"--sport", portRange,
		"-j", "DROP",
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w (%s)", cmd.String(), err, out)
	}
	return nil
}
