package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"transfer-agent/contract"
	"transfer-agent/domain/event"
)

// Ensure *DestinationChecker implements the contract at compile time.
var _ contract.IDestinationChecker = (*DestinationChecker)(nil)

const markerPrefix = ".transfer_agent_probe_"

// DestinationChecker answers "is the destination writable right now" with a
// TTL-bounded cache so the queue bridge and every worker can consult it
// without hammering a possibly-hung network mount.
//
// The probe is a real write test (create + remove a uniquely named marker
// file) executed with an explicit timeout; a hanging mount counts as
// unavailable rather than blocking the caller. Availability flips are
// published so UIs can show outage and recovery.
type DestinationChecker struct {
	mu   sync.Mutex
	log  *slog.Logger
	root string

	ttl          time.Duration
	probeTimeout time.Duration

	available   bool
	lastChecked time.Time
	lastReason  string
	primed      bool

	publish func(event.DomainEvent)
}

func NewDestinationChecker(log *slog.Logger, root string, ttl, probeTimeout time.Duration, publish func(event.DomainEvent)) *DestinationChecker {
	if publish == nil {
		publish = func(event.DomainEvent) {}
	}
	return &DestinationChecker{
		log:          log,
		root:         root,
		ttl:          ttl,
		probeTimeout: probeTimeout,
		publish:      publish,
	}
}

// Available returns the cached answer, probing only when the cache expired.
func (c *DestinationChecker) Available(ctx context.Context) bool {
	c.mu.Lock()
	if c.primed && time.Since(c.lastChecked) < c.ttl {
		available := c.available
		c.mu.Unlock()
		return available
	}
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// Refresh forces a fresh probe, bypassing the cache. Used right after an
// observed I/O failure so a stale "OK" is never trusted.
func (c *DestinationChecker) Refresh(ctx context.Context) bool {
	available, reason := c.probe(ctx)

	c.mu.Lock()
	changed := !c.primed || c.available != available
	c.available = available
	c.lastChecked = time.Now()
	c.lastReason = reason
	c.primed = true
	c.mu.Unlock()

	if changed {
		c.log.Info("Destination availability changed", "available", available, "reason", reason)
		c.publish(event.DestinationStateChanged{Available: available, Reason: reason, At: time.Now()})
	}
	return available
}

// ReportFailure caches "unavailable" immediately after a worker observed a
// destination-side failure, so no further files are enqueued before the next
// successful probe.
func (c *DestinationChecker) ReportFailure(reason string) {
	c.mu.Lock()
	changed := !c.primed || c.available
	c.available = false
	c.lastChecked = time.Now()
	c.lastReason = reason
	c.primed = true
	c.mu.Unlock()

	if changed {
		c.log.Warn("Destination reported unavailable", "reason", reason)
		c.publish(event.DestinationStateChanged{Available: false, Reason: reason, At: time.Now()})
	}
}

// LastReason returns the reason recorded with the latest probe result.
func (c *DestinationChecker) LastReason() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastReason
}

// probe performs the write-access test in a goroutine so a wedged mount can
// never hang the caller past the configured timeout.
func (c *DestinationChecker) probe(ctx context.Context) (bool, string) {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	type result struct {
		ok     bool
		reason string
	}
	done := make(chan result, 1)

	go func() {
		marker := filepath.Join(c.root, markerPrefix+uuid.NewString()[:8])
		f, err := os.Create(marker)
		if err != nil {
			done <- result{false, fmt.Sprintf("write probe failed: %v", err)}
			return
		}
		_ = f.Close()
		if err := os.Remove(marker); err != nil {
			// The write itself succeeded; a failed cleanup is logged, not fatal.
			c.log.Warn("Could not remove probe marker", "path", marker, "error", err)
		}
		done <- result{true, "write probe succeeded"}
	}()

	select {
	case <-ctx.Done():
		return false, fmt.Sprintf("probe timed out after %s", c.probeTimeout)
	case res := <-done:
		return res.ok, res.reason
	}
}
