package registry

import (
	"log/slog"
	"sync"
	"time"

	"transfer-agent/contract"
	"transfer-agent/domain"
)

// Ensure *RetryCoordinator implements the contract at compile time.
var _ contract.IRetryCoordinator = (*RetryCoordinator)(nil)

// RetryCoordinator owns at most one pending cooldown timer per file.
//
// Scheduling while a retry is already pending replaces the old timer.
// Cancelling an unknown, already-fired or already-cancelled timer is a no-op.
// The callback runs on the timer goroutine and must therefore be cheap and
// non-blocking (registry transitions qualify).
type RetryCoordinator struct {
	mu     sync.Mutex
	log    *slog.Logger
	timers map[domain.FileID]*time.Timer
	closed bool
}

func NewRetryCoordinator(log *slog.Logger) *RetryCoordinator {
	return &RetryCoordinator{
		log:    log,
		timers: make(map[domain.FileID]*time.Timer),
	}
}

// Schedule arms (or re-arms) the cooldown for a file.
func (c *RetryCoordinator) Schedule(id domain.FileID, delay time.Duration, reason string, fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	if old, ok := c.timers[id]; ok {
		old.Stop()
	}

	c.log.Debug("Retry scheduled", "id", id, "delay", delay, "reason", reason)

	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		c.mu.Lock()
		// A replaced timer may still fire if Stop lost the race; only the
		// currently registered timer is allowed to run its callback.
		current, ok := c.timers[id]
		if !ok || current != timer {
			c.mu.Unlock()
			return
		}
		delete(c.timers, id)
		c.mu.Unlock()

		fn()
	})
	c.timers[id] = timer
}

// Cancel disarms the pending retry for a file, if any.
func (c *RetryCoordinator) Cancel(id domain.FileID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if timer, ok := c.timers[id]; ok {
		timer.Stop()
		delete(c.timers, id)
	}
}

// Pending returns the number of armed timers.
func (c *RetryCoordinator) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// Close disarms everything; subsequent Schedule calls are ignored.
func (c *RetryCoordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, timer := range c.timers {
		timer.Stop()
		delete(c.timers, id)
	}
	c.closed = true
}
