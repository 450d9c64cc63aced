package registry

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"transfer-agent/domain/event"
)

// Publisher fans out domain events to named subscribers.
//
// Each subscriber owns a bounded buffered channel. Publishing never blocks:
// when a subscriber's buffer is full the oldest buffered event is dropped and
// a per-subscriber counter is incremented. This keeps slow consumers (UI,
// metrics) from ever stalling registry mutation, at the cost of lossy
// delivery for consumers that cannot keep up. Per-subscriber order of the
// surviving events is preserved.
//
// Publisher is safe for concurrent use by multiple goroutines.
type Publisher struct {
	mu         sync.RWMutex
	log        *slog.Logger
	bufferSize int
	subs       map[string]*subscription
}

type subscription struct {
	ch      chan event.DomainEvent
	dropped atomic.Uint64
}

func NewPublisher(log *slog.Logger, bufferSize int) *Publisher {
	return &Publisher{
		log:        log,
		bufferSize: bufferSize,
		subs:       make(map[string]*subscription),
	}
}

// Subscribe registers a named consumer and returns its event channel.
// Subscribing twice under the same name replaces the previous subscription;
// the old channel is closed.
func (p *Publisher) Subscribe(name string) <-chan event.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	if old, ok := p.subs[name]; ok {
		close(old.ch)
	}
	sub := &subscription{ch: make(chan event.DomainEvent, p.bufferSize)}
	p.subs[name] = sub
	return sub.ch
}

// Unsubscribe removes a consumer and closes its channel. Unknown names are a no-op.
func (p *Publisher) Unsubscribe(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if sub, ok := p.subs[name]; ok {
		close(sub.ch)
		delete(p.subs, name)
	}
}

// Publish offers the event to every subscriber without ever blocking.
// On a full buffer the oldest event is evicted to make room.
func (p *Publisher) Publish(e event.DomainEvent) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for name, sub := range p.subs {
		select {
		case sub.ch <- e:
			continue
		default:
		}

		// Buffer full: evict the oldest event, then retry once. The second
		// send can still lose the race against a concurrent publisher, in
		// which case this event is the one dropped.
		select {
		case <-sub.ch:
		default:
		}
		select {
		case sub.ch <- e:
		default:
			sub.dropped.Add(1)
			p.log.Debug("Event dropped for slow subscriber", "subscriber", name)
			continue
		}
		sub.dropped.Add(1)
		p.log.Debug("Oldest event evicted for slow subscriber", "subscriber", name)
	}
}

// Dropped returns how many events the named subscriber has lost so far.
func (p *Publisher) Dropped(name string) uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if sub, ok := p.subs[name]; ok {
		return sub.dropped.Load()
	}
	return 0
}

// Close closes every subscriber channel.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for name, sub := range p.subs {
		close(sub.ch)
		delete(p.subs, name)
	}
}
