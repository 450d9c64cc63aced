package workers

import (
	"context"
	"log/slog"
	"time"

	"transfer-agent/contract"
	"transfer-agent/domain"
	"transfer-agent/domain/event"
)

// QueueBridgeWorker connects the registry's event stream to the bounded work
// queue the copy workers consume.
//
// A file is offered to the queue when it becomes Ready, but only while the
// destination is reachable; during an outage Ready files simply accumulate,
// which is what makes the backlog visible and keeps the queue from flooding.
// When the destination recovers, waiting files are returned to Ready and
// every Ready file is offered again, oldest discovery first.
//
// Status is re-checked immediately before each enqueue: events are delivered
// asynchronously, so by the time an offer happens the file may have been
// removed or already picked up after a recovery re-offer.
//
// Events are a latency optimization, not the source of truth: the bridge also
// sweeps the Ready backlog on a fixed interval, so a Ready event evicted from
// the subscription buffer (the bridge can be blocked on a full queue while
// the scanner keeps promoting) delays the file by at most one sweep.
type QueueBridgeWorker struct {
	log      *slog.Logger
	registry contract.IFileRegistry
	retries  contract.IRetryCoordinator
	checker  contract.IDestinationChecker

	events     <-chan event.DomainEvent
	queue      chan<- domain.FileID
	reoffer    chan domain.FileID
	sweepEvery time.Duration
}

func NewQueueBridgeWorker(
	log *slog.Logger,
	reg contract.IFileRegistry,
	retries contract.IRetryCoordinator,
	checker contract.IDestinationChecker,
	events <-chan event.DomainEvent,
	queue chan<- domain.FileID,
	sweepEvery time.Duration,
) *QueueBridgeWorker {
	return &QueueBridgeWorker{
		log:        log,
		registry:   reg,
		retries:    retries,
		checker:    checker,
		events:     events,
		queue:      queue,
		reoffer:    make(chan domain.FileID, cap(queue)),
		sweepEvery: sweepEvery,
	}
}

// Reoffer asks the bridge to reconsider a file, typically when its retry
// cooldown has elapsed. Safe to call from timer goroutines; the offer is
// dropped (and retried on the next recovery sweep) if the bridge is swamped.
func (w *QueueBridgeWorker) Reoffer(id domain.FileID) {
	select {
	case w.reoffer <- id:
	default:
		w.log.Debug("Reoffer buffer full, dropping", "id", id)
	}
}

func (w *QueueBridgeWorker) Run(ctx context.Context) error {
	w.log.Info("Starting ready-queue bridge", "sweepEvery", w.sweepEvery)

	ticker := time.NewTicker(w.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Stopping ready-queue bridge")
			return ctx.Err()
		case id := <-w.reoffer:
			w.tryEnqueue(ctx, id)
		case evt, ok := <-w.events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, evt)
		case <-ticker.C:
			w.sweepReady(ctx)
		}
	}
}

// sweepReady offers every Ready file whose cooldown has passed, oldest first.
func (w *QueueBridgeWorker) sweepReady(ctx context.Context) {
	for _, f := range w.registry.QueryByStatus(domain.StatusReady) {
		if ctx.Err() != nil {
			return
		}
		w.tryEnqueue(ctx, f.ID)
	}
}

func (w *QueueBridgeWorker) handleEvent(ctx context.Context, evt event.DomainEvent) {
	switch e := evt.(type) {
	case event.FileStatusChanged:
		if e.NewStatus == domain.StatusReady {
			w.tryEnqueue(ctx, e.ID)
		}
	case event.DestinationStateChanged:
		if e.Available {
			w.recover(ctx)
		}
	}
}

// tryEnqueue moves one Ready file into the queue if nothing stands in the way.
func (w *QueueBridgeWorker) tryEnqueue(ctx context.Context, id domain.FileID) {
	f, err := w.registry.Get(id)
	if err != nil || f.Status != domain.StatusReady {
		return
	}

	// A file inside its retry cooldown stays parked; the coordinator will
	// bring it back when the cooldown elapses.
	if wait := time.Until(f.RetryNotBefore); wait > 0 {
		w.retries.Schedule(id, wait, "retry cooldown", func() { w.Reoffer(id) })
		return
	}

	if !w.checker.Available(ctx) {
		w.log.Debug("Destination unavailable, leaving file ready", "path", f.SourcePath)
		return
	}

	if _, err := w.registry.Transition(id, domain.StatusInQueue); err != nil {
		w.log.Debug("Enqueue transition lost a race", "id", id, "error", err)
		return
	}

	select {
	case <-ctx.Done():
		// Shutting down mid-offer: bounce the file back so a restart's first
		// scan is not needed to find it again.
		if _, err := w.registry.Transition(id, domain.StatusReady); err != nil {
			w.log.Debug("Could not bounce file back to ready", "id", id, "error", err)
		}
	case w.queue <- id:
		w.log.Debug("File enqueued", "path", f.SourcePath)
	}
}

// recover runs after the destination came back: waiting files become Ready
// again and the whole Ready backlog is offered oldest first.
func (w *QueueBridgeWorker) recover(ctx context.Context) {
	waiting := w.registry.QueryByStatus(domain.StatusWaitingForNetwork)
	for _, f := range waiting {
		if _, err := w.registry.Transition(f.ID, domain.StatusReady); err != nil {
			w.log.Debug("Recovery transition rejected", "id", f.ID, "error", err)
		}
	}
	if len(waiting) > 0 {
		w.log.Info("Destination recovered, files released", "count", len(waiting))
	}

	// The transitions above already produced Ready events for the waiting
	// files; the sweep catches files that were Ready before the outage and
	// therefore never got a fresh event.
	w.sweepReady(ctx)
}
