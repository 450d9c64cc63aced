package workers

import (
	"context"
	"log/slog"

	"transfer-agent/contract"
	"transfer-agent/domain/event"
)

// EventFanout broadcasts domain events to multiple in-process consumers.
//
// It provides best-effort fan-out with no guarantees regarding delivery,
// durability, or retries. EventFanout is not a message broker; it is intended
// for observability and side effects (logs, metrics), not for core pipeline
// logic, which reacts to its own registry subscription.
//
// EventFanout is safe for concurrent use by multiple goroutines.
type EventFanout struct {
	log    *slog.Logger
	events <-chan event.DomainEvent
	sinks  []contract.EventSink
}

func NewEventFanout(log *slog.Logger, events <-chan event.DomainEvent) *EventFanout {
	return &EventFanout{log: log, events: events}
}

func (w *EventFanout) Add(sinks ...contract.EventSink) *EventFanout {
	w.sinks = append(w.sinks, sinks...)
	return w
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping event fanout")
			return ctx.Err()
		case evt, ok := <-w.events:
			if !ok {
				return nil
			}
			w.fanout(ctx, evt)
		}
	}
}

// fanout hands one event to every sink; a failing sink never blocks the rest.
func (w *EventFanout) fanout(ctx context.Context, evt event.DomainEvent) {
	for _, sink := range w.sinks {
		if err := sink.Consume(ctx, evt); err != nil {
			w.log.Debug("Sink rejected event", "err", err)
		}
	}
}
