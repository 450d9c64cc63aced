package sink

import (
	"context"

	"transfer-agent/domain"
	"transfer-agent/domain/event"
	"transfer-agent/observability"
)

// StatsSink feeds lifecycle counters from the event stream. Copy workers
// already account for completions and failures at the point of action, so
// this sink only counts the transitions nobody else owns.
type StatsSink struct {
	monitoring *observability.MonitoringManager
}

func NewStatsSink(monitoring *observability.MonitoringManager) StatsSink {
	return StatsSink{monitoring: monitoring}
}

func (s StatsSink) Consume(_ context.Context, e event.DomainEvent) error {
	evt, ok := e.(event.FileStatusChanged)
	if !ok {
		return nil
	}

	switch evt.NewStatus {
	case domain.StatusDiscovered:
		s.monitoring.IncrFilesDiscovered()
	case domain.StatusRemoved:
		s.monitoring.IncrFilesRemoved()
	}
	return nil
}
