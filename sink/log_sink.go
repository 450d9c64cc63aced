package sink

import (
	"context"
	"fmt"
	"log/slog"

	"transfer-agent/domain/event"
)

// LogSink writes a structured line per domain event. Progress events are
// logged at debug level to keep the info log readable during large copies.
type LogSink struct {
	log *slog.Logger
}

func NewLogSink(log *slog.Logger) LogSink {
	return LogSink{log: log}
}

func (s LogSink) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.FileStatusChanged:
		s.log.Info("File status changed",
			"path", evt.Path,
			"from", evt.OldStatus,
			"to", evt.NewStatus,
		)
	case event.CopyProgressed:
		s.log.Debug("Copy progress",
			"path", evt.Path,
			"percent", fmt.Sprintf("%.1f", evt.Percent),
			"bytes", evt.BytesCopied,
			"rateBytesSec", fmt.Sprintf("%.0f", evt.RateBytesSec),
		)
	case event.DestinationStateChanged:
		if evt.Available {
			s.log.Info("Destination back online")
		} else {
			s.log.Warn("Destination unavailable", "reason", evt.Reason)
		}
	default:
		s.log.Debug(fmt.Sprintf("Not implemented event : %v", evt))
	}
	return nil
}
