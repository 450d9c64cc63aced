package workers

import (
	"context"
	"log/slog"
	"time"

	"transfer-agent/observability"
	"transfer-agent/scanner"
)

// ScanWorker drives the scanner on a fixed interval. The first cycle runs
// immediately at startup: the registry has no persisted state and is rebuilt
// entirely from what the first scan finds on disk.
type ScanWorker struct {
	log        *slog.Logger
	scanner    *scanner.Scanner
	interval   time.Duration
	monitoring *observability.MonitoringManager
}

func NewScanWorker(log *slog.Logger, sc *scanner.Scanner, interval time.Duration, monitoring *observability.MonitoringManager) *ScanWorker {
	return &ScanWorker{
		log:        log,
		scanner:    sc,
		interval:   interval,
		monitoring: monitoring,
	}
}

func (w *ScanWorker) Run(ctx context.Context) error {
	w.log.Info("Starting source scanner", "interval", w.interval)

	if err := w.cycle(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Stopping source scanner")
			return ctx.Err()
		case <-ticker.C:
			if err := w.cycle(ctx); err != nil {
				return err
			}
		}
	}
}

func (w *ScanWorker) cycle(ctx context.Context) error {
	if err := w.scanner.Cycle(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// A failed enumeration (for example the source mount dropped) is
		// retried on the next tick rather than crashing the worker.
		w.log.Error("Scan cycle failed", "error", err)
		return nil
	}
	w.monitoring.IncrScanCycles()
	return nil
}
