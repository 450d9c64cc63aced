package workers

import (
	"context"
	"log/slog"
	"time"

	"transfer-agent/contract"
)

// DestinationProbeWorker keeps the destination availability cache warm. While
// the destination answers, it probes on a relaxed schedule; during an outage
// it switches to the recovery interval so the pipeline resumes promptly once
// the volume is back.
type DestinationProbeWorker struct {
	log        *slog.Logger
	checker    contract.IDestinationChecker
	probeEvery time.Duration
	retryEvery time.Duration
}

func NewDestinationProbeWorker(
	log *slog.Logger,
	checker contract.IDestinationChecker,
	probeEvery, retryEvery time.Duration,
) *DestinationProbeWorker {
	return &DestinationProbeWorker{
		log:        log,
		checker:    checker,
		probeEvery: probeEvery,
		retryEvery: retryEvery,
	}
}

func (w *DestinationProbeWorker) Run(ctx context.Context) error {
	w.log.Info("Starting destination probe worker", "probeEvery", w.probeEvery, "retryEvery", w.retryEvery)

	available := w.checker.Refresh(ctx)
	timer := time.NewTimer(w.nextDelay(available))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping destination probe worker")
			return ctx.Err()
		case <-timer.C:
			available = w.checker.Refresh(ctx)
			timer.Reset(w.nextDelay(available))
		}
	}
}

func (w *DestinationProbeWorker) nextDelay(available bool) time.Duration {
	if available {
		return w.probeEvery
	}
	return w.retryEvery
}
