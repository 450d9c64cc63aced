package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"

	"transfer-agent/contract"
	"transfer-agent/observability"
)

// ReporterWorker periodically logs a pipeline summary together with the
// agent's own resource usage, so an operator tailing the log can see both
// throughput and health at a glance.
type ReporterWorker struct {
	log        *slog.Logger
	registry   contract.IFileRegistry
	monitoring *observability.MonitoringManager
	interval   time.Duration
}

func NewReporterWorker(
	log *slog.Logger,
	reg contract.IFileRegistry,
	monitoring *observability.MonitoringManager,
	interval time.Duration,
) *ReporterWorker {
	return &ReporterWorker{
		log:        log,
		registry:   reg,
		monitoring: monitoring,
		interval:   interval,
	}
}

func (w *ReporterWorker) Run(ctx context.Context) error {
	w.log.Info("Starting reporter worker", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			w.report(p)
			w.log.Debug("Stopping reporter worker")
			return ctx.Err()
		case <-ticker.C:
			w.report(p)
		}
	}
}

// report emits one structured summary line. Self-stats are best effort; the
// pipeline counters are always logged.
func (w *ReporterWorker) report(p *process.Process) {
	stats := w.monitoring.Snapshot(w.registry.Statistics())

	attrs := []any{
		"discovered", stats.FilesDiscovered,
		"completed", stats.FilesCompleted,
		"failed", stats.FilesFailed,
		"removed", stats.FilesRemoved,
		"bytesCopied", stats.BytesCopied,
		"copyErrors", stats.CopyErrors,
		"scanCycles", stats.ScanCycles,
		"byStatus", stats.CountsByStatus,
	}

	if rss, cpu, err := selfStats(p); err != nil {
		w.log.Debug("Failed to collect self stats", "err", err)
	} else {
		attrs = append(attrs, "ramBytes", rss, "cpuPercent", cpu)
	}

	w.log.Info("Pipeline report", attrs...)
}

// selfStats retrieves memory and CPU usage for the agent's own process.
func selfStats(p *process.Process) (uint64, float64, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, err
	}
	return memInfo.RSS, cpuPercent, nil
}
