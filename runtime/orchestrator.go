// Package runtime wires the pipeline together and owns its lifecycle. It
// orchestrates supervision, channels and subscriptions without containing
// business logic or domain rules.
package runtime

import (
	"context"
	"log/slog"

	"transfer-agent/contract"
	"transfer-agent/domain"
	"transfer-agent/internal"
	"transfer-agent/observability"
	"transfer-agent/registry"
	"transfer-agent/runtime/workers"
	"transfer-agent/scanner"
	"transfer-agent/sink"
	"transfer-agent/storage"
	"transfer-agent/transfer"
)

// Orchestrator builds every component of the pipeline from the configuration
// and runs them under one supervisor. It is the only place that knows how the
// pieces connect; each worker only sees its own narrow dependencies.
type Orchestrator struct {
	log        *slog.Logger
	cfg        internal.Config
	supervisor contract.ISupervisor

	publisher  *registry.Publisher
	registry   *registry.FileRegistry
	retries    *registry.RetryCoordinator
	checker    *storage.DestinationChecker
	monitoring *observability.MonitoringManager

	permanentSinks []contract.EventSink
	queue          chan domain.FileID
}

func NewOrchestrator(log *slog.Logger, cfg internal.Config) *Orchestrator {
	publisher := registry.NewPublisher(log, cfg.EventBufferSize)

	return &Orchestrator{
		log:        log,
		cfg:        cfg,
		supervisor: workers.NewSupervisor(log),
		publisher:  publisher,
		registry:   registry.NewFileRegistry(log, publisher, cfg.HistoryLimit),
		retries:    registry.NewRetryCoordinator(log),
		checker: storage.NewDestinationChecker(
			log, cfg.DestinationDir,
			cfg.DestinationProbeTTL, cfg.DestinationProbeTimeout,
			publisher.Publish,
		),
		monitoring: observability.NewMonitoringManager(),
		queue:      make(chan domain.FileID, cfg.QueueCapacity),
	}
}

// Registry exposes the file registry for read-only inspection (UI, tests).
func (o *Orchestrator) Registry() contract.IFileRegistry { return o.registry }

// Add registers extra event sinks before Start; they join the fanout.
func (o *Orchestrator) Add(sinks ...contract.EventSink) {
	o.permanentSinks = append(o.permanentSinks, sinks...)
}

// Start assembles the workers and blocks until the context is cancelled and
// every supervised worker has returned.
func (o *Orchestrator) Start(ctx context.Context) error {
	bridge := o.prepareBridge()
	copyWorkers := o.prepareCopyWorkers(bridge.Reoffer)
	scanWorker := o.prepareScanner()
	fanout := o.prepareFanout()

	probe := workers.NewDestinationProbeWorker(
		o.log, o.checker,
		o.cfg.DestinationProbeEvery, o.cfg.GlobalRetryDelay,
	)
	reporter := workers.NewReporterWorker(o.log, o.registry, o.monitoring, o.cfg.ReportInterval)

	o.supervisor.Add(fanout)
	o.supervisor.Add(bridge)
	for _, w := range copyWorkers {
		o.supervisor.Add(w)
	}
	o.supervisor.Add(scanWorker)
	o.supervisor.Add(probe)
	o.supervisor.Add(reporter)

	o.log.Info("Starting orchestrator and all supervised workers",
		"copyWorkers", len(copyWorkers), "queueCapacity", o.cfg.QueueCapacity)
	o.supervisor.Run(ctx)
	return nil
}

// prepareScanner builds the source-side scanning stack.
func (o *Orchestrator) prepareScanner() contract.Worker {
	sc := scanner.NewScanner(o.log, scanner.Options{
		SourceRoot:         o.cfg.SourceDir,
		StabilityWindow:    o.cfg.StabilityWindow,
		GrowingFileSupport: o.cfg.GrowingFileSupport,
		GrowingMinBytes:    o.cfg.GrowingMinBytes,
	}, o.registry, o.retries)

	return workers.NewScanWorker(o.log, sc, o.cfg.ScanInterval, o.monitoring)
}

// prepareBridge subscribes the bridge to the registry's event stream. The
// subscription is created here so no Ready transition can slip between
// registry construction and bridge startup.
func (o *Orchestrator) prepareBridge() *workers.QueueBridgeWorker {
	events := o.publisher.Subscribe("queue-bridge")
	return workers.NewQueueBridgeWorker(o.log, o.registry, o.retries, o.checker, events, o.queue, o.cfg.ScanInterval)
}

// prepareCopyWorkers builds the destination-side transfer stack: one executor
// and strategy pair shared by a pool of queue consumers.
func (o *Orchestrator) prepareCopyWorkers(reoffer func(domain.FileID)) []contract.Worker {
	executor := transfer.NewExecutor(o.log, o.cfg.ChunkSize())
	plain := transfer.NewPlainStrategy(o.log, executor)
	growing := transfer.NewGrowingStrategy(
		o.log, executor,
		o.cfg.GrowingPollInterval,
		o.cfg.GrowingSafetyMargin,
		o.cfg.StabilityWindow,
		o.cfg.GrowingGrowthTimeout,
	)

	resolver := storage.NewPathResolver(o.cfg.SourceDir, o.cfg.DestinationDir)
	space := storage.NewSpaceChecker(o.log, o.cfg.DestinationDir, o.cfg.SpaceSafetyMarginBytes())
	policy := workers.CopyPolicy{
		MaxLocalRetries:    o.cfg.MaxLocalRetries,
		LocalRetryDelay:    o.cfg.LocalRetryDelay,
		SpaceRetryCooldown: o.cfg.SpaceRetryCooldown,
	}

	pool := make([]contract.Worker, 0, o.cfg.WorkerCount)
	for i := 0; i < o.cfg.WorkerCount; i++ {
		pool = append(pool, workers.NewCopyWorker(
			o.log, o.registry, o.retries, o.checker, space,
			resolver, executor, plain, growing,
			o.queue, reoffer, policy, o.monitoring,
		))
	}
	return pool
}

// prepareFanout connects the observability sinks to their own subscription,
// independent of the bridge's.
func (o *Orchestrator) prepareFanout() contract.Worker {
	events := o.publisher.Subscribe("fanout")

	sinks := append([]contract.EventSink{
		sink.NewLogSink(o.log),
		sink.NewStatsSink(o.monitoring),
	}, o.permanentSinks...)

	return workers.NewEventFanout(o.log, events).Add(sinks...)
}

// Stop initiates a graceful shutdown: workers are signalled through the
// supervisor, then the timers and event channels are torn down.
func (o *Orchestrator) Stop() {
	o.log.Info("Requesting orchestrator shutdown")
	o.supervisor.Stop()
	o.retries.Close()
	o.publisher.Close()
}
