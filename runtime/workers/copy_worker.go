package workers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"transfer-agent/contract"
	"transfer-agent/domain"
	apperrors "transfer-agent/errors"
	"transfer-agent/failure"
	"transfer-agent/observability"
	"transfer-agent/registry"
	"transfer-agent/storage"
	"transfer-agent/transfer"
)

// CopyPolicy is the retry/cooldown knobs one copy worker applies.
type CopyPolicy struct {
	MaxLocalRetries    int
	LocalRetryDelay    time.Duration
	SpaceRetryCooldown time.Duration
}

// CopyWorker executes transfer jobs pulled from the bounded queue. Several
// instances run concurrently; the queue is the only coordination between
// them, everything else goes through the registry.
//
// All failures are caught here at the worker boundary, classified, and turned
// into transitions; nothing propagates upward except context cancellation.
type CopyWorker struct {
	log        *slog.Logger
	registry   contract.IFileRegistry
	retries    contract.IRetryCoordinator
	checker    contract.IDestinationChecker
	space      contract.ISpaceChecker
	resolver   *storage.PathResolver
	executor   *transfer.Executor
	plain      contract.CopyStrategy
	growing    contract.CopyStrategy
	queue      <-chan domain.FileID
	reoffer    func(domain.FileID)
	policy     CopyPolicy
	monitoring *observability.MonitoringManager
}

func NewCopyWorker(
	log *slog.Logger,
	reg contract.IFileRegistry,
	retries contract.IRetryCoordinator,
	checker contract.IDestinationChecker,
	space contract.ISpaceChecker,
	resolver *storage.PathResolver,
	executor *transfer.Executor,
	plain, growing contract.CopyStrategy,
	queue <-chan domain.FileID,
	reoffer func(domain.FileID),
	policy CopyPolicy,
	monitoring *observability.MonitoringManager,
) *CopyWorker {
	return &CopyWorker{
		log:        log,
		registry:   reg,
		retries:    retries,
		checker:    checker,
		space:      space,
		resolver:   resolver,
		executor:   executor,
		plain:      plain,
		growing:    growing,
		queue:      queue,
		reoffer:    reoffer,
		policy:     policy,
		monitoring: monitoring,
	}
}

func (w *CopyWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping copy worker")
			return ctx.Err()
		case id, ok := <-w.queue:
			if !ok {
				return nil
			}
			w.process(ctx, id)
		}
	}
}

// process runs one job end to end. Every exit path leaves the file in a
// well-defined status and never leaves a partial final-named destination file.
func (w *CopyWorker) process(ctx context.Context, id domain.FileID) {
	f, err := w.registry.Get(id)
	if err != nil || f.Status != domain.StatusInQueue {
		// Raced to Removed or bounced back; nothing to do.
		return
	}

	copyStatus := domain.StatusCopying
	strategy := w.plain
	if f.Growing {
		copyStatus = domain.StatusGrowingCopy
		strategy = w.growing
	}

	f, err = w.registry.Transition(id, copyStatus)
	if err != nil {
		w.log.Debug("Copy transition lost a race", "id", id, "error", err)
		return
	}

	if !w.preflightSpace(f) {
		return
	}

	finalPath, err := w.resolver.Resolve(f.SourcePath)
	if err != nil {
		w.handleFailure(ctx, f, failure.NewDestinationError("resolve", err))
		return
	}
	w.registry.SetDestination(id, finalPath)

	tempPath := storage.TempPath(finalPath)
	w.registry.ResetProgress(id)

	w.log.Info("Copy started", "path", f.SourcePath, "destination", finalPath, "growing", f.Growing)

	req := contract.CopyRequest{
		SourcePath: f.SourcePath,
		TempPath:   tempPath,
		File:       f,
		Progress: func(bytesCopied, totalBytes uint64, rate float64) {
			_ = w.registry.RecordProgress(id, bytesCopied, totalBytes, rate)
		},
	}

	if _, err := strategy.Copy(ctx, req); err != nil {
		w.executor.Discard(tempPath)
		if errors.Is(err, apperrors.ErrCopyAborted) {
			w.abort(id)
			return
		}
		w.handleFailure(ctx, f, err)
		return
	}

	total, err := w.executor.Finalize(f.SourcePath, tempPath, finalPath)
	if err != nil {
		w.executor.Discard(tempPath)
		w.handleFailure(ctx, f, err)
		return
	}
	w.monitoring.AddBytesCopied(total)

	w.finalize(f, finalPath, total)
}

// preflightSpace blocks a copy that cannot fit. Space shortage parks the file
// with its own cooldown counter; an unreadable destination volume counts as a
// global outage.
func (w *CopyWorker) preflightSpace(f domain.TrackedFile) bool {
	check, err := w.space.Check(f.Size)
	if err != nil {
		w.checker.ReportFailure(check.Reason)
		if _, terr := w.registry.Transition(f.ID, domain.StatusWaitingForNetwork,
			registry.WithError(check.Reason)); terr != nil {
			w.log.Debug("Space preflight transition rejected", "id", f.ID, "error", terr)
		}
		return false
	}
	if check.HasSpace {
		return true
	}

	if _, err := w.registry.Transition(f.ID, domain.StatusWaitingForSpace,
		registry.WithError(check.Reason), registry.WithSpaceRetryIncrement()); err != nil {
		w.log.Debug("Space transition rejected", "id", f.ID, "error", err)
		return false
	}
	w.scheduleSpaceRetry(f.ID)
	return false
}

func (w *CopyWorker) scheduleSpaceRetry(id domain.FileID) {
	w.retries.Schedule(id, w.policy.SpaceRetryCooldown, "space cooldown", func() {
		if _, err := w.registry.Transition(id, domain.StatusReady); err != nil {
			w.log.Debug("Space retry transition rejected", "id", id, "error", err)
		}
	})
}

// finalize verifies already happened; what remains is deleting the source.
// A copy that succeeded but whose source cannot be deleted is its own
// terminal state, not a failure.
func (w *CopyWorker) finalize(f domain.TrackedFile, finalPath string, total uint64) {
	if err := os.Remove(f.SourcePath); err != nil {
		w.log.Warn("Source deletion failed after successful copy", "path", f.SourcePath, "error", err)
		if _, terr := w.registry.Transition(f.ID, domain.StatusCompletedDeleteFault,
			registry.WithDestination(finalPath),
			registry.WithError(fmt.Sprintf("copy verified but source deletion failed: %v", err))); terr != nil {
			w.log.Error("Completion transition rejected", "id", f.ID, "error", terr)
		}
		w.monitoring.IncrFilesCompleted()
		return
	}

	if _, err := w.registry.Transition(f.ID, domain.StatusCompleted,
		registry.WithDestination(finalPath)); err != nil {
		w.log.Error("Completion transition rejected", "id", f.ID, "error", err)
		return
	}
	w.monitoring.IncrFilesCompleted()
	w.log.Info("Copy completed", "path", f.SourcePath, "destination", finalPath, "bytes", total)
}

// abort handles a context-cancelled copy during shutdown: the temp file is
// already discarded, the file simply returns to Ready.
func (w *CopyWorker) abort(id domain.FileID) {
	if _, err := w.registry.Transition(id, domain.StatusReady); err != nil {
		w.log.Debug("Abort transition rejected", "id", id, "error", err)
	}
}

// handleFailure is the single funnel for every copy failure: classify, then
// park, retry or fail the file accordingly.
func (w *CopyWorker) handleFailure(ctx context.Context, f domain.TrackedFile, err error) {
	w.monitoring.IncrCopyErrors()
	kind := failure.Classify(err)
	w.log.Warn("Copy failed", "path", f.SourcePath, "kind", kind.String(), "error", err)

	switch kind {
	case failure.KindGlobal:
		// The destination as a whole is gone: flag it so the bridge stops
		// enqueueing, park this file until recovery.
		w.checker.ReportFailure(err.Error())
		w.checker.Refresh(ctx)
		if _, terr := w.registry.Transition(f.ID, domain.StatusWaitingForNetwork,
			registry.WithError(err.Error())); terr != nil {
			w.log.Debug("Network-wait transition rejected", "id", f.ID, "error", terr)
		}

	case failure.KindSpace:
		if _, terr := w.registry.Transition(f.ID, domain.StatusWaitingForSpace,
			registry.WithError(err.Error()), registry.WithSpaceRetryIncrement()); terr != nil {
			w.log.Debug("Space-wait transition rejected", "id", f.ID, "error", terr)
		}
		w.scheduleSpaceRetry(f.ID)

	default:
		w.handleLocalFailure(f, err)
	}
}

// handleLocalFailure burns one attempt from the bounded local retry budget.
func (w *CopyWorker) handleLocalFailure(f domain.TrackedFile, err error) {
	attempts := f.RetryCount + 1
	if attempts > w.policy.MaxLocalRetries {
		if _, terr := w.registry.Transition(f.ID, domain.StatusFailed,
			registry.WithError(fmt.Sprintf("giving up after %d attempts: %v", attempts, err))); terr != nil {
			w.log.Debug("Failure transition rejected", "id", f.ID, "error", terr)
			return
		}
		w.monitoring.IncrFilesFailed()
		w.log.Error("File permanently failed", "path", f.SourcePath, "attempts", attempts)
		return
	}

	notBefore := time.Now().Add(w.policy.LocalRetryDelay)
	if _, terr := w.registry.Transition(f.ID, domain.StatusReady,
		registry.WithError(err.Error()),
		registry.WithRetryIncrement(),
		registry.WithRetryNotBefore(notBefore)); terr != nil {
		w.log.Debug("Retry transition rejected", "id", f.ID, "error", terr)
		return
	}

	id := f.ID
	w.retries.Schedule(id, w.policy.LocalRetryDelay, "local retry", func() {
		w.reoffer(id)
	})
}
