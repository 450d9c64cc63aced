package transfer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"transfer-agent/contract"
	apperrors "transfer-agent/errors"
)

// Ensure *GrowingStrategy implements the contract at compile time.
var _ contract.CopyStrategy = (*GrowingStrategy)(nil)

// GrowingStrategy copies a file that is still being appended to. It streams
// chunks while staying a safety margin behind the observed write head, polls
// for new bytes when it catches up, and drains the tail once the source has
// stopped growing for the stability window (or the growth timeout elapses).
//
// The final size is unknown at copy start; like the plain strategy, all bytes
// land in the temporary file and only the executor's verify-and-rename
// publishes the final name.
type GrowingStrategy struct {
	log      *slog.Logger
	executor *Executor

	pollInterval  time.Duration
	safetyMargin  uint64
	stableAfter   time.Duration
	growthTimeout time.Duration
}

func NewGrowingStrategy(log *slog.Logger, executor *Executor, pollInterval time.Duration, safetyMargin uint64, stableAfter, growthTimeout time.Duration) *GrowingStrategy {
	return &GrowingStrategy{
		log:           log,
		executor:      executor,
		pollInterval:  pollInterval,
		safetyMargin:  safetyMargin,
		stableAfter:   stableAfter,
		growthTimeout: growthTimeout,
	}
}

func (s *GrowingStrategy) Copy(ctx context.Context, req contract.CopyRequest) (uint64, error) {
	src, err := s.executor.OpenSource(req.SourcePath)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	dst, err := s.executor.CreateTemp(req.TempPath)
	if err != nil {
		return 0, err
	}
	defer dst.Close()

	size, err := statSize(req.SourcePath)
	if err != nil {
		return 0, err
	}

	tr := newProgressTracker(req.Progress, size)
	buf := make([]byte, s.executor.chunkSize)

	var copied int64
	startedAt := time.Now()
	lastGrowth := startedAt
	lastSize := size

	for {
		size, err = statSize(req.SourcePath)
		if err != nil {
			return uint64(copied), err
		}
		if size > lastSize {
			lastSize = size
			lastGrowth = time.Now()
			tr.setTotal(size)
		}

		// While the writer is active, stay a margin behind the write head so
		// we never read bytes the OS may still be buffering or rewriting.
		target := int64(0)
		if size > s.safetyMargin {
			target = int64(size - s.safetyMargin)
		}

		stalled := time.Since(lastGrowth)
		timedOut := time.Since(startedAt) >= s.growthTimeout
		final := stalled >= s.stableAfter || timedOut
		if final {
			if timedOut && stalled < s.stableAfter {
				s.log.Warn("Growth timeout elapsed, finishing copy at current size",
					"path", req.SourcePath, "timeout", s.growthTimeout, "size", size)
			}
			// Source stopped growing (or outlived the cutoff): drain
			// everything, margin included.
			target = int64(size)
		}

		if target > copied {
			n, err := s.executor.CopyRange(ctx, src, dst, copied, target-copied, buf, tr)
			copied += n
			if err != nil {
				return uint64(copied), err
			}
		}

		if final {
			break
		}

		select {
		case <-ctx.Done():
			return uint64(copied), fmt.Errorf("%w: %v", apperrors.ErrCopyAborted, ctx.Err())
		case <-time.After(s.pollInterval):
		}
	}

	if err := s.executor.Sync(dst); err != nil {
		return uint64(copied), err
	}

	tr.flush()
	s.log.Debug("Growing copy finished", "path", req.SourcePath, "bytes", copied, "final_size", size)
	return uint64(copied), nil
}
