package transfer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"transfer-agent/contract"
	apperrors "transfer-agent/errors"
	"transfer-agent/failure"
)

// Executor is the shared core of both copy strategies: a chunked read/write
// loop into a temporary destination file, throttled progress reporting, and
// the verify-then-rename finalization discipline.
//
// Every I/O error leaving the executor is tagged with the side it occurred
// on so the classifier can separate "this file is broken" from "the
// destination is gone".
type Executor struct {
	log       *slog.Logger
	chunkSize int
}

func NewExecutor(log *slog.Logger, chunkSize int) *Executor {
	return &Executor{log: log, chunkSize: chunkSize}
}

// OpenSource opens the source file for reading.
func (e *Executor) OpenSource(path string) (*os.File, error) {
	src, err := os.Open(path)
	if err != nil {
		return nil, failure.NewSourceError("open", err)
	}
	return src, nil
}

// CreateTemp creates (truncating) the temporary destination file.
func (e *Executor) CreateTemp(path string) (*os.File, error) {
	dst, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, failure.NewDestinationError("create temp", err)
	}
	return dst, nil
}

// CopyRange copies exactly limit bytes from src (starting at offset) into
// dst, reporting progress through the tracker. It returns the bytes written.
// A short source read ends the range early without error; callers decide
// whether that is acceptable.
func (e *Executor) CopyRange(ctx context.Context, src, dst *os.File, offset, limit int64, buf []byte, tr *progressTracker) (int64, error) {
	if _, err := src.Seek(offset, io.SeekStart); err != nil {
		return 0, failure.NewSourceError("seek", err)
	}

	var copied int64
	for copied < limit {
		if err := ctx.Err(); err != nil {
			return copied, fmt.Errorf("%w: %v", apperrors.ErrCopyAborted, err)
		}

		want := int64(len(buf))
		if remaining := limit - copied; remaining < want {
			want = remaining
		}

		n, readErr := src.Read(buf[:want])
		if n > 0 {
			if _, writeErr := dst.Write(buf[:n]); writeErr != nil {
				return copied, failure.NewDestinationError("write", writeErr)
			}
			copied += int64(n)
			tr.advance(uint64(n))
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return copied, failure.NewSourceError("read", readErr)
		}
	}
	return copied, nil
}

// Sync flushes the destination file to stable storage.
func (e *Executor) Sync(dst *os.File) error {
	if err := dst.Sync(); err != nil {
		return failure.NewDestinationError("fsync", err)
	}
	return nil
}

// Finalize verifies that the temporary file holds exactly the source's final
// byte count and atomically renames it to its final name. On a mismatch the
// temporary data is discarded; it is never trusted.
func (e *Executor) Finalize(sourcePath, tempPath, finalPath string) (uint64, error) {
	srcInfo, err := os.Stat(sourcePath)
	if err != nil {
		return 0, failure.NewSourceError("stat", err)
	}
	tmpInfo, err := os.Stat(tempPath)
	if err != nil {
		return 0, failure.NewDestinationError("stat temp", err)
	}

	if srcInfo.Size() != tmpInfo.Size() {
		_ = os.Remove(tempPath)
		return 0, fmt.Errorf("%w: source=%d destination=%d (%s)",
			apperrors.ErrSizeMismatch, srcInfo.Size(), tmpInfo.Size(), sourcePath)
	}

	if err := os.Rename(tempPath, finalPath); err != nil {
		return 0, failure.NewDestinationError("rename", err)
	}
	return uint64(srcInfo.Size()), nil
}

// Discard removes an in-flight temporary file after a failed or aborted copy
// so no partial final-named data is ever left behind.
func (e *Executor) Discard(tempPath string) {
	if err := os.Remove(tempPath); err != nil && !os.IsNotExist(err) {
		e.log.Warn("Could not remove temp file", "path", tempPath, "error", err)
	}
}

// progressThrottle limits RecordProgress traffic: a callback fires when the
// integer percentage changes or this interval has elapsed, whichever first.
const progressThrottle = time.Second

// progressTracker accumulates copied bytes and invokes the caller's progress
// function at a bounded rate. total may move while a file is still growing;
// percentages are recomputed from the latest total on every report.
type progressTracker struct {
	progress contract.ProgressFunc
	total    uint64

	copied     uint64
	startedAt  time.Time
	lastReport time.Time
	lastPct    int
}

func newProgressTracker(progress contract.ProgressFunc, total uint64) *progressTracker {
	now := time.Now()
	return &progressTracker{
		progress:   progress,
		total:      total,
		startedAt:  now,
		lastReport: now,
		lastPct:    -1,
	}
}

// setTotal updates the best-known total size of a growing file.
func (t *progressTracker) setTotal(total uint64) {
	if total > t.total {
		t.total = total
	}
}

func (t *progressTracker) advance(n uint64) {
	t.copied += n
	if t.progress == nil {
		return
	}

	pct := 0
	if t.total > 0 {
		pct = int(float64(t.copied) / float64(t.total) * 100)
	}
	now := time.Now()
	if pct == t.lastPct && now.Sub(t.lastReport) < progressThrottle {
		return
	}
	t.lastPct = pct
	t.lastReport = now

	elapsed := now.Sub(t.startedAt).Seconds()
	rate := 0.0
	if elapsed > 0 {
		rate = float64(t.copied) / elapsed
	}
	t.progress(t.copied, t.total, rate)
}

// flush sends one final report regardless of throttling.
func (t *progressTracker) flush() {
	if t.progress == nil {
		return
	}
	elapsed := time.Since(t.startedAt).Seconds()
	rate := 0.0
	if elapsed > 0 {
		rate = float64(t.copied) / elapsed
	}
	t.progress(t.copied, t.total, rate)
}
