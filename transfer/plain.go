package transfer

import (
	"context"
	"log/slog"
	"os"

	"transfer-agent/contract"
	"transfer-agent/failure"
)

// Ensure *PlainStrategy implements the contract at compile time.
var _ contract.CopyStrategy = (*PlainStrategy)(nil)

// PlainStrategy copies a stable file in one sequential pass: chunked stream
// into the temporary file, fsync, done. Verification and rename happen in the
// executor's Finalize, shared with the growing strategy.
type PlainStrategy struct {
	log      *slog.Logger
	executor *Executor
}

func NewPlainStrategy(log *slog.Logger, executor *Executor) *PlainStrategy {
	return &PlainStrategy{log: log, executor: executor}
}

func (s *PlainStrategy) Copy(ctx context.Context, req contract.CopyRequest) (uint64, error) {
	src, err := s.executor.OpenSource(req.SourcePath)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return 0, failure.NewSourceError("stat", err)
	}
	total := uint64(info.Size())

	dst, err := s.executor.CreateTemp(req.TempPath)
	if err != nil {
		return 0, err
	}
	defer dst.Close()

	tr := newProgressTracker(req.Progress, total)
	buf := make([]byte, s.executor.chunkSize)

	copied, err := s.executor.CopyRange(ctx, src, dst, 0, info.Size(), buf, tr)
	if err != nil {
		return uint64(copied), err
	}
	if err := s.executor.Sync(dst); err != nil {
		return uint64(copied), err
	}

	tr.flush()
	s.log.Debug("Plain copy finished", "path", req.SourcePath, "bytes", copied)
	return uint64(copied), nil
}

// statSize re-stats a path and returns its current size.
func statSize(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, failure.NewSourceError("stat", err)
	}
	return uint64(info.Size()), nil
}
