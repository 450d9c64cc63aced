package scanner

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"transfer-agent/contract"
	"transfer-agent/domain"
	"transfer-agent/registry"
)

// Options are the scan-cycle knobs carved out of the agent configuration.
type Options struct {
	SourceRoot         string
	StabilityWindow    time.Duration
	GrowingFileSupport bool
	GrowingMinBytes    uint64
}

// Scanner performs one full pass over the source tree per cycle: it registers
// new files, refreshes size/mtime/growth observations, promotes stable files
// to Ready, detects growing files, and cleans up entries whose source
// vanished. A failure on one file never aborts the cycle for the others.
type Scanner struct {
	log       *slog.Logger
	opts      Options
	registry  contract.IFileRegistry
	retries   contract.IRetryCoordinator
	stability *StabilityTracker
}

func NewScanner(log *slog.Logger, opts Options, reg contract.IFileRegistry, retries contract.IRetryCoordinator) *Scanner {
	return &Scanner{
		log:       log,
		opts:      opts,
		registry:  reg,
		retries:   retries,
		stability: NewStabilityTracker(opts.StabilityWindow),
	}
}

type fileMeta struct {
	path  string
	size  uint64
	mtime time.Time
}

// Cycle runs one scan pass.
func (s *Scanner) Cycle(ctx context.Context) error {
	found, err := s.enumerate(ctx)
	if err != nil {
		return err
	}

	existing := make(map[string]struct{}, len(found))
	for _, meta := range found {
		existing[meta.path] = struct{}{}
	}

	for _, removed := range s.registry.CleanupMissing(existing) {
		s.retries.Cancel(removed.ID)
		s.stability.Forget(removed.SourcePath)
	}
	s.stability.Cleanup(existing)

	now := time.Now()
	for _, meta := range found {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.handleFile(meta, now)
	}
	return nil
}

// enumerate walks the source tree collecting regular files. Unreadable
// directories and entries are logged and skipped.
func (s *Scanner) enumerate(ctx context.Context) ([]fileMeta, error) {
	var found []fileMeta

	err := filepath.WalkDir(s.opts.SourceRoot, func(path string, entry fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			// An unreadable source root fails the whole cycle; it will be
			// retried on the next tick. Anything deeper is skipped.
			if path == s.opts.SourceRoot {
				return err
			}
			s.log.Debug("Permission denied or path error", "path", path, "error", err)
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if entry.IsDir() || !entry.Type().IsRegular() {
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			s.log.Debug("Could not stat file", "path", path, "error", err)
			return nil
		}
		found = append(found, fileMeta{
			path:  path,
			size:  uint64(info.Size()),
			mtime: info.ModTime(),
		})
		return nil
	})
	return found, err
}

// handleFile applies the discovery/stability decisions for one file.
func (s *Scanner) handleFile(meta fileMeta, now time.Time) {
	changed, rate := s.stability.Observe(meta.path, meta.size, meta.mtime, now)

	tracked, ok := s.registry.GetActiveByPath(meta.path)
	if !ok {
		if _, err := s.registry.Register(meta.path, meta.size, meta.mtime); err != nil {
			s.log.Debug("Registration lost a race", "path", meta.path, "error", err)
		}
		return
	}

	if _, err := s.registry.Observe(tracked.ID, meta.size, meta.mtime, rate); err != nil {
		s.log.Debug("Observation update failed", "path", meta.path, "error", err)
		return
	}

	switch tracked.Status {
	case domain.StatusDiscovered:
		s.decideDiscovered(tracked, meta, changed, now)
	case domain.StatusGrowing:
		s.decideGrowing(tracked, meta, now)
	}
}

// decideDiscovered promotes a freshly discovered file to Growing or Ready.
func (s *Scanner) decideDiscovered(tracked domain.TrackedFile, meta fileMeta, changed bool, now time.Time) {
	if changed && meta.size > tracked.Size {
		s.transition(tracked.ID, domain.StatusGrowing, registry.WithGrowing(true))
		return
	}

	// Zero-byte files are never promoted.
	if meta.size == 0 {
		return
	}

	if s.stability.IsStable(meta.path, now) && s.probeExclusive(meta.path) {
		s.transition(tracked.ID, domain.StatusReady,
			registry.WithGrowing(false), registry.WithMimeType(sniffMime(meta.path)))
	}
}

// decideGrowing either settles a growing file (the writer finished before the
// growing copy ever started) or promotes it to a growing copy once enough
// bytes are buffered.
func (s *Scanner) decideGrowing(tracked domain.TrackedFile, meta fileMeta, now time.Time) {
	if s.stability.IsStable(meta.path, now) {
		if meta.size == 0 {
			return
		}
		// Stopped growing before the copy started: plain copy from here on.
		s.transition(tracked.ID, domain.StatusReady,
			registry.WithGrowing(false), registry.WithMimeType(sniffMime(meta.path)))
		return
	}

	if !s.opts.GrowingFileSupport {
		return
	}

	if meta.size >= s.opts.GrowingMinBytes {
		// Enough buffered data to stay ahead of the copy loop.
		if _, err := s.registry.Transition(tracked.ID, domain.StatusReadyToStartGrowing); err != nil {
			s.log.Debug("Promotion failed", "path", meta.path, "error", err)
			return
		}
		s.transition(tracked.ID, domain.StatusReady,
			registry.WithGrowing(true), registry.WithMimeType(sniffMime(meta.path)))
	}
}

func (s *Scanner) transition(id domain.FileID, status domain.FileStatus, opts ...contract.UpdateOption) {
	if _, err := s.registry.Transition(id, status, opts...); err != nil {
		s.log.Debug("Transition rejected", "id", id, "status", status, "error", err)
	}
}

// probeExclusive best-effort checks that no writer holds the file. Lack of
// lock support (or any unexpected error) must not block promotion, so only a
// positively held lock by someone else returns false.
func (s *Scanner) probeExclusive(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		if err == syscall.EWOULDBLOCK {
			s.log.Debug("File still locked by a writer", "path", path)
			return false
		}
		return true
	}
	_ = syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
	return true
}

// sniffMime reads the leading magic bytes of a file, exactly enough for
// mimetype detection. Locked or unreadable files yield an empty type.
func sniffMime(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	magic := make([]byte, 64)
	n, _ := f.Read(magic)
	if n == 0 {
		return ""
	}
	return mimetype.Detect(magic[:n]).String()
}
