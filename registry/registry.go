package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"transfer-agent/contract"
	"transfer-agent/domain"
	"transfer-agent/domain/event"
	apperrors "transfer-agent/errors"
)

// Ensure *FileRegistry implements the registry contract at compile time.
var _ contract.IFileRegistry = (*FileRegistry)(nil)

// FileRegistry is the single authoritative owner of every tracked file.
//
// All mutation goes through Register / Transition / Observe / RecordProgress,
// each of which runs under one coarse lock; everything handed back to callers
// is a value snapshot taken inside that lock. Events are published while the
// lock is held, which guarantees per-file delivery order; publishing itself
// never blocks (see Publisher).
type FileRegistry struct {
	mu        sync.RWMutex
	log       *slog.Logger
	publisher *Publisher

	files        map[domain.FileID]*domain.TrackedFile
	activeByPath map[string]domain.FileID

	// Terminal entries are retained as history for UI and audit, oldest
	// evicted once historyLimit is exceeded.
	history      []domain.FileID
	historyLimit int
}

func NewFileRegistry(log *slog.Logger, publisher *Publisher, historyLimit int) *FileRegistry {
	return &FileRegistry{
		log:          log,
		publisher:    publisher,
		files:        make(map[domain.FileID]*domain.TrackedFile),
		activeByPath: make(map[string]domain.FileID),
		historyLimit: historyLimit,
	}
}

// WithError records a human-readable failure message on the file.
func WithError(msg string) contract.UpdateOption {
	return func(f *domain.TrackedFile) { f.LastError = msg }
}

// WithRetryIncrement bumps the local-failure retry counter.
func WithRetryIncrement() contract.UpdateOption {
	return func(f *domain.TrackedFile) { f.RetryCount++ }
}

// WithSpaceRetryIncrement bumps the space cooldown counter, which is
// deliberately independent of the local retry budget.
func WithSpaceRetryIncrement() contract.UpdateOption {
	return func(f *domain.TrackedFile) { f.SpaceRetryCount++ }
}

// WithDestination records the resolved destination path.
func WithDestination(path string) contract.UpdateOption {
	return func(f *domain.TrackedFile) { f.DestinationPath = path }
}

// WithRetryNotBefore parks the file until the given instant; the queue bridge
// will not enqueue it earlier.
func WithRetryNotBefore(t time.Time) contract.UpdateOption {
	return func(f *domain.TrackedFile) { f.RetryNotBefore = t }
}

// WithGrowing flags or unflags the file as actively being written.
func WithGrowing(growing bool) contract.UpdateOption {
	return func(f *domain.TrackedFile) { f.Growing = growing }
}

// WithMimeType records the sniffed media type.
func WithMimeType(mime string) contract.UpdateOption {
	return func(f *domain.TrackedFile) { f.MimeType = mime }
}

// Register creates a new tracked file in Discovered state. It fails with
// ErrAlreadyActive while a non-terminal entry owns the same path; terminal
// entries stay behind as history and a fresh identifier is handed out.
func (r *FileRegistry) Register(path string, size uint64, mtime time.Time) (domain.TrackedFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.activeByPath[path]; ok {
		return domain.TrackedFile{}, fmt.Errorf("%w: %s (id %s)", apperrors.ErrAlreadyActive, path, id)
	}

	now := time.Now()
	f := &domain.TrackedFile{
		ID:             domain.FileID(uuid.NewString()),
		SourcePath:     path,
		Status:         domain.StatusDiscovered,
		Size:           size,
		LastWriteTime:  mtime,
		DiscoveredAt:   now,
		TransitionedAt: now,
	}
	r.files[f.ID] = f
	r.activeByPath[path] = f.ID

	r.log.Debug("File registered", "id", f.ID, "path", path, "size", size)
	r.publisher.Publish(event.FileStatusChanged{
		ID:        f.ID,
		Path:      path,
		OldStatus: "",
		NewStatus: domain.StatusDiscovered,
		Snapshot:  *f,
		At:        now,
	})
	return *f, nil
}

// Transition atomically validates and applies a status change, runs the field
// updates, stamps timestamps and notifies subscribers. Illegal edges are
// rejected with ErrInvalidTransition and leave the entry untouched.
func (r *FileRegistry) Transition(id domain.FileID, newStatus domain.FileStatus, opts ...contract.UpdateOption) (domain.TrackedFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.files[id]
	if !ok {
		return domain.TrackedFile{}, fmt.Errorf("%w: %s", apperrors.ErrFileNotFound, id)
	}

	oldStatus := f.Status
	if newStatus == oldStatus {
		return *f, nil
	}
	if !domain.CanTransition(oldStatus, newStatus) {
		return *f, fmt.Errorf("%w: %s -> %s (%s)", apperrors.ErrInvalidTransition, oldStatus, newStatus, f.SourcePath)
	}

	now := time.Now()
	f.Status = newStatus
	f.TransitionedAt = now
	// Stale errors are cleared on every transition; WithError re-sets one.
	f.LastError = ""

	for _, opt := range opts {
		opt(f)
	}

	switch newStatus {
	case domain.StatusReady:
		if f.ReadyAt.IsZero() {
			f.ReadyAt = now
		}
	case domain.StatusCopying, domain.StatusGrowingCopy:
		if f.CopyStartedAt.IsZero() {
			f.CopyStartedAt = now
		}
	case domain.StatusCompleted, domain.StatusCompletedDeleteFault:
		f.CompletedAt = now
	}

	if newStatus.IsTerminal() {
		delete(r.activeByPath, f.SourcePath)
		r.retainHistory(f.ID)
	}

	r.log.Info("Transition", "path", f.SourcePath, "from", oldStatus, "to", newStatus)
	r.publisher.Publish(event.FileStatusChanged{
		ID:        f.ID,
		Path:      f.SourcePath,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		Snapshot:  *f,
		At:        now,
	})
	return *f, nil
}

// retainHistory caps the number of terminal entries kept around.
// Caller must hold the write lock.
func (r *FileRegistry) retainHistory(id domain.FileID) {
	r.history = append(r.history, id)
	for len(r.history) > r.historyLimit {
		oldest := r.history[0]
		r.history = r.history[1:]
		delete(r.files, oldest)
	}
}

// Observe refreshes the scanner's view of a file (size, mtime, growth rate)
// without a status change and without notifying subscribers.
func (r *FileRegistry) Observe(id domain.FileID, size uint64, mtime time.Time, growthRate float64) (domain.TrackedFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.files[id]
	if !ok {
		return domain.TrackedFile{}, fmt.Errorf("%w: %s", apperrors.ErrFileNotFound, id)
	}
	f.Size = size
	f.LastWriteTime = mtime
	f.GrowthBytesSec = growthRate
	return *f, nil
}

// RecordProgress updates copy progress and publishes a throttled-by-caller
// CopyProgressed event. Progress is monotonically non-decreasing within one
// copy attempt; a stale (smaller) report is ignored.
func (r *FileRegistry) RecordProgress(id domain.FileID, bytesCopied, totalBytes uint64, rateBytesSec float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.files[id]
	if !ok {
		return fmt.Errorf("%w: %s", apperrors.ErrFileNotFound, id)
	}
	if bytesCopied < f.BytesCopied {
		return nil
	}

	f.BytesCopied = bytesCopied
	if totalBytes > 0 {
		pct := float64(bytesCopied) / float64(totalBytes) * 100
		// A growing file's total is a moving target; clamp late corrections.
		f.ProgressPercent = min(pct, 100)
	}

	r.publisher.Publish(event.CopyProgressed{
		ID:           f.ID,
		Path:         f.SourcePath,
		BytesCopied:  bytesCopied,
		TotalBytes:   totalBytes,
		Percent:      f.ProgressPercent,
		RateBytesSec: rateBytesSec,
		At:           time.Now(),
	})
	return nil
}

// ResetProgress clears the progress fields at the start of a fresh copy
// attempt so a retried file starts from zero again.
func (r *FileRegistry) ResetProgress(id domain.FileID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.files[id]; ok {
		f.BytesCopied = 0
		f.ProgressPercent = 0
	}
}

// SetDestination records the resolved destination path without a status
// change; it is set as soon as the path is known so progress consumers can
// show where the file is going.
func (r *FileRegistry) SetDestination(id domain.FileID, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.files[id]; ok {
		f.DestinationPath = path
	}
}

// Get returns a snapshot of one file by id.
func (r *FileRegistry) Get(id domain.FileID) (domain.TrackedFile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.files[id]
	if !ok {
		return domain.TrackedFile{}, fmt.Errorf("%w: %s", apperrors.ErrFileNotFound, id)
	}
	return *f, nil
}

// GetActiveByPath returns the single non-terminal entry owning a path.
func (r *FileRegistry) GetActiveByPath(path string) (domain.TrackedFile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.activeByPath[path]
	if !ok {
		return domain.TrackedFile{}, false
	}
	return *r.files[id], true
}

// QueryByStatus returns snapshots of every file in any of the given statuses,
// oldest discovery first.
func (r *FileRegistry) QueryByStatus(statuses ...domain.FileStatus) []domain.TrackedFile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := lo.SliceToMap(statuses, func(s domain.FileStatus) (domain.FileStatus, struct{}) {
		return s, struct{}{}
	})

	var out []domain.TrackedFile
	for _, f := range r.files {
		if _, ok := wanted[f.Status]; ok {
			out = append(out, *f)
		}
	}
	sortByDiscovery(out)
	return out
}

// ListAll returns snapshots of every known file, history included.
func (r *FileRegistry) ListAll() []domain.TrackedFile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.TrackedFile, 0, len(r.files))
	for _, f := range r.files {
		out = append(out, *f)
	}
	sortByDiscovery(out)
	return out
}

// Statistics returns the count of files per status.
func (r *FileRegistry) Statistics() map[domain.FileStatus]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.CountValuesBy(lo.Values(r.files), func(f *domain.TrackedFile) domain.FileStatus {
		return f.Status
	})
}

// CleanupMissing marks active entries as Removed when their path is absent
// from the scanner's current view of the source tree. Files owned by a copy
// worker are skipped; their read error will surface through the classifier.
func (r *FileRegistry) CleanupMissing(existing map[string]struct{}) []domain.TrackedFile {
	r.mu.RLock()
	var vanished []domain.FileID
	for path, id := range r.activeByPath {
		if _, ok := existing[path]; !ok {
			vanished = append(vanished, id)
		}
	}
	r.mu.RUnlock()

	var removed []domain.TrackedFile
	for _, id := range vanished {
		f, err := r.Get(id)
		if err != nil {
			continue
		}
		if !domain.CanTransition(f.Status, domain.StatusRemoved) {
			continue
		}
		snapshot, err := r.Transition(id, domain.StatusRemoved, WithError("source file vanished"))
		if err != nil {
			r.log.Debug("Cleanup transition lost a race", "id", id, "error", err)
			continue
		}
		removed = append(removed, snapshot)
	}
	return removed
}

// sortByDiscovery orders snapshots oldest-discovered first, ties broken by id
// so results are deterministic.
func sortByDiscovery(files []domain.TrackedFile) {
	sort.Slice(files, func(i, j int) bool {
		if files[i].DiscoveredAt.Equal(files[j].DiscoveredAt) {
			return files[i].ID < files[j].ID
		}
		return files[i].DiscoveredAt.Before(files[j].DiscoveredAt)
	})
}
