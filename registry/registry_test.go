package registry

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"transfer-agent/domain"
	"transfer-agent/domain/event"
	apperrors "transfer-agent/errors"
)

func newTestRegistry(t *testing.T) *FileRegistry {
	t.Helper()
	// Silencing logs for clean test output
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewFileRegistry(logger, NewPublisher(logger, 16), 100)
}

func TestFileRegistry_RegisterTwiceFails(t *testing.T) {
	req := require.New(t)
	reg := newTestRegistry(t)

	// Given an active entry for a path
	_, err := reg.Register("/src/a.mxf", 10, time.Now())
	req.NoError(err)

	// When the same path is registered again
	_, err = reg.Register("/src/a.mxf", 10, time.Now())

	// Then the second registration is rejected
	req.ErrorIs(err, apperrors.ErrAlreadyActive)
}

func TestFileRegistry_IllegalTransitionLeavesStateUntouched(t *testing.T) {
	req := require.New(t)
	reg := newTestRegistry(t)

	f, err := reg.Register("/src/a.mxf", 10, time.Now())
	req.NoError(err)

	// When an illegal edge is attempted
	_, err = reg.Transition(f.ID, domain.StatusCopying)

	// Then the transition is rejected and the status is unchanged
	req.ErrorIs(err, apperrors.ErrInvalidTransition)
	current, err := reg.Get(f.ID)
	req.NoError(err)
	req.Equal(domain.StatusDiscovered, current.Status)
}

func TestFileRegistry_TerminalFreesPathForReRegistration(t *testing.T) {
	req := require.New(t)
	reg := newTestRegistry(t)

	f, err := reg.Register("/src/a.mxf", 10, time.Now())
	req.NoError(err)

	// Given the file walked the full lifecycle to a terminal state
	mustTransition(t, reg, f.ID, domain.StatusReady)
	mustTransition(t, reg, f.ID, domain.StatusInQueue)
	mustTransition(t, reg, f.ID, domain.StatusCopying)
	mustTransition(t, reg, f.ID, domain.StatusCompleted)

	// Then the path no longer has an active owner
	_, active := reg.GetActiveByPath("/src/a.mxf")
	req.False(active)

	// And a new file under the same path gets a fresh identity
	again, err := reg.Register("/src/a.mxf", 20, time.Now())
	req.NoError(err)
	req.NotEqual(f.ID, again.ID)

	// While the terminal entry survives as history
	old, err := reg.Get(f.ID)
	req.NoError(err)
	req.Equal(domain.StatusCompleted, old.Status)
}

func TestFileRegistry_TransitionClearsStaleError(t *testing.T) {
	req := require.New(t)
	reg := newTestRegistry(t)

	f, err := reg.Register("/src/a.mxf", 10, time.Now())
	req.NoError(err)

	// Given a failed attempt left an error message behind
	mustTransition(t, reg, f.ID, domain.StatusReady)
	mustTransition(t, reg, f.ID, domain.StatusInQueue)
	mustTransition(t, reg, f.ID, domain.StatusCopying)
	snapshot, err := reg.Transition(f.ID, domain.StatusReady, WithError("read failed"), WithRetryIncrement())
	req.NoError(err)
	req.Equal("read failed", snapshot.LastError)
	req.Equal(1, snapshot.RetryCount)

	// When the file moves on without a new error
	snapshot, err = reg.Transition(f.ID, domain.StatusInQueue)
	req.NoError(err)

	// Then the stale message is gone but the counter survives
	req.Empty(snapshot.LastError)
	req.Equal(1, snapshot.RetryCount)
}

func TestFileRegistry_SetDestination(t *testing.T) {
	req := require.New(t)
	reg := newTestRegistry(t)

	f, err := reg.Register("/src/a.mxf", 10, time.Now())
	req.NoError(err)

	reg.SetDestination(f.ID, "/dst/a.mxf")

	current, err := reg.Get(f.ID)
	req.NoError(err)
	req.Equal("/dst/a.mxf", current.DestinationPath)
}

func TestFileRegistry_RecordProgressIgnoresStaleReports(t *testing.T) {
	req := require.New(t)
	reg := newTestRegistry(t)

	f, err := reg.Register("/src/a.mxf", 100, time.Now())
	req.NoError(err)

	req.NoError(reg.RecordProgress(f.ID, 50, 100, 1000))
	req.NoError(reg.RecordProgress(f.ID, 40, 100, 1000))

	current, err := reg.Get(f.ID)
	req.NoError(err)
	req.Equal(uint64(50), current.BytesCopied)
	req.InDelta(50.0, current.ProgressPercent, 0.01)
}

func TestFileRegistry_RecordProgressClampsGrowingOvershoot(t *testing.T) {
	req := require.New(t)
	reg := newTestRegistry(t)

	f, err := reg.Register("/src/a.mxf", 100, time.Now())
	req.NoError(err)

	// A growing file's copied bytes can momentarily exceed the stale total.
	req.NoError(reg.RecordProgress(f.ID, 150, 100, 1000))

	current, err := reg.Get(f.ID)
	req.NoError(err)
	req.InDelta(100.0, current.ProgressPercent, 0.01)
}

func TestFileRegistry_ResetProgress(t *testing.T) {
	req := require.New(t)
	reg := newTestRegistry(t)

	f, err := reg.Register("/src/a.mxf", 100, time.Now())
	req.NoError(err)
	req.NoError(reg.RecordProgress(f.ID, 50, 100, 0))

	reg.ResetProgress(f.ID)

	current, err := reg.Get(f.ID)
	req.NoError(err)
	req.Zero(current.BytesCopied)
	req.Zero(current.ProgressPercent)
}

func TestFileRegistry_QueryByStatusOrdersOldestFirst(t *testing.T) {
	req := require.New(t)
	reg := newTestRegistry(t)

	first, err := reg.Register("/src/a.mxf", 1, time.Now())
	req.NoError(err)
	time.Sleep(2 * time.Millisecond)
	second, err := reg.Register("/src/b.mxf", 1, time.Now())
	req.NoError(err)

	mustTransition(t, reg, second.ID, domain.StatusReady)
	mustTransition(t, reg, first.ID, domain.StatusReady)

	ready := reg.QueryByStatus(domain.StatusReady)
	req.Len(ready, 2)
	req.Equal(first.ID, ready[0].ID)
	req.Equal(second.ID, ready[1].ID)
}

func TestFileRegistry_CleanupMissingSkipsCopyingFiles(t *testing.T) {
	req := require.New(t)
	reg := newTestRegistry(t)

	copying, err := reg.Register("/src/a.mxf", 1, time.Now())
	req.NoError(err)
	mustTransition(t, reg, copying.ID, domain.StatusReady)
	mustTransition(t, reg, copying.ID, domain.StatusInQueue)
	mustTransition(t, reg, copying.ID, domain.StatusCopying)

	idle, err := reg.Register("/src/b.mxf", 1, time.Now())
	req.NoError(err)

	// When neither path exists on disk anymore
	removed := reg.CleanupMissing(map[string]struct{}{})

	// Then only the idle file is marked Removed; the copy in flight will
	// surface its own read error.
	req.Len(removed, 1)
	req.Equal(idle.ID, removed[0].ID)

	current, err := reg.Get(copying.ID)
	req.NoError(err)
	req.Equal(domain.StatusCopying, current.Status)
}

func TestFileRegistry_HistoryEviction(t *testing.T) {
	req := require.New(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := NewFileRegistry(logger, NewPublisher(logger, 16), 1)

	first, err := reg.Register("/src/a.mxf", 1, time.Now())
	req.NoError(err)
	mustTransition(t, reg, first.ID, domain.StatusRemoved)

	second, err := reg.Register("/src/b.mxf", 1, time.Now())
	req.NoError(err)
	mustTransition(t, reg, second.ID, domain.StatusRemoved)

	// Then only the newest terminal entry is retained
	_, err = reg.Get(first.ID)
	req.ErrorIs(err, apperrors.ErrFileNotFound)
	_, err = reg.Get(second.ID)
	req.NoError(err)
}

func TestFileRegistry_TransitionPublishesInOrder(t *testing.T) {
	req := require.New(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := NewPublisher(logger, 16)
	reg := NewFileRegistry(logger, publisher, 100)

	events := publisher.Subscribe("test")

	f, err := reg.Register("/src/a.mxf", 1, time.Now())
	req.NoError(err)
	mustTransition(t, reg, f.ID, domain.StatusReady)
	mustTransition(t, reg, f.ID, domain.StatusInQueue)

	want := []domain.FileStatus{domain.StatusDiscovered, domain.StatusReady, domain.StatusInQueue}
	for _, status := range want {
		evt := (<-events).(event.FileStatusChanged)
		req.Equal(status, evt.NewStatus)
		req.Equal(f.ID, evt.ID)
	}
}

func mustTransition(t *testing.T, reg *FileRegistry, id domain.FileID, statuses ...domain.FileStatus) {
	t.Helper()
	for _, status := range statuses {
		_, err := reg.Transition(id, status)
		require.NoError(t, err)
	}
}
