package sink

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"transfer-agent/domain"
	"transfer-agent/domain/event"
	"transfer-agent/observability"
)

func TestStatsSink_CountsDiscoveriesAndRemovals(t *testing.T) {
	req := require.New(t)
	monitoring := observability.NewMonitoringManager()
	s := NewStatsSink(monitoring)
	ctx := context.Background()

	req.NoError(s.Consume(ctx, event.FileStatusChanged{NewStatus: domain.StatusDiscovered, At: time.Now()}))
	req.NoError(s.Consume(ctx, event.FileStatusChanged{NewStatus: domain.StatusDiscovered, At: time.Now()}))
	req.NoError(s.Consume(ctx, event.FileStatusChanged{NewStatus: domain.StatusRemoved, At: time.Now()}))

	stats := monitoring.Snapshot(nil)
	req.Equal(uint64(2), stats.FilesDiscovered)
	req.Equal(uint64(1), stats.FilesRemoved)
}

func TestStatsSink_IgnoresOtherTransitionsAndEvents(t *testing.T) {
	req := require.New(t)
	monitoring := observability.NewMonitoringManager()
	s := NewStatsSink(monitoring)
	ctx := context.Background()

	// Completions are counted by the copy workers, not here.
	req.NoError(s.Consume(ctx, event.FileStatusChanged{NewStatus: domain.StatusCompleted, At: time.Now()}))
	req.NoError(s.Consume(ctx, event.CopyProgressed{BytesCopied: 10, At: time.Now()}))
	req.NoError(s.Consume(ctx, event.DestinationStateChanged{Available: false, At: time.Now()}))

	stats := monitoring.Snapshot(nil)
	req.Zero(stats.FilesDiscovered)
	req.Zero(stats.FilesCompleted)
	req.Zero(stats.FilesRemoved)
}
