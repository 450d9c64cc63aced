package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCanTransition_LegalEdges(t *testing.T) {
	req := require.New(t)

	req.True(CanTransition(StatusDiscovered, StatusGrowing))
	req.True(CanTransition(StatusDiscovered, StatusReady))
	req.True(CanTransition(StatusGrowing, StatusReadyToStartGrowing))
	req.True(CanTransition(StatusReadyToStartGrowing, StatusReady))
	req.True(CanTransition(StatusReady, StatusInQueue))
	req.True(CanTransition(StatusInQueue, StatusCopying))
	req.True(CanTransition(StatusInQueue, StatusGrowingCopy))
	req.True(CanTransition(StatusCopying, StatusCompleted))
	req.True(CanTransition(StatusCopying, StatusWaitingForSpace))
	req.True(CanTransition(StatusGrowingCopy, StatusWaitingForNetwork))
	req.True(CanTransition(StatusWaitingForSpace, StatusReady))
	req.True(CanTransition(StatusWaitingForNetwork, StatusReady))
}

func TestCanTransition_IllegalEdges(t *testing.T) {
	req := require.New(t)

	// Skipping the queue entirely is never allowed.
	req.False(CanTransition(StatusDiscovered, StatusCopying))
	req.False(CanTransition(StatusReady, StatusCompleted))

	// A copy in flight cannot be silently removed.
	req.False(CanTransition(StatusCopying, StatusRemoved))
	req.False(CanTransition(StatusGrowingCopy, StatusRemoved))

	// Backwards through the lifecycle.
	req.False(CanTransition(StatusCompleted, StatusReady))
	req.False(CanTransition(StatusInQueue, StatusDiscovered))
}

func TestCanTransition_TerminalStatesHaveNoExits(t *testing.T) {
	req := require.New(t)

	terminals := []FileStatus{StatusCompleted, StatusCompletedDeleteFault, StatusFailed, StatusRemoved}
	all := []FileStatus{
		StatusDiscovered, StatusGrowing, StatusReadyToStartGrowing, StatusReady,
		StatusInQueue, StatusCopying, StatusGrowingCopy,
		StatusCompleted, StatusCompletedDeleteFault, StatusFailed,
		StatusWaitingForSpace, StatusWaitingForNetwork, StatusRemoved,
	}

	for _, terminal := range terminals {
		req.True(terminal.IsTerminal())
		for _, next := range all {
			req.False(CanTransition(terminal, next), "%s -> %s must be rejected", terminal, next)
		}
	}
}

func TestFileStatus_IsCopying(t *testing.T) {
	req := require.New(t)

	req.True(StatusCopying.IsCopying())
	req.True(StatusGrowingCopy.IsCopying())
	req.False(StatusInQueue.IsCopying())
	req.False(StatusReady.IsCopying())
}

func TestTrackedFile_IsActive(t *testing.T) {
	req := require.New(t)

	active := TrackedFile{Status: StatusReady}
	done := TrackedFile{Status: StatusCompleted}

	req.True(active.IsActive())
	req.False(done.IsActive())
}

func TestGrowthMeter_SmoothsRate(t *testing.T) {
	req := require.New(t)

	var meter GrowthMeter
	start := time.Now()

	// Given a file growing by 10 bytes per second across three samples
	meter.Observe(0, start)
	meter.Observe(10, start.Add(1*time.Second))
	rate := meter.Observe(20, start.Add(2*time.Second))

	// Then the smoothed rate converges toward 10 b/s
	req.InDelta(10.0, rate, 5.0)
	req.Equal(rate, meter.Rate())
}

func TestGrowthMeter_ShrinkingFileYieldsZero(t *testing.T) {
	req := require.New(t)

	var meter GrowthMeter
	start := time.Now()

	meter.Observe(100, start)
	rate := meter.Observe(50, start.Add(1*time.Second))

	req.Equal(0.0, rate)
}
