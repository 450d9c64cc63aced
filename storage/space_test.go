package storage

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shirou/gopsutil/disk"
	"github.com/stretchr/testify/require"
)

func newTestSpaceChecker(free uint64, margin uint64) *SpaceChecker {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewSpaceChecker(logger, "/dst", margin)
	s.usage = func(string) (*disk.UsageStat, error) {
		return &disk.UsageStat{Free: free}, nil
	}
	return s
}

func TestSpaceChecker_EnoughSpace(t *testing.T) {
	req := require.New(t)
	s := newTestSpaceChecker(2000, 500)

	check, err := s.Check(1000)

	req.NoError(err)
	req.True(check.HasSpace)
	req.Equal(uint64(1500), check.RequiredBytes)
	req.Equal(uint64(2000), check.AvailableBytes)
}

func TestSpaceChecker_SafetyMarginCountsAgainstFreeSpace(t *testing.T) {
	req := require.New(t)

	// The file alone fits, the margin pushes it over.
	s := newTestSpaceChecker(1200, 500)

	check, err := s.Check(1000)

	req.NoError(err)
	req.False(check.HasSpace)
	req.NotEmpty(check.Reason)
}

func TestSpaceChecker_ExactFitPasses(t *testing.T) {
	req := require.New(t)
	s := newTestSpaceChecker(1500, 500)

	check, err := s.Check(1000)

	req.NoError(err)
	req.True(check.HasSpace)
}

func TestSpaceChecker_UsageFailureIsReturned(t *testing.T) {
	req := require.New(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewSpaceChecker(logger, "/dst", 0)

	probeErr := errors.New("transport endpoint is not connected")
	s.usage = func(string) (*disk.UsageStat, error) { return nil, probeErr }

	check, err := s.Check(1000)

	// An unreadable volume is not "out of space"; the caller treats it as a
	// destination outage.
	req.ErrorIs(err, probeErr)
	req.False(check.HasSpace)
	req.Contains(check.Reason, "not accessible")
}
