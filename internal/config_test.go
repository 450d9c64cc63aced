package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		SourceDir:               t.TempDir(),
		DestinationDir:          t.TempDir(),
		ScanInterval:            10 * time.Second,
		StabilityWindow:         30 * time.Second,
		WorkerCount:             4,
		QueueCapacity:           256,
		EventBufferSize:         512,
		ChunkSizeKB:             2048,
		MaxLocalRetries:         3,
		LocalRetryDelay:         10 * time.Second,
		GlobalRetryDelay:        time.Minute,
		SpaceSafetyMarginGB:     1.0,
		SpaceRetryCooldown:      5 * time.Minute,
		DestinationProbeTTL:     5 * time.Second,
		DestinationProbeTimeout: 10 * time.Second,
		DestinationProbeEvery:   15 * time.Second,
		GrowingFileSupport:      true,
		GrowingMinBytes:         100 << 20,
		GrowingPollInterval:     5 * time.Second,
		GrowingSafetyMargin:     50 << 20,
		GrowingGrowthTimeout:    2 * time.Minute,
		HistoryLimit:            1000,
		ReportInterval:          30 * time.Second,
		LogLevel:                "INFO",
	}
}

func TestConfig_ValidPasses(t *testing.T) {
	require.NoError(t, validConfig(t).Validate())
}

func TestConfig_SourceAndDestinationMustDiffer(t *testing.T) {
	cfg := validConfig(t)
	cfg.DestinationDir = cfg.SourceDir

	require.ErrorContains(t, cfg.Validate(), "must differ")
}

func TestConfig_MissingSourceDirFails(t *testing.T) {
	cfg := validConfig(t)
	cfg.SourceDir = ""

	require.Error(t, cfg.Validate())
}

func TestConfig_GrowingSupportNeedsThreshold(t *testing.T) {
	cfg := validConfig(t)
	cfg.GrowingMinBytes = 0

	require.ErrorContains(t, cfg.Validate(), "GROWING_MIN_BYTES")
}

func TestConfig_WorkerCountBounds(t *testing.T) {
	cfg := validConfig(t)
	cfg.WorkerCount = 0
	require.Error(t, cfg.Validate())

	cfg.WorkerCount = 65
	require.Error(t, cfg.Validate())
}

func TestConfig_UnknownLogLevelFails(t *testing.T) {
	cfg := validConfig(t)
	cfg.LogLevel = "CHATTY"

	require.Error(t, cfg.Validate())
}

func TestConfig_ChunkSizeConversion(t *testing.T) {
	cfg := validConfig(t)
	cfg.ChunkSizeKB = 2048

	require.Equal(t, 2048*1024, cfg.ChunkSize())
}

func TestConfig_SpaceMarginConversion(t *testing.T) {
	cfg := validConfig(t)
	cfg.SpaceSafetyMarginGB = 0.5

	require.Equal(t, uint64(512*1024*1024), cfg.SpaceSafetyMarginBytes())
}
