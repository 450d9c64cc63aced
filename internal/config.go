package internal

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the immutable configuration surface of the agent. It is loaded
// once from the environment in main and handed to the orchestrator; the core
// never reads environment variables or files itself.
type Config struct {
	SourceDir      string `env:"SOURCE_DIR,required=true" validate:"required,dir"`
	DestinationDir string `env:"DESTINATION_DIR,required=true" validate:"required"`

	ScanInterval    time.Duration `env:"SCAN_INTERVAL,default=10s" validate:"gt=0"`
	StabilityWindow time.Duration `env:"STABILITY_WINDOW,default=30s" validate:"gt=0"`

	WorkerCount     int `env:"WORKER_COUNT,default=4" validate:"min=1,max=64"`
	QueueCapacity   int `env:"QUEUE_CAPACITY,default=256" validate:"min=1"`
	EventBufferSize int `env:"EVENT_BUFFER_SIZE,default=512" validate:"min=1"`

	ChunkSizeKB int `env:"CHUNK_SIZE_KB,default=2048" validate:"min=64"`

	MaxLocalRetries  int           `env:"MAX_LOCAL_RETRIES,default=3" validate:"min=1"`
	LocalRetryDelay  time.Duration `env:"LOCAL_RETRY_DELAY,default=10s" validate:"gt=0"`
	GlobalRetryDelay time.Duration `env:"GLOBAL_RETRY_DELAY,default=60s" validate:"gt=0"`

	SpaceSafetyMarginGB float64       `env:"SPACE_SAFETY_MARGIN_GB,default=1.0" validate:"gte=0"`
	SpaceRetryCooldown  time.Duration `env:"SPACE_RETRY_COOLDOWN,default=5m" validate:"gt=0"`

	DestinationProbeTTL     time.Duration `env:"DESTINATION_PROBE_TTL,default=5s" validate:"gt=0"`
	DestinationProbeTimeout time.Duration `env:"DESTINATION_PROBE_TIMEOUT,default=10s" validate:"gt=0"`
	DestinationProbeEvery   time.Duration `env:"DESTINATION_PROBE_INTERVAL,default=15s" validate:"gt=0"`

	GrowingFileSupport   bool          `env:"GROWING_FILE_SUPPORT,default=true"`
	GrowingMinBytes      uint64        `env:"GROWING_MIN_BYTES,default=104857600"`
	GrowingPollInterval  time.Duration `env:"GROWING_POLL_INTERVAL,default=5s" validate:"gt=0"`
	GrowingSafetyMargin  uint64        `env:"GROWING_SAFETY_MARGIN_BYTES,default=52428800"`
	GrowingGrowthTimeout time.Duration `env:"GROWING_GROWTH_TIMEOUT,default=2m" validate:"gt=0"`

	HistoryLimit   int           `env:"HISTORY_LIMIT,default=1000" validate:"min=0"`
	ReportInterval time.Duration `env:"REPORT_INTERVAL,default=30s" validate:"gt=0"`
	LogLevel       string        `env:"LOG_LEVEL,default=INFO" validate:"oneof=DEBUG INFO WARN ERROR"`
}

// Validate applies the struct-level validation rules and a couple of
// cross-field checks the tags cannot express.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.SourceDir == c.DestinationDir {
		return fmt.Errorf("SOURCE_DIR and DESTINATION_DIR must differ")
	}
	if c.GrowingFileSupport && c.GrowingMinBytes == 0 {
		return fmt.Errorf("GROWING_MIN_BYTES must be positive when growing file support is enabled")
	}
	return nil
}

// ChunkSize returns the copy chunk size in bytes.
func (c Config) ChunkSize() int {
	return c.ChunkSizeKB * 1024
}

// SpaceSafetyMarginBytes converts the configured margin to bytes.
func (c Config) SpaceSafetyMarginBytes() uint64 {
	return uint64(c.SpaceSafetyMarginGB * 1024 * 1024 * 1024)
}
