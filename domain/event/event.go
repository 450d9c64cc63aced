package event

import (
	"time"

	"transfer-agent/domain"
)

// DomainEvent is anything the pipeline announces to subscribers. Events are
// observational: the core pipeline works with zero subscribers attached.
type DomainEvent interface {
	OccurredAt() time.Time
}

// FileStatusChanged is published on every registry transition. Snapshot is a
// value copy taken under the registry lock; it does not track later changes.
type FileStatusChanged struct {
	ID        domain.FileID
	Path      string
	OldStatus domain.FileStatus
	NewStatus domain.FileStatus
	Snapshot  domain.TrackedFile
	At        time.Time
}

func (e FileStatusChanged) OccurredAt() time.Time { return e.At }

// CopyProgressed reports throttled copy progress for one file. Percent may be
// approximate for growing files whose final size is not yet known.
type CopyProgressed struct {
	ID           domain.FileID
	Path         string
	BytesCopied  uint64
	TotalBytes   uint64
	Percent      float64
	RateBytesSec float64
	At           time.Time
}

func (e CopyProgressed) OccurredAt() time.Time { return e.At }

// DestinationStateChanged is published when the destination flips between
// reachable and unreachable.
type DestinationStateChanged struct {
	Available bool
	Reason    string
	At        time.Time
}

func (e DestinationStateChanged) OccurredAt() time.Time { return e.At }
