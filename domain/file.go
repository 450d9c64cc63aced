package domain

import (
	"time"
)

// FileID is the stable identifier of a tracked file. Paths are not usable as
// identifiers: after a recovery copy the same path owns a fresh entry.
type FileID string

// FileStatus is the closed set of lifecycle states a tracked file moves
// through. Transitions are validated against AllowedTransitions; nothing else
// may mutate a status.
type FileStatus string

const (
	StatusDiscovered           FileStatus = "Discovered"
	StatusGrowing              FileStatus = "Growing"
	StatusReadyToStartGrowing  FileStatus = "ReadyToStartGrowing"
	StatusReady                FileStatus = "Ready"
	StatusInQueue              FileStatus = "InQueue"
	StatusCopying              FileStatus = "Copying"
	StatusGrowingCopy          FileStatus = "GrowingCopy"
	StatusCompleted            FileStatus = "Completed"
	StatusCompletedDeleteFault FileStatus = "CompletedDeleteFailed"
	StatusFailed               FileStatus = "Failed"
	StatusWaitingForSpace      FileStatus = "WaitingForSpace"
	StatusWaitingForNetwork    FileStatus = "WaitingForNetwork"
	StatusRemoved              FileStatus = "Removed"
)

// AllowedTransitions declares every legal edge of the lifecycle.
// Failed, Completed, CompletedDeleteFailed and Removed are terminal: a file
// re-appearing at the same path gets a brand new entry (recovery copy).
var AllowedTransitions = map[FileStatus][]FileStatus{
	StatusDiscovered: {
		StatusGrowing,
		StatusReady,
		StatusRemoved,
	},
	StatusGrowing: {
		StatusReadyToStartGrowing,
		StatusReady,
		StatusRemoved,
	},
	StatusReadyToStartGrowing: {
		StatusReady,
		StatusGrowing,
		StatusRemoved,
	},
	StatusReady: {
		StatusInQueue,
		StatusWaitingForNetwork,
		StatusRemoved,
	},
	StatusInQueue: {
		StatusCopying,
		StatusGrowingCopy,
		StatusReady,
		StatusRemoved,
	},
	StatusCopying: {
		StatusCompleted,
		StatusCompletedDeleteFault,
		StatusFailed,
		StatusReady,
		StatusWaitingForNetwork,
		StatusWaitingForSpace,
	},
	StatusGrowingCopy: {
		StatusCompleted,
		StatusCompletedDeleteFault,
		StatusFailed,
		StatusReady,
		StatusWaitingForNetwork,
		StatusWaitingForSpace,
	},
	StatusWaitingForSpace: {
		StatusReady,
		StatusRemoved,
	},
	StatusWaitingForNetwork: {
		StatusReady,
		StatusRemoved,
	},
	StatusCompleted:            nil,
	StatusCompletedDeleteFault: nil,
	StatusFailed:               nil,
	StatusRemoved:              nil,
}

// CanTransition reports whether the edge from -> to exists in the table.
func CanTransition(from, to FileStatus) bool {
	for _, allowed := range AllowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status has no outgoing edges. Terminal entries
// free their path for re-registration and are kept only as history.
func (s FileStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCompletedDeleteFault, StatusFailed, StatusRemoved:
		return true
	}
	return false
}

// IsCopying reports whether a worker currently owns the file.
func (s FileStatus) IsCopying() bool {
	return s == StatusCopying || s == StatusGrowingCopy
}

// TrackedFile is the central record for one file moving through the pipeline.
// It is mutated exclusively through the registry; everything handed out of the
// registry is a value copy and safe to read concurrently.
type TrackedFile struct {
	ID         FileID
	SourcePath string
	Status     FileStatus

	Size          uint64
	LastWriteTime time.Time
	MimeType      string

	// Growing-file bookkeeping, maintained by the scanner.
	Growing        bool
	GrowthBytesSec float64

	// Copy progress, maintained by the copy executor via the registry.
	BytesCopied     uint64
	ProgressPercent float64
	DestinationPath string

	RetryCount      int
	SpaceRetryCount int
	LastError       string
	// RetryNotBefore parks a Ready file until its retry cooldown has elapsed.
	// The queue bridge never enqueues a file ahead of this instant.
	RetryNotBefore time.Time

	DiscoveredAt   time.Time
	ReadyAt        time.Time
	CopyStartedAt  time.Time
	CompletedAt    time.Time
	TransitionedAt time.Time
}

// IsActive reports whether this entry still owns its source path.
func (f *TrackedFile) IsActive() bool {
	return !f.Status.IsTerminal()
}
