//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
	"time"

	"transfer-agent/domain"
	"transfer-agent/domain/event"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself.
// Can be silly, focused.
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// UpdateOption mutates a tracked file inside the registry's critical section.
type UpdateOption func(*domain.TrackedFile)

// IFileRegistry is the single authoritative owner of all tracked files.
// Every returned TrackedFile is a value snapshot.
type IFileRegistry interface {
	Register(path string, size uint64, mtime time.Time) (domain.TrackedFile, error)
	Transition(id domain.FileID, newStatus domain.FileStatus, opts ...UpdateOption) (domain.TrackedFile, error)
	Observe(id domain.FileID, size uint64, mtime time.Time, growthRate float64) (domain.TrackedFile, error)
	RecordProgress(id domain.FileID, bytesCopied, totalBytes uint64, rateBytesSec float64) error
	ResetProgress(id domain.FileID)
	SetDestination(id domain.FileID, path string)
	Get(id domain.FileID) (domain.TrackedFile, error)
	GetActiveByPath(path string) (domain.TrackedFile, bool)
	QueryByStatus(statuses ...domain.FileStatus) []domain.TrackedFile
	ListAll() []domain.TrackedFile
	Statistics() map[domain.FileStatus]int
	CleanupMissing(existing map[string]struct{}) []domain.TrackedFile
}

// IRetryCoordinator schedules one pending cooldown callback per file.
// Scheduling again replaces the pending timer; Cancel is idempotent.
type IRetryCoordinator interface {
	Schedule(id domain.FileID, delay time.Duration, reason string, fn func())
	Cancel(id domain.FileID)
	Pending() int
	Close()
}

// CopyStrategy transfers source bytes into an already-open temporary
// destination file and returns the number of bytes written. Implementations
// must wrap I/O failures so the classifier can tell source-side from
// destination-side errors apart.
type CopyStrategy interface {
	Copy(ctx context.Context, req CopyRequest) (uint64, error)
}

// ProgressFunc receives throttled progress callbacks during a copy.
type ProgressFunc func(bytesCopied, totalBytes uint64, rateBytesSec float64)

type CopyRequest struct {
	SourcePath string
	TempPath   string
	File       domain.TrackedFile
	Progress   ProgressFunc
}

// IDestinationChecker answers "can we write to the destination right now",
// caching the probe result for a short TTL.
type IDestinationChecker interface {
	Available(ctx context.Context) bool
	Refresh(ctx context.Context) bool
	ReportFailure(reason string)
}

// ISpaceChecker answers pre-flight space questions for one file size.
type ISpaceChecker interface {
	Check(fileSize uint64) (SpaceCheck, error)
}

type SpaceCheck struct {
	HasSpace       bool
	AvailableBytes uint64
	RequiredBytes  uint64
	Reason         string
}
