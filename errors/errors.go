package errors

import "fmt"

var (
	ErrWorkerPanic       = fmt.Errorf("worker panic")
	ErrInvalidTransition = fmt.Errorf("invalid status transition")
	ErrAlreadyActive     = fmt.Errorf("an active entry already exists for this path")
	ErrFileNotFound      = fmt.Errorf("tracked file not found")
	ErrInsufficientSpace = fmt.Errorf("insufficient destination space")
	ErrDestinationProbe  = fmt.Errorf("destination unavailable")
	ErrSizeMismatch      = fmt.Errorf("destination size does not match source")
	ErrCopyAborted       = fmt.Errorf("copy aborted")
)
