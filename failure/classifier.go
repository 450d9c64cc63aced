package failure

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"syscall"

	apperrors "transfer-agent/errors"
)

// Kind partitions every failure the pipeline can observe.
//
// Local failures belong to one file and consume its bounded retry budget.
// Global failures belong to the destination as a whole and pause enqueueing
// until the destination recovers. Space failures get their own cooldown cycle
// with an independent counter so a long disk-full episode cannot burn the
// local retry budget.
type Kind int

const (
	KindLocal Kind = iota
	KindGlobal
	KindSpace
)

func (k Kind) String() string {
	switch k {
	case KindGlobal:
		return "global"
	case KindSpace:
		return "space"
	default:
		return "local"
	}
}

// Side records whether a copy error came from reading the source or writing
// the destination. The same errno means different things on each side:
// EACCES on the destination is almost always a dropped network mount, while
// EACCES on the source is a locked or protected file.
type Side int

const (
	SideSource Side = iota
	SideDestination
)

func (s Side) String() string {
	if s == SideDestination {
		return "destination"
	}
	return "source"
}

// CopyError tags an I/O failure with the side it happened on. Both copy
// strategies wrap every read/write/create error in one of these before it
// reaches the classifier.
type CopyError struct {
	Side Side
	Op   string
	Err  error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Side, e.Op, e.Err)
}

func (e *CopyError) Unwrap() error { return e.Err }

// NewSourceError tags err as source-side.
func NewSourceError(op string, err error) error {
	return &CopyError{Side: SideSource, Op: op, Err: err}
}

// NewDestinationError tags err as destination-side.
func NewDestinationError(op string, err error) error {
	return &CopyError{Side: SideDestination, Op: op, Err: err}
}

// networkErrnos are the errno values that indicate the destination or the
// path to it is gone, regardless of which file was in flight.
var networkErrnos = []syscall.Errno{
	syscall.EIO,
	syscall.EPIPE,
	syscall.ECONNREFUSED,
	syscall.ECONNRESET,
	syscall.ETIMEDOUT,
	syscall.ENETUNREACH,
	syscall.EHOSTUNREACH,
	syscall.ENOTCONN,
	syscall.ESTALE,
}

// Classify maps an error to its failure kind. Unknown errors classify as
// local: they retry a bounded number of times instead of silently pausing
// the whole pipeline or losing data.
func Classify(err error) Kind {
	if err == nil {
		return KindLocal
	}

	if errors.Is(err, syscall.ENOSPC) || errors.Is(err, apperrors.ErrInsufficientSpace) {
		return KindSpace
	}

	if errors.Is(err, apperrors.ErrDestinationProbe) {
		return KindGlobal
	}

	// Verification mismatches retry the whole file from scratch; the partial
	// destination data is never trusted.
	if errors.Is(err, apperrors.ErrSizeMismatch) {
		return KindLocal
	}

	for _, errno := range networkErrnos {
		if errors.Is(err, errno) {
			return KindGlobal
		}
	}

	var copyErr *CopyError
	if errors.As(err, &copyErr) && copyErr.Side == SideDestination {
		// Destination-side permission errors usually mean the mount dropped
		// or re-authenticated, not that one file is special.
		if errors.Is(err, fs.ErrPermission) {
			return KindGlobal
		}
		// A destination path that stops existing mid-copy is an unmount.
		if errors.Is(err, fs.ErrNotExist) {
			return KindGlobal
		}
		// A probe or write that timed out means the destination is hanging.
		if errors.Is(err, context.DeadlineExceeded) {
			return KindGlobal
		}
	}

	return KindLocal
}
