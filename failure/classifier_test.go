package failure

import (
	"context"
	"errors"
	"io/fs"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "transfer-agent/errors"
)

func TestClassify_SpaceErrors(t *testing.T) {
	req := require.New(t)

	req.Equal(KindSpace, Classify(NewDestinationError("write", syscall.ENOSPC)))
	req.Equal(KindSpace, Classify(apperrors.ErrInsufficientSpace))
}

func TestClassify_NetworkErrnosAreGlobal(t *testing.T) {
	req := require.New(t)

	for _, errno := range []syscall.Errno{
		syscall.EIO,
		syscall.EPIPE,
		syscall.ECONNRESET,
		syscall.ETIMEDOUT,
		syscall.ENETUNREACH,
		syscall.EHOSTUNREACH,
		syscall.ESTALE,
	} {
		req.Equal(KindGlobal, Classify(NewDestinationError("write", errno)), "errno %v", errno)
	}
}

func TestClassify_DestinationSideContextualErrors(t *testing.T) {
	req := require.New(t)

	// A vanished or permission-flipping destination means the mount dropped.
	req.Equal(KindGlobal, Classify(NewDestinationError("create temp", fs.ErrNotExist)))
	req.Equal(KindGlobal, Classify(NewDestinationError("write", fs.ErrPermission)))
	req.Equal(KindGlobal, Classify(NewDestinationError("probe", context.DeadlineExceeded)))

	// The same conditions on the source side are that file's own problem.
	req.Equal(KindLocal, Classify(NewSourceError("open", fs.ErrNotExist)))
	req.Equal(KindLocal, Classify(NewSourceError("open", fs.ErrPermission)))
}

func TestClassify_DefaultsToLocal(t *testing.T) {
	req := require.New(t)

	// Unknown errors retry a bounded number of times instead of pausing the
	// whole pipeline.
	req.Equal(KindLocal, Classify(errors.New("something unexpected")))
	req.Equal(KindLocal, Classify(apperrors.ErrSizeMismatch))
	req.Equal(KindLocal, Classify(nil))
}

func TestClassify_ProbeFailureIsGlobal(t *testing.T) {
	req := require.New(t)

	req.Equal(KindGlobal, Classify(apperrors.ErrDestinationProbe))
}

func TestCopyError_UnwrapsAndFormats(t *testing.T) {
	req := require.New(t)

	err := NewDestinationError("write", syscall.ENOSPC)

	req.ErrorIs(err, syscall.ENOSPC)
	req.Contains(err.Error(), "destination write")
}
