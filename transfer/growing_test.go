package transfer

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"transfer-agent/contract"
	apperrors "transfer-agent/errors"
)

func newGrowingStrategy(executor *Executor, safetyMargin uint64, stableAfter time.Duration) *GrowingStrategy {
	return NewGrowingStrategy(testLogger(), executor, 5*time.Millisecond, safetyMargin, stableAfter, time.Minute)
}

func TestGrowingStrategy_CopiesFileThatGrowsMidCopy(t *testing.T) {
	req := require.New(t)
	src := t.TempDir()
	dst := t.TempDir()

	sourcePath := filepath.Join(src, "recording.mxf")
	first := writeRandomFile(t, sourcePath, 8*1024)

	executor := NewExecutor(testLogger(), 1024)
	strategy := newGrowingStrategy(executor, 0, 50*time.Millisecond)

	// Given a writer that appends while the copy is in flight
	var second []byte
	var appendOnce sync.Once
	done := make(chan struct{})
	go func() {
		defer close(done)
		time.Sleep(15 * time.Millisecond)
		appendOnce.Do(func() {
			f, err := os.OpenFile(sourcePath, os.O_APPEND|os.O_WRONLY, 0o644)
			require.NoError(t, err)
			defer f.Close()
			second = make([]byte, 4*1024)
			_, err = f.Write(second)
			require.NoError(t, err)
		})
	}()

	tempPath := filepath.Join(dst, "recording.mxf.tmp")
	copied, err := strategy.Copy(context.Background(), contract.CopyRequest{
		SourcePath: sourcePath,
		TempPath:   tempPath,
	})
	<-done

	req.NoError(err)
	req.Equal(uint64(len(first)+len(second)), copied)

	got, err := os.ReadFile(tempPath)
	req.NoError(err)
	req.Equal(append(first, second...), got)
}

func TestGrowingStrategy_DrainsTailOnceStable(t *testing.T) {
	req := require.New(t)
	src := t.TempDir()
	dst := t.TempDir()

	sourcePath := filepath.Join(src, "recording.mxf")
	data := writeRandomFile(t, sourcePath, 16*1024)

	executor := NewExecutor(testLogger(), 1024)

	// A margin larger than the file forces the loop to wait for the final
	// drain; nothing may be copied until the source is declared stable.
	strategy := newGrowingStrategy(executor, 64*1024, 30*time.Millisecond)

	tempPath := filepath.Join(dst, "recording.mxf.tmp")
	copied, err := strategy.Copy(context.Background(), contract.CopyRequest{
		SourcePath: sourcePath,
		TempPath:   tempPath,
	})

	req.NoError(err)
	req.Equal(uint64(len(data)), copied)

	got, err := os.ReadFile(tempPath)
	req.NoError(err)
	req.Equal(data, got)
}

func TestGrowingStrategy_GrowthTimeoutCutsOffEndlessWriter(t *testing.T) {
	req := require.New(t)
	src := t.TempDir()
	dst := t.TempDir()

	sourcePath := filepath.Join(src, "recording.mxf")
	writeRandomFile(t, sourcePath, 8*1024)

	executor := NewExecutor(testLogger(), 1024)

	// The stability window is far too long to ever trip; only the timeout
	// can end this copy.
	strategy := NewGrowingStrategy(testLogger(), executor, 5*time.Millisecond, 0, time.Hour, 150*time.Millisecond)

	// Given a writer that never stops appending
	stop := make(chan struct{})
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		f, err := os.OpenFile(sourcePath, os.O_APPEND|os.O_WRONLY, 0o644)
		require.NoError(t, err)
		defer f.Close()
		chunk := make([]byte, 512)
		for {
			select {
			case <-stop:
				return
			case <-time.After(10 * time.Millisecond):
				_, _ = f.Write(chunk)
			}
		}
	}()

	// When the copy runs
	done := make(chan error, 1)
	var copied uint64
	go func() {
		var err error
		copied, err = strategy.Copy(context.Background(), contract.CopyRequest{
			SourcePath: sourcePath,
			TempPath:   filepath.Join(dst, "recording.mxf.tmp"),
		})
		done <- err
	}()

	// Then the timeout ends it even though the source keeps growing
	select {
	case err := <-done:
		req.NoError(err)
		req.GreaterOrEqual(copied, uint64(8*1024))
	case <-time.After(2 * time.Second):
		req.Fail("copy still running long after the growth timeout")
	}

	close(stop)
	<-writerDone
}

func TestGrowingStrategy_SourceVanishingMidCopyFails(t *testing.T) {
	req := require.New(t)
	src := t.TempDir()
	dst := t.TempDir()

	sourcePath := filepath.Join(src, "recording.mxf")
	writeRandomFile(t, sourcePath, 8*1024)

	executor := NewExecutor(testLogger(), 1024)
	// A huge margin keeps the strategy polling long enough for the delete.
	strategy := NewGrowingStrategy(testLogger(), executor, 5*time.Millisecond, 64*1024, time.Minute, time.Hour)

	go func() {
		time.Sleep(20 * time.Millisecond)
		_ = os.Remove(sourcePath)
	}()

	_, err := strategy.Copy(context.Background(), contract.CopyRequest{
		SourcePath: sourcePath,
		TempPath:   filepath.Join(dst, "recording.mxf.tmp"),
	})
	req.ErrorIs(err, os.ErrNotExist)
}

func TestGrowingStrategy_CancelledContextAborts(t *testing.T) {
	req := require.New(t)
	src := t.TempDir()

	sourcePath := filepath.Join(src, "recording.mxf")
	writeRandomFile(t, sourcePath, 8*1024)

	executor := NewExecutor(testLogger(), 1024)
	strategy := NewGrowingStrategy(testLogger(), executor, 5*time.Millisecond, 64*1024, time.Minute, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := strategy.Copy(ctx, contract.CopyRequest{
		SourcePath: sourcePath,
		TempPath:   filepath.Join(t.TempDir(), "recording.mxf.tmp"),
	})
	req.ErrorIs(err, apperrors.ErrCopyAborted)
}
