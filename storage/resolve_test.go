package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPathResolver_MirrorsRelativeStructure(t *testing.T) {
	req := require.New(t)
	src := t.TempDir()
	dst := t.TempDir()
	resolver := NewPathResolver(src, dst)

	sourcePath := filepath.Join(src, "cam1", "day2", "video.mxf")

	final, err := resolver.Resolve(sourcePath)

	req.NoError(err)
	req.Equal(filepath.Join(dst, "cam1", "day2", "video.mxf"), final)
	req.DirExists(filepath.Join(dst, "cam1", "day2"))
}

func TestPathResolver_ConflictsGetNumberedSuffix(t *testing.T) {
	req := require.New(t)
	src := t.TempDir()
	dst := t.TempDir()
	resolver := NewPathResolver(src, dst)

	// Given video.mxf and video_1.mxf already exist at the destination
	req.NoError(os.WriteFile(filepath.Join(dst, "video.mxf"), []byte("x"), 0o644))
	req.NoError(os.WriteFile(filepath.Join(dst, "video_1.mxf"), []byte("x"), 0o644))

	final, err := resolver.Resolve(filepath.Join(src, "video.mxf"))

	req.NoError(err)
	req.Equal(filepath.Join(dst, "video_2.mxf"), final)
}

func TestPathResolver_ConflictCheckIsCaseInsensitive(t *testing.T) {
	req := require.New(t)
	src := t.TempDir()
	dst := t.TempDir()
	resolver := NewPathResolver(src, dst)

	// SMB/FAT style filesystems treat VIDEO.MXF and video.mxf as one name.
	req.NoError(os.WriteFile(filepath.Join(dst, "VIDEO.MXF"), []byte("x"), 0o644))

	final, err := resolver.Resolve(filepath.Join(src, "video.mxf"))

	req.NoError(err)
	req.Equal(filepath.Join(dst, "video_1.mxf"), final)
}

func TestPathResolver_ExtensionlessFiles(t *testing.T) {
	req := require.New(t)
	src := t.TempDir()
	dst := t.TempDir()
	resolver := NewPathResolver(src, dst)

	req.NoError(os.WriteFile(filepath.Join(dst, "manifest"), []byte("x"), 0o644))

	final, err := resolver.Resolve(filepath.Join(src, "manifest"))

	req.NoError(err)
	req.Equal(filepath.Join(dst, "manifest_1"), final)
}

func TestPathResolver_RejectsPathOutsideSourceRoot(t *testing.T) {
	req := require.New(t)
	resolver := NewPathResolver("/media/source", t.TempDir())

	// A relative traversal result is still produced by filepath.Rel, so the
	// resolver only fails on genuinely unrelatable paths.
	_, err := resolver.Resolve("relative/not/rooted.mxf")
	req.Error(err)
}

func TestTempPath(t *testing.T) {
	require.Equal(t, "/dst/video.mxf.tmp", TempPath("/dst/video.mxf"))
}
