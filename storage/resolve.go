package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// tempSuffix marks in-flight destination files. They are renamed to the
// final name only after size verification.
const tempSuffix = ".tmp"

// PathResolver maps source paths to destination paths, mirroring the relative
// directory structure beneath the destination root and resolving final-name
// conflicts deterministically.
type PathResolver struct {
	sourceRoot      string
	destinationRoot string
}

func NewPathResolver(sourceRoot, destinationRoot string) *PathResolver {
	return &PathResolver{sourceRoot: sourceRoot, destinationRoot: destinationRoot}
}

// Resolve returns the conflict-free final destination path for a source file
// and creates the destination directory. Existing names get `_1`, `_2`, …
// appended before the extension until a free name is found; the existence
// check is case-insensitive so SMB/FAT style filesystems cannot produce two
// names differing only in case.
func (r *PathResolver) Resolve(sourcePath string) (string, error) {
	rel, err := filepath.Rel(r.sourceRoot, sourcePath)
	if err != nil {
		return "", fmt.Errorf("source path outside source root: %w", err)
	}

	target := filepath.Join(r.destinationRoot, rel)
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating destination directory: %w", err)
	}

	existing, err := lowercaseNames(dir)
	if err != nil {
		return "", err
	}

	base := filepath.Base(target)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	candidate := base
	for i := 1; ; i++ {
		if _, taken := existing[strings.ToLower(candidate)]; !taken {
			return filepath.Join(dir, candidate), nil
		}
		candidate = fmt.Sprintf("%s_%d%s", stem, i, ext)
	}
}

// TempPath returns the in-flight name used while copying toward finalPath.
func TempPath(finalPath string) string {
	return finalPath + tempSuffix
}

func lowercaseNames(dir string) (map[string]struct{}, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading destination directory: %w", err)
	}
	names := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		names[strings.ToLower(entry.Name())] = struct{}{}
	}
	return names, nil
}
