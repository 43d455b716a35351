package pdfbook

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hugobch/pdfbook/internal/fileutil"
)

// CopyAssets mirrors srcDir into dstDir recursively, copying a file only
// when the destination is missing or older than the source. A missing
// srcDir is a no-op so projects without static assets build cleanly.
func CopyAssets(srcDir, dstDir string) error {
	if !fileutil.DirExists(srcDir) {
		return nil
	}

	if err := os.MkdirAll(dstDir, dirPermissions); err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrBuild, dstDir, err)
	}

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrBuild, srcDir, err)
	}

	for _, entry := range entries {
		src := filepath.Join(srcDir, entry.Name())
		dst := filepath.Join(dstDir, entry.Name())

		if entry.IsDir() {
			if err := CopyAssets(src, dst); err != nil {
				return err
			}
			continue
		}

		stale, err := destinationStale(src, dst)
		if err != nil {
			return fmt.Errorf("%w: comparing %s: %v", ErrBuild, src, err)
		}
		if !stale {
			continue
		}
		if err := copyFile(src, dst); err != nil {
			return err
		}
	}

	return nil
}

// destinationStale reports whether dst is missing or older than src.
func destinationStale(src, dst string) (bool, error) {
	dstInfo, err := os.Stat(dst)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return false, err
	}

	return srcInfo.ModTime().After(dstInfo.ModTime()), nil
}

// copyFile copies one regular file.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src) // #nosec G304 -- paths come from walking the project's assets dir
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrBuild, src, err)
	}
	if err := os.WriteFile(dst, data, filePermissions); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrBuild, dst, err)
	}
	return nil
}
