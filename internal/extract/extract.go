package extract

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Permissions
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// ErrUnsafePath is returned for entries that would land outside the target directory
var ErrUnsafePath = errors.New("entry path escapes target directory")

// ProgressFunc receives the number of files written so far and the total
type ProgressFunc func(done, total int)

// Extract unpacks every entry of the ZIP archive at archivePath into
// targetDir, keeping the archive's relative paths. Existing files are
// overwritten. The archive is opened and all entry paths are validated before
// anything is written. It returns the number of regular files written.
func Extract(ctx context.Context, archivePath, targetDir string, onProgress ProgressFunc) (int, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return 0, &ExtractionError{Archive: archivePath, Err: fmt.Errorf("opening archive: %w", err)}
	}
	defer reader.Close()

	root, err := filepath.Abs(targetDir)
	if err != nil {
		return 0, fmt.Errorf("resolving target directory: %w", err)
	}

	targets := make([]string, len(reader.File))
	files := 0
	for i, f := range reader.File {
		target, err := entryPath(root, f.Name)
		if err != nil {
			return 0, &ExtractionError{Archive: archivePath, Entry: f.Name, Err: err}
		}
		targets[i] = target
		if !f.FileInfo().IsDir() {
			files++
		}
	}

	if err := os.MkdirAll(root, DefaultDirPermissions); err != nil {
		return 0, &ExtractionError{Archive: archivePath, Err: fmt.Errorf("creating target directory: %w", err)}
	}

	if onProgress != nil {
		onProgress(0, files)
	}

	written := 0
	for i, f := range reader.File {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(targets[i], DefaultDirPermissions); err != nil {
				return written, &ExtractionError{Archive: archivePath, Entry: f.Name, Err: err}
			}
			continue
		}

		if err := writeEntry(f, targets[i]); err != nil {
			return written, &ExtractionError{Archive: archivePath, Entry: f.Name, Err: err}
		}
		written++
		if onProgress != nil {
			onProgress(written, files)
		}
	}

	return written, nil
}

// entryPath maps an archive entry name to a path under root
func entryPath(root, name string) (string, error) {
	name = strings.ReplaceAll(name, "\\", "/")
	if name == "" || strings.HasPrefix(name, "/") || filepath.IsAbs(name) || filepath.VolumeName(name) != "" {
		return "", ErrUnsafePath
	}

	prefix := root
	if !strings.HasSuffix(prefix, string(os.PathSeparator)) {
		prefix += string(os.PathSeparator)
	}
	target := filepath.Join(root, filepath.FromSlash(name))
	if target != root && !strings.HasPrefix(target, prefix) {
		return "", ErrUnsafePath
	}
	return target, nil
}

// writeEntry copies one regular file out of the archive
func writeEntry(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), DefaultDirPermissions); err != nil {
		return err
	}

	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = DefaultFilePermissions
	}
	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
