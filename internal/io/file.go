package ioutils

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyFile copies a file from source to destination.
//
// The destination file is created with the permissions of the source file if
// it doesn't exist, or truncated if it does. The source file must exist and
// be readable.
//
// Example:
//
//	err := CopyFile(ctx, "/sheets/albums.xlsx", "/sheets/albums.xlsx.bak")
func CopyFile(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	info, err := sourceFile.Stat()
	if err != nil {
		return err
	}

	destFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		destFile.Close()
		return err
	}
	return destFile.Close()
}

// WriteFileAtomic replaces path with whatever write produces.
//
// The content is written to a temporary file in the same directory, which
// is renamed over path only after write and Close both succeed. On any
// failure the temporary file is removed and path is left untouched. The
// permissions of an existing path are kept; new files get mode 0644.
//
// Example:
//
//	err := WriteFileAtomic(ctx, "/sheets/albums.xlsx", func(w io.Writer) error {
//	    return workbook.Write(w)
//	})
func WriteFileAtomic(ctx context.Context, path string, write func(w io.Writer) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
//
// Example:
//
//	err := EnsureDir("/home/user/.config/album-catalog")
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
