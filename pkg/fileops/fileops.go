// Package fileops provides file operation utilities for copying files between filesystems.
package fileops

import (
	"errors"
	"fmt"
	"io"

	"github.com/joe/organize-files/pkg/filesystem"
)

// Exported constants.
const (
	// BufferSize is the size of the buffer used for file copy operations (32KB)
	BufferSize = 32 * 1024
	// DefaultDirPermissions is the default permission mode for created directories
	DefaultDirPermissions = 0o750
)

// CopyStats describes a completed copy.
// ModTimeErr is set when the data was copied but the destination kept its
// own modification time; some SFTP servers refuse setstat.
type CopyStats struct {
	BytesCopied int64
	ModTimeErr  error
}

// FileOps provides file operations across a source and a destination filesystem,
// so a run can copy local to local, local to SFTP or SFTP to local.
type FileOps struct {
	SourceFS filesystem.FileSystem
	DestFS   filesystem.FileSystem
}

// NewFileOps creates a new FileOps with separate source and destination filesystems.
func NewFileOps(sourceFS, destFS filesystem.FileSystem) *FileOps {
	return &FileOps{
		SourceFS: sourceFS,
		DestFS:   destFS,
	}
}

// NewRealFileOps creates a new FileOps using the local filesystem on both sides.
func NewRealFileOps() *FileOps {
	fs := filesystem.NewRealFileSystem()
	return NewFileOps(fs, fs)
}

// CopyFile copies src from the source filesystem to dst on the destination
// filesystem, replacing dst if it exists. The destination directory must
// already exist. The source modification time is carried over when the
// destination allows it; a refusal is reported in CopyStats.ModTimeErr and
// the copy is kept. If the copy fails after dst was created, the partial
// file is removed.
func (fo *FileOps) CopyFile(src, dst string) (*CopyStats, error) {
	stats := &CopyStats{}

	sourceFile, err := fo.SourceFS.Open(src)
	if err != nil {
		return stats, fmt.Errorf("failed to open source file %s: %w", src, err)
	}

	defer func() {
		_ = sourceFile.Close()
	}()

	sourceInfo, err := sourceFile.Stat()
	if err != nil {
		return stats, fmt.Errorf("failed to stat source file %s: %w", src, err)
	}

	destFile, err := fo.DestFS.Create(dst)
	if err != nil {
		return stats, fmt.Errorf("failed to create destination file %s: %w", dst, err)
	}

	copyCompleted := false
	destClosed := false

	defer func() {
		if !destClosed {
			_ = destFile.Close()
		}

		if !copyCompleted {
			_ = fo.DestFS.Remove(dst)
		}
	}()

	written, err := copyLoop(sourceFile, destFile)
	stats.BytesCopied = written

	if err != nil {
		return stats, fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}

	// Close before setting the modification time; network filesystems
	// update mtime on close.
	destClosed = true

	err = destFile.Close()
	if err != nil {
		return stats, fmt.Errorf("failed to close destination file %s: %w", dst, err)
	}

	copyCompleted = true

	err = fo.DestFS.Chtimes(dst, sourceInfo.ModTime(), sourceInfo.ModTime())
	if err != nil {
		stats.ModTimeErr = fmt.Errorf("failed to preserve modification time for %s: %w", dst, err)
	}

	return stats, nil
}

// EnsureDir creates dir and its parents on the destination filesystem.
func (fo *FileOps) EnsureDir(dir string) error {
	err := fo.DestFS.MkdirAll(dir, DefaultDirPermissions)
	if err != nil {
		return fmt.Errorf("failed to create destination directory %s: %w", dir, err)
	}

	return nil
}

// copyLoop copies all of src into dst.
func copyLoop(src io.Reader, dst io.Writer) (int64, error) {
	var written int64

	buf := make([]byte, BufferSize)

	for {
		nr, err := src.Read(buf) //nolint:varnamelen // nr is idiomatic for bytes read
		if nr > 0 {
			nw, werr := dst.Write(buf[0:nr]) //nolint:varnamelen // nw is idiomatic for bytes written
			if werr != nil {
				return written, fmt.Errorf("failed to write to destination: %w", werr)
			}

			if nr != nw {
				return written, fmt.Errorf("short write: %w", io.ErrShortWrite)
			}

			written += int64(nw)
		}

		if errors.Is(err, io.EOF) {
			return written, nil
		}

		if err != nil {
			return written, fmt.Errorf("failed to read from source: %w", err)
		}
	}
}
