package filesystem

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/pkg/sftp"
)

// SFTPFileSystem implements FileSystem over a single SFTP session.
// Runs are sequential, so one client is enough.
type SFTPFileSystem struct {
	client *sftp.Client
}

// NewSFTPFileSystem creates a new SFTP filesystem using an established connection.
func NewSFTPFileSystem(conn *SFTPConnection) *SFTPFileSystem {
	return &SFTPFileSystem{client: conn.Client()}
}

// Chtimes changes the access and modification times of a remote file.
func (fs *SFTPFileSystem) Chtimes(path string, atime, mtime time.Time) error {
	err := fs.client.Chtimes(path, atime, mtime)
	if err != nil {
		return fmt.Errorf("failed to change times for remote file %s: %w", path, err)
	}

	return nil
}

// Create creates a remote file for writing, truncating any existing file.
func (fs *SFTPFileSystem) Create(path string) (File, error) {
	file, err := fs.client.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create remote file %s: %w", path, err)
	}

	return file, nil
}

// Join joins path elements with forward slashes.
func (fs *SFTPFileSystem) Join(elem ...string) string {
	return path.Join(elem...)
}

// MkdirAll creates a remote directory and all necessary parents.
// The permission argument is ignored; the server applies its defaults.
func (fs *SFTPFileSystem) MkdirAll(path string, _ os.FileMode) error {
	err := fs.client.MkdirAll(path)
	if err != nil {
		return fmt.Errorf("failed to create remote directory %s: %w", path, err)
	}

	return nil
}

// Open opens a remote file for reading.
func (fs *SFTPFileSystem) Open(path string) (File, error) {
	file, err := fs.client.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open remote file %s: %w", path, err)
	}

	return file, nil
}

// Remove removes a remote file or empty directory.
func (fs *SFTPFileSystem) Remove(path string) error {
	err := fs.client.Remove(path)
	if err != nil {
		return fmt.Errorf("failed to remove remote file %s: %w", path, err)
	}

	return nil
}

// Scan returns an iterator over all entries in a remote directory tree.
func (fs *SFTPFileSystem) Scan(root string) FileScanner {
	return newSFTPScanner(fs.client, root)
}

// Stat returns file information for a remote file.
func (fs *SFTPFileSystem) Stat(path string) (os.FileInfo, error) {
	info, err := fs.client.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat remote file %s: %w", path, err)
	}

	return info, nil
}
