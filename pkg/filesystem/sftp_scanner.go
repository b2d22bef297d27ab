package filesystem

import (
	"fmt"
	"path"
	"strings"

	"github.com/pkg/sftp"
)

// sftpScanner implements FileScanner for SFTP directories.
type sftpScanner struct {
	client  *sftp.Client
	root    string
	files   []FileInfo
	index   int
	err     error
	scanned bool
}

// newSFTPScanner creates a new scanner for the given SFTP directory.
func newSFTPScanner(client *sftp.Client, root string) *sftpScanner {
	return &sftpScanner{
		client: client,
		root:   root,
		files:  make([]FileInfo, 0),
		index:  -1,
	}
}

// Err returns any error that occurred during scanning.
func (s *sftpScanner) Err() error {
	return s.err
}

// Next advances to the next file and returns its info.
func (s *sftpScanner) Next() (FileInfo, bool) {
	if !s.scanned {
		s.scan()
		s.scanned = true
	}

	if s.err != nil {
		return FileInfo{}, false
	}

	s.index++
	if s.index >= len(s.files) {
		return FileInfo{}, false
	}

	return s.files[s.index], true
}

// scan walks the remote directory tree and collects all entries.
func (s *sftpScanner) scan() {
	walker := s.client.Walk(s.root)

	for walker.Step() {
		if err := walker.Err(); err != nil { //nolint:noinlineerr // Inline error check is idiomatic for walker error handling
			s.err = fmt.Errorf("error scanning SFTP directory: %w", err)
			return
		}

		fullPath := walker.Path()

		relPath, err := relativePath(s.root, fullPath)
		if err != nil {
			s.err = fmt.Errorf("failed to get relative path for %s: %w", fullPath, err)
			return
		}

		if relPath == "." {
			continue
		}

		stat := walker.Stat()
		s.files = append(s.files, FileInfo{
			Path:         fullPath,
			RelativePath: relPath,
			Size:         stat.Size(),
			ModTime:      stat.ModTime(),
			IsDir:        stat.IsDir(),
			IsRegular:    stat.Mode().IsRegular(),
		})
	}
}

// relativePath computes the relative path from root to target.
// Uses path package (not filepath) since SFTP always uses forward slashes.
func relativePath(root, target string) (string, error) {
	root = path.Clean(root)
	target = path.Clean(target)

	if target == root {
		return ".", nil
	}

	// Walking "." (the login directory) yields paths without a prefix
	if root == "." {
		return target, nil
	}

	prefix := root
	if prefix != "/" {
		prefix += "/"
	}

	if !strings.HasPrefix(target, prefix) {
		return "", fmt.Errorf("target %s is not under root %s", target, root) //nolint:err113 // Path validation error with actual paths
	}

	return target[len(prefix):], nil
}
