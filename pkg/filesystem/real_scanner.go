package filesystem

import (
	"fmt"
	"path/filepath"

	"github.com/kr/fs"
)

// realFileScanner implements FileScanner by walking the local tree with kr/fs.
// Entries are produced in lexical order within each directory.
type realFileScanner struct {
	root    string
	files   []FileInfo
	index   int
	err     error
	scanned bool
}

// newRealFileScanner creates a new scanner for the given directory.
func newRealFileScanner(root string) *realFileScanner {
	return &realFileScanner{
		root:  root,
		files: make([]FileInfo, 0),
		index: -1,
	}
}

// Err returns any error that occurred during scanning.
func (s *realFileScanner) Err() error {
	return s.err
}

// Next advances to the next file and returns its info.
func (s *realFileScanner) Next() (FileInfo, bool) {
	// Scan on first call
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

// scan walks the directory tree and collects all entries.
func (s *realFileScanner) scan() {
	walker := fs.Walk(s.root)

	for walker.Step() {
		if err := walker.Err(); err != nil { //nolint:noinlineerr // Inline error check is idiomatic for walker error handling
			s.err = fmt.Errorf("error scanning %s: %w", s.root, err)
			return
		}

		fullPath := walker.Path()

		relPath, err := filepath.Rel(s.root, fullPath)
		if err != nil {
			s.err = fmt.Errorf("failed to get relative path for %s: %w", fullPath, err)
			return
		}

		// Skip the root directory itself
		if relPath == "." {
			continue
		}

		info := walker.Stat()
		s.files = append(s.files, FileInfo{
			Path:         fullPath,
			RelativePath: filepath.ToSlash(relPath),
			Size:         info.Size(),
			ModTime:      info.ModTime(),
			IsDir:        info.IsDir(),
			IsRegular:    info.Mode().IsRegular(),
		})
	}
}
