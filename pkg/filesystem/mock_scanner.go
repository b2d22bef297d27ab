package filesystem

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// mockFileScanner implements FileScanner for MockFileSystem.
// Entries are produced sorted by relative path.
type mockFileScanner struct {
	fs      *MockFileSystem
	root    string
	files   []FileInfo
	index   int
	err     error
	scanned bool
}

// newMockFileScanner creates a new scanner for the given directory.
func newMockFileScanner(fs *MockFileSystem, root string) *mockFileScanner {
	return &mockFileScanner{
		fs:    fs,
		root:  root,
		files: make([]FileInfo, 0),
		index: -1,
	}
}

// Err returns any error that occurred during scanning.
func (s *mockFileScanner) Err() error {
	return s.err
}

// Next advances to the next file and returns its info.
func (s *mockFileScanner) Next() (FileInfo, bool) {
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

// scan collects all entries under the root directory.
func (s *mockFileScanner) scan() {
	s.fs.mu.RLock()
	defer s.fs.mu.RUnlock()

	root, exists := s.fs.files[s.root]
	if !exists || !root.isDir {
		s.err = fmt.Errorf("scan %s: %w", s.root, os.ErrNotExist)
		return
	}

	prefix := s.root + "/"

	for path, file := range s.fs.files {
		if !strings.HasPrefix(path, prefix) {
			continue
		}

		s.files = append(s.files, FileInfo{
			Path:         path,
			RelativePath: strings.TrimPrefix(path, prefix),
			Size:         int64(len(file.data)),
			ModTime:      file.modTime,
			IsDir:        file.isDir,
			IsRegular:    !file.isDir,
		})
	}

	sort.Slice(s.files, func(i, j int) bool {
		return s.files[i].RelativePath < s.files[j].RelativePath
	})
}
