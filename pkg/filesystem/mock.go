package filesystem

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
)

// Exported constants.
const (
	OpChtimes  = "chtimes"
	OpCreate   = "create"
	OpMkdirAll = "mkdirall"
	OpOpen     = "open"
	OpStat     = "stat"
	OpWrite    = "write"
)

// Exported variables.
var (
	ErrIsDirectory = errors.New("is a directory")
)

// MockFileSystem is an in-memory filesystem implementation for testing.
// Paths are slash-separated. Failures can be injected per operation and path.
type MockFileSystem struct {
	mu       sync.RWMutex
	files    map[string]*mockFile
	failures map[string]error
	creates  []string
}

// mockFile represents a file in the mock filesystem.
type mockFile struct {
	data    []byte
	modTime time.Time
	isDir   bool
	perm    os.FileMode
}

// mockFileInfo implements os.FileInfo for mock files.
type mockFileInfo struct {
	name    string
	size    int64
	modTime time.Time
	isDir   bool
	perm    os.FileMode
}

func (fi *mockFileInfo) Name() string       { return fi.name }
func (fi *mockFileInfo) Size() int64        { return fi.size }
func (fi *mockFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *mockFileInfo) IsDir() bool        { return fi.isDir }
func (fi *mockFileInfo) Sys() any           { return nil }

func (fi *mockFileInfo) Mode() os.FileMode {
	if fi.isDir {
		return fi.perm | os.ModeDir
	}

	return fi.perm
}

// mockFileHandle implements the File interface for reading/writing.
type mockFileHandle struct {
	fs       *MockFileSystem
	path     string
	reader   *bytes.Reader
	writer   *bytes.Buffer
	writeErr error
	closed   bool
}

func (f *mockFileHandle) Close() error {
	if f.closed {
		return os.ErrClosed
	}

	f.closed = true

	if f.writer == nil {
		return nil
	}

	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	if file, exists := f.fs.files[f.path]; exists {
		file.data = f.writer.Bytes()
	}

	return nil
}

func (f *mockFileHandle) Read(p []byte) (int, error) {
	if f.closed {
		return 0, os.ErrClosed
	}

	if f.reader == nil {
		return 0, io.EOF
	}

	return f.reader.Read(p)
}

func (f *mockFileHandle) Stat() (os.FileInfo, error) {
	if f.closed {
		return nil, os.ErrClosed
	}

	return f.fs.Stat(f.path)
}

func (f *mockFileHandle) Write(p []byte) (int, error) {
	if f.closed {
		return 0, os.ErrClosed
	}

	if f.writeErr != nil {
		return 0, f.writeErr
	}

	if f.writer == nil {
		f.writer = &bytes.Buffer{}
	}

	return f.writer.Write(p)
}

// NewMockFileSystem creates a new in-memory filesystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:    make(map[string]*mockFile),
		failures: make(map[string]error),
	}
}

// Chtimes changes the access and modification times of a file.
func (fs *MockFileSystem) Chtimes(path string, _, mtime time.Time) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.failureLocked(OpChtimes, path); err != nil {
		return err
	}

	file, exists := fs.files[path]
	if !exists {
		return fmt.Errorf("chtimes %s: %w", path, os.ErrNotExist)
	}

	file.modTime = mtime

	return nil
}

// Create creates a file for writing, truncating any existing file.
// Unlike the real filesystem the parent directory must already exist.
func (fs *MockFileSystem) Create(path string) (File, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.failureLocked(OpCreate, path); err != nil {
		return nil, err
	}

	if dir := parentDir(path); dir != "" {
		parent, exists := fs.files[dir]
		if !exists || !parent.isDir {
			return nil, fmt.Errorf("create %s: %w", path, os.ErrNotExist)
		}
	}

	if existing, exists := fs.files[path]; exists && existing.isDir {
		return nil, fmt.Errorf("create %s: %w", path, ErrIsDirectory)
	}

	fs.files[path] = &mockFile{
		data:    []byte{},
		modTime: time.Now(),
		perm:    0o644, //nolint:mnd // Default mock file permissions
	}
	fs.creates = append(fs.creates, path)

	return &mockFileHandle{
		fs:       fs,
		path:     path,
		writer:   &bytes.Buffer{},
		writeErr: fs.failures[failureKey(OpWrite, path)],
	}, nil
}

// Join joins path elements with forward slashes.
func (fs *MockFileSystem) Join(elem ...string) string {
	return path.Join(elem...)
}

// MkdirAll creates a directory and all necessary parents.
func (fs *MockFileSystem) MkdirAll(path string, perm os.FileMode) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.failureLocked(OpMkdirAll, path); err != nil {
		return err
	}

	return fs.mkdirAllLocked(path, perm)
}

// Open opens a file for reading.
func (fs *MockFileSystem) Open(path string) (File, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	if err := fs.failureLocked(OpOpen, path); err != nil {
		return nil, err
	}

	file, exists := fs.files[path]
	if !exists {
		return nil, fmt.Errorf("open %s: %w", path, os.ErrNotExist)
	}

	if file.isDir {
		return nil, fmt.Errorf("open %s: %w", path, ErrIsDirectory)
	}

	return &mockFileHandle{
		fs:     fs,
		path:   path,
		reader: bytes.NewReader(file.data),
	}, nil
}

// Remove removes a file or empty directory.
func (fs *MockFileSystem) Remove(path string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	file, exists := fs.files[path]
	if !exists {
		return fmt.Errorf("remove %s: %w", path, os.ErrNotExist)
	}

	if file.isDir {
		for p := range fs.files {
			if strings.HasPrefix(p, path+"/") {
				return fmt.Errorf("remove %s: directory not empty", path) //nolint:err113 // Mirrors the OS message
			}
		}
	}

	delete(fs.files, path)

	return nil
}

// Scan returns an iterator over all entries in a directory tree.
func (fs *MockFileSystem) Scan(root string) FileScanner {
	return newMockFileScanner(fs, root)
}

// Stat returns file information.
func (fs *MockFileSystem) Stat(path string) (os.FileInfo, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	if err := fs.failureLocked(OpStat, path); err != nil {
		return nil, err
	}

	file, exists := fs.files[path]
	if !exists {
		return nil, fmt.Errorf("stat %s: %w", path, os.ErrNotExist)
	}

	return &mockFileInfo{
		name:    baseName(path),
		size:    int64(len(file.data)),
		modTime: file.modTime,
		isDir:   file.isDir,
		perm:    file.perm,
	}, nil
}

// Helper methods for testing

// AddDir adds a directory (and its parents) to the mock filesystem.
func (fs *MockFileSystem) AddDir(path string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	_ = fs.mkdirAllLocked(path, 0o755) //nolint:mnd // Default mock directory permissions
}

// AddFile adds a file to the mock filesystem with the given content and modtime.
func (fs *MockFileSystem) AddFile(path string, content []byte, modTime time.Time) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if dir := parentDir(path); dir != "" {
		_ = fs.mkdirAllLocked(dir, 0o755) //nolint:mnd // Default mock directory permissions
	}

	fs.files[path] = &mockFile{
		data:    append([]byte(nil), content...),
		modTime: modTime,
		perm:    0o644, //nolint:mnd // Default mock file permissions
	}
}

// Created returns every path passed to a successful Create, in call order.
func (fs *MockFileSystem) Created() []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return append([]string(nil), fs.creates...)
}

// Exists checks if a path exists in the mock filesystem.
func (fs *MockFileSystem) Exists(path string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	_, exists := fs.files[path]

	return exists
}

// FailOn makes the given operation on path return err.
// Use the Op* constants; OpWrite fails writes to a handle returned by Create.
func (fs *MockFileSystem) FailOn(op, path string, err error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.failures[failureKey(op, path)] = err
}

// GetFile retrieves a file's content and modtime from the mock filesystem.
func (fs *MockFileSystem) GetFile(path string) ([]byte, time.Time, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	file, exists := fs.files[path]
	if !exists {
		return nil, time.Time{}, fmt.Errorf("get %s: %w", path, os.ErrNotExist)
	}

	if file.isDir {
		return nil, time.Time{}, fmt.Errorf("get %s: %w", path, ErrIsDirectory)
	}

	return append([]byte(nil), file.data...), file.modTime, nil
}

// ListFiles returns all paths in the mock filesystem, sorted.
func (fs *MockFileSystem) ListFiles() []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	paths := make([]string, 0, len(fs.files))
	for p := range fs.files {
		paths = append(paths, p)
	}

	sort.Strings(paths)

	return paths
}

func (fs *MockFileSystem) failureLocked(op, path string) error {
	return fs.failures[failureKey(op, path)]
}

// mkdirAllLocked is the internal implementation that assumes the lock is held.
func (fs *MockFileSystem) mkdirAllLocked(dir string, perm os.FileMode) error {
	if dir == "" || dir == "." || dir == "/" {
		return nil
	}

	if parent := parentDir(dir); parent != "" {
		if err := fs.mkdirAllLocked(parent, perm); err != nil {
			return err
		}
	}

	existing, exists := fs.files[dir]
	if exists && !existing.isDir {
		return fmt.Errorf("mkdir %s: not a directory", dir) //nolint:err113 // Mirrors the OS message
	}

	if !exists {
		fs.files[dir] = &mockFile{
			modTime: time.Now(),
			isDir:   true,
			perm:    perm,
		}
	}

	return nil
}

func baseName(p string) string {
	return path.Base(p)
}

func failureKey(op, p string) string {
	return op + "\x00" + p
}

// parentDir returns the parent of p, or "" for top-level entries.
func parentDir(p string) string {
	dir := path.Dir(p)
	if dir == "." || dir == "/" {
		return ""
	}

	return dir
}
