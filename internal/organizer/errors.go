package organizer

import "errors"

// Run-level errors. Match with errors.Is.
var (
	// ErrConfiguration means the request was unusable; nothing was scanned or written.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrNoMatch means the pattern matched no files; nothing was written.
	ErrNoMatch = errors.New("no files found matching the pattern")
	// ErrUnexpected wraps failures outside the per-file loop.
	ErrUnexpected = errors.New("unexpected error")
	// ErrInterrupted means the context was cancelled between files.
	ErrInterrupted = errors.New("run interrupted")
)

// Per-file errors. They end up in a Failed outcome and never stop the run.
var (
	// ErrUnsafeSegment means a name segment would leave the destination root.
	ErrUnsafeSegment = errors.New("file name segment escapes the destination")
	// ErrSameFile means source and destination are the same file.
	ErrSameFile = errors.New("source and destination are the same file")
	// ErrInvalidAction means a Decider returned something other than overwrite, skip or rename.
	ErrInvalidAction = errors.New("invalid conflict action")
)
