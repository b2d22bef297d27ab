package organizer

import "time"

// Status lines shown at the start and end of a run.
const (
	MsgStarting = "Starting file organization..."
	MsgComplete = "File organization complete!"
)

// Event is the interface implemented by all organizer events.
type Event interface {
	isEvent()
}

// EventEmitter is the interface for emitting events.
// Emit is called synchronously from the run loop.
type EventEmitter interface {
	Emit(event Event)
}

// MultiEmitter forwards every event to each non-nil emitter in order.
type MultiEmitter []EventEmitter

// Emit implements EventEmitter.
func (m MultiEmitter) Emit(event Event) {
	for _, emitter := range m {
		if emitter != nil {
			emitter.Emit(event)
		}
	}
}

// RunStarted is emitted once the request is validated.
type RunStarted struct {
	Request   Request
	RunID     string
	StartedAt time.Time
}

func (RunStarted) isEvent() {}

// ScanComplete is emitted when the matched file list is known.
type ScanComplete struct {
	Matched int
}

func (ScanComplete) isEvent() {}

// FileProcessed is emitted after every file, whatever the outcome.
// Percent is the share of files processed so far, 0-100.
type FileProcessed struct {
	Index   int
	Total   int
	Percent int
	Message string
	Outcome Outcome
}

func (FileProcessed) isEvent() {}

// FileFailed is emitted for a file whose outcome is Failed, before its FileProcessed.
type FileFailed struct {
	Path string
	Err  error
}

func (FileFailed) isEvent() {}

// RunComplete is emitted when every matched file has been processed.
type RunComplete struct {
	Report *Report
}

func (RunComplete) isEvent() {}

// RunFailed is emitted when the run stops early: bad configuration, no
// matches, an error outside the per-file loop, or interruption.
type RunFailed struct {
	RunID string
	Err   error
}

func (RunFailed) isEvent() {}
