// Package runlog writes the append-only log of a run: one JSON line per
// copy, skip and error, plus start and completion.
package runlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/joe/organize-files/internal/organizer"
)

// Log file naming.
const (
	FilePrefix = "file_organizer_"
	FileSuffix = ".log"
	TimeLayout = "20060102_150405"
)

const (
	dirPerm    = 0o750
	filePerm   = 0o640
	fileFlags  = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	runIDField = "run_id"
)

// FileName returns the log file name for a run started at start.
func FileName(start time.Time) string {
	return FilePrefix + start.Format(TimeLayout) + FileSuffix
}

// Logger records organizer events. It implements organizer.EventEmitter.
type Logger struct {
	mu     sync.Mutex
	log    zerolog.Logger
	runID  string
	closer io.Closer
	path   string
}

// Open creates dir if needed and opens the log file for a run started at start.
func Open(dir string, start time.Time) (*Logger, error) {
	err := os.MkdirAll(dir, dirPerm)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, FileName(start))

	file, err := os.OpenFile(path, fileFlags, filePerm) // #nosec G304 - log dir chosen by the user
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	logger := New(file)
	logger.closer = file
	logger.path = path

	return logger, nil
}

// New creates a Logger writing JSON lines to w.
func New(w io.Writer) *Logger {
	return &Logger{
		log: zerolog.New(w).With().Timestamp().Logger(),
	}
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}

	err := l.closer.Close()
	if err != nil {
		return fmt.Errorf("failed to close log file %s: %w", l.path, err)
	}

	return nil
}

// Path is the log file path, or "" when writing to a plain writer.
func (l *Logger) Path() string {
	return l.path
}

// Emit implements organizer.EventEmitter.
func (l *Logger) Emit(event organizer.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch e := event.(type) {
	case organizer.RunStarted:
		l.runID = e.RunID
		l.log = l.log.With().Str(runIDField, e.RunID).Logger()
		l.log.Info().
			Str("source", e.Request.SourceRoot).
			Str("dest", e.Request.DestRoot).
			Str("pattern", e.Request.Pattern).
			Str("delimiter", e.Request.Delimiter).
			Stringer("conflict", e.Request.Policy).
			Msg(organizer.MsgStarting)
	case organizer.ScanComplete:
		l.log.Info().Int("matched", e.Matched).Msgf("Found %d matching files", e.Matched)
	case organizer.FileProcessed:
		l.logOutcome(e.Outcome)
	case organizer.FileFailed:
		l.log.Error().Str("path", e.Path).Err(e.Err).Msgf("Error processing %s: %v", e.Path, e.Err)
	case organizer.RunComplete:
		r := e.Report
		l.log.Info().
			Dict("counts", zerolog.Dict().
				Int("copied", r.Copied).
				Int("renamed", r.Renamed).
				Int("skipped", r.Skipped).
				Int("failed", r.Failed)).
			Int64("bytes", r.BytesCopied).
			Dur("duration", r.Duration()).
			Msg("File organization process completed")
	case organizer.RunFailed:
		entry := l.log.Error()
		if l.runID == "" {
			entry = entry.Str(runIDField, e.RunID)
		}

		entry.Err(e.Err).Msgf("An error occurred: %v", e.Err)
	}
}

func (l *Logger) logOutcome(outcome organizer.Outcome) {
	switch outcome.Kind {
	case organizer.Copied, organizer.Renamed:
		l.log.Info().
			Str("source", outcome.SourceFile).
			Str("dest", outcome.DestFile).
			Stringer("outcome", outcome.Kind).
			Int64("bytes", outcome.BytesCopied).
			Msgf("Successfully copied %s to %s", outcome.SourceFile, outcome.DestFile)

		if outcome.Warning != nil {
			l.log.Warn().Str("dest", outcome.DestFile).Err(outcome.Warning).Msgf("Warning: %v", outcome.Warning)
		}
	case organizer.Skipped:
		l.log.Info().
			Str("source", outcome.SourceFile).
			Str("dest", outcome.DestFile).
			Stringer("outcome", outcome.Kind).
			Msg(outcome.Message())
	case organizer.Failed:
		// logged from FileFailed
	}
}
