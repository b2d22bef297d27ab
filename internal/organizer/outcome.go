package organizer

import (
	"fmt"
	"path/filepath"
	"time"
)

// OutcomeKind is the terminal state of one file.
type OutcomeKind int

// Outcome kinds.
const (
	Copied OutcomeKind = iota
	Skipped
	Renamed
	Failed
)

// SkipReasonExists is the reason recorded when an existing file is left alone.
const SkipReasonExists = "already exists"

func (k OutcomeKind) String() string {
	switch k {
	case Copied:
		return "copied"
	case Skipped:
		return "skipped"
	case Renamed:
		return "renamed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome records what happened to one source file.
// DestFile is empty when planning failed. Warning is set on a copy that
// succeeded with a caveat, such as a modification time that could not be kept.
type Outcome struct {
	Kind        OutcomeKind
	SourceFile  string
	DestFile    string
	Reason      string
	Err         error
	Warning     error
	BytesCopied int64
}

// Message is the status line for the outcome.
func (o Outcome) Message() string {
	switch o.Kind {
	case Copied, Renamed:
		return fmt.Sprintf("Copied: %s -> %s", filepath.Base(o.SourceFile), o.DestFile)
	case Skipped:
		return fmt.Sprintf("Skipped: %s (%s)", filepath.Base(o.SourceFile), o.Reason)
	case Failed:
		return fmt.Sprintf("Error processing %s: %v", o.SourceFile, o.Err)
	default:
		return o.SourceFile
	}
}

// Report is the result of a run. Outcomes are in scan order.
type Report struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Outcomes   []Outcome

	Copied      int
	Skipped     int
	Renamed     int
	Failed      int
	BytesCopied int64
}

// Add appends an outcome and updates the counters.
func (r *Report) Add(outcome Outcome) {
	r.Outcomes = append(r.Outcomes, outcome)
	r.BytesCopied += outcome.BytesCopied

	switch outcome.Kind {
	case Copied:
		r.Copied++
	case Skipped:
		r.Skipped++
	case Renamed:
		r.Renamed++
	case Failed:
		r.Failed++
	}
}

// Duration is how long the run took.
func (r *Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Failures returns the failed outcomes in scan order.
func (r *Report) Failures() []Outcome {
	var failures []Outcome

	for _, outcome := range r.Outcomes {
		if outcome.Kind == Failed {
			failures = append(failures, outcome)
		}
	}

	return failures
}

// Total is the number of files processed.
func (r *Report) Total() int {
	return len(r.Outcomes)
}
