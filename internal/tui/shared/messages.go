package shared

import (
	"errors"

	"github.com/joe/organize-files/internal/organizer"
)

// ErrBridgeClosed is returned when sending on a closed EventBridge.
var ErrBridgeClosed = errors.New("event bridge closed")

// ============================================================================
// Transition Messages
// These messages trigger screen transitions and are handled by AppModel
// ============================================================================

// TermsAcceptedMsg is sent by TermsScreen when the user accepts
type TermsAcceptedMsg struct{}

// TermsDeclinedMsg is sent by TermsScreen when the user declines
type TermsDeclinedMsg struct{}

// StartRunMsg is sent by InputScreen once the form validates
type StartRunMsg struct {
	Request organizer.Request
}

// RunFinishedMsg is sent through the bridge after the run's last event
type RunFinishedMsg struct {
	Report *organizer.Report
	Err    error
}

// NewRunMsg is sent by SummaryScreen to organize another set of folders
type NewRunMsg struct{}

// ============================================================================
// Conflict Prompt Messages
// ============================================================================

// ConflictPromptMsg asks the user what to do with an existing destination file.
// The run goroutine waits on Reply.
type ConflictPromptMsg struct {
	DestFile string
	Reply    chan<- organizer.Action
}
