package organizer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joe/organize-files/internal/config"
	"github.com/joe/organize-files/pkg/filesystem"
)

// Action is what happens to a file whose destination is taken.
type Action int

// Actions.
const (
	ActionOverwrite Action = iota
	ActionSkip
	ActionRename
)

// ErrPromptCancelled is returned by a Decider when the user dismissed the prompt.
// Resolve treats it as ActionRename.
var ErrPromptCancelled = errors.New("prompt cancelled")

func (a Action) String() string {
	switch a {
	case ActionOverwrite:
		return "overwrite"
	case ActionSkip:
		return "skip"
	case ActionRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Decider answers the ask policy for one conflicting destination file.
// It blocks until it has an answer.
type Decider interface {
	Decide(ctx context.Context, destFile string) (Action, error)
}

// DeciderFunc adapts a function to Decider.
type DeciderFunc func(ctx context.Context, destFile string) (Action, error)

// Decide calls f.
func (f DeciderFunc) Decide(ctx context.Context, destFile string) (Action, error) {
	return f(ctx, destFile)
}

// RenameDecider always renames. It is the decider for runs nobody is watching.
type RenameDecider struct{}

// Decide returns ActionRename.
func (RenameDecider) Decide(context.Context, string) (Action, error) {
	return ActionRename, nil
}

// Resolve picks the action for destFile. A free destination is written
// directly (ActionOverwrite). Otherwise the policy decides; the ask policy
// defers to decider, and a cancelled prompt or context means rename.
func Resolve(
	ctx context.Context,
	destFS filesystem.FileSystem,
	destFile string,
	policy config.ConflictPolicy,
	decider Decider,
) (Action, error) {
	exists, err := filesystem.Exists(destFS, destFile)
	if err != nil {
		return ActionSkip, fmt.Errorf("failed to check destination %s: %w", destFile, err)
	}

	if !exists {
		return ActionOverwrite, nil
	}

	switch policy {
	case config.Skip:
		return ActionSkip, nil
	case config.Rename:
		return ActionRename, nil
	case config.Overwrite:
		return ActionOverwrite, nil
	case config.Ask:
		return ask(ctx, destFile, decider)
	default:
		return ActionSkip, fmt.Errorf("%w: policy %s", ErrInvalidAction, policy)
	}
}

// UniquePath returns the first free stem_N.ext next to destFile, N counting from 1.
func UniquePath(destFS filesystem.FileSystem, destFile string) (string, error) {
	name := filepath.Base(destFile)
	dir := strings.TrimSuffix(destFile, name)
	stem, ext := SplitName(name)

	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s%s_%d%s", dir, stem, n, ext)

		exists, err := filesystem.Exists(destFS, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check %s: %w", candidate, err)
		}

		if !exists {
			return candidate, nil
		}
	}
}

func ask(ctx context.Context, destFile string, decider Decider) (Action, error) {
	if decider == nil {
		decider = RenameDecider{}
	}

	action, err := decider.Decide(ctx, destFile)

	switch {
	case errors.Is(err, ErrPromptCancelled), errors.Is(err, context.Canceled):
		return ActionRename, nil
	case err != nil:
		return ActionSkip, fmt.Errorf("failed to ask about %s: %w", destFile, err)
	}

	switch action {
	case ActionOverwrite, ActionSkip, ActionRename:
		return action, nil
	default:
		return ActionSkip, fmt.Errorf("%w: %d", ErrInvalidAction, action)
	}
}
