package tui

import (
	"context"

	"github.com/joe/organize-files/internal/organizer"
	"github.com/joe/organize-files/internal/tui/shared"
)

// promptDecider answers the ask policy by showing a prompt in the run view.
// Decide runs on the run goroutine and waits for the user.
type promptDecider struct {
	bridge *shared.EventBridge
}

func newPromptDecider(bridge *shared.EventBridge) *promptDecider {
	return &promptDecider{bridge: bridge}
}

// Decide implements organizer.Decider.
func (d *promptDecider) Decide(ctx context.Context, destFile string) (organizer.Action, error) {
	reply := make(chan organizer.Action, 1)

	err := d.bridge.Send(ctx, shared.ConflictPromptMsg{DestFile: destFile, Reply: reply})
	if err != nil {
		return organizer.ActionRename, organizer.ErrPromptCancelled
	}

	select {
	case action := <-reply:
		return action, nil
	case <-ctx.Done():
		return organizer.ActionRename, organizer.ErrPromptCancelled
	}
}
