package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/joe/organize-files/internal/organizer"
)

// PromptDecider asks on the terminal what to do with each conflicting file.
// y overwrites, n skips, and any other answer or end of input renames.
type PromptDecider struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

// NewPromptDecider creates a PromptDecider reading answers from in.
func NewPromptDecider(in io.Reader, out io.Writer) *PromptDecider {
	return &PromptDecider{in: bufio.NewReader(in), out: out}
}

// NewDecider returns a PromptDecider when in is a terminal and a
// RenameDecider otherwise, so piped and scheduled runs never block.
func NewDecider(in *os.File, out io.Writer) organizer.Decider {
	if term.IsTerminal(int(in.Fd())) { //nolint:gosec // Fd fits in int on supported platforms
		return NewPromptDecider(in, out)
	}

	return organizer.RenameDecider{}
}

// Decide implements organizer.Decider.
func (d *PromptDecider) Decide(ctx context.Context, destFile string) (organizer.Action, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return organizer.ActionRename, err
	}

	skipColor.Fprintf(d.out, "\nFile already exists:\n%s\n", destFile)
	fmt.Fprint(d.out, "[y] overwrite  [n] skip  [r] rename: ")

	line, err := d.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return organizer.ActionRename, fmt.Errorf("failed to read answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return organizer.ActionOverwrite, nil
	case "n", "no":
		return organizer.ActionSkip, nil
	case "r", "rename":
		return organizer.ActionRename, nil
	default:
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(d.out)
		}

		return organizer.ActionRename, organizer.ErrPromptCancelled
	}
}
