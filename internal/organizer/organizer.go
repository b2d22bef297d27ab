// Package organizer copies files into folders derived from their names.
//
// A run scans the source tree, keeps the regular files matching the
// pattern, and for each one plans a destination from its base name,
// creates the folder, resolves any conflict and copies. Files are handled
// one at a time in scan order; a failing file is recorded and the run
// moves on.
package organizer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/joe/organize-files/internal/config"
	"github.com/joe/organize-files/pkg/fileops"
	"github.com/joe/organize-files/pkg/filesystem"
)

// PercentageScale converts a processed/total ratio to a percentage.
const PercentageScale = 100

// Request describes one run. It is not modified while the run is in progress.
// SourceRoot and DestRoot are paths on the organizer's source and
// destination filesystems.
type Request struct {
	SourceRoot string
	DestRoot   string
	Pattern    string
	Delimiter  string
	Policy     config.ConflictPolicy
}

// Validate checks the request before anything is touched.
func (r Request) Validate() error {
	if r.SourceRoot == "" || r.DestRoot == "" {
		return fmt.Errorf("%w: please select both source and destination folders", ErrConfiguration)
	}

	if r.Delimiter == "" {
		return fmt.Errorf("%w: delimiter must not be empty", ErrConfiguration)
	}

	switch r.Policy {
	case config.Ask, config.Skip, config.Rename, config.Overwrite:
	default:
		return fmt.Errorf("%w: unknown conflict policy %d", ErrConfiguration, r.Policy)
	}

	_, err := NewGlobFilter(r.Pattern)

	return err
}

// Organizer runs requests against a source and a destination filesystem.
type Organizer struct {
	FileOps      *fileops.FileOps
	Decider      Decider      // answers the ask policy; nil means always rename
	TimeProvider TimeProvider // for dependency injection
	NewRunID     func() string
	emitter      EventEmitter
}

// NewOrganizer creates an Organizer reading from sourceFS and writing to destFS.
func NewOrganizer(sourceFS, destFS filesystem.FileSystem) *Organizer {
	return &Organizer{
		FileOps:      fileops.NewFileOps(sourceFS, destFS),
		Decider:      RenameDecider{},
		TimeProvider: RealTimeProvider{},
		NewRunID:     uuid.NewString,
	}
}

// SetEventEmitter sets the event emitter. The emitter is optional.
func (o *Organizer) SetEventEmitter(emitter EventEmitter) {
	o.emitter = emitter
}

// Run organizes the files described by req.
//
// Configuration problems return ErrConfiguration and an empty match returns
// ErrNoMatch, both before anything is written. Failures outside the
// per-file loop return ErrUnexpected. Per-file failures are recorded in the
// report and do not make Run fail. If ctx is cancelled between files the
// partial report is returned with ErrInterrupted.
func (o *Organizer) Run(ctx context.Context, req Request) (*Report, error) {
	runID := o.NewRunID()

	fail := func(err error) error {
		o.emit(RunFailed{RunID: runID, Err: err})
		return err
	}

	err := req.Validate()
	if err != nil {
		return nil, fail(err)
	}

	err = o.checkSourceRoot(req.SourceRoot)
	if err != nil {
		return nil, fail(err)
	}

	report := &Report{RunID: runID, StartedAt: o.TimeProvider.Now()}

	o.emit(RunStarted{Request: req, RunID: runID, StartedAt: report.StartedAt})

	files, err := o.scan(ctx, req)
	if ctx.Err() != nil {
		return nil, fail(fmt.Errorf("%w while scanning: %w", ErrInterrupted, ctx.Err()))
	}

	if err != nil {
		return nil, fail(fmt.Errorf("%w: failed to scan %s: %w", ErrUnexpected, req.SourceRoot, err))
	}

	o.emit(ScanComplete{Matched: len(files)})

	if len(files) == 0 {
		return nil, fail(fmt.Errorf("%w: %q under %s", ErrNoMatch, req.Pattern, req.SourceRoot))
	}

	err = o.FileOps.EnsureDir(req.DestRoot)
	if err != nil {
		return nil, fail(fmt.Errorf("%w: %w", ErrUnexpected, err))
	}

	planner := NewPlanner(o.FileOps.DestFS.Join)
	report.Outcomes = make([]Outcome, 0, len(files))

	for i, file := range files {
		if ctx.Err() != nil {
			report.FinishedAt = o.TimeProvider.Now()
			return report, fail(fmt.Errorf("%w after %d of %d files: %w", ErrInterrupted, i, len(files), ctx.Err()))
		}

		outcome := o.processFile(ctx, planner, req, file.Path)
		report.Add(outcome)

		if outcome.Kind == Failed {
			o.emit(FileFailed{Path: outcome.SourceFile, Err: outcome.Err})
		}

		o.emit(FileProcessed{
			Index:   i,
			Total:   len(files),
			Percent: (i + 1) * PercentageScale / len(files),
			Message: outcome.Message(),
			Outcome: outcome,
		})
	}

	report.FinishedAt = o.TimeProvider.Now()

	o.emit(RunComplete{Report: report})

	return report, nil
}

func (o *Organizer) checkSourceRoot(root string) error {
	info, err := o.FileOps.SourceFS.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: cannot access source %s: %w", ErrConfiguration, root, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: source %s is not a directory", ErrConfiguration, root)
	}

	return nil
}

// emit sends an event if an emitter is configured.
func (o *Organizer) emit(event Event) {
	if o.emitter != nil {
		o.emitter.Emit(event)
	}
}

func (o *Organizer) processFile(ctx context.Context, planner *Planner, req Request, sourceFile string) Outcome {
	failed := func(destFile string, err error) Outcome {
		return Outcome{Kind: Failed, SourceFile: sourceFile, DestFile: destFile, Err: err}
	}

	planned, err := planner.Plan(sourceFile, req.DestRoot, req.Delimiter)
	if err != nil {
		return failed("", err)
	}

	if o.FileOps.SourceFS == o.FileOps.DestFS {
		same, sameErr := filesystem.SameFile(o.FileOps.DestFS, sourceFile, planned.DestFile)
		if sameErr != nil {
			return failed(planned.DestFile, sameErr)
		}

		if same {
			return failed(planned.DestFile, fmt.Errorf("%w: %s", ErrSameFile, sourceFile))
		}
	}

	err = o.FileOps.EnsureDir(planned.DestFolder)
	if err != nil {
		return failed(planned.DestFile, err)
	}

	action, err := Resolve(ctx, o.FileOps.DestFS, planned.DestFile, req.Policy, o.Decider)
	if err != nil {
		return failed(planned.DestFile, err)
	}

	kind := Copied
	destFile := planned.DestFile

	switch action {
	case ActionSkip:
		return Outcome{Kind: Skipped, SourceFile: sourceFile, DestFile: destFile, Reason: SkipReasonExists}
	case ActionRename:
		destFile, err = UniquePath(o.FileOps.DestFS, destFile)
		if err != nil {
			return failed(planned.DestFile, err)
		}

		kind = Renamed
	case ActionOverwrite:
	}

	stats, err := o.FileOps.CopyFile(sourceFile, destFile)
	if err != nil {
		return failed(destFile, err)
	}

	return Outcome{
		Kind:        kind,
		SourceFile:  sourceFile,
		DestFile:    destFile,
		Warning:     stats.ModTimeErr,
		BytesCopied: stats.BytesCopied,
	}
}

func (o *Organizer) scan(ctx context.Context, req Request) ([]filesystem.FileInfo, error) {
	filter, err := NewGlobFilter(req.Pattern)
	if err != nil {
		return nil, err
	}

	var matched []filesystem.FileInfo

	scanner := o.FileOps.SourceFS.Scan(req.SourceRoot)
	for info, ok := scanner.Next(); ok; info, ok = scanner.Next() {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if info.IsRegular && filter.ShouldInclude(info.RelativePath) {
			matched = append(matched, info)
		}
	}

	err = scanner.Err()
	if err != nil {
		return nil, err
	}

	return matched, nil
}
