package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joe/organize-files/internal/organizer"
	"github.com/joe/organize-files/internal/runlog"
	"github.com/joe/organize-files/internal/runlock"
	"github.com/joe/organize-files/pkg/filesystem"
)

// organizeOnce performs one run for either front end. The request roots are
// user input (local paths or sftp:// URLs); they are resolved here. Failures
// before the organizer starts are reported to emitter as RunFailed.
func organizeOnce(
	ctx context.Context,
	logDir string,
	req organizer.Request,
	emitter organizer.EventEmitter,
	decider organizer.Decider,
) (*organizer.Report, error) {
	fail := func(emitters organizer.MultiEmitter, err error) (*organizer.Report, error) {
		emitters.Emit(organizer.RunFailed{Err: err})
		return nil, err
	}

	source, err := filesystem.ParseLocation(req.SourceRoot)
	if err != nil {
		return fail(organizer.MultiEmitter{emitter}, fmt.Errorf("%w: invalid source: %w", organizer.ErrConfiguration, err))
	}

	dest, err := filesystem.ParseLocation(req.DestRoot)
	if err != nil {
		return fail(organizer.MultiEmitter{emitter}, fmt.Errorf("%w: invalid destination: %w", organizer.ErrConfiguration, err))
	}

	lock, err := runlock.Acquire(req.DestRoot)
	if err != nil {
		return fail(organizer.MultiEmitter{emitter}, err)
	}

	defer func() {
		_ = lock.Release()
	}()

	logger, err := runlog.Open(logDir, time.Now())
	if err != nil {
		return fail(organizer.MultiEmitter{emitter}, fmt.Errorf("%w: %w", organizer.ErrUnexpected, err))
	}

	defer func() {
		_ = logger.Close()
	}()

	emitters := organizer.MultiEmitter{logger, emitter}

	sourceFS, destFS, sourcePath, destPath, closeFS, err := filesystem.OpenPair(source, dest)
	if err != nil {
		return fail(emitters, fmt.Errorf("%w: %w", organizer.ErrUnexpected, err))
	}

	defer closeFS()

	org := organizer.NewOrganizer(sourceFS, destFS)
	org.Decider = decider
	org.SetEventEmitter(emitters)

	req.SourceRoot = sourcePath
	req.DestRoot = destPath

	return org.Run(ctx, req)
}

func isInterrupted(err error) bool {
	return errors.Is(err, organizer.ErrInterrupted) || errors.Is(err, context.Canceled)
}
