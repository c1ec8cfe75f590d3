package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-widgetgen/pkg/inspection"
	"github.com/goliatone/go-widgetgen/pkg/logging"
)

const watchDebounce = 150 * time.Millisecond

// watchFile renders once, then again after every write to the inspection
// document until ctx is cancelled. Render failures are logged and the watch
// keeps going, so a half-saved document does not end the session.
func watchFile(ctx context.Context, location string, logger logging.Logger, render func(context.Context) error) error {
	return watchFileWithDelay(ctx, location, watchDebounce, logger, render)
}

func watchFileWithDelay(ctx context.Context, location string, delay time.Duration, logger logging.Logger, render func(context.Context) error) error {
	src, err := inspection.ParseSource(location)
	if err != nil {
		return err
	}
	if src.Kind() != inspection.SourceKindFile {
		return fmt.Errorf("widgetgen: watch requires a local inspection document, got %s", src.Kind())
	}
	logger = logging.OrNoOp(logger)
	target := filepath.Clean(src.Location())

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("widgetgen: create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file instead of writing it, which drops a
	// watch on the file itself. Watching the directory survives that.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("widgetgen: watch %s: %w", target, err)
	}

	if err := render(ctx); err != nil {
		logger.Error("widgetgen.watch.render_failed", "file", target, "error", err)
	}
	logger.Info("widgetgen.watch.started", "file", target)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Info("widgetgen.watch.stopped", "file", target)
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(delay)
			} else {
				timer.Reset(delay)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			if err := render(ctx); err != nil {
				logger.Error("widgetgen.watch.render_failed", "file", target, "error", err)
				continue
			}
			logger.Debug("widgetgen.watch.rendered", "file", target)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("widgetgen.watch.error", "error", err)
		}
	}
}
