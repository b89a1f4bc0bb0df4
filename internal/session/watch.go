package session

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultWatchInterval spaces reloads so one editor save triggers one load.
const DefaultWatchInterval = 250 * time.Millisecond

// ErrNotWatchable is returned by Watch for remote sources and for sessions
// created with Options.Demo.
var ErrNotWatchable = errors.New("source cannot be watched")

// Watch reloads the session each time the source file is written or
// recreated, then calls onReload with the outcome. Each reload is an
// independent ingestion against the real source; filters persist. It runs
// until ctx is cancelled. Events arriving while a reload is held back by
// WatchInterval collapse into that reload. A session that fell back to
// synthetic data leaves demo mode on each reload so the source is retried.
func (s *Session) Watch(ctx context.Context, onReload func(LoadResult, error)) error {
	if IsRemote(s.opts.Source) || s.opts.Source == "" {
		return ErrNotWatchable
	}
	if s.opts.Demo {
		return fmt.Errorf("%w: demo mode was requested", ErrNotWatchable)
	}
	target, err := filepath.Abs(s.opts.Source)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory so atomic saves (rename over the file) are seen.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}
	s.log.Info("watching source for changes", zap.String("path", target))

	limiter := rate.NewLimiter(rate.Every(s.opts.WatchInterval), 1)

	for {
		select {
		case <-ctx.Done():
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
			if err := limiter.Wait(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			drain(watcher.Events)
			s.demoMode = false
			res, err := s.Load(ctx)
			onReload(res, err)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Error("watcher error", zap.Error(err))
		}
	}
}

// drain discards events already queued; the next load reads the latest content.
func drain(events <-chan fsnotify.Event) {
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
