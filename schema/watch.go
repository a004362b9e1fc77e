package schema

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/wippyai/gpu-layout/errors"
)

// settle is how long the file must stay quiet before it is reloaded. A save
// usually arrives as a truncate followed by one or more writes.
const settle = 100 * time.Millisecond

// Watch reloads the schema at path once a burst of create or write events on
// the file settles, and passes the result to fn. The parent directory is
// watched so editors that replace the file on save are still seen. Watch
// blocks until ctx is done and then returns ctx.Err().
func Watch(ctx context.Context, path string, fn func(*Schema, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.PhaseSchema, errors.KindUnsupported, err, "create watcher")
	}
	defer w.Close()

	target := filepath.Clean(path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return errors.Wrap(errors.PhaseSchema, errors.KindNotFound, err, "watch "+filepath.Dir(target))
	}

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
			return ctx.Err()

		case e, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(e.Name) != target || e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			Logger().Debug("schema changed", zap.String("path", target), zap.Stringer("op", e.Op))
			if timer == nil {
				timer = time.NewTimer(settle)
			} else {
				timer.Reset(settle)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			fn(Load(target))

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			Logger().Warn("schema watch error", zap.Error(err))
		}
	}
}
