package server

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the event bursts editors and atomic-save tools
// produce into a single reload.
const watchDebounce = 200 * time.Millisecond

// watchManifest reloads the store whenever the manifest file changes on
// disk. The watch is on the containing directory because many tools replace
// the file by rename, which drops a watch on the file itself.
func (s *Server) watchManifest(ctx context.Context) (stop func(), err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating manifest watcher: %w", err)
	}

	path := s.cfg.Store.Path()
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	go func() {
		var timer *time.Timer
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(watchDebounce, func() {
					// Errors keep the prior manifest; reload logs them.
					_, _ = s.reload()
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.Warn().Err(err).Msg("manifest watcher error")
			}
		}
	}()

	s.log.Info().Str("path", path).Msg("watching manifest for changes")
	return func() { watcher.Close() }, nil
}
