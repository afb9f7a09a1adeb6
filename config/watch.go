package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"go-pianoroll/debug"
)

// reloadDelay coalesces the burst of events one save produces
const reloadDelay = 100 * time.Millisecond

// Watch reloads the config at path (ConfigPath when empty) after every
// change and hands each valid result to onChange. Invalid edits are logged
// and skipped. The directory is watched, not the file, so editors that save
// by rename are seen. Returns when ctx is cancelled.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	path = filepath.Clean(path)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	debug.Log("config", "watching %s", path)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case <-fire:
			fire = nil
			cfg, err := Load(path)
			if err != nil {
				debug.Log("config", "reload skipped: %v", err)
				continue
			}
			debug.Log("config", "reloaded %s", path)
			onChange(cfg)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDelay)
			} else {
				timer.Reset(reloadDelay)
			}
			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			debug.Log("config", "watch error: %v", err)
		}
	}
}
