// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/watch.go
// Summary: Reloads a config file when it changes on disk.
// Notes: The parent directory is watched so editors that save by rename are seen.

package config

import (
	"context"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch blocks until ctx is done, calling onReload with the freshly loaded
// config after every write, create or rename of path. Parse errors are logged
// and the previous config stays in effect. onReload runs on the watcher
// goroutine; callers post it to their own loop.
func Watch(ctx context.Context, path string, onReload func(Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}

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
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			cfg, exists, err := readConfig(target)
			if err != nil {
				log.Printf("Config: reload of %s failed: %v", target, err)
				continue
			}
			if !exists {
				continue
			}
			applyDefaults(cfg)
			log.Printf("Config: reloaded %s", target)
			onReload(cfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Config: watcher error: %v", err)
		}
	}
}
