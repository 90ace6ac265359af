package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/gethiox/mfx/internal/pkg/logger"
)

// monitorConfigChanges reports edits of the config file, new settings are applied on restart
func monitorConfigChanges(ctx context.Context, wg *sync.WaitGroup, path string) <-chan string {
	var change = make(chan string, 1)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Info(fmt.Sprintf("config monitor unavailable: %v", err), logger.Warning)
		close(change)
		return change
	}

	// editors tend to replace files, directory is watched instead
	err = watcher.Add(filepath.Dir(path))
	if err != nil {
		log.Info(fmt.Sprintf("config monitor unavailable: %v", err), logger.Warning)
		watcher.Close()
		close(change)
		return change
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(change)
		defer watcher.Close()

		target := filepath.Clean(path)
	root:
		for {
			select {
			case <-ctx.Done():
				break root
			case err, ok := <-watcher.Errors:
				if !ok {
					break root
				}
				log.Info(fmt.Sprintf("config monitor error: %v", err), logger.Warning)
			case event, ok := <-watcher.Events:
				if !ok {
					break root
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				log.Info(fmt.Sprintf("config change detected: %s, restart to apply", event.Name), logger.Warning)
				select {
				case change <- event.Name:
				default:
				}
			}
		}
	}()

	return change
}
