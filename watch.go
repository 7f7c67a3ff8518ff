package webstyle

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatchDebounce is how long the watcher waits after the last change
// before rebuilding.
var WatchDebounce = 200 * time.Millisecond

// Watch builds once, then rebuilds every time something changes under
// config.SourceDir, until ctx is cancelled. Each build outcome is handed to
// onBuild. Changes inside config.OutputDir are ignored.
func Watch(ctx context.Context, config Config, onBuild func(*BuildResult, error)) error {
	log := config.logger()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	outputDir, err := filepath.Abs(config.OutputDir)
	if err != nil {
		return fmt.Errorf("resolve output directory: %w", err)
	}
	isOutput := func(path string) bool {
		abs, err := filepath.Abs(path)
		if err != nil {
			return false
		}
		return abs == outputDir || strings.HasPrefix(abs, outputDir+string(filepath.Separator))
	}

	if err := watchTree(watcher, config.SourceDir, isOutput); err != nil {
		return err
	}

	onBuild(Build(config))

	timer := time.NewTimer(WatchDebounce)
	timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod || isOutput(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchTree(watcher, event.Name, isOutput); err != nil {
						log.Warn("cannot watch new directory", zap.String("dir", event.Name), zap.Error(err))
					}
				}
			}
			log.Debug("change detected", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			pending = true
			timer.Reset(WatchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", zap.Error(err))

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			log.Info("rebuilding")
			onBuild(Build(config))
		}
	}
}

// watchTree adds root and every directory below it, except the output tree.
func watchTree(watcher *fsnotify.Watcher, root string, skip func(string) bool) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if skip(path) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
