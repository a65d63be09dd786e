package config

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// StyleWatcher watches the style sheet for changes and keeps the current
// parsed Style available to new sessions. When no path is configured it
// serves the built-in defaults and never starts a watcher.
type StyleWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	current  Style
	mu       sync.RWMutex
	onChange []func(Style)
	logger   *zap.Logger
	stopCh   chan struct{}
}

// NewStyleWatcher loads the initial style sheet and prepares the file
// watcher. A load failure at startup is fatal to the caller; reload
// failures later keep the previous style.
func NewStyleWatcher(path string, logger *zap.Logger) (*StyleWatcher, error) {
	style, err := LoadStyle(path)
	if err != nil {
		return nil, err
	}

	sw := &StyleWatcher{
		path:    path,
		current: style,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}
	if path == "" {
		return sw, nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, err
	}
	// Also watch the directory for atomic saves (rename operations)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		logger.Warn("Failed to watch style directory", zap.Error(err))
	}
	sw.watcher = watcher
	return sw, nil
}

// Start begins watching for style changes. No-op without a configured path.
func (sw *StyleWatcher) Start() {
	if sw.watcher == nil {
		return
	}
	go sw.watchLoop()
}

func (sw *StyleWatcher) watchLoop() {
	for {
		select {
		case <-sw.stopCh:
			return

		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(sw.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			sw.reload()

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			sw.logger.Warn("Style watcher error", zap.Error(err))
		}
	}
}

func (sw *StyleWatcher) reload() {
	style, err := LoadStyle(sw.path)
	if err != nil {
		sw.logger.Warn("Failed to reload style sheet, keeping previous",
			zap.String("path", sw.path),
			zap.Error(err),
		)
		return
	}

	sw.mu.Lock()
	sw.current = style
	callbacks := make([]func(Style), len(sw.onChange))
	copy(callbacks, sw.onChange)
	sw.mu.Unlock()

	sw.logger.Info("Style sheet reloaded", zap.String("path", sw.path))
	for _, cb := range callbacks {
		cb(style)
	}
}

// Current returns the active style sheet.
func (sw *StyleWatcher) Current() Style {
	sw.mu.RLock()
	defer sw.mu.RUnlock()
	return sw.current
}

// OnChange registers a callback invoked after each successful reload.
func (sw *StyleWatcher) OnChange(fn func(Style)) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	sw.onChange = append(sw.onChange, fn)
}

// Stop shuts the watcher down.
func (sw *StyleWatcher) Stop() {
	close(sw.stopCh)
	if sw.watcher != nil {
		sw.watcher.Close()
	}
}
