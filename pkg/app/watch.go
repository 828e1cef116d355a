package app

import (
	"fmt"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"mondrian/pkg/scene"
)

// Watch reloads the window whenever its scene file changes on disk.
// It watches the containing directory: editors that save by replacing
// the file would otherwise kill a watch bound to the old inode.
func (w *Window) Watch() error {
	if scene.IsNetworkRef(w.ref) {
		return fmt.Errorf("cannot watch %s: not a local file", w.ref)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(w.ref)); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %s: %w", w.ref, err)
	}

	w.mu.Lock()
	w.watcher = watcher
	w.mu.Unlock()

	go w.watchLoop(watcher, filepath.Clean(w.ref))
	return nil
}

func (w *Window) watchLoop(watcher *fsnotify.Watcher, target string) {
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			// let a write-and-rename save finish before reading
			time.Sleep(50 * time.Millisecond)
			if err := w.Reload(); err != nil {
				w.app.log.Error("reload failed",
					zap.String("scene", w.ref),
					zap.Error(err))
				continue
			}
			fyne.Do(w.img.Refresh)
			w.app.log.Info("scene reloaded", zap.String("scene", w.ref))
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.app.log.Error("watch error", zap.Error(err))
		}
	}
}
