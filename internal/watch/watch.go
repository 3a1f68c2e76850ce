// Package watch observes the record data directories and reports external
// file changes, so edits made outside the server (an editor, a sync tool,
// the interactive scripts) show up live in the preview UI.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// EventCallback is called for each record file change.
// op is one of "created", "updated", "deleted"; kind is the record
// directory name and slug the file stem.
type EventCallback func(op, kind, slug string)

// Run starts an fsnotify watcher on the data root and processes file change
// events until ctx is cancelled. Record directories created at runtime
// (including archived/ subdirs) are added to the watch list automatically.
func Run(ctx context.Context, dataRoot, ext string, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, dataRoot); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", dataRoot))

	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			absPath := ev.Name

			// New directories are added to the watcher.
			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(absPath); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, absPath); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", absPath),
							slog.String("error", addErr.Error()))
					}
					continue
				}
			}

			kind, slug, ok := splitRecordPath(dataRoot, absPath, ext)
			if !ok {
				continue
			}

			var op string
			switch {
			case ev.Op&fsnotify.Create != 0:
				op = "created"
			case ev.Op&fsnotify.Write != 0:
				op = "updated"
			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				// fsnotify fires Rename on the OLD path only; the new path
				// arrives as a separate Create event.
				op = "deleted"
			default:
				continue
			}

			logger.Debug("watcher: record change",
				slog.String("op", op), slog.String("kind", kind), slog.String("slug", slug))
			if cb != nil {
				cb(op, kind, slug)
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// splitRecordPath maps an absolute file path to its kind directory and slug.
// Files outside a kind directory, temp files, and non-record extensions are
// rejected. Archived records report as kind "<kind>/archived".
func splitRecordPath(dataRoot, absPath, ext string) (kind, slug string, ok bool) {
	rel, err := filepath.Rel(dataRoot, absPath)
	if err != nil {
		return "", "", false
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(rel)
	if !strings.HasSuffix(base, ext) || strings.HasPrefix(base, ".") {
		return "", "", false
	}
	dir := strings.TrimSuffix(rel, "/"+base)
	if dir == rel || dir == "" || strings.HasPrefix(dir, "..") {
		return "", "", false
	}
	return dir, strings.TrimSuffix(base, ext), true
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
