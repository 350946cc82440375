package watch

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/railwayapp/helmenv/internal/filesystems"
	"github.com/railwayapp/helmenv/internal/scan"
	"github.com/railwayapp/helmenv/internal/schema"
)

// DefaultDebounce batches bursts of events, e.g. an editor's save sequence.
const DefaultDebounce = 300 * time.Millisecond

// ReportFunc receives the rescanned files after each burst of changes
type ReportFunc func(report *schema.Report) error

// Watcher rescans changed manifests under a local directory
type Watcher struct {
	root     string
	scanner  *scan.Scanner
	excluder *filesystems.Excluder
	onReport ReportFunc
	debounce time.Duration
	logger   *slog.Logger
}

func NewWatcher(root string, scanner *scan.Scanner, excluder *filesystems.Excluder, onReport ReportFunc) *Watcher {
	return &Watcher{
		root:     root,
		scanner:  scanner,
		excluder: excluder,
		onReport: onReport,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
	}
}

// Run watches until ctx is cancelled or a report callback fails.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := w.start()
	if err != nil {
		return err
	}
	defer watcher.Close()

	return w.loop(ctx, watcher)
}

func (w *Watcher) start() (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := w.addDirRecursive(watcher, w.root); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch directory: %w", err)
	}

	return watcher, nil
}

func (w *Watcher) addDirRecursive(watcher *fsnotify.Watcher, path string) error {
	return filepath.Walk(path, func(walkPath string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if w.excluded(walkPath, true) {
			return filepath.SkipDir
		}
		return watcher.Add(walkPath)
	})
}

func (w *Watcher) excluded(path string, isDir bool) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	return w.excluder.Excluded(filepath.ToSlash(rel), isDir)
}

func (w *Watcher) loop(ctx context.Context, watcher *fsnotify.Watcher) error {
	pending := make(map[string]bool)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}

			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if event.Op.Has(fsnotify.Create) && !w.excluded(event.Name, true) {
					if err := w.addDirRecursive(watcher, event.Name); err != nil {
						w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
					}
				}
				continue
			}

			if !w.scanner.CanHandle(event.Name) || w.excluded(event.Name, false) {
				continue
			}

			pending[event.Name] = true
			timer.Reset(w.debounce)

		case <-timer.C:
			if err := w.flush(ctx, pending); err != nil {
				return err
			}
			clear(pending)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) flush(ctx context.Context, pending map[string]bool) error {
	report := schema.NewReport(w.root)

	for _, path := range slices.Sorted(maps.Keys(pending)) {
		file, err := w.scanner.ScanFile(ctx, path)
		if err != nil {
			// Usually the file was removed or renamed before the rescan.
			w.logger.Debug("rescan failed", "path", path, "error", err)
			continue
		}
		if len(file.Settings) > 0 {
			report.Files = append(report.Files, file)
		}
	}

	w.logger.Debug("rescanned", "files", len(pending), "reported", len(report.Files))
	if len(report.Files) == 0 {
		return nil
	}
	return w.onReport(report)
}
