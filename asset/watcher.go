package asset

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/lixenwraith/inkbeat/beat"
	"github.com/lixenwraith/inkbeat/core"
	"github.com/lixenwraith/inkbeat/parameter"
)

// Watcher reloads a beats document when it changes on disk
// Invalid documents are logged and skipped; the previous schedule stays in effect
type Watcher struct {
	path     string
	debounce time.Duration
	log      *zap.Logger
	fsw      *fsnotify.Watcher
	updates  chan *beat.Schedule
}

// NewWatcher watches the directory holding path; editors often replace files on save
func NewWatcher(path string, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		debounce: parameter.ReloadDebounce,
		log:      log.With(zap.String("beats", abs)),
		fsw:      fsw,
		updates:  make(chan *beat.Schedule, 1),
	}, nil
}

// Updates delivers freshly loaded schedules; only the newest pending one is kept
func (w *Watcher) Updates() <-chan *beat.Schedule {
	return w.updates
}

// Start runs the watch loop until ctx is cancelled
func (w *Watcher) Start(ctx context.Context) {
	core.Go(func() { w.run(ctx) })
}

func (w *Watcher) run(ctx context.Context) {
	defer w.fsw.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Error("beats watcher error", zap.Error(err))

		case <-timer.C:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	s, doc, err := LoadSchedule(w.path)
	if err != nil {
		w.log.Warn("beats reload skipped", zap.Error(err))
		return
	}
	if err := doc.CheckIntervals(); err != nil {
		w.log.Warn("beats intervals ignored", zap.Error(err))
	}

	// Replace any undelivered schedule with the newer one
	select {
	case <-w.updates:
	default:
	}
	w.updates <- s
	w.log.Info("beats reloaded", zap.Int("beat_count", s.BeatCount()))
}
