package watch

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/bep/debounce"
)

// Watcher polls file modification times and calls onChange once things
// settle down.
type Watcher struct {
	paths     []string
	interval  time.Duration
	onChange  func()
	debounced func(f func())
	mtimes    map[string]time.Time
}

func New(paths []string, interval, wait time.Duration, onChange func()) *Watcher {
	w := &Watcher{
		paths:     paths,
		interval:  interval,
		onChange:  onChange,
		debounced: debounce.New(wait),
		mtimes:    make(map[string]time.Time),
	}
	w.snapshot()
	return w
}

func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

func (w *Watcher) snapshot() bool {
	changed := false
	for _, p := range w.paths {
		m := modTime(p)
		if prev, ok := w.mtimes[p]; ok && !prev.Equal(m) {
			slog.Debug("source changed", "source", p)
			changed = true
		}
		w.mtimes[p] = m
	}
	return changed
}

// Poll reports whether any path changed since the last poll and, if so,
// schedules onChange.
func (w *Watcher) Poll() bool {
	if !w.snapshot() {
		return false
	}
	w.debounced(w.onChange)
	return true
}

func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.Poll()
		}
	}
}
