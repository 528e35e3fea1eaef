package codebase

import (
	"context"
	"sync"
	"time"
)

type fileStamp struct {
	modTime time.Time
	size    int64
}

// Watcher polls the codebase root and reparses files that changed on disk.
type Watcher struct {
	codebase *Codebase
	interval time.Duration
	stopCh   chan struct{}
	done     chan struct{}
	stamps   map[string]fileStamp

	mu       sync.Mutex
	started  bool
	stopOnce sync.Once

	// Skip excludes files from polling, such as documents open in an
	// editor.
	Skip func(path string) bool
	// OnChange is called after a file was reparsed or removed.
	OnChange func(path string, removed bool)
}

func NewWatcher(c *Codebase, interval time.Duration) *Watcher {
	return &Watcher{
		codebase: c,
		interval: interval,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
		stamps:   make(map[string]fileStamp),
	}
}

// Start polls in a new goroutine until Stop is called or ctx is done. Only
// the first call has an effect.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return
	}
	w.started = true
	go w.run(ctx)
}

// Stop ends polling and waits for the goroutine to exit. It may be called
// more than once, and before Start.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.mu.Lock()
	started := w.started
	w.mu.Unlock()
	if started {
		<-w.done
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.Poll(ctx)
	for {
		select {
		case <-w.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Poll(ctx)
		}
	}
}

// Poll compares the files on disk with the last poll and updates the
// codebase. It returns the paths it reparsed and removed.
func (w *Watcher) Poll(ctx context.Context) (changed, removed []string) {
	paths, err := w.codebase.JavaFiles()
	if err != nil {
		log.Warningf("poll %s: %s", w.codebase.RootDir(), err)
		return nil, nil
	}
	current := make(map[string]bool, len(paths))
	for _, path := range paths {
		current[path] = true
		if w.Skip != nil && w.Skip(path) {
			continue
		}
		info, err := w.codebase.Fs().Stat(path)
		if err != nil {
			continue
		}
		stamp := fileStamp{modTime: info.ModTime(), size: info.Size()}
		if last, known := w.stamps[path]; known && last == stamp {
			continue
		}
		w.stamps[path] = stamp
		if err := w.codebase.ScanFile(ctx, path); err != nil {
			log.Warningf("reparse %s: %s", path, err)
			continue
		}
		changed = append(changed, path)
		if w.OnChange != nil {
			w.OnChange(path, false)
		}
	}

	for path := range w.stamps {
		if current[path] {
			continue
		}
		delete(w.stamps, path)
		w.codebase.RemoveFile(path)
		removed = append(removed, path)
		if w.OnChange != nil {
			w.OnChange(path, true)
		}
	}
	return changed, removed
}
