package preview

import (
	"context"
	"os"
	"sync"
	"time"
)

// fileState is what the watcher compares between polls.
type fileState struct {
	modTime time.Time
	size    int64
	exists  bool
}

// Watcher polls a fixed set of files and reports the ones that changed,
// appeared or disappeared since the previous poll.
type Watcher struct {
	files    []string
	interval time.Duration

	mu       sync.Mutex
	onChange func(changed []string)
	states   map[string]fileState
	running  bool
	stopCh   chan struct{}
}

// NewWatcher creates a watcher over files. A zero interval means 500ms.
func NewWatcher(files []string, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &Watcher{
		files:    files,
		interval: interval,
		states:   make(map[string]fileState),
	}
}

// OnChange sets the callback for file changes.
func (w *Watcher) OnChange(fn func(changed []string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start polls until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	stopCh := w.stopCh
	w.mu.Unlock()

	w.Poll()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			w.Poll()
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		close(w.stopCh)
		w.running = false
	}
}

// Poll checks every file once and invokes the callback with the files that
// changed. The first poll only records state.
func (w *Watcher) Poll() []string {
	w.mu.Lock()
	first := len(w.states) == 0
	var changed []string
	for _, f := range w.files {
		cur := stat(f)
		prev, seen := w.states[f]
		w.states[f] = cur
		if !first && (!seen || cur.differs(prev)) {
			changed = append(changed, f)
		}
	}
	callback := w.onChange
	w.mu.Unlock()

	if len(changed) > 0 && callback != nil {
		callback(changed)
	}
	return changed
}

func (s fileState) differs(o fileState) bool {
	return s.exists != o.exists || s.size != o.size || !s.modTime.Equal(o.modTime)
}

func stat(path string) fileState {
	info, err := os.Stat(path)
	if err != nil {
		return fileState{}
	}
	return fileState{modTime: info.ModTime(), size: info.Size(), exists: true}
}

// IsRunning returns whether the watcher is running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
