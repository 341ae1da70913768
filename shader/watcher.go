package shader

import (
	"sync"
	"time"

	nocturne "github.com/duskfall/nocturne"
)

const (
	// defaultDebounce coalesces rapid successive writes (an editor
	// doing save-and-format) into a single recompile request.
	defaultDebounce = 100 * time.Millisecond
	// defaultSettle re-arms the debounce window after a recompile
	// attempt completes, so one multi-write save cannot start a
	// recompile storm.
	defaultSettle = 500 * time.Millisecond
)

// Watcher owns the file-change subscriptions for one program's vertex
// and fragment sources. Change notifications arrive on the manager's
// watch goroutine; the actual recompile touches GPU state and is handed
// off to the render thread through the manager's dispatch queue.
//
// At most one recompile is scheduled per debounce window. A second
// notification arriving while one is pending, or during the settle
// window after an attempt, coalesces into a no-op.
type Watcher struct {
	mgr   *Manager
	paths []string

	mu      sync.Mutex
	pending bool // a debounce timer is armed
	settled bool // false while the post-recompile settle window is open

	debounce time.Duration
	settle   time.Duration

	// recompile is the callback into the owning program. Indirect so
	// the debounce protocol is testable without a GL context.
	recompile func() error

	stopped bool
}

func newWatcher(m *Manager, p *Program, paths []string) *Watcher {
	w := &Watcher{
		mgr:       m,
		paths:     make([]string, 0, len(paths)),
		settled:   true,
		debounce:  m.debounce,
		settle:    m.settle,
		recompile: p.Recompile,
	}
	for _, path := range paths {
		if err := m.subscribe(path, w); err != nil {
			// Hot reload is disabled for this file only; the initial
			// shader load has already succeeded.
			nocturne.Logger().Warn("shader watch unavailable", "path", path, "error", err)
			continue
		}
		w.paths = append(w.paths, path)
	}
	return w
}

// notify is called by the manager's watch goroutine on every write
// event for one of this watcher's paths.
func (w *Watcher) notify() {
	w.mu.Lock()
	if w.stopped || w.pending || !w.settled {
		w.mu.Unlock()
		return
	}
	w.pending = true
	w.mu.Unlock()

	time.AfterFunc(w.debounce, w.fire)
}

// fire runs when the debounce timer expires. It may find the watcher
// already stopped; the timer is never cancelled, it just no-ops.
func (w *Watcher) fire() {
	w.mu.Lock()
	if w.stopped || !w.pending {
		w.mu.Unlock()
		return
	}
	w.pending = false
	w.settled = false
	w.mu.Unlock()

	dispatched := w.mgr.dispatch(func() {
		if err := w.recompile(); err != nil {
			// Non-fatal: the previous working program keeps rendering.
			nocturne.Logger().Warn("shader hot reload failed", "error", err)
		}
		time.AfterFunc(w.settle, func() {
			w.mu.Lock()
			w.settled = true
			w.mu.Unlock()
		})
	})
	if !dispatched {
		// The attempt never ran, so the settle timer inside it will
		// never arm. Reopen the window here or no later file change
		// would ever schedule another recompile.
		w.mu.Lock()
		w.settled = true
		w.mu.Unlock()
	}
}

// stop unsubscribes the watcher. Timers already armed are left to fire
// as no-ops.
func (w *Watcher) stop() {
	w.mu.Lock()
	w.stopped = true
	w.mu.Unlock()
	for _, path := range w.paths {
		w.mgr.unsubscribe(path, w)
	}
}
