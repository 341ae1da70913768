package shader

import "sync"

// registryEntry pairs a program handle with its watcher and a
// back-reference to the owning Program. The reference is non-owning:
// the registry never destroys a Program, and an entry disappearing
// before a watcher fires is a normal cleanup signal, not an error.
type registryEntry struct {
	prog    *Program
	watcher *Watcher
}

// Registry is the process-wide table mapping program handles to their
// watcher and owning instance. It is the only shader-manager structure
// touched from both the watch goroutine and the render thread, so every
// access goes through a single short-held lock. The lock is never held
// across compilation, which is slow and must not block other programs'
// lookups.
type Registry struct {
	mu      sync.Mutex
	entries map[uint32]*registryEntry
}

func newRegistry() *Registry {
	return &Registry{entries: make(map[uint32]*registryEntry)}
}

// Lookup returns the program registered under handle, if any.
func (r *Registry) Lookup(handle uint32) (*Program, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[handle]
	if !ok {
		return nil, false
	}
	return e.prog, true
}

// Len returns the number of registered programs.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry) add(handle uint32, p *Program, w *Watcher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[handle] = &registryEntry{prog: p, watcher: w}
}

func (r *Registry) remove(handle uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, handle)
}

// rekey moves an entry from old to new inside one critical section, so
// no reader can observe a split state where both or neither handle is
// present. Called after a successful recompile swaps program handles.
func (r *Registry) rekey(old, new uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[old]
	if !ok {
		return
	}
	delete(r.entries, old)
	r.entries[new] = e
}
