// Package shader compiles, links, and hot-reloads vertex+fragment
// shader programs. Logical names resolve to source files by extension
// convention; fragment sources in the single-image dialect (mainImage,
// no main) are wrapped with a standard uniform prelude before
// compilation. Each program's sources are watched for changes and
// recompiled safely: a failed recompile never disturbs the program in
// use.
package shader

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	nocturne "github.com/duskfall/nocturne"
)

// Manager owns the shader directory, the process-wide program registry,
// one shared filesystem watch goroutine for all programs, and the queue
// that hands recompile work to the render thread.
type Manager struct {
	dir      string
	registry *Registry

	debounce time.Duration
	settle   time.Duration

	// mainq carries deferred work onto the render thread. Drained by
	// Drain between frames; GPU handles are never touched off that
	// thread.
	mainq chan func()

	fsw     *fsnotify.Watcher // nil when watch setup failed; hot reload off
	noWatch bool

	mu   sync.Mutex
	subs map[string][]*Watcher // watched path -> subscribed watchers

	closeOnce sync.Once
	done      chan struct{}
}

// Option tunes manager construction.
type Option func(*Manager)

// WithDebounce overrides the debounce and settle windows. Used by the
// hot-reload tests to keep wall-clock time short.
func WithDebounce(debounce, settle time.Duration) Option {
	return func(m *Manager) {
		m.debounce = debounce
		m.settle = settle
	}
}

// WithHotReload enables or disables source watching. Programs still
// load and compile normally with it off.
func WithHotReload(enabled bool) Option {
	return func(m *Manager) {
		m.noWatch = !enabled
	}
}

// NewManager creates a shader manager rooted at dir. If the filesystem
// watcher cannot be created, hot reload is disabled for every program
// and the manager still works for initial loads.
func NewManager(dir string, opts ...Option) *Manager {
	m := &Manager{
		dir:      dir,
		registry: newRegistry(),
		debounce: defaultDebounce,
		settle:   defaultSettle,
		mainq:    make(chan func(), 64),
		subs:     make(map[string][]*Watcher),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.noWatch {
		return m
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		nocturne.Logger().Warn("shader hot reload disabled", "error", err)
		return m
	}
	m.fsw = fsw
	go m.watchLoop()
	return m
}

// Registry exposes the program registry for lookups and introspection.
func (m *Manager) Registry() *Registry { return m.registry }

// Create resolves both logical names, reads and (for the single-image
// dialect) rewrites the sources, compiles and links a new program, and
// registers it for hot reload. On any failure the partially constructed
// handle is destroyed and the error is returned; no program comes back
// in a half-built state. Must run on the render thread.
func (m *Manager) Create(vertexName, fragmentName string) (*Program, error) {
	vertPath, err := Resolve(m.dir, vertexName, VertexExt)
	if err != nil {
		return nil, err
	}
	fragPath, err := Resolve(m.dir, fragmentName, FragmentExt)
	if err != nil {
		return nil, err
	}

	vsrc, err := LoadSource(vertPath, VertexExt)
	if err != nil {
		return nil, err
	}
	fsrc, err := LoadSource(fragPath, FragmentExt)
	if err != nil {
		return nil, err
	}

	handle, err := buildProgram(vsrc, fsrc)
	if err != nil {
		return nil, err
	}

	p := &Program{
		mgr:        m,
		vertPath:   vertPath,
		fragPath:   fragPath,
		handle:     handle,
		generation: 1,
		uniforms:   make(map[string]int32),
	}
	p.watcher = newWatcher(m, p, []string{vertPath, fragPath})
	m.registry.add(handle, p, p.watcher)

	nocturne.Logger().Info("shader program created",
		"vertex", vertexName, "fragment", fragmentName, "handle", handle)
	return p, nil
}

// FromSource builds a program from in-memory sources. Used for the
// engine's built-in programs (batch fill, blit); no files, no watcher.
// The single-image wrap still applies to fragment sources that need it.
func (m *Manager) FromSource(vertexSource, fragmentSource string) (*Program, error) {
	if IsSingleImage(fragmentSource) {
		fragmentSource = WrapSingleImage(fragmentSource)
	}
	handle, err := buildProgram(vertexSource, fragmentSource)
	if err != nil {
		return nil, err
	}
	p := &Program{
		mgr:        m,
		handle:     handle,
		generation: 1,
		uniforms:   make(map[string]int32),
	}
	m.registry.add(handle, p, nil)
	return p, nil
}

// Drain runs all pending deferred work. Call once per frame on the
// render thread, outside the begin/end bracket.
func (m *Manager) Drain() {
	for {
		select {
		case fn := <-m.mainq:
			fn()
		default:
			return
		}
	}
}

// Close stops the watch goroutine. Programs must be destroyed by their
// owners; Close does not touch GPU state.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.done)
		if m.fsw != nil {
			m.fsw.Close()
		}
	})
}

// dispatch queues fn for the render thread, reporting whether the work
// was accepted. When the queue is full the work is dropped and the
// caller must restore any state that assumed the work would run.
func (m *Manager) dispatch(fn func()) bool {
	select {
	case m.mainq <- fn:
		return true
	default:
		nocturne.Logger().Warn("render-thread queue full, dropping deferred work")
		return false
	}
}

func (m *Manager) subscribe(path string, w *Watcher) error {
	if m.fsw == nil {
		return fsnotify.ErrClosed
	}
	path = filepath.Clean(path)
	m.mu.Lock()
	existing := len(m.subs[path]) > 0
	m.subs[path] = append(m.subs[path], w)
	m.mu.Unlock()
	if existing {
		return nil
	}
	if err := m.fsw.Add(path); err != nil {
		m.mu.Lock()
		m.subs[path] = m.subs[path][:len(m.subs[path])-1]
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *Manager) unsubscribe(path string, w *Watcher) {
	path = filepath.Clean(path)
	m.mu.Lock()
	ws := m.subs[path]
	for i, sub := range ws {
		if sub == w {
			m.subs[path] = append(ws[:i], ws[i+1:]...)
			break
		}
	}
	empty := len(m.subs[path]) == 0
	if empty {
		delete(m.subs, path)
	}
	m.mu.Unlock()
	if empty && m.fsw != nil {
		m.fsw.Remove(path)
	}
}

// watchLoop delivers filesystem events to subscribed watchers. One
// goroutine serves every program, keeping the thread count bounded.
func (m *Manager) watchLoop() {
	for {
		select {
		case <-m.done:
			return
		case event, ok := <-m.fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			path := filepath.Clean(event.Name)
			m.mu.Lock()
			ws := append([]*Watcher(nil), m.subs[path]...)
			m.mu.Unlock()
			for _, w := range ws {
				w.notify()
			}
		case err, ok := <-m.fsw.Errors:
			if !ok {
				return
			}
			nocturne.Logger().Warn("shader watch error", "error", err)
		}
	}
}
