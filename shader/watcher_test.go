package shader

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pump drains the manager's render-thread queue until cond holds or the
// deadline passes, standing in for the per-frame Drain call.
func pump(t *testing.T, m *Manager, d time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		m.Drain()
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	m.Drain()
	return cond()
}

func newTestWatcher(m *Manager, recompile func() error, paths ...string) *Watcher {
	w := &Watcher{
		mgr:       m,
		settled:   true,
		debounce:  m.debounce,
		settle:    m.settle,
		recompile: recompile,
	}
	for _, path := range paths {
		if err := m.subscribe(path, w); err == nil {
			w.paths = append(w.paths, path)
		}
	}
	return w
}

func TestWatcherDebouncesRapidWrites(t *testing.T) {
	dir := t.TempDir()
	frag := filepath.Join(dir, "fog.frag")
	require.NoError(t, os.WriteFile(frag, []byte(sampleMainImage), 0o644))

	m := NewManager(dir, WithDebounce(30*time.Millisecond, 100*time.Millisecond))
	defer m.Close()
	require.NotNil(t, m.fsw, "fsnotify must be available in the test environment")

	var recompiles atomic.Int32
	w := newTestWatcher(m, func() error {
		recompiles.Add(1)
		return nil
	}, frag)
	defer w.stop()

	// Two writes in quick succession, well inside the debounce window.
	require.NoError(t, os.WriteFile(frag, []byte(sampleMainImage+"// edit 1\n"), 0o644))
	require.NoError(t, os.WriteFile(frag, []byte(sampleMainImage+"// edit 2\n"), 0o644))

	ok := pump(t, m, 2*time.Second, func() bool { return recompiles.Load() >= 1 })
	require.True(t, ok, "debounced recompile never arrived")

	// Let any stray timers fire; the count must stay at one.
	time.Sleep(150 * time.Millisecond)
	m.Drain()
	assert.Equal(t, int32(1), recompiles.Load(), "rapid writes must coalesce into one recompile")
}

func TestWatcherRecompileFailureIsNonFatal(t *testing.T) {
	dir := t.TempDir()
	frag := filepath.Join(dir, "vignette.frag")
	require.NoError(t, os.WriteFile(frag, []byte(sampleMainImage), 0o644))

	m := NewManager(dir, WithDebounce(20*time.Millisecond, 40*time.Millisecond))
	defer m.Close()

	var attempts atomic.Int32
	w := newTestWatcher(m, func() error {
		attempts.Add(1)
		return &CompileError{Stage: StageFragment, Log: "syntax error"}
	}, frag)
	defer w.stop()

	require.NoError(t, os.WriteFile(frag, []byte("broken {"), 0o644))
	ok := pump(t, m, 2*time.Second, func() bool { return attempts.Load() >= 1 })
	require.True(t, ok)

	// After the settle window a corrected write schedules a fresh attempt.
	time.Sleep(60 * time.Millisecond)
	require.NoError(t, os.WriteFile(frag, []byte(sampleMainImage), 0o644))
	ok = pump(t, m, 2*time.Second, func() bool { return attempts.Load() >= 2 })
	assert.True(t, ok, "watcher must re-arm after a failed attempt")
}

func TestWatcherSetupFailureDisablesHotReloadOnly(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)
	defer m.Close()

	missing := filepath.Join(dir, "never-written.frag")
	w := newTestWatcher(m, func() error { return nil }, missing)
	assert.Empty(t, w.paths, "unwatchable path must not be subscribed")
	// Stopping a watcher with no live subscriptions is fine.
	w.stop()
}

func TestWatcherStop(t *testing.T) {
	dir := t.TempDir()
	frag := filepath.Join(dir, "fade.frag")
	require.NoError(t, os.WriteFile(frag, []byte(sampleMainImage), 0o644))

	m := NewManager(dir, WithDebounce(20*time.Millisecond, 40*time.Millisecond))
	defer m.Close()

	var recompiles atomic.Int32
	w := newTestWatcher(m, func() error {
		recompiles.Add(1)
		return nil
	}, frag)
	w.stop()

	require.NoError(t, os.WriteFile(frag, []byte(sampleMainImage+"// after stop\n"), 0o644))
	pump(t, m, 200*time.Millisecond, func() bool { return false })
	assert.Equal(t, int32(0), recompiles.Load(), "stopped watcher must not recompile")
}

func TestManagerCreateMissingShader(t *testing.T) {
	m := NewManager(t.TempDir())
	defer m.Close()

	_, err := m.Create("quad", "nope")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, 0, m.Registry().Len(), "failed creation must leave no registry entry")
}

func TestManagerSharedSubscriptions(t *testing.T) {
	dir := t.TempDir()
	frag := filepath.Join(dir, "shared.frag")
	require.NoError(t, os.WriteFile(frag, []byte(sampleMainImage), 0o644))

	m := NewManager(dir, WithDebounce(20*time.Millisecond, 40*time.Millisecond))
	defer m.Close()

	var a, b atomic.Int32
	wa := newTestWatcher(m, func() error { a.Add(1); return nil }, frag)
	wb := newTestWatcher(m, func() error { b.Add(1); return nil }, frag)
	defer wa.stop()
	defer wb.stop()

	require.NoError(t, os.WriteFile(frag, []byte(sampleMainImage+"// shared edit\n"), 0o644))
	ok := pump(t, m, 2*time.Second, func() bool { return a.Load() >= 1 && b.Load() >= 1 })
	assert.True(t, ok, "every program watching a path gets notified")
}

func TestWatcherRecoversFromDroppedDispatch(t *testing.T) {
	m := NewManager(t.TempDir(), WithDebounce(10*time.Millisecond, 20*time.Millisecond))
	defer m.Close()

	var recompiles atomic.Int32
	w := newTestWatcher(m, func() error {
		recompiles.Add(1)
		return nil
	})
	defer w.stop()

	// Fill the render-thread queue so the debounced attempt is dropped.
	for i := 0; i < cap(m.mainq); i++ {
		m.dispatch(func() {})
	}

	w.notify()
	settledAgain := func() bool {
		w.mu.Lock()
		defer w.mu.Unlock()
		return !w.pending && w.settled
	}
	require.Eventually(t, settledAgain, 2*time.Second, 5*time.Millisecond,
		"a dropped dispatch must reopen the debounce window")
	m.Drain()
	assert.Equal(t, int32(0), recompiles.Load(), "the dropped attempt must not have run")

	// With the queue drained, the next change schedules a fresh attempt.
	w.notify()
	ok := pump(t, m, 2*time.Second, func() bool { return recompiles.Load() >= 1 })
	assert.True(t, ok, "hot reload must recover after a dropped dispatch")
}

func TestDispatchDoesNotBlock(t *testing.T) {
	m := NewManager(t.TempDir())
	defer m.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			m.dispatch(func() {})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatch must drop work rather than block the watch goroutine")
	}
}
