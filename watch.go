// FILE: speechrules/prefs/watch.go
package prefs

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const DefaultMaxWatchers = 100 // Prevent resource exhaustion

// ChangeEvent identifies a resource group whose files changed on disk after
// they were loaded or resolved.
type ChangeEvent struct {
	// Group is one of GroupPreferences, GroupStyle, GroupUnicode or
	// GroupDefinitions.
	Group string

	// Path is the first stale file observed in the group.
	Path string
}

// WatchOptions configures resource watching behavior
type WatchOptions struct {
	// PollInterval for file stat checks (minimum 100ms)
	PollInterval time.Duration

	// Debounce duration to coalesce rapid edits into one event
	Debounce time.Duration

	// MaxWatchers limits concurrent watch channels
	MaxWatchers int
}

// DefaultWatchOptions returns sensible defaults for resource watching
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{
		PollInterval: DefaultPollInterval,
		Debounce:     DefaultDebounce,
		MaxWatchers:  DefaultMaxWatchers,
	}
}

// watcher manages resource watching state. It only observes and notifies;
// reloading stays a host decision so a half-written rules tree is never
// loaded behind the host's back.
type watcher struct {
	mu            sync.RWMutex
	ctx           context.Context
	cancel        context.CancelFunc
	opts          WatchOptions
	watching      atomic.Bool
	watchers      map[int64]chan ChangeEvent // subscriber channels
	watcherID     atomic.Int64
	debounceTimer *time.Timer

	// notified records the capture epoch already reported per group, so a
	// stale group fires once per load instead of once per poll.
	notified map[string]time.Time
	pending  []staleGroup
}

// StartWatching begins polling the loaded preference files and resolved
// resource chains for on-disk changes.
func (m *PreferenceManager) StartWatching() {
	m.StartWatchingWithOptions(DefaultWatchOptions())
}

// StartWatchingWithOptions begins polling with custom options.
func (m *PreferenceManager) StartWatchingWithOptions(opts WatchOptions) {
	// Validate options
	if opts.PollInterval < MinPollInterval {
		opts.PollInterval = MinPollInterval
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.MaxWatchers <= 0 {
		opts.MaxWatchers = DefaultMaxWatchers
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watcher != nil {
		return // Already watching
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.watcher = &watcher{
		ctx:      ctx,
		cancel:   cancel,
		opts:     opts,
		notified: make(map[string]time.Time),
		watchers: make(map[int64]chan ChangeEvent),
	}

	go m.watcher.watchLoop(m)
}

// StopWatching stops polling and closes all subscriber channels.
func (m *PreferenceManager) StopWatching() {
	m.mu.Lock()
	w := m.watcher
	m.watcher = nil
	m.mu.Unlock()

	// Stop outside the manager lock: the watch loop stats files through
	// staleGroups, which takes the read lock.
	if w != nil {
		w.stop()
	}
}

// Watch returns a channel that receives an event per resource group whose
// files change on disk. Watching starts on first use.
func (m *PreferenceManager) Watch() <-chan ChangeEvent {
	return m.WatchWithOptions(DefaultWatchOptions())
}

// WatchWithOptions returns a change channel with custom watch options.
// Options apply only when this call starts the watcher.
func (m *PreferenceManager) WatchWithOptions(opts WatchOptions) <-chan ChangeEvent {
	m.mu.RLock()
	w := m.watcher
	m.mu.RUnlock()

	if w != nil && w.watching.Load() {
		return w.subscribe()
	}

	m.StartWatchingWithOptions(opts)

	m.mu.RLock()
	w = m.watcher
	m.mu.RUnlock()

	if w == nil {
		ch := make(chan ChangeEvent)
		close(ch)
		return ch
	}
	return w.subscribe()
}

// IsWatching returns true if resource watching is enabled
func (m *PreferenceManager) IsWatching() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.watcher != nil && m.watcher.watching.Load()
}

// WatcherCount returns the number of active watch channels
func (m *PreferenceManager) WatcherCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.watcher == nil {
		return 0
	}

	m.watcher.mu.RLock()
	defer m.watcher.mu.RUnlock()
	return len(m.watcher.watchers)
}

// watchLoop is the main resource watching loop
func (w *watcher) watchLoop(m *PreferenceManager) {
	if !w.watching.CompareAndSwap(false, true) {
		return // Already watching
	}
	defer w.watching.Store(false)

	ticker := time.NewTicker(w.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			w.checkStale(m)
		}
	}
}

// checkStale collects newly stale groups and schedules a debounced emit.
func (w *watcher) checkStale(m *PreferenceManager) {
	groups := m.staleGroups()
	if len(groups) == 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	scheduled := false
	for _, g := range groups {
		if w.notified[g.name].Equal(g.captured) {
			continue // Already reported for this load
		}
		w.notified[g.name] = g.captured
		w.pending = append(w.pending, g)
		scheduled = true
	}
	if !scheduled {
		return
	}

	// Debounce rapid changes
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.opts.Debounce, w.emitPending)
}

// emitPending delivers the collected events after the debounce window.
func (w *watcher) emitPending() {
	w.mu.Lock()
	pending := w.pending
	w.pending = nil
	w.mu.Unlock()

	for _, g := range pending {
		w.notifyWatchers(ChangeEvent{Group: g.name, Path: g.path})
	}
}

// subscribe creates a new watcher channel
func (w *watcher) subscribe() <-chan ChangeEvent {
	w.mu.Lock()
	defer w.mu.Unlock()

	// Check watcher limit
	if len(w.watchers) >= w.opts.MaxWatchers {
		// Return closed channel to prevent resource exhaustion
		ch := make(chan ChangeEvent)
		close(ch)
		return ch
	}

	// Create buffered channel to prevent blocking
	ch := make(chan ChangeEvent, 10)
	id := w.watcherID.Add(1)
	w.watchers[id] = ch

	// Cleanup goroutine
	go func() {
		<-w.ctx.Done()
		w.mu.Lock()
		delete(w.watchers, id)
		close(ch)
		w.mu.Unlock()
	}()

	return ch
}

// notifyWatchers sends a change event to all subscribers
func (w *watcher) notifyWatchers(event ChangeEvent) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, ch := range w.watchers {
		select {
		case ch <- event:
			// Sent successfully
		default:
			// Channel full, skip
		}
	}
}

// stop terminates the watcher
func (w *watcher) stop() {
	if w.cancel != nil {
		w.cancel()
	}

	// Stop debounce timer
	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
	w.mu.Unlock()

	// Wait for watch loop to exit with timeout
	deadline := time.Now().Add(ShutdownTimeout)
	for w.watching.Load() && time.Now().Before(deadline) {
		time.Sleep(SpinWaitInterval)
	}
}
