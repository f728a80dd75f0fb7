package main

import (
	"sync"
	"time"

	"github.com/tomz197/skydodge/internal/draw"
)

// sessionHub counts live game sessions and broadcasts the shutdown notice.
type sessionHub struct {
	mu       sync.Mutex
	active   int
	shutdown chan struct{}
	once     sync.Once
}

func newSessionHub() *sessionHub {
	return &sessionHub{shutdown: make(chan struct{})}
}

// Join registers a session. The returned channel is closed on shutdown;
// leave must be called when the session ends.
func (h *sessionHub) Join() (shutdown <-chan struct{}, leave func()) {
	h.mu.Lock()
	h.active++
	h.mu.Unlock()

	var once sync.Once
	return h.shutdown, func() {
		once.Do(func() {
			h.mu.Lock()
			h.active--
			h.mu.Unlock()
		})
	}
}

// Active returns the number of live sessions.
func (h *sessionHub) Active() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active
}

// Shutdown notifies every session and waits for all of them to leave, or
// for the timeout. It reports whether all sessions left in time.
func (h *sessionHub) Shutdown(timeout time.Duration) bool {
	h.once.Do(func() { close(h.shutdown) })

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		if h.Active() == 0 {
			return true
		}
		select {
		case <-deadline:
			return false
		case <-ticker.C:
		}
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
