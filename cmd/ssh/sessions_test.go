package main

import (
	"testing"
	"time"
)

func TestSessionHubShutdown(t *testing.T) {
	hub := newSessionHub()
	shutdown, leave := hub.Join()
	if hub.Active() != 1 {
		t.Fatalf("active = %d, want 1", hub.Active())
	}

	go func() {
		<-shutdown
		leave()
		leave() // Repeated leave is harmless
	}()

	if !hub.Shutdown(5 * time.Second) {
		t.Fatal("session did not leave after the notice")
	}
	if hub.Active() != 0 {
		t.Fatalf("active = %d, want 0", hub.Active())
	}
}

func TestSessionHubShutdownTimeout(t *testing.T) {
	hub := newSessionHub()
	_, leave := hub.Join()
	defer leave()

	if hub.Shutdown(50 * time.Millisecond) {
		t.Fatal("shutdown should time out while a session stays")
	}
	// A second shutdown must not close the channel twice.
	hub.Shutdown(time.Millisecond)
}

func TestSizeTracker(t *testing.T) {
	s := newSizeTracker(80, 24)
	s.update(120, 40)
	w, h, err := s.getSize()
	if err != nil || w != 120 || h != 40 {
		t.Fatalf("getSize() = %d, %d, %v", w, h, err)
	}
}
