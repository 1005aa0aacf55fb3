package main

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/protector/internal/game"
)

func newTestServer() *server {
	return &server{
		logger: log.New(io.Discard),
		cfg:    game.DefaultConfig(),
		done:   make(chan struct{}),
	}
}

func TestServerRejectsSessionsAfterShutdown(t *testing.T) {
	s := newTestServer()
	if !s.begin() {
		t.Fatalf("begin refused a session before shutdown")
	}

	s.shutdown()
	select {
	case <-s.done:
	default:
		t.Fatalf("shutdown did not close done")
	}
	if s.begin() {
		t.Fatalf("begin accepted a session after shutdown")
	}
	s.shutdown() // second call must not panic on the closed channel

	if s.wait(10 * time.Millisecond) {
		t.Fatalf("wait returned true with a session still open")
	}
	s.sessions.Done()
	if !s.wait(time.Second) {
		t.Fatalf("wait timed out after the last session ended")
	}
}

func TestSizeTracker(t *testing.T) {
	tr := newSizeTracker(80, 24)
	tr.update(120, 40)
	w, h, err := tr.getSize()
	if err != nil || w != 120 || h != 40 {
		t.Fatalf("getSize = %d, %d, %v; want 120, 40, nil", w, h, err)
	}
}
