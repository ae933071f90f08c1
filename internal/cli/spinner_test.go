package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"
)

func TestSpinnerBasic(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), "Testing...")
	s.w = &buf
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !s.Cancelled() {
		t.Error("Cancelled() should be true after Stop")
	}
	if !strings.Contains(buf.String(), "Testing...") {
		t.Errorf("spinner output %q does not contain its message", buf.String())
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinner(ctx, "Testing with context...")
	s.w = io.Discard
	s.Start()

	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop after context cancellation")
	}
	if !s.Cancelled() {
		t.Error("Cancelled() should be true after the parent context is cancelled")
	}
	s.Stop()
}

func TestSpinnerStopIdempotent(t *testing.T) {
	s := newSpinner(context.Background(), "Testing...")
	s.w = io.Discard
	s.Start()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s := newSpinner(context.Background(), "never started")
	s.w = io.Discard

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on a spinner that was never started")
	}
}

func TestSpinnerUpdate(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), "first")
	s.w = &buf
	s.Update("second")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	out := buf.String()
	if strings.Contains(out, "first") || !strings.Contains(out, "second") {
		t.Errorf("spinner output %q, want only the updated message", out)
	}
}
