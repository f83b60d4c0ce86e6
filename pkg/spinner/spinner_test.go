package spinner

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

// lockedBuffer guards reads in tests; the spinner serializes its own writes.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestNew(t *testing.T) {
	message := "Discovering source files"
	s := New(&lockedBuffer{}, message)

	if s.message != message {
		t.Errorf("Expected message %s, got %s", message, s.message)
	}

	if s.Active() {
		t.Error("Expected spinner to be inactive initially")
	}

	if len(s.chars) == 0 {
		t.Error("Expected spinner to have characters")
	}

	if s.delay == 0 {
		t.Error("Expected spinner to have delay")
	}
}

func TestSpinnerStartStop(t *testing.T) {
	out := &lockedBuffer{}
	s := New(out, "Test message")

	s.Start()
	if !s.Active() {
		t.Error("Expected spinner to be active after start")
	}

	time.Sleep(10 * time.Millisecond)

	s.Stop()
	if s.Active() {
		t.Error("Expected spinner to be inactive after stop")
	}

	if !strings.Contains(out.String(), "Test message") {
		t.Errorf("Expected output to contain message, got %q", out.String())
	}
	if !strings.HasSuffix(out.String(), "\r") {
		t.Errorf("Expected line to be cleared after stop, got %q", out.String())
	}
}

func TestSpinnerDoubleStart(t *testing.T) {
	s := New(&lockedBuffer{}, "Test message")

	s.Start()
	s.Start()
	if !s.Active() {
		t.Error("Expected spinner to still be active after second start")
	}

	s.Stop()
}

func TestSpinnerDoubleStop(t *testing.T) {
	s := New(&lockedBuffer{}, "Test message")

	s.Start()
	s.Stop()
	s.Stop()
	if s.Active() {
		t.Error("Expected spinner to still be inactive after second stop")
	}
}

func TestSpinnerRestart(t *testing.T) {
	s := New(&lockedBuffer{}, "Test message")

	s.Start()
	s.Stop()
	s.Start()
	if !s.Active() {
		t.Error("Expected spinner to be active after restart")
	}
	s.Stop()
}
