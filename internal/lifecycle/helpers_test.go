package lifecycle

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"tools.zach/dev/scheduler/internal/logger"
)

// lockedBuffer is a bytes.Buffer safe for a writer goroutine and a reader.
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

// count returns how many log lines contain substr.
func (b *lockedBuffer) count(substr string) int {
	return strings.Count(b.String(), substr)
}

// newTestController returns a controller logging at trace level into a buffer.
func newTestController(t *testing.T, interval time.Duration) (*Controller, *lockedBuffer) {
	t.Helper()
	out := &lockedBuffer{}
	log := slog.New(logger.NewHandler(out, logger.LevelTrace))
	return New(WithInterval(interval), WithLogger(log)), out
}

// waitFor polls cond until it holds or timeout elapses.
func waitFor(t *testing.T, timeout time.Duration, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out after %v waiting for %s", timeout, what)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

// runAsync starts c.Run in a goroutine and returns a channel carrying its result.
func runAsync(c *Controller) <-chan error {
	done := make(chan error, 1)
	go func() { done <- c.Run() }()
	return done
}

// awaitRun waits for the result of [runAsync] or fails after timeout.
func awaitRun(t *testing.T, done <-chan error, timeout time.Duration) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		t.Fatalf("Run did not return within %v", timeout)
		return nil
	}
}
