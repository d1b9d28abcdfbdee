package queue

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fashionstore/storefront/internal/core/ports"
)

type recordingStore struct {
	mu      sync.Mutex
	deleted []string
	fail    map[string]bool
	done    chan string
}

func newRecordingStore() *recordingStore {
	return &recordingStore{fail: make(map[string]bool), done: make(chan string, 64)}
}

func (s *recordingStore) Upload(context.Context, string, io.Reader) (ports.ImageRef, error) {
	return ports.ImageRef{}, errors.New("not implemented")
}

func (s *recordingStore) Delete(_ context.Context, key string) error {
	defer func() { s.done <- key }()
	if s.fail[key] {
		return errors.New("provider unavailable")
	}
	s.mu.Lock()
	s.deleted = append(s.deleted, key)
	s.mu.Unlock()
	return nil
}

func waitFor(t *testing.T, ch <-chan string, n int) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for i := 0; i < n; i++ {
		select {
		case <-ch:
		case <-deadline:
			t.Fatalf("timed out after %d of %d jobs", i, n)
		}
	}
}

func TestDispatcher_ProcessesJobs(t *testing.T) {
	store := newRecordingStore()
	store.fail["products/bad"] = true
	d := NewDispatcher(2, store, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	d.Enqueue("products/a")
	d.Enqueue("products/b")
	d.Enqueue("products/bad")
	d.Enqueue("")
	waitFor(t, store.done, 3)

	cancel()
	d.Wait()

	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.deleted) != 2 {
		t.Fatalf("expected 2 successful deletions, got %v", store.deleted)
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(0, newRecordingStore(), zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
	for _, key := range []string{"a", "products/123", "x/y/z"} {
		first := d.shardIndex(key)
		if first < 0 || first >= len(d.workers) {
			t.Fatalf("shard %d out of range", first)
		}
		if again := d.shardIndex(key); again != first {
			t.Fatalf("shard for %q changed: %d then %d", key, first, again)
		}
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	d := NewDispatcher(1, newRecordingStore(), zerolog.Nop())
	for i := 0; i < channelBuffer+10; i++ {
		d.Enqueue("products/k")
	}
	if got := len(d.workers[0]); got != channelBuffer {
		t.Fatalf("expected buffer to stay at %d, got %d", channelBuffer, got)
	}
}
