package vista

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/zoobzio/capitan"
)

// Slot holds the latest published snapshot of one pipeline. It has a single
// writer (the owning pipeline) and any number of readers.
//
// Readers either poll Current or Subscribe to receive the current snapshot
// followed by every later change. Delivery is conflated: a subscriber that
// falls behind only sees the newest snapshot.
type Slot[T any] struct {
	name    string
	equal   func(a, b T) bool
	version atomic.Uint64

	mu     sync.RWMutex
	value  T
	subs   map[uint64]chan T
	nextID uint64
	closed bool
	done   chan struct{}
}

// NewSlot creates a Slot seeded with initial. Publishing a value that equal
// reports as unchanged is a no-op.
func NewSlot[T any](name string, initial T, equal func(a, b T) bool) *Slot[T] {
	return &Slot[T]{
		name:  name,
		equal: equal,
		value: initial,
		subs:  make(map[uint64]chan T),
		done:  make(chan struct{}),
	}
}

// Name returns the slot name used in signals and metrics.
func (s *Slot[T]) Name() string {
	return s.name
}

// Current returns the latest snapshot.
func (s *Slot[T]) Current() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Version returns the number of snapshots published since construction.
// The seed value is version 0.
func (s *Slot[T]) Version() uint64 {
	return s.version.Load()
}

// Subscribe returns a channel that receives the current snapshot immediately
// and every later change. The channel is closed when ctx is done or the slot
// is closed.
func (s *Slot[T]) Subscribe(ctx context.Context) <-chan T {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan T, 1)
	if s.closed {
		close(ch)
		return ch
	}

	id := s.nextID
	s.nextID++
	ch <- s.value
	s.subs[id] = ch

	go func() {
		select {
		case <-ctx.Done():
		case <-s.done:
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}()

	return ch
}

// publish replaces the snapshot and notifies subscribers. It reports false
// when the value is unchanged or the slot is closed.
func (s *Slot[T]) publish(ctx context.Context, v T) bool {
	s.mu.Lock()
	if s.closed || (s.equal != nil && s.equal(s.value, v)) {
		s.mu.Unlock()
		return false
	}
	s.value = v
	s.version.Add(1)
	for _, ch := range s.subs {
		// Only publish sends, and only under the lock, so after draining
		// there is always room for the new value.
		select {
		case <-ch:
		default:
		}
		ch <- v
	}
	s.mu.Unlock()

	capitan.Emit(ctx, SlotPublished, KeySlot.Field(s.name))
	return true
}

// close releases every subscriber. Later publishes are ignored.
func (s *Slot[T]) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.done)
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}
