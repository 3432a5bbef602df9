package vista

import (
	"context"
	"sync"
	"time"

	"github.com/zoobzio/clockz"
)

// debouncer holds the last value pushed and hands it to emit once interval
// has elapsed without a newer push. Every push arms a fresh timer; a timer
// is never reset after it may have fired.
type debouncer[T any] struct {
	clock    clockz.Clock
	interval time.Duration
	emit     func(context.Context, T)
	armed    chan struct{}

	mu         sync.Mutex
	timer      clockz.Timer
	generation uint64
	pending    T
	hasPending bool
}

func newDebouncer[T any](clock clockz.Clock, interval time.Duration, emit func(context.Context, T)) *debouncer[T] {
	return &debouncer[T]{
		clock:    clock,
		interval: interval,
		emit:     emit,
		armed:    make(chan struct{}, 1),
	}
}

// push records v as the pending value and restarts the quiet interval.
func (d *debouncer[T]) push(v T) {
	d.mu.Lock()
	d.pending = v
	d.hasPending = true
	d.generation++
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.clock.NewTimer(d.interval)
	d.mu.Unlock()

	select {
	case d.armed <- struct{}{}:
	default:
	}
}

// current returns the channel of the latest timer and the generation it
// belongs to.
func (d *debouncer[T]) current() (<-chan time.Time, uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer == nil {
		return nil, d.generation
	}
	return d.timer.C(), d.generation
}

// run delivers debounced values until ctx is canceled.
func (d *debouncer[T]) run(ctx context.Context) {
	defer d.stop()

	var (
		fire       <-chan time.Time
		generation uint64
	)
	for {
		select {
		case <-ctx.Done():
			return
		case <-d.armed:
			fire, generation = d.current()
		case <-fire:
			fire = nil
			if v, ok := d.take(generation); ok {
				d.emit(ctx, v)
			}
		}
	}
}

// take returns the pending value if generation is still the latest push.
// A fire that raced with a newer push is ignored; the newer timer delivers
// that value instead.
func (d *debouncer[T]) take(generation uint64) (T, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var zero T
	if !d.hasPending || generation != d.generation {
		return zero, false
	}
	v := d.pending
	d.pending = zero
	d.hasPending = false
	return v, true
}

func (d *debouncer[T]) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}
