package vista

import "sync"

// cell is the latest-value holder behind an input. Setting the current value
// again is a no-op. The consumer attached to a cell first observes the value
// present at attach time, then every change.
type cell[T comparable] struct {
	mu       sync.Mutex
	value    T
	onChange func(T)
	drop     int
}

func newCell[T comparable](seed T) *cell[T] {
	return &cell[T]{value: seed}
}

func (c *cell[T]) get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// set stores v and forwards it to the attached consumer. It reports whether
// the value changed.
func (c *cell[T]) set(v T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v == c.value {
		return false
	}
	c.value = v
	c.deliverLocked(v)
	return true
}

// attach routes values to fn, discarding the first drop of them. The current
// value counts as the first one.
func (c *cell[T]) attach(fn func(T), drop int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
	c.drop = drop
	c.deliverLocked(c.value)
}

func (c *cell[T]) detach() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = nil
}

func (c *cell[T]) deliverLocked(v T) {
	if c.onChange == nil {
		return
	}
	if c.drop > 0 {
		c.drop--
		return
	}
	c.onChange(v)
}
