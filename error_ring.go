package vista

import "sync"

// errorRing keeps the most recent errors up to a fixed capacity.
// A nil ring discards everything.
type errorRing struct {
	mu     sync.Mutex
	limit  int
	errors []error
}

// newErrorRing returns nil when size is not positive.
func newErrorRing(size int) *errorRing {
	if size <= 0 {
		return nil
	}
	return &errorRing{limit: size, errors: make([]error, 0, size)}
}

func (r *errorRing) push(err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.errors) == r.limit {
		copy(r.errors, r.errors[1:])
		r.errors = r.errors[:r.limit-1]
	}
	r.errors = append(r.errors, err)
}

// all returns a copy of the retained errors, oldest first.
func (r *errorRing) all() []error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.errors) == 0 {
		return nil
	}
	out := make([]error, len(r.errors))
	copy(out, r.errors)
	return out
}
