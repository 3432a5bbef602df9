// Package testing provides test utilities and helpers for vista orchestrators.
package testing

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/zoobzio/clockz"

	"github.com/zoobzio/vista"
)

// Call records the arguments of one DataSource fetch.
type Call struct {
	Position int
	Category string
}

// RecordingSource is a DataSource test double. It records every call,
// answers each one with a configurable terminal state and, when held,
// blocks each fetch until the test releases it.
type RecordingSource struct {
	mu        sync.Mutex
	outcome   func(call int) vista.ViewState
	hold      bool
	calls     []Call
	gates     map[int]chan struct{}
	cancelled atomic.Int32
	delivered atomic.Int32
}

// NewRecordingSource creates a source that answers every fetch with outcome.
func NewRecordingSource(outcome vista.ViewState) *RecordingSource {
	return &RecordingSource{
		outcome: func(int) vista.ViewState { return outcome },
		gates:   make(map[int]chan struct{}),
	}
}

// OutcomeFunc answers the n-th fetch (0-based) with fn(n).
func (s *RecordingSource) OutcomeFunc(fn func(call int) vista.ViewState) *RecordingSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcome = fn
	return s
}

// Hold makes every later fetch wait for Release before answering.
func (s *RecordingSource) Hold() *RecordingSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hold = true
	return s
}

// Release lets the n-th fetch (0-based) answer. It may be called before the
// fetch starts.
func (s *RecordingSource) Release(call int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	close(s.gateLocked(call))
}

// Calls returns the recorded fetch arguments in call order.
func (s *RecordingSource) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallCount returns the number of fetches issued.
func (s *RecordingSource) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// Cancelled returns the number of fetches abandoned before they answered.
func (s *RecordingSource) Cancelled() int {
	return int(s.cancelled.Load())
}

// Delivered returns the number of fetches whose answer was received.
func (s *RecordingSource) Delivered() int {
	return int(s.delivered.Load())
}

// Fetch implements vista.DataSource.
func (s *RecordingSource) Fetch(ctx context.Context, position int, category string) (<-chan vista.ViewState, error) {
	s.mu.Lock()
	call := len(s.calls)
	s.calls = append(s.calls, Call{Position: position, Category: category})
	outcome := s.outcome(call)
	hold := s.hold
	gate := s.gateLocked(call)
	s.mu.Unlock()

	out := make(chan vista.ViewState)
	go func() {
		defer close(out)
		if hold {
			select {
			case <-gate:
			case <-ctx.Done():
				s.cancelled.Add(1)
				return
			}
		}
		select {
		case out <- outcome:
			s.delivered.Add(1)
		case <-ctx.Done():
			s.cancelled.Add(1)
		}
	}()
	return out, nil
}

func (s *RecordingSource) gateLocked(call int) chan struct{} {
	gate, ok := s.gates[call]
	if !ok {
		gate = make(chan struct{})
		s.gates[call] = gate
	}
	return gate
}

// Ensure RecordingSource implements vista.DataSource.
var _ vista.DataSource = (*RecordingSource)(nil)

// FiveItems builds the five-item list used across the test suite.
func FiveItems(position int, category string) []vista.Item {
	items := make([]vista.Item, 5)
	for i := range items {
		items[i] = vista.Item{
			ID:        i,
			Component: vista.Component{ID: i, Model: fmt.Sprintf("V%d", i)},
			Position:  position,
			Category:  category,
		}
	}
	return items
}

// Success returns a terminal success state carrying items.
func Success(items []vista.Item) vista.ViewState {
	return vista.ViewState{Items: items, Status: vista.StatusSuccess}
}

// Failure returns a terminal error state.
func Failure() vista.ViewState {
	return vista.ViewState{Status: vista.StatusError, Error: vista.APIError}
}

// NewTestOrchestrator creates and starts an orchestrator driven by a fake
// clock. The orchestrator is stopped when the test ends.
func NewTestOrchestrator(t *testing.T, source vista.DataSource, params vista.Params) (*vista.Orchestrator, *clockz.FakeClock) {
	t.Helper()
	clock := clockz.NewFakeClock()
	o := vista.New(source, params).Clock(clock)
	if err := o.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(o.Stop)
	return o, clock
}

// Advance moves the fake clock forward and waits for due timers to fire.
func Advance(clock *clockz.FakeClock, d time.Duration) {
	clock.Advance(d)
	clock.BlockUntilReady()
}

// WaitFor polls a condition until it returns true or timeout is reached.
// Returns true if the condition was met, false if timeout occurred.
func WaitFor(t *testing.T, timeout time.Duration, condition func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return condition()
}

// WaitForVersion waits until the slot has published at least version snapshots.
func WaitForVersion[T any](t *testing.T, slot *vista.Slot[T], version uint64, timeout time.Duration) bool {
	t.Helper()
	return WaitFor(t, timeout, func() bool {
		return slot.Version() >= version
	})
}

// RequireViewState fails the test immediately if got and want differ.
func RequireViewState(t *testing.T, got, want vista.ViewState) {
	t.Helper()
	if !got.Equal(want) {
		t.Fatalf("expected view state %+v, got %+v", want, got)
	}
}

// RequireStable fails the test if the slot publishes anything within window.
func RequireStable[T any](t *testing.T, slot *vista.Slot[T], window time.Duration) {
	t.Helper()
	before := slot.Version()
	time.Sleep(window)
	if after := slot.Version(); after != before {
		t.Fatalf("expected slot %s to stay at version %d, got %d", slot.Name(), before, after)
	}
}
