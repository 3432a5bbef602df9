package vista

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/zoobzio/clockz"
)

type debounceRecorder struct {
	mu     sync.Mutex
	values []string
}

func (r *debounceRecorder) emit(_ context.Context, v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *debounceRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.values))
	copy(out, r.values)
	return out
}

func waitForCount(t *testing.T, r *debounceRecorder, n int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if len(r.snapshot()) >= n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d debounced values, got %v", n, r.snapshot())
}

func startDebouncer(t *testing.T, interval time.Duration) (*debouncer[string], *debounceRecorder, *clockz.FakeClock) {
	t.Helper()
	clock := clockz.NewFakeClock()
	rec := &debounceRecorder{}
	d := newDebouncer(clock, interval, rec.emit)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		d.run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return d, rec, clock
}

func TestDebouncer_EmitsAfterQuietInterval(t *testing.T) {
	d, rec, clock := startDebouncer(t, 300*time.Millisecond)

	d.push("query")
	clock.Advance(299 * time.Millisecond)
	clock.BlockUntilReady()
	time.Sleep(10 * time.Millisecond)
	if got := rec.snapshot(); len(got) != 0 {
		t.Fatalf("expected nothing before the interval, got %v", got)
	}

	clock.Advance(time.Millisecond)
	clock.BlockUntilReady()
	waitForCount(t, rec, 1)
	if got := rec.snapshot(); got[0] != "query" {
		t.Errorf("expected 'query', got %q", got[0])
	}
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	d, rec, clock := startDebouncer(t, 300*time.Millisecond)

	d.push("q")
	clock.Advance(100 * time.Millisecond)
	clock.BlockUntilReady()
	d.push("qu")
	clock.Advance(100 * time.Millisecond)
	clock.BlockUntilReady()
	d.push("que")

	// 500ms since the first push, but only 300ms have to pass after the last one.
	clock.Advance(200 * time.Millisecond)
	clock.BlockUntilReady()
	time.Sleep(10 * time.Millisecond)
	if got := rec.snapshot(); len(got) != 0 {
		t.Fatalf("expected timer reset by each push, got %v", got)
	}

	clock.Advance(100 * time.Millisecond)
	clock.BlockUntilReady()
	waitForCount(t, rec, 1)

	time.Sleep(10 * time.Millisecond)
	got := rec.snapshot()
	if len(got) != 1 || got[0] != "que" {
		t.Errorf("expected only the last value of the burst, got %v", got)
	}
}

func TestDebouncer_EmitsEachSettledValue(t *testing.T) {
	d, rec, clock := startDebouncer(t, 700*time.Millisecond)

	d.push("one")
	clock.Advance(700 * time.Millisecond)
	clock.BlockUntilReady()
	waitForCount(t, rec, 1)

	d.push("two")
	clock.Advance(700 * time.Millisecond)
	clock.BlockUntilReady()
	waitForCount(t, rec, 2)

	got := rec.snapshot()
	if got[0] != "one" || got[1] != "two" {
		t.Errorf("expected [one two], got %v", got)
	}
}

func TestDebouncer_StaleFireIgnored(t *testing.T) {
	clock := clockz.NewFakeClock()
	rec := &debounceRecorder{}
	d := newDebouncer(clock, 300*time.Millisecond, rec.emit)

	d.push("old")
	oldFire, oldGen := d.current()
	clock.Advance(300 * time.Millisecond)
	clock.BlockUntilReady()
	<-oldFire

	// The timer has fired but nobody consumed the value yet; a newer push wins.
	d.push("new")
	if _, ok := d.take(oldGen); ok {
		t.Fatal("expected the fire for the superseded value to be ignored")
	}

	newFire, newGen := d.current()
	clock.Advance(300 * time.Millisecond)
	clock.BlockUntilReady()
	select {
	case <-newFire:
	case <-time.After(time.Second):
		t.Fatal("expected the timer armed by the newer push to fire")
	}
	v, ok := d.take(newGen)
	if !ok || v != "new" {
		t.Errorf("expected 'new' once its interval elapsed, got %q %v", v, ok)
	}
}

func TestDebouncer_PushAfterIdleAdvance(t *testing.T) {
	d, rec, clock := startDebouncer(t, 300*time.Millisecond)

	// Time passing with nothing pending must not disarm later pushes.
	clock.Advance(time.Second)
	clock.BlockUntilReady()

	d.push("late")
	clock.Advance(300 * time.Millisecond)
	clock.BlockUntilReady()
	waitForCount(t, rec, 1)

	clock.Advance(time.Second)
	clock.BlockUntilReady()
	d.push("later")
	clock.Advance(300 * time.Millisecond)
	clock.BlockUntilReady()
	waitForCount(t, rec, 2)

	got := rec.snapshot()
	if got[0] != "late" || got[1] != "later" {
		t.Errorf("expected [late later], got %v", got)
	}
}

func TestDebouncer_SupersededTimerStopped(t *testing.T) {
	d, rec, clock := startDebouncer(t, 300*time.Millisecond)

	d.push("a")
	clock.Advance(200 * time.Millisecond)
	clock.BlockUntilReady()
	d.push("b")
	clock.Advance(200 * time.Millisecond)
	clock.BlockUntilReady()
	d.push("c")
	clock.Advance(300 * time.Millisecond)
	clock.BlockUntilReady()
	waitForCount(t, rec, 1)

	d.push("d")
	clock.Advance(300 * time.Millisecond)
	clock.BlockUntilReady()
	waitForCount(t, rec, 2)

	time.Sleep(10 * time.Millisecond)
	got := rec.snapshot()
	if len(got) != 2 || got[0] != "c" || got[1] != "d" {
		t.Errorf("expected [c d], got %v", got)
	}
}

func TestDebouncer_StopsOnCancel(t *testing.T) {
	clock := clockz.NewFakeClock()
	rec := &debounceRecorder{}
	d := newDebouncer(clock, 100*time.Millisecond, rec.emit)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		d.run(ctx)
	}()

	d.push("pending")
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected run to return after cancel")
	}

	clock.Advance(time.Second)
	clock.BlockUntilReady()
	if got := rec.snapshot(); len(got) != 0 {
		t.Errorf("expected no emission after cancel, got %v", got)
	}
}
