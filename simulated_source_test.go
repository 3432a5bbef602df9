package vista

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/zoobzio/clockz"
)

// receiveAdvancing advances clock until ch yields or closes.
func receiveAdvancing(t *testing.T, clock *clockz.FakeClock, step time.Duration, ch <-chan ViewState) (ViewState, bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case v, ok := <-ch:
			return v, ok
		default:
		}
		clock.Advance(step)
		clock.BlockUntilReady()
		time.Sleep(time.Millisecond)
	}
	t.Fatal("timeout waiting for simulated fetch")
	return ViewState{}, false
}

func TestSimulatedSource_BuildsItems(t *testing.T) {
	clock := clockz.NewFakeClock()
	src := NewSimulatedSource().Clock(clock)

	ch, err := src.Fetch(context.Background(), 1, "Random")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	state, ok := receiveAdvancing(t, clock, DefaultSimulatedDelay, ch)
	if !ok {
		t.Fatal("expected a terminal state")
	}
	if state.Status != StatusSuccess {
		t.Fatalf("expected success, got %v", state.Status)
	}
	if len(state.Items) != DefaultSimulatedItems {
		t.Fatalf("expected %d items, got %d", DefaultSimulatedItems, len(state.Items))
	}
	for i, item := range state.Items {
		want := Item{
			ID:        i,
			Component: Component{ID: i, Model: fmt.Sprintf("V%d", i)},
			Position:  1,
			Category:  "Random",
		}
		if item != want {
			t.Errorf("item %d: expected %+v, got %+v", i, want, item)
		}
	}
}

func TestSimulatedSource_WaitsBetweenItems(t *testing.T) {
	clock := clockz.NewFakeClock()
	src := NewSimulatedSource().Clock(clock).Count(2).Delay(time.Second)

	ch, _ := src.Fetch(context.Background(), 0, "")

	clock.BlockUntilReady()
	time.Sleep(10 * time.Millisecond)
	select {
	case <-ch:
		t.Fatal("expected fetch to wait for its timers")
	default:
	}

	state, ok := receiveAdvancing(t, clock, time.Second, ch)
	if !ok || len(state.Items) != 2 {
		t.Errorf("expected 2 items, got %+v", state)
	}
}

func TestSimulatedSource_NoDelay(t *testing.T) {
	ch, _ := NewSimulatedSource().Delay(0).Fetch(context.Background(), 0, "")

	select {
	case state := <-ch:
		if len(state.Items) != DefaultSimulatedItems {
			t.Errorf("expected %d items, got %d", DefaultSimulatedItems, len(state.Items))
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for fetch")
	}
}

func TestSimulatedSource_Fail(t *testing.T) {
	ch, _ := NewSimulatedSource().Delay(0).Fail().Fetch(context.Background(), 0, "")

	select {
	case state := <-ch:
		if state.Status != StatusError || state.Error != APIError {
			t.Errorf("expected error state, got %+v", state)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for fetch")
	}
}

func TestSimulatedSource_Cancel(t *testing.T) {
	clock := clockz.NewFakeClock()
	ctx, cancel := context.WithCancel(context.Background())

	ch, _ := NewSimulatedSource().Clock(clock).Fetch(ctx, 0, "")
	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected cancelled fetch to close without a value")
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for close")
	}
}
