package vista

import (
	"context"
	"testing"
	"time"
)

func TestChannelSource_ForwardsOneValuePerFetch(t *testing.T) {
	ch := make(chan ViewState, 2)
	ch <- ViewState{Status: StatusSuccess, Items: []Item{{ID: 1}}}
	ch <- ViewState{Status: StatusError, Error: APIError}
	src := NewChannelSource(ch)

	first, err := src.Fetch(context.Background(), 0, "")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if s := <-first; s.Status != StatusSuccess {
		t.Errorf("expected success, got %v", s.Status)
	}
	if _, ok := <-first; ok {
		t.Error("expected channel to close after one value")
	}

	second, _ := src.Fetch(context.Background(), 0, "")
	if s := <-second; s.Status != StatusError {
		t.Errorf("expected error, got %v", s.Status)
	}
}

func TestChannelSource_ClosedInput(t *testing.T) {
	ch := make(chan ViewState)
	close(ch)

	out, _ := NewChannelSource(ch).Fetch(context.Background(), 0, "")
	if _, ok := <-out; ok {
		t.Error("expected no value from closed input")
	}
}

func TestChannelSource_Cancel(t *testing.T) {
	ch := make(chan ViewState)
	ctx, cancel := context.WithCancel(context.Background())

	out, _ := NewChannelSource(ch).Fetch(ctx, 0, "")
	cancel()

	select {
	case _, ok := <-out:
		if ok {
			t.Error("expected channel to close without a value")
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for close")
	}
}
