package vista

import (
	"context"
	"fmt"
	"time"

	"github.com/zoobzio/clockz"
)

// Defaults for SimulatedSource.
const (
	DefaultSimulatedItems = 5
	DefaultSimulatedDelay = 500 * time.Millisecond
)

// SimulatedSource is a stand-in DataSource that builds a fixed list of items
// for the requested position and category, pausing between items.
type SimulatedSource struct {
	clock clockz.Clock
	delay time.Duration
	count int
	fail  bool
}

// NewSimulatedSource creates a SimulatedSource producing five items with a
// 500ms pause after each one.
func NewSimulatedSource() *SimulatedSource {
	return &SimulatedSource{
		clock: clockz.RealClock,
		delay: DefaultSimulatedDelay,
		count: DefaultSimulatedItems,
	}
}

// Clock sets the clock used for the per-item pause.
func (s *SimulatedSource) Clock(clock clockz.Clock) *SimulatedSource {
	s.clock = clock
	return s
}

// Delay sets the pause after each generated item.
func (s *SimulatedSource) Delay(d time.Duration) *SimulatedSource {
	s.delay = d
	return s
}

// Count sets the number of generated items.
func (s *SimulatedSource) Count(n int) *SimulatedSource {
	s.count = n
	return s
}

// Fail makes every fetch end with a StatusError state instead of the items.
func (s *SimulatedSource) Fail() *SimulatedSource {
	s.fail = true
	return s
}

// Fetch generates the items in the background and emits a single terminal
// state. Canceling ctx stops the pending timer and closes the channel
// without emitting.
func (s *SimulatedSource) Fetch(ctx context.Context, position int, category string) (<-chan ViewState, error) {
	out := make(chan ViewState)
	go func() {
		defer close(out)

		items := make([]Item, 0, s.count)
		for i := 0; i < s.count; i++ {
			items = append(items, Item{
				ID:        i,
				Component: Component{ID: i, Model: fmt.Sprintf("V%d", i)},
				Position:  position,
				Category:  category,
			})
			if s.delay <= 0 {
				continue
			}
			timer := s.clock.NewTimer(s.delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C():
			}
		}

		result := ViewState{Items: items, Status: StatusSuccess}
		if s.fail {
			result = ViewState{Status: StatusError, Error: APIError}
		}

		select {
		case out <- result:
		case <-ctx.Done():
		}
	}()
	return out, nil
}
