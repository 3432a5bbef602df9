package vista

import "context"

// ChannelSource serves fetches from an existing ViewState channel.
// Each Fetch forwards the next value received from the channel as its
// terminal state. Useful for testing and custom sources that already
// produce view states.
type ChannelSource struct {
	ch <-chan ViewState
}

// NewChannelSource creates a ChannelSource reading from ch.
func NewChannelSource(ch <-chan ViewState) *ChannelSource {
	return &ChannelSource{ch: ch}
}

// Fetch returns a channel that emits the next value from the wrapped channel
// and then closes. The returned channel closes without a value if the
// wrapped channel is closed or ctx is canceled first.
func (s *ChannelSource) Fetch(ctx context.Context, _ int, _ string) (<-chan ViewState, error) {
	out := make(chan ViewState)
	go func() {
		defer close(out)
		select {
		case <-ctx.Done():
			return
		case v, ok := <-s.ch:
			if !ok {
				return
			}
			select {
			case out <- v:
			case <-ctx.Done():
			}
		}
	}()
	return out, nil
}
