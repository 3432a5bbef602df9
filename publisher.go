package vista

import (
	"context"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/pipz"
)

// publisher merges pipeline output into a slot through the publish pipeline.
type publisher[T any] struct {
	o        *Orchestrator
	name     string
	slot     *Slot[T]
	merge    func(prev, incoming T) T
	pipeline pipz.Chainable[*Request[T]]
}

func newPublisher[T any](o *Orchestrator, name string, slot *Slot[T], merge func(prev, incoming T) T, opts []PublishOption[T]) *publisher[T] {
	p := &publisher[T]{o: o, name: name, slot: slot, merge: merge}
	terminal := pipz.Effect("store", func(ctx context.Context, req *Request[T]) error {
		store := func() bool { return p.slot.publish(ctx, req.Current) }
		var stored bool
		if req.commit != nil {
			stored = req.commit(store)
		} else {
			stored = store()
		}
		if stored && o.metrics != nil {
			o.metrics.OnPublish(p.slot.Name())
		}
		return nil
	})
	p.pipeline = buildPipeline[T](terminal, opts)
	return p
}

// publish merges incoming into the current snapshot and stores the result.
// Pipeline failures are recorded and absorbed.
func (p *publisher[T]) publish(ctx context.Context, incoming T) {
	p.publishIf(ctx, incoming, nil)
}

// publishIf is publish with the final store handed to commit, which may
// refuse it. The middleware chain runs without any caller lock held.
func (p *publisher[T]) publishIf(ctx context.Context, incoming T, commit func(store func() bool) bool) {
	prev := p.slot.Current()
	req := &Request[T]{
		Pipeline: p.name,
		Previous: prev,
		Incoming: incoming,
		Current:  p.merge(prev, incoming),
		commit:   commit,
	}

	if _, err := p.pipeline.Process(ctx, req); err != nil {
		if commit != nil && ctx.Err() != nil {
			// Superseded while in the chain.
			return
		}
		p.o.setError(err)
		capitan.Emit(ctx, PublishFailed,
			KeyPipeline.Field(p.name),
			KeySlot.Field(p.slot.Name()),
			KeyError.Field(err.Error()),
		)
		if p.o.metrics != nil {
			p.o.metrics.OnPublishFailure(p.slot.Name())
		}
		p.o.log.Warn().
			Err(err).
			Str("pipeline", p.name).
			Str("slot", p.slot.Name()).
			Msg("publish failed")
	}
}
