package vista

import (
	"context"

	"github.com/google/uuid"
)

// listPipeline issues the startup fetch and merges its outcome into the
// list slot.
type listPipeline struct {
	o         *Orchestrator
	publisher *publisher[ViewState]
}

func newListPipeline(o *Orchestrator) *listPipeline {
	return &listPipeline{
		o:         o,
		publisher: newPublisher(o, PipelineList, o.listState, ViewState.Merge, o.listOpts),
	}
}

func (p *listPipeline) start(ctx context.Context) {
	fetchID := uuid.NewString()
	p.o.goTracked(func() {
		p.o.fetch(ctx, PipelineList, fetchID, 0, func(state ViewState) {
			p.publisher.publish(ctx, state)
		})
	})
}
