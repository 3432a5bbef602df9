package vista

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/zoobzio/capitan"
)

// searchPipeline debounces search text, drops blank queries and runs one
// fetch per remaining query. A new query cancels the fetch still in flight
// for the previous one; only the fetch of the latest generation may publish.
type searchPipeline struct {
	o         *Orchestrator
	publisher *publisher[ViewState]
	debouncer *debouncer[string]

	mu         sync.Mutex
	generation int
	cancel     context.CancelFunc
}

func newSearchPipeline(o *Orchestrator) *searchPipeline {
	p := &searchPipeline{
		o:         o,
		publisher: newPublisher(o, PipelineSearch, o.searchState, ViewState.Merge, o.searchOpts),
	}
	p.debouncer = newDebouncer(o.clock, o.searchDebounce, p.onQuery)
	return p
}

func (p *searchPipeline) start(ctx context.Context) {
	p.o.goTracked(func() {
		p.debouncer.run(ctx)
		p.cancelActive()
	})
	p.o.searchInput.attach(p.debouncer.push, 0)
}

// onQuery receives a debounced query.
func (p *searchPipeline) onQuery(ctx context.Context, query string) {
	if strings.TrimSpace(query) == "" {
		capitan.Emit(ctx, SearchSkipped,
			KeyPipeline.Field(PipelineSearch),
			KeyDebounce.Field(p.o.searchDebounce),
		)
		return
	}
	capitan.Emit(ctx, SearchDebounced,
		KeyPipeline.Field(PipelineSearch),
		KeyQuery.Field(query),
		KeyDebounce.Field(p.o.searchDebounce),
	)
	p.switchTo(ctx)
}

// switchTo cancels the active fetch and starts a new generation.
func (p *searchPipeline) switchTo(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if ctx.Err() != nil {
		return
	}
	if p.cancel != nil {
		p.cancel()
	}

	p.generation++
	generation := p.generation
	fetchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	fetchID := uuid.NewString()

	p.o.goTracked(func() {
		defer cancel()
		p.o.fetch(fetchCtx, PipelineSearch, fetchID, generation, func(state ViewState) {
			p.deliver(fetchCtx, generation, state)
		})
	})
}

// deliver publishes state if its generation is still the latest. The
// publish chain runs unlocked; the generation is checked again under the
// lock right before the store.
func (p *searchPipeline) deliver(ctx context.Context, generation int, state ViewState) {
	if !p.isLatest(ctx, generation) {
		return
	}
	p.publisher.publishIf(ctx, state, func(store func() bool) bool {
		p.mu.Lock()
		defer p.mu.Unlock()
		if generation != p.generation || ctx.Err() != nil {
			return false
		}
		return store()
	})
}

func (p *searchPipeline) isLatest(ctx context.Context, generation int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return generation == p.generation && ctx.Err() == nil
}

func (p *searchPipeline) cancelActive() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}
