package vista

import (
	"context"
	"fmt"

	"github.com/zoobzio/capitan"
)

// fetch calls the data source and hands each state it yields to deliver.
// A source that refuses the call is reported as a StatusError outcome.
// Nothing is delivered once ctx is canceled; the abandonment is reported
// as a cancellation, never as an error.
func (o *Orchestrator) fetch(ctx context.Context, pipeline, fetchID string, generation int, deliver func(ViewState)) {
	start := o.clock.Now()
	capitan.Emit(ctx, FetchStarted,
		KeyPipeline.Field(pipeline),
		KeyFetchID.Field(fetchID),
		KeyGeneration.Field(generation),
		KeyPosition.Field(o.params.Position),
		KeyCategory.Field(o.params.Category),
	)
	if o.metrics != nil {
		o.metrics.OnFetchStarted(pipeline)
	}
	log := o.log.With().
		Str("pipeline", pipeline).
		Str("fetch_id", fetchID).
		Int("generation", generation).
		Logger()
	log.Debug().Msg("fetch started")

	states, err := o.source.Fetch(ctx, o.params.Position, o.params.Category)
	if err != nil {
		if ctx.Err() != nil {
			o.fetchCancelled(ctx, pipeline, fetchID, generation)
			return
		}
		err = fmt.Errorf("%s fetch: %w", pipeline, err)
		o.setError(err)
		capitan.Emit(ctx, FetchFailed,
			KeyPipeline.Field(pipeline),
			KeyFetchID.Field(fetchID),
			KeyError.Field(err.Error()),
		)
		log.Warn().Err(err).Msg("fetch failed")
		deliver(ViewState{Status: StatusError, Error: err.Error()})
		return
	}

	for {
		select {
		case <-ctx.Done():
			o.fetchCancelled(ctx, pipeline, fetchID, generation)
			return
		case state, ok := <-states:
			if ctx.Err() != nil {
				o.fetchCancelled(ctx, pipeline, fetchID, generation)
				return
			}
			if !ok {
				return
			}
			capitan.Emit(ctx, FetchCompleted,
				KeyPipeline.Field(pipeline),
				KeyFetchID.Field(fetchID),
				KeyStatus.Field(state.Status.String()),
			)
			if o.metrics != nil {
				o.metrics.OnFetchCompleted(pipeline, o.clock.Since(start))
			}
			log.Debug().
				Str("status", state.Status.String()).
				Int("items", len(state.Items)).
				Msg("fetch completed")
			deliver(state)
		}
	}
}

func (o *Orchestrator) fetchCancelled(ctx context.Context, pipeline, fetchID string, generation int) {
	capitan.Emit(context.WithoutCancel(ctx), FetchCancelled,
		KeyPipeline.Field(pipeline),
		KeyFetchID.Field(fetchID),
		KeyGeneration.Field(generation),
	)
	if o.metrics != nil {
		o.metrics.OnFetchCancelled(pipeline)
	}
	o.log.Debug().
		Str("pipeline", pipeline).
		Str("fetch_id", fetchID).
		Msg("fetch cancelled")
}
