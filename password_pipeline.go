package vista

import (
	"context"

	"github.com/zoobzio/capitan"
)

// passwordPipeline drops the placeholder password, debounces the rest and
// publishes each debounced value with its validity.
type passwordPipeline struct {
	o         *Orchestrator
	publisher *publisher[PasswordState]
	debouncer *debouncer[string]
}

func newPasswordPipeline(o *Orchestrator) *passwordPipeline {
	p := &passwordPipeline{
		o: o,
		publisher: newPublisher(o, PipelinePassword, o.passwordState, func(_, incoming PasswordState) PasswordState {
			return incoming
		}, o.passwordOpts),
	}
	p.debouncer = newDebouncer(o.clock, o.passwordDebounce, p.onPassword)
	return p
}

func (p *passwordPipeline) start(ctx context.Context) {
	p.o.goTracked(func() {
		p.debouncer.run(ctx)
	})
	p.o.passwordInput.attach(p.debouncer.push, 1)
}

func (p *passwordPipeline) onPassword(ctx context.Context, password string) {
	state := PasswordState{
		Password: password,
		Valid:    p.o.passwordRule(password),
	}
	capitan.Emit(ctx, PasswordDebounced,
		KeyPipeline.Field(PipelinePassword),
		KeyValid.Field(state.Valid),
		KeyDebounce.Field(p.o.passwordDebounce),
	)
	p.publisher.publish(ctx, state)
}
