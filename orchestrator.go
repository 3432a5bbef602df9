package vista

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// Default debounce intervals.
const (
	DefaultSearchDebounce   = 300 * time.Millisecond
	DefaultPasswordDebounce = 700 * time.Millisecond
)

// Pipeline and slot names used in signals, metrics and logs.
const (
	PipelineList     = "list"
	PipelineSearch   = "search"
	PipelinePassword = "password"
)

var (
	// ErrAlreadyStarted is returned by Start when called more than once.
	ErrAlreadyStarted = errors.New("orchestrator already started")

	// ErrStopped is returned by Start after Stop.
	ErrStopped = errors.New("orchestrator stopped")
)

// Orchestrator runs the three view pipelines against one DataSource and
// exposes their state slots.
//
//   - list: fetches once on Start and merges the outcome into ListState.
//   - search: debounces submitted queries, drops blank ones and restarts the
//     fetch for each remaining query, cancelling the previous one.
//   - password: drops the placeholder, debounces submitted passwords and
//     publishes each with its validity.
type Orchestrator struct {
	source           DataSource
	params           Params
	clock            clockz.Clock
	searchDebounce   time.Duration
	passwordDebounce time.Duration
	passwordRule     PasswordRule
	log              zerolog.Logger
	metrics          MetricsProvider
	onStop           func(Lifecycle)

	listOpts     []PublishOption[ViewState]
	searchOpts   []PublishOption[ViewState]
	passwordOpts []PublishOption[PasswordState]

	listState     *Slot[ViewState]
	searchState   *Slot[ViewState]
	passwordState *Slot[PasswordState]

	searchInput   *cell[string]
	passwordInput *cell[string]

	lifecycle    atomic.Int32
	lastError    atomic.Pointer[error]
	errorHistory *errorRing

	mu      sync.Mutex
	started bool
	stopped bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates an Orchestrator that fetches from source with the given
// startup parameters. Slots are created immediately and hold their defaults
// until Start.
//
// Example:
//
//	o := vista.New(source, vista.Params{Position: 1, Category: "Random"}).
//	    Logger(log)
//	if err := o.Start(ctx); err != nil {
//	    return err
//	}
//	defer o.Stop()
//	o.SubmitSearchQuery("query")
func New(source DataSource, params Params) *Orchestrator {
	o := &Orchestrator{
		source:           source,
		params:           params,
		clock:            clockz.RealClock,
		searchDebounce:   DefaultSearchDebounce,
		passwordDebounce: DefaultPasswordDebounce,
		passwordRule:     defaultPasswordRule,
		log:              zerolog.Nop(),
		errorHistory:     newErrorRing(0),
		listState:        NewSlot(PipelineList, ViewState{}, ViewState.Equal),
		searchState:      NewSlot(PipelineSearch, ViewState{}, ViewState.Equal),
		passwordState: NewSlot(PipelinePassword, PasswordState{}, func(a, b PasswordState) bool {
			return a == b
		}),
		searchInput:   newCell(""),
		passwordInput: newCell(""),
	}
	o.lifecycle.Store(int32(LifecycleIdle))
	return o
}

// -----------------------------------------------------------------------------
// Chainable Instance Configuration
// -----------------------------------------------------------------------------

// Clock sets a custom clock for debouncing and fetch timing.
// Use this with clockz.FakeClock for deterministic testing.
// Must be called before Start().
func (o *Orchestrator) Clock(clock clockz.Clock) *Orchestrator {
	o.clock = clock
	return o
}

// SearchDebounce sets the quiet interval for search queries.
// Default: 300ms. Must be called before Start().
func (o *Orchestrator) SearchDebounce(d time.Duration) *Orchestrator {
	o.searchDebounce = d
	return o
}

// PasswordDebounce sets the quiet interval for passwords.
// Default: 700ms. Must be called before Start().
func (o *Orchestrator) PasswordDebounce(d time.Duration) *Orchestrator {
	o.passwordDebounce = d
	return o
}

// PasswordRules replaces the rules used to compute password validity.
// Default: DefaultPasswordRules. Must be called before Start().
func (o *Orchestrator) PasswordRules(rules ...PasswordRule) *Orchestrator {
	o.passwordRule = AllRules(rules...)
	return o
}

// Logger sets the structured logger. Default: zerolog.Nop().
// Must be called before Start().
func (o *Orchestrator) Logger(log zerolog.Logger) *Orchestrator {
	o.log = log
	return o
}

// Metrics sets a metrics provider for observability integration.
// Must be called before Start().
func (o *Orchestrator) Metrics(provider MetricsProvider) *Orchestrator {
	o.metrics = provider
	return o
}

// OnStop sets a callback invoked once the orchestrator has been disposed.
// Must be called before Start().
func (o *Orchestrator) OnStop(fn func(Lifecycle)) *Orchestrator {
	o.onStop = fn
	return o
}

// ErrorHistorySize sets the number of recent errors to retain.
// Use 0 (default) to only retain the most recent error via LastError().
// Must be called before Start().
func (o *Orchestrator) ErrorHistorySize(n int) *Orchestrator {
	o.errorHistory = newErrorRing(n)
	return o
}

// ListOptions configures the publish pipeline of the list slot.
// Must be called before Start().
func (o *Orchestrator) ListOptions(opts ...PublishOption[ViewState]) *Orchestrator {
	o.listOpts = append(o.listOpts, opts...)
	return o
}

// SearchOptions configures the publish pipeline of the search slot.
// Must be called before Start().
func (o *Orchestrator) SearchOptions(opts ...PublishOption[ViewState]) *Orchestrator {
	o.searchOpts = append(o.searchOpts, opts...)
	return o
}

// PasswordOptions configures the publish pipeline of the password slot.
// Must be called before Start().
func (o *Orchestrator) PasswordOptions(opts ...PublishOption[PasswordState]) *Orchestrator {
	o.passwordOpts = append(o.passwordOpts, opts...)
	return o
}

// -----------------------------------------------------------------------------
// Accessors
// -----------------------------------------------------------------------------

// Params returns the startup parameters.
func (o *Orchestrator) Params() Params {
	return o.params
}

// ListState returns the slot fed by the startup fetch.
func (o *Orchestrator) ListState() *Slot[ViewState] {
	return o.listState
}

// SearchState returns the slot fed by search fetches.
func (o *Orchestrator) SearchState() *Slot[ViewState] {
	return o.searchState
}

// PasswordState returns the slot fed by debounced passwords.
func (o *Orchestrator) PasswordState() *Slot[PasswordState] {
	return o.passwordState
}

// Lifecycle returns the current lifecycle state.
func (o *Orchestrator) Lifecycle() Lifecycle {
	return Lifecycle(o.lifecycle.Load())
}

// LastError returns the last error recorded, or nil.
// Fetch calls the data source refused and publish pipeline failures are
// recorded here; they never reach callers of the Submit methods. Error
// states yielded by the data source are published as data, not recorded.
func (o *Orchestrator) LastError() error {
	ptr := o.lastError.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// ErrorHistory returns the recent error history, oldest first.
// Returns nil if error history is not enabled (see ErrorHistorySize).
func (o *Orchestrator) ErrorHistory() []error {
	return o.errorHistory.all()
}

// -----------------------------------------------------------------------------
// Lifecycle
// -----------------------------------------------------------------------------

// Start launches the password, list and search pipelines. The list fetch is
// issued immediately. Start returns without waiting for any fetch.
//
// Start can only be called once. Subsequent calls return ErrAlreadyStarted,
// and calls after Stop return ErrStopped.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stopped {
		return ErrStopped
	}
	if o.started {
		return ErrAlreadyStarted
	}
	o.started = true
	runCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	capitan.Emit(ctx, OrchestratorStarted,
		KeyPosition.Field(o.params.Position),
		KeyCategory.Field(o.params.Category),
	)
	o.log.Info().
		Int("position", o.params.Position).
		Str("category", o.params.Category).
		Dur("search_debounce", o.searchDebounce).
		Dur("password_debounce", o.passwordDebounce).
		Msg("orchestrator started")

	newPasswordPipeline(o).start(runCtx)
	newListPipeline(o).start(runCtx)
	newSearchPipeline(o).start(runCtx)

	o.transitionState(ctx, LifecycleIdle, LifecycleRunning)
	return nil
}

// Stop disposes the orchestrator: pending debounces and in-flight fetches are
// cancelled without publishing, and every slot subscription is closed.
// Stop blocks until the pipelines have exited. It is safe to call more than
// once and before Start.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	if o.stopped {
		o.mu.Unlock()
		return
	}
	o.stopped = true
	cancel := o.cancel
	o.mu.Unlock()

	oldState := o.Lifecycle()

	o.searchInput.detach()
	o.passwordInput.detach()
	if cancel != nil {
		cancel()
	}
	o.wg.Wait()

	o.listState.close()
	o.searchState.close()
	o.passwordState.close()

	ctx := context.Background()
	o.transitionState(ctx, oldState, LifecycleStopped)
	capitan.Emit(ctx, OrchestratorStopped)
	o.log.Info().Msg("orchestrator stopped")

	if o.onStop != nil {
		o.onStop(LifecycleStopped)
	}
}

// SubmitSearchQuery replaces the latest search text. Only the last query of a
// burst reaches the data source, and only if it is not blank.
func (o *Orchestrator) SubmitSearchQuery(text string) {
	if o.searchInput.set(text) && o.metrics != nil {
		o.metrics.OnInputReceived(PipelineSearch)
	}
}

// SubmitPassword replaces the latest password text. The value present when
// the quiet interval elapses is validated and published.
func (o *Orchestrator) SubmitPassword(text string) {
	if o.passwordInput.set(text) && o.metrics != nil {
		o.metrics.OnInputReceived(PipelinePassword)
	}
}

// transitionState updates the lifecycle and emits a change event if changed.
func (o *Orchestrator) transitionState(ctx context.Context, oldState, newState Lifecycle) {
	if oldState == newState {
		return
	}
	o.lifecycle.Store(int32(newState))
	capitan.Emit(ctx, LifecycleChanged,
		KeyOldState.Field(oldState.String()),
		KeyNewState.Field(newState.String()),
	)
	if o.metrics != nil {
		o.metrics.OnLifecycleChange(oldState, newState)
	}
}

// setError stores an error atomically and adds it to the error history.
func (o *Orchestrator) setError(err error) {
	e := err
	o.lastError.Store(&e)
	o.errorHistory.push(err)
}

// goTracked runs fn on a goroutine that Stop waits for.
func (o *Orchestrator) goTracked(fn func()) {
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		fn()
	}()
}
