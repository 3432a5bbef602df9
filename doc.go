// Package vista coordinates asynchronous, time-sensitive view state.
//
// An Orchestrator runs three independent pipelines against one DataSource
// and publishes their results into observable state slots:
//
//	list:     Start → Fetch → Merge → ListState
//	search:   SubmitSearchQuery → Debounce(300ms) → drop blank → switch-latest Fetch → Merge → SearchState
//	password: SubmitPassword → drop placeholder → Debounce(700ms) → Validate → PasswordState
//
// # Merging
//
// Fetch outcomes are merged, not replaced. A success only replaces the item
// list and a failure only replaces the error message, so fields from an
// earlier outcome persist. See ViewState.Merge.
//
// # Cancellation
//
// Each qualifying search query cancels the fetch still running for the
// previous one. A superseded fetch never publishes. Stop cancels everything
// still pending and closes all slot subscriptions.
//
// # Slots
//
// A Slot offers Current for the latest snapshot and Subscribe for the current
// snapshot followed by every later change:
//
//	for state := range o.SearchState().Subscribe(ctx) {
//	    render(state)
//	}
//
// # Observability
//
// Lifecycle, fetch, debounce and publish events are emitted as capitan
// signals (see signals.go). A MetricsProvider and a zerolog.Logger can be
// attached with the chainable configuration methods.
//
// # Example
//
//	o := vista.New(vista.NewSimulatedSource(), vista.Params{Position: 1, Category: "Random"})
//	if err := o.Start(ctx); err != nil {
//	    return err
//	}
//	defer o.Stop()
//
//	o.SubmitSearchQuery("query")
//	o.SubmitPassword("Test@123")
package vista
