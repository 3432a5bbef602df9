package vista

import "github.com/zoobzio/capitan"

// Orchestrator lifecycle signals.
var (
	// OrchestratorStarted is emitted when an Orchestrator starts its pipelines.
	OrchestratorStarted = capitan.NewSignal(
		"vista.orchestrator.started",
		"Orchestrator pipelines started",
	)

	// OrchestratorStopped is emitted when an Orchestrator is disposed.
	OrchestratorStopped = capitan.NewSignal(
		"vista.orchestrator.stopped",
		"Orchestrator pipelines stopped",
	)

	// LifecycleChanged is emitted when an Orchestrator transitions between lifecycle states.
	LifecycleChanged = capitan.NewSignal(
		"vista.lifecycle.changed",
		"Orchestrator lifecycle transition",
	)
)

// Fetch signals.
var (
	// FetchStarted is emitted when a pipeline calls the data source.
	FetchStarted = capitan.NewSignal(
		"vista.fetch.started",
		"Data source fetch started",
	)

	// FetchCompleted is emitted when a fetch delivers its terminal state.
	FetchCompleted = capitan.NewSignal(
		"vista.fetch.completed",
		"Data source fetch completed",
	)

	// FetchCancelled is emitted when an in-flight fetch is superseded or disposed.
	FetchCancelled = capitan.NewSignal(
		"vista.fetch.cancelled",
		"Data source fetch cancelled",
	)

	// FetchFailed is emitted when the data source refuses to start a fetch.
	FetchFailed = capitan.NewSignal(
		"vista.fetch.failed",
		"Data source fetch failed",
	)
)

// Input signals.
var (
	// SearchDebounced is emitted when a search query survives the quiet interval.
	SearchDebounced = capitan.NewSignal(
		"vista.search.debounced",
		"Search query debounced",
	)

	// SearchSkipped is emitted when a debounced search query is blank.
	SearchSkipped = capitan.NewSignal(
		"vista.search.skipped",
		"Blank search query skipped",
	)

	// PasswordDebounced is emitted when a password survives the quiet interval.
	PasswordDebounced = capitan.NewSignal(
		"vista.password.debounced",
		"Password debounced and validated",
	)
)

// Publication signals.
var (
	// SlotPublished is emitted when a state slot receives a new snapshot.
	SlotPublished = capitan.NewSignal(
		"vista.slot.published",
		"State slot updated",
	)

	// PublishFailed is emitted when the publish pipeline rejects an update.
	PublishFailed = capitan.NewSignal(
		"vista.publish.failed",
		"Publish pipeline failed",
	)
)
