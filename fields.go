package vista

import "github.com/zoobzio/capitan"

// Field keys for orchestrator events.
var (
	// KeyPipeline is the name of the pipeline emitting the event.
	KeyPipeline = capitan.NewStringKey("pipeline")

	// KeySlot is the name of the state slot being updated.
	KeySlot = capitan.NewStringKey("slot")

	// KeyFetchID correlates the signals of a single fetch.
	KeyFetchID = capitan.NewStringKey("fetch_id")

	// KeyGeneration is the switch-latest generation of a search fetch.
	KeyGeneration = capitan.NewIntKey("generation")

	// KeyQuery is the debounced search text.
	KeyQuery = capitan.NewStringKey("query")

	// KeyPosition is the position parameter passed to the data source.
	KeyPosition = capitan.NewIntKey("position")

	// KeyCategory is the category parameter passed to the data source.
	KeyCategory = capitan.NewStringKey("category")

	// KeyValid is the validity computed for a debounced password.
	KeyValid = capitan.NewBoolKey("valid")

	// KeyStatus is the status tag of a fetched view state.
	KeyStatus = capitan.NewStringKey("status")

	// KeyDebounce is the configured debounce duration.
	KeyDebounce = capitan.NewDurationKey("debounce")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeyOldState is the previous lifecycle state before a transition.
	KeyOldState = capitan.NewStringKey("old_state")

	// KeyNewState is the new lifecycle state after a transition.
	KeyNewState = capitan.NewStringKey("new_state")
)
