package vista

// Request carries one state update through a publish pipeline. It provides
// the snapshot currently in the slot, the raw value the pipeline produced and
// the merged snapshot about to be stored, so middleware can decide based on
// what changed.
type Request[T any] struct {
	// Pipeline is the name of the pipeline publishing the update.
	Pipeline string

	// Previous is the snapshot in the slot before this update.
	Previous T

	// Incoming is the value produced by the pipeline: a fetch outcome or a
	// freshly validated password.
	Incoming T

	// Current is the snapshot that will be stored. Middleware may modify it.
	Current T

	// commit, when set, decides under its own lock whether store may run.
	commit func(store func() bool) bool
}
