package vista

// Lifecycle represents the current lifecycle state of an Orchestrator.
type Lifecycle int32

const (
	// LifecycleIdle indicates the Orchestrator has been constructed but its
	// pipelines have not been started.
	LifecycleIdle Lifecycle = iota

	// LifecycleRunning indicates the pipelines are listening for input.
	LifecycleRunning

	// LifecycleStopped indicates the Orchestrator has been disposed. In-flight
	// fetches and debounce timers have been cancelled and slots are closed.
	LifecycleStopped
)

// String returns the string representation of the lifecycle state.
func (l Lifecycle) String() string {
	switch l {
	case LifecycleIdle:
		return "idle"
	case LifecycleRunning:
		return "running"
	case LifecycleStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
