package vista

import "time"

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on key orchestrator events.
type MetricsProvider interface {
	// OnLifecycleChange is called when the orchestrator transitions between states.
	OnLifecycleChange(from, to Lifecycle)

	// OnInputReceived is called when a caller submits a changed input value.
	OnInputReceived(pipeline string)

	// OnFetchStarted is called when a pipeline calls the data source.
	OnFetchStarted(pipeline string)

	// OnFetchCompleted is called when a fetch delivers its terminal state.
	// Duration is the time between the call and the delivery.
	OnFetchCompleted(pipeline string, duration time.Duration)

	// OnFetchCancelled is called when an in-flight fetch is abandoned.
	OnFetchCancelled(pipeline string)

	// OnPublish is called when a slot receives a changed snapshot.
	OnPublish(slot string)

	// OnPublishFailure is called when the publish pipeline returns an error.
	OnPublishFailure(slot string)
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnLifecycleChange(_, _ Lifecycle)           {}
func (NoOpMetricsProvider) OnInputReceived(_ string)                   {}
func (NoOpMetricsProvider) OnFetchStarted(_ string)                    {}
func (NoOpMetricsProvider) OnFetchCompleted(_ string, _ time.Duration) {}
func (NoOpMetricsProvider) OnFetchCancelled(_ string)                  {}
func (NoOpMetricsProvider) OnPublish(_ string)                         {}
func (NoOpMetricsProvider) OnPublishFailure(_ string)                  {}
