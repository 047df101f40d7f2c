// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Auth metrics
	IncUserRegistered()
	IncTokenIssued()
	IncIdentityCacheHit()
	IncIdentityCacheMiss()

	// News management metrics
	IncNewsCreated()
	IncNewsUpdated()
	IncNewsDeleted()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
