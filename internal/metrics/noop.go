package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncUserRegistered is a no-op.
func (n *NoopRecorder) IncUserRegistered() {}

// IncTokenIssued is a no-op.
func (n *NoopRecorder) IncTokenIssued() {}

// IncIdentityCacheHit is a no-op.
func (n *NoopRecorder) IncIdentityCacheHit() {}

// IncIdentityCacheMiss is a no-op.
func (n *NoopRecorder) IncIdentityCacheMiss() {}

// IncNewsCreated is a no-op.
func (n *NoopRecorder) IncNewsCreated() {}

// IncNewsUpdated is a no-op.
func (n *NoopRecorder) IncNewsUpdated() {}

// IncNewsDeleted is a no-op.
func (n *NoopRecorder) IncNewsDeleted() {}
