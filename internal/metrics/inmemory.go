package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered      uint64
	TokensIssued         uint64
	IdentityCacheHits    uint64
	IdentityCacheMisses  uint64
	NewsCreated          uint64
	NewsUpdated          uint64
	NewsDeleted          uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	usersRegistered     uint64
	tokensIssued        uint64
	identityCacheHits   uint64
	identityCacheMisses uint64
	newsCreated         uint64
	newsUpdated         uint64
	newsDeleted         uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered:     atomic.LoadUint64(&m.usersRegistered),
		TokensIssued:        atomic.LoadUint64(&m.tokensIssued),
		IdentityCacheHits:   atomic.LoadUint64(&m.identityCacheHits),
		IdentityCacheMisses: atomic.LoadUint64(&m.identityCacheMisses),
		NewsCreated:         atomic.LoadUint64(&m.newsCreated),
		NewsUpdated:         atomic.LoadUint64(&m.newsUpdated),
		NewsDeleted:         atomic.LoadUint64(&m.newsDeleted),
	}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncTokenIssued increments the issued token counter.
func (m *InMemoryRecorder) IncTokenIssued() {
	atomic.AddUint64(&m.tokensIssued, 1)
}

// IncIdentityCacheHit increments the cache hit counter.
func (m *InMemoryRecorder) IncIdentityCacheHit() {
	atomic.AddUint64(&m.identityCacheHits, 1)
}

// IncIdentityCacheMiss increments the cache miss counter.
func (m *InMemoryRecorder) IncIdentityCacheMiss() {
	atomic.AddUint64(&m.identityCacheMisses, 1)
}

// IncNewsCreated increments the news created counter.
func (m *InMemoryRecorder) IncNewsCreated() {
	atomic.AddUint64(&m.newsCreated, 1)
}

// IncNewsUpdated increments the news updated counter.
func (m *InMemoryRecorder) IncNewsUpdated() {
	atomic.AddUint64(&m.newsUpdated, 1)
}

// IncNewsDeleted increments the news deleted counter.
func (m *InMemoryRecorder) IncNewsDeleted() {
	atomic.AddUint64(&m.newsDeleted, 1)
}
