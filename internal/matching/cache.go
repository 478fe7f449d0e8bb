package matching

import (
	"context"
	"sync"

	"github.com/jonathan/richat-staffing/internal/types"
)

// ScoreCache memoizes pair scores keyed by (consultant ID, tender ID).
// It is an optimization only: implementations report failures as misses and
// the engine recomputes.
type ScoreCache interface {
	Get(ctx context.Context, consultantID, tenderID string) (types.ScoreBreakdown, bool)
	Put(ctx context.Context, consultantID, tenderID string, score types.ScoreBreakdown)
	Delete(ctx context.Context, consultantID, tenderID string)
	InvalidateTender(ctx context.Context, tenderID string)
	InvalidateConsultant(ctx context.Context, consultantID string)
	Clear(ctx context.Context)
}

type pairKey struct {
	consultantID string
	tenderID     string
}

// MemoryCache is the process-local ScoreCache. It is safe for concurrent use.
type MemoryCache struct {
	mu     sync.RWMutex
	scores map[pairKey]types.ScoreBreakdown
}

// NewMemoryCache creates an empty MemoryCache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{scores: make(map[pairKey]types.ScoreBreakdown)}
}

func (m *MemoryCache) Get(_ context.Context, consultantID, tenderID string) (types.ScoreBreakdown, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.scores[pairKey{consultantID, tenderID}]
	return s, ok
}

func (m *MemoryCache) Put(_ context.Context, consultantID, tenderID string, score types.ScoreBreakdown) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores[pairKey{consultantID, tenderID}] = score
}

func (m *MemoryCache) Delete(_ context.Context, consultantID, tenderID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.scores, pairKey{consultantID, tenderID})
}

func (m *MemoryCache) InvalidateTender(_ context.Context, tenderID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.scores {
		if k.tenderID == tenderID {
			delete(m.scores, k)
		}
	}
}

func (m *MemoryCache) InvalidateConsultant(_ context.Context, consultantID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.scores {
		if k.consultantID == consultantID {
			delete(m.scores, k)
		}
	}
}

func (m *MemoryCache) Clear(_ context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores = make(map[pairKey]types.ScoreBreakdown)
}

// Len returns the number of cached pairs
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.scores)
}
