package db

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jonathan/richat-staffing/internal/types"
)

// MemoryStore is an in-process store with the same semantics as DB. Records
// are copied on the way in and out so callers never share maps or slices
// with the store. It is safe for concurrent use.
type MemoryStore struct {
	mu          sync.RWMutex
	consultants map[string]types.Consultant
	tenders     map[string]types.Tender
	results     map[uuid.UUID]storedResult
	profiles    map[string][]types.Profile
	seq         int
}

type storedResult struct {
	result types.MatchResult
	seq    int
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		consultants: make(map[string]types.Consultant),
		tenders:     make(map[string]types.Tender),
		results:     make(map[uuid.UUID]storedResult),
		profiles:    make(map[string][]types.Profile),
	}
}

func copyConsultant(c types.Consultant) types.Consultant {
	if c.SkillLevels != nil {
		levels := make(map[string]int, len(c.SkillLevels))
		for k, v := range c.SkillLevels {
			levels[k] = v
		}
		c.SkillLevels = levels
	}
	return c
}

func copyTender(t types.Tender) types.Tender {
	if t.Criteria != nil {
		criteria := make(map[string]float64, len(t.Criteria))
		for k, v := range t.Criteria {
			criteria[k] = v
		}
		t.Criteria = criteria
	}
	return t
}

func copyResult(r types.MatchResult) types.MatchResult {
	r.TopSkills = append([]string(nil), r.TopSkills...)
	return r
}

func (m *MemoryStore) GetConsultant(_ context.Context, id string) (*types.Consultant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.consultants[id]
	if !ok {
		return nil, notFound("consultant", id)
	}
	c = copyConsultant(c)
	return &c, nil
}

func (m *MemoryStore) SaveConsultant(_ context.Context, c *types.Consultant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := copyConsultant(*c)
	cp.ExpertiseTier = cp.Tier()
	m.consultants[c.ID] = cp
	return nil
}

func (m *MemoryStore) ListConsultants(context.Context) ([]types.Consultant, error) {
	return m.listConsultants(func(types.Consultant) bool { return true }), nil
}

func (m *MemoryStore) ListMatchCandidates(context.Context) ([]types.Consultant, error) {
	return m.listConsultants(func(c types.Consultant) bool {
		return c.Validated && c.Availability.Complete()
	}), nil
}

func (m *MemoryStore) listConsultants(keep func(types.Consultant) bool) []types.Consultant {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []types.Consultant
	for _, c := range m.consultants {
		if keep(c) {
			out = append(out, copyConsultant(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *MemoryStore) GetTender(_ context.Context, id string) (*types.Tender, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tenders[id]
	if !ok {
		return nil, notFound("tender", id)
	}
	t = copyTender(t)
	return &t, nil
}

func (m *MemoryStore) SaveTender(_ context.Context, t *types.Tender) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tenders[t.ID] = copyTender(*t)
	return nil
}

func (m *MemoryStore) ListTenders(context.Context) ([]types.Tender, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]types.Tender, 0, len(m.tenders))
	for _, t := range m.tenders {
		out = append(out, copyTender(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) DeleteMatchResults(_ context.Context, tenderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, r := range m.results {
		if r.result.TenderID == tenderID {
			delete(m.results, id)
		}
	}
	return nil
}

func (m *MemoryStore) SaveMatchResult(_ context.Context, r *types.MatchResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, old := range m.results {
		if old.result.ConsultantID == r.ConsultantID && old.result.TenderID == r.TenderID {
			delete(m.results, id)
		}
	}
	m.seq++
	m.results[r.ID] = storedResult{result: copyResult(*r), seq: m.seq}
	return nil
}

func (m *MemoryStore) GetMatchResult(_ context.Context, id uuid.UUID) (*types.MatchResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.results[id]
	if !ok {
		return nil, notFound("match result", id.String())
	}
	out := copyResult(r.result)
	return &out, nil
}

func (m *MemoryStore) SetMatchValidated(_ context.Context, id uuid.UUID, validated bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.results[id]
	if !ok {
		return notFound("match result", id.String())
	}
	r.result.IsValidated = validated
	m.results[id] = r
	return nil
}

// ListMatchResults returns the results of a tender ranked by descending
// score, oldest first among equal scores
func (m *MemoryStore) ListMatchResults(_ context.Context, tenderID string) ([]types.MatchResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var stored []storedResult
	for _, r := range m.results {
		if r.result.TenderID == tenderID {
			stored = append(stored, r)
		}
	}
	sort.Slice(stored, func(i, j int) bool {
		if stored[i].result.Score != stored[j].result.Score {
			return stored[i].result.Score > stored[j].result.Score
		}
		return stored[i].seq < stored[j].seq
	})
	out := make([]types.MatchResult, len(stored))
	for i, r := range stored {
		out[i] = copyResult(r.result)
	}
	return out, nil
}

// SaveProfile keeps the profile in memory; pdfPath is not retained
func (m *MemoryStore) SaveProfile(_ context.Context, consultantID string, p *types.Profile, _ *string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[consultantID] = append(m.profiles[consultantID], *p)
	return uuid.New(), nil
}

func (m *MemoryStore) LatestProfile(_ context.Context, consultantID string) (*types.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ps := m.profiles[consultantID]
	if len(ps) == 0 {
		return nil, notFound("profile of consultant", consultantID)
	}
	p := ps[len(ps)-1]
	return &p, nil
}
