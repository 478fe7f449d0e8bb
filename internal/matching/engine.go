package matching

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jonathan/richat-staffing/internal/logger"
	"github.com/jonathan/richat-staffing/internal/taxonomy"
	"github.com/jonathan/richat-staffing/internal/types"
	"go.uber.org/zap"
)

// topSkillCount is the number of skills copied onto a MatchResult
const topSkillCount = 5

// ErrNoStore is returned by operations that need persistence on an engine built without a Store
var ErrNoStore = errors.New("matching engine has no store")

// Store is the persistence the engine reads consultants and tenders from and
// writes match results to
type Store interface {
	GetTender(ctx context.Context, id string) (*types.Tender, error)
	SaveTender(ctx context.Context, t *types.Tender) error
	GetConsultant(ctx context.Context, id string) (*types.Consultant, error)
	SaveConsultant(ctx context.Context, c *types.Consultant) error
	// ListMatchCandidates returns validated consultants with a complete availability window
	ListMatchCandidates(ctx context.Context) ([]types.Consultant, error)
	DeleteMatchResults(ctx context.Context, tenderID string) error
	// SaveMatchResult replaces any result stored for the same (consultant, tender) pair
	SaveMatchResult(ctx context.Context, r *types.MatchResult) error
	GetMatchResult(ctx context.Context, id uuid.UUID) (*types.MatchResult, error)
	SetMatchValidated(ctx context.Context, id uuid.UUID, validated bool) error
}

// Notifier delivers validation events
type Notifier interface {
	MatchValidated(ctx context.Context, ev types.MatchEvent) error
}

// Options configures an Engine. Zero values select the defaults: the built-in
// taxonomy, a MemoryCache, no notifications and a no-op logger.
type Options struct {
	Taxonomy *taxonomy.Taxonomy
	Cache    ScoreCache
	Notifier Notifier
	Logger   *zap.Logger
}

// Engine ranks consultants against tenders and owns the score cache
type Engine struct {
	store    Store
	tax      *taxonomy.Taxonomy
	cache    ScoreCache
	notifier Notifier
	logger   *zap.Logger
}

// NewEngine creates an Engine. store may be nil for pure scoring use
// (Match and Score); the persistence operations then return ErrNoStore.
func NewEngine(store Store, opts Options) *Engine {
	e := &Engine{
		store:    store,
		tax:      opts.Taxonomy,
		cache:    opts.Cache,
		notifier: opts.Notifier,
		logger:   opts.Logger,
	}
	if e.tax == nil {
		e.tax = taxonomy.Default()
	}
	if e.cache == nil {
		e.cache = NewMemoryCache()
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	return e
}

// Cache returns the engine's score cache
func (e *Engine) Cache() ScoreCache {
	return e.cache
}

// Score returns the score breakdown of one consultant for a tender
func (e *Engine) Score(ctx context.Context, tender *types.Tender, c *types.Consultant) types.ScoreBreakdown {
	return e.score(ctx, tender, InferDomain(e.tax, tender), c)
}

func (e *Engine) score(ctx context.Context, tender *types.Tender, domain types.Domain, c *types.Consultant) types.ScoreBreakdown {
	inputs := ""
	if c.ID != "" && tender.ID != "" {
		inputs = Fingerprint(tender, c)
	}
	if inputs == "" {
		return ScorePair(e.tax, tender, domain, c)
	}
	if s, ok := e.cache.Get(ctx, c.ID, tender.ID); ok {
		if s.Inputs == inputs {
			s.Inputs = ""
			return s
		}
		e.cache.Delete(ctx, c.ID, tender.ID)
	}
	s := ScorePair(e.tax, tender, domain, c)
	s.Inputs = inputs
	e.cache.Put(ctx, c.ID, tender.ID, s)
	s.Inputs = ""
	return s
}

// Match scores every consultant against the tender and returns the results
// ranked by descending score. Equal scores keep the input order.
func (e *Engine) Match(ctx context.Context, tender *types.Tender, consultants []types.Consultant) []types.MatchResult {
	domain := InferDomain(e.tax, tender)
	results := make([]types.MatchResult, 0, len(consultants))
	for i := range consultants {
		c := &consultants[i]
		results = append(results, newResult(tender, c, e.score(ctx, tender, domain, c)))
	}
	rank(results)
	return results
}

func rank(results []types.MatchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}

func newResult(tender *types.Tender, c *types.Consultant, s types.ScoreBreakdown) types.MatchResult {
	return types.MatchResult{
		ID:                  uuid.New(),
		ConsultantID:        c.ID,
		TenderID:            tender.ID,
		ConsultantName:      c.Name,
		ConsultantExpertise: c.Tier(),
		Email:               c.Email,
		PrimaryDomain:       c.PrimaryDomain,
		Specialty:           c.Specialty,
		TopSkills:           c.TopSkills(topSkillCount),
		DateMatchScore:      s.DateScore,
		SkillsMatchScore:    s.SkillScore,
		Score:               s.Score,
	}
}

// Generate recomputes the match results of a tender: previous results are
// deleted, the cache is flushed, and every eligible consultant is scored and
// persisted. A consultant that fails is logged and skipped. A failed or
// cancelled run may leave the tender with partial results and should be rerun.
func (e *Engine) Generate(ctx context.Context, tenderID string) (*types.MatchResults, error) {
	if e.store == nil {
		return nil, ErrNoStore
	}
	tender, err := e.store.GetTender(ctx, tenderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tender %s: %w", tenderID, err)
	}
	if err := e.store.DeleteMatchResults(ctx, tenderID); err != nil {
		return nil, fmt.Errorf("failed to delete previous results: %w", err)
	}
	e.cache.Clear(ctx)

	candidates, err := e.store.ListMatchCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list consultants: %w", err)
	}

	domain := InferDomain(e.tax, tender)
	results := make([]types.MatchResult, 0, len(candidates))
	for i := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c := &candidates[i]
		if !c.Validated || !c.Availability.Complete() {
			continue
		}
		r, err := e.generateOne(ctx, tender, domain, c)
		if err != nil {
			e.logger.Warn("skipping consultant in match generation",
				logger.Consultant(c.ID),
				logger.Tender(tender.ID),
				zap.String("code", string(types.CodeMatchConsultantFailed)),
				zap.Error(err),
			)
			continue
		}
		results = append(results, *r)
	}
	rank(results)

	e.logger.Info("match generation finished",
		logger.Tender(tender.ID),
		zap.String("tender_domain", string(domain)),
		zap.Int("candidates", len(candidates)),
		zap.Int("results", len(results)),
	)
	return &types.MatchResults{TenderID: tender.ID, Results: results}, nil
}

func (e *Engine) generateOne(ctx context.Context, tender *types.Tender, domain types.Domain, c *types.Consultant) (r *types.MatchResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = types.NewError(types.CodeMatchConsultantFailed, fmt.Sprintf("scoring panicked: %v", p), nil)
		}
	}()
	if err := c.Validate(); err != nil {
		return nil, types.NewError(types.CodeMatchConsultantFailed, "invalid consultant record", err)
	}
	result := newResult(tender, c, e.score(ctx, tender, domain, c))
	if err := e.store.SaveMatchResult(ctx, &result); err != nil {
		return nil, types.NewError(types.CodeMatchConsultantFailed, "failed to save match result", err)
	}
	return &result, nil
}

// ToggleValidation flips the validated flag of a match result and returns the new value
func (e *Engine) ToggleValidation(ctx context.Context, resultID uuid.UUID) (bool, error) {
	if e.store == nil {
		return false, ErrNoStore
	}
	r, err := e.store.GetMatchResult(ctx, resultID)
	if err != nil {
		return false, fmt.Errorf("failed to load match result: %w", err)
	}
	return e.setValidated(ctx, r, !r.IsValidated)
}

// SetValidated sets the validated flag of a match result. Only a transition to
// validated emits a notification.
func (e *Engine) SetValidated(ctx context.Context, resultID uuid.UUID, validated bool) (bool, error) {
	if e.store == nil {
		return false, ErrNoStore
	}
	r, err := e.store.GetMatchResult(ctx, resultID)
	if err != nil {
		return false, fmt.Errorf("failed to load match result: %w", err)
	}
	return e.setValidated(ctx, r, validated)
}

func (e *Engine) setValidated(ctx context.Context, r *types.MatchResult, validated bool) (bool, error) {
	if r.IsValidated == validated {
		return validated, nil
	}
	if err := e.store.SetMatchValidated(ctx, r.ID, validated); err != nil {
		return r.IsValidated, fmt.Errorf("failed to update match result: %w", err)
	}
	if validated {
		e.notify(ctx, r)
	}
	return validated, nil
}

// notify delivers a validation event. Delivery failures are logged only.
func (e *Engine) notify(ctx context.Context, r *types.MatchResult) {
	if e.notifier == nil {
		return
	}
	ev := types.MatchEvent{
		ResultID:       r.ID,
		ConsultantID:   r.ConsultantID,
		ConsultantName: r.ConsultantName,
		Email:          r.Email,
		TenderID:       r.TenderID,
		Score:          r.Score,
	}
	if tender, err := e.store.GetTender(ctx, r.TenderID); err == nil {
		ev.TenderName = tender.Name
	}
	if err := e.notifier.MatchValidated(ctx, ev); err != nil {
		e.logger.Error("validation notification failed",
			zap.String("result_id", r.ID.String()),
			logger.Consultant(r.ConsultantID),
			zap.Error(err),
		)
	}
}

// UpdateConsultantSkills replaces a consultant's skill levels, canonicalizing
// skill names, recomputing the expertise tier and invalidating cached scores
func (e *Engine) UpdateConsultantSkills(ctx context.Context, consultantID string, levels map[string]int) (*types.Consultant, error) {
	if e.store == nil {
		return nil, ErrNoStore
	}
	c, err := e.store.GetConsultant(ctx, consultantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load consultant: %w", err)
	}

	canonical := make(map[string]int, len(levels))
	for name, level := range levels {
		if n := e.tax.CanonicalName(name); n != "" {
			name = n
		}
		if level > canonical[name] {
			canonical[name] = level
		}
	}
	c.SetSkillLevels(canonical)
	if c.PrimaryDomain == types.DomainUndefined {
		c.PrimaryDomain, _ = e.tax.DominantDomain(c.SkillNames())
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid skill levels: %w", err)
	}
	if err := e.store.SaveConsultant(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save consultant: %w", err)
	}
	e.cache.InvalidateConsultant(ctx, consultantID)
	return c, nil
}

// UpdateTenderCriteria replaces a tender's weighted criteria and invalidates
// its cached scores. Weights of names that canonicalize to the same skill add up.
func (e *Engine) UpdateTenderCriteria(ctx context.Context, tenderID string, criteria map[string]float64) (*types.Tender, error) {
	if e.store == nil {
		return nil, ErrNoStore
	}
	t, err := e.store.GetTender(ctx, tenderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tender: %w", err)
	}

	canonical := make(map[string]float64, len(criteria))
	for name, w := range criteria {
		if n := e.tax.CanonicalName(name); n != "" {
			name = n
		}
		canonical[name] += w
	}
	t.Criteria = canonical
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid criteria: %w", err)
	}
	if err := e.store.SaveTender(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to save tender: %w", err)
	}
	e.cache.InvalidateTender(ctx, tenderID)
	return t, nil
}
