package db

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/richat-staffing/internal/matching"
	"github.com/jonathan/richat-staffing/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) *types.Date {
	d := types.MustParseDate(s)
	return &d
}

func testConsultant(id string, validated bool, levels map[string]int) *types.Consultant {
	c := &types.Consultant{
		ID:            id,
		Name:          "Expert " + id,
		Email:         id + "@richat.mr",
		Availability:  types.Window{Start: date("2024-01-01"), End: date("2024-12-31")},
		PrimaryDomain: types.DomainDigital,
		Validated:     validated,
	}
	c.SetSkillLevels(levels)
	return c
}

func testTender() *types.Tender {
	return &types.Tender{
		ID:          "AO-2024-07",
		Name:        "Système d'information RH",
		Description: "Développement d'une application web",
		Window:      types.Window{Start: date("2024-03-01"), End: date("2024-09-30")},
		Criteria:    map[string]float64{"Python": 2, "PostgreSQL": 1},
	}
}

func TestMemoryStore_ConsultantsAreCopied(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	c := testConsultant("c1", true, map[string]int{"Python": 4})
	require.NoError(t, s.SaveConsultant(ctx, c))

	c.SkillLevels["Python"] = 1
	got, err := s.GetConsultant(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 4, got.SkillLevels["Python"])

	got.SkillLevels["Go"] = 5
	again, err := s.GetConsultant(ctx, "c1")
	require.NoError(t, err)
	assert.NotContains(t, again.SkillLevels, "Go")
	assert.Equal(t, types.TierBeginner, again.ExpertiseTier)
}

func TestMemoryStore_NotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.GetConsultant(ctx, "nope")
	assert.Equal(t, types.CodeNotFound, types.CodeOf(err))
	_, err = s.GetTender(ctx, "nope")
	assert.Equal(t, types.CodeNotFound, types.CodeOf(err))
	_, err = s.GetMatchResult(ctx, uuid.New())
	assert.Equal(t, types.CodeNotFound, types.CodeOf(err))
	err = s.SetMatchValidated(ctx, uuid.New(), true)
	assert.Equal(t, types.CodeNotFound, types.CodeOf(err))
	_, err = s.LatestProfile(ctx, "nope")
	assert.Equal(t, types.CodeNotFound, types.CodeOf(err))
}

func TestMemoryStore_ListMatchCandidates(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.SaveConsultant(ctx, testConsultant("c2", true, nil)))
	require.NoError(t, s.SaveConsultant(ctx, testConsultant("c1", true, nil)))
	require.NoError(t, s.SaveConsultant(ctx, testConsultant("c3", false, nil)))
	open := testConsultant("c4", true, nil)
	open.Availability.End = nil
	require.NoError(t, s.SaveConsultant(ctx, open))

	candidates, err := s.ListMatchCandidates(ctx)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "c1", candidates[0].ID)
	assert.Equal(t, "c2", candidates[1].ID)

	all, err := s.ListConsultants(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestMemoryStore_MatchResultPerPair(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	first := &types.MatchResult{ID: uuid.New(), ConsultantID: "c1", TenderID: "t1", Score: 40}
	second := &types.MatchResult{ID: uuid.New(), ConsultantID: "c1", TenderID: "t1", Score: 60}
	other := &types.MatchResult{ID: uuid.New(), ConsultantID: "c2", TenderID: "t1", Score: 60}
	require.NoError(t, s.SaveMatchResult(ctx, first))
	require.NoError(t, s.SaveMatchResult(ctx, second))
	require.NoError(t, s.SaveMatchResult(ctx, other))

	_, err := s.GetMatchResult(ctx, first.ID)
	assert.Error(t, err)

	results, err := s.ListMatchResults(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, second.ID, results[0].ID)
	assert.Equal(t, other.ID, results[1].ID)

	require.NoError(t, s.SetMatchValidated(ctx, other.ID, true))
	got, err := s.GetMatchResult(ctx, other.ID)
	require.NoError(t, err)
	assert.True(t, got.IsValidated)

	require.NoError(t, s.DeleteMatchResults(ctx, "t1"))
	results, err = s.ListMatchResults(ctx, "t1")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMemoryStore_Profiles(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	p1 := types.NewProfile()
	p1.QualityScore = 50
	p2 := types.NewProfile()
	p2.QualityScore = 80

	_, err := s.SaveProfile(ctx, "c1", p1, nil)
	require.NoError(t, err)
	path := "standardized_cvs/standardized_cv_c1_20240305143000.pdf"
	_, err = s.SaveProfile(ctx, "c1", p2, &path)
	require.NoError(t, err)

	latest, err := s.LatestProfile(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 80, latest.QualityScore)
}

func TestMemoryStore_BacksMatchGeneration(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.SaveTender(ctx, testTender()))
	require.NoError(t, s.SaveConsultant(ctx, testConsultant("c1", true, map[string]int{"Python": 5, "PostgreSQL": 4})))
	require.NoError(t, s.SaveConsultant(ctx, testConsultant("c2", true, map[string]int{"Excel": 3})))
	require.NoError(t, s.SaveConsultant(ctx, testConsultant("c3", false, map[string]int{"Python": 5})))

	e := matching.NewEngine(s, matching.Options{})
	out, err := e.Generate(ctx, "AO-2024-07")
	require.NoError(t, err)
	require.Len(t, out.Results, 2)

	stored, err := s.ListMatchResults(ctx, "AO-2024-07")
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, out.Results[0].ID, stored[0].ID)
	assert.Equal(t, "c1", stored[0].ConsultantID)

	// a second run replaces rather than accumulates
	_, err = e.Generate(ctx, "AO-2024-07")
	require.NoError(t, err)
	stored, err = s.ListMatchResults(ctx, "AO-2024-07")
	require.NoError(t, err)
	assert.Len(t, stored, 2)

	validated, err := e.ToggleValidation(ctx, stored[1].ID)
	require.NoError(t, err)
	assert.True(t, validated)
}
