package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierForSkillCount(t *testing.T) {
	tests := []struct {
		n    int
		want ExpertiseTier
	}{
		{0, TierBeginner},
		{4, TierBeginner},
		{5, TierIntermediate},
		{9, TierIntermediate},
		{10, TierExpert},
		{25, TierExpert},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d skills", tt.n), func(t *testing.T) {
			assert.Equal(t, tt.want, TierForSkillCount(tt.n))
		})
	}
}

func TestConsultant_SetSkillLevelsRecomputesTier(t *testing.T) {
	c := &Consultant{ID: "c1", Name: "Aicha"}
	c.SetSkillLevels(map[string]int{"Python": 5, "Django": 4, "Docker": 3, "AWS": 2, "MySQL": 4})
	assert.Equal(t, TierIntermediate, c.ExpertiseTier)

	c.SetSkillLevels(map[string]int{"Python": 5})
	assert.Equal(t, TierBeginner, c.ExpertiseTier)
}

func TestConsultant_TopSkills(t *testing.T) {
	c := &Consultant{SkillLevels: map[string]int{"Python": 3, "Django": 5, "AWS": 5, "Docker": 1}}
	assert.Equal(t, []string{"AWS", "Django", "Python"}, c.TopSkills(3))
	assert.Len(t, c.TopSkills(10), 4)
}

func TestConsultant_Validate(t *testing.T) {
	valid := &Consultant{ID: "c1", Name: "Sidi", Email: "sidi@example.com", SkillLevels: map[string]int{"Python": 3}, PrimaryDomain: DomainDigital}
	require.NoError(t, valid.Validate())

	badLevel := &Consultant{ID: "c1", Name: "Sidi", SkillLevels: map[string]int{"Python": 7}}
	assert.Error(t, badLevel.Validate())

	badEmail := &Consultant{ID: "c1", Name: "Sidi", Email: "not-an-email"}
	assert.Error(t, badEmail.Validate())

	badDomain := &Consultant{ID: "c1", Name: "Sidi", PrimaryDomain: "SPACE"}
	assert.Error(t, badDomain.Validate())

	unknownTier := &Consultant{ID: "c1", Name: "Sidi", ExpertiseTier: "Guru"}
	assert.Error(t, unknownTier.Validate())

	staleTier := &Consultant{ID: "c1", Name: "Sidi", SkillLevels: map[string]int{"Python": 3}, ExpertiseTier: TierExpert}
	assert.Error(t, staleTier.Validate())
	staleTier.SetSkillLevels(staleTier.SkillLevels)
	assert.NoError(t, staleTier.Validate())
}

func TestConsultant_TierFollowsSkillCount(t *testing.T) {
	c := &Consultant{SkillLevels: map[string]int{"Python": 5}, ExpertiseTier: TierExpert}
	assert.Equal(t, TierBeginner, c.Tier())

	for i := 0; i < 10; i++ {
		c.SkillLevels[fmt.Sprintf("skill-%d", i)] = 3
	}
	c.ExpertiseTier = TierBeginner
	assert.Equal(t, TierExpert, c.Tier())
}

func TestTender_Validate(t *testing.T) {
	tender := &Tender{ID: "t1", Name: "Plateforme", Criteria: map[string]float64{"Python": 1}}
	require.NoError(t, tender.Validate())

	tender.Criteria["Django"] = 0
	assert.Error(t, tender.Validate())
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(2024, time.June, 1)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-06-01"`, string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, parsed.Equal(d.Time))

	assert.Error(t, json.Unmarshal([]byte(`"01/06/2024"`), &parsed))
}

func TestWindow_Days(t *testing.T) {
	start := MustParseDate("2024-06-01")
	end := MustParseDate("2024-06-30")
	assert.Equal(t, 30, Window{Start: &start, End: &end}.Days())
	assert.Equal(t, 0, Window{Start: &start}.Days())
	assert.False(t, Window{End: &end}.Complete())
}

func TestCodeOf(t *testing.T) {
	base := NewError(CodeUnsupportedFormat, "extension .exe is not accepted", nil)
	wrapped := fmt.Errorf("upload rejected: %w", base)

	assert.Equal(t, CodeUnsupportedFormat, CodeOf(wrapped))
	assert.Equal(t, ErrorCode(""), CodeOf(errors.New("plain")))
	assert.Contains(t, base.Error(), "unsupported_format")
}

func TestParseDomain(t *testing.T) {
	d, ok := ParseDomain("energy")
	assert.True(t, ok)
	assert.Equal(t, DomainEnergy, d)

	_, ok = ParseDomain("space")
	assert.False(t, ok)
}

func TestNewProfile_EmptyCollectionsMarshalAsArrays(t *testing.T) {
	data, err := json.Marshal(NewProfile())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"skills":[]`)
	assert.Contains(t, string(data), `"mission_adequacy":{"projects":[]}`)
}
