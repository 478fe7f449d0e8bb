package types

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
)

// Consultant is a registered expert eligible for tender matching
type Consultant struct {
	ID            string         `json:"id" validate:"required"`
	Name          string         `json:"name" validate:"required"`
	Email         string         `json:"email" validate:"omitempty,email"`
	Availability  Window         `json:"availability"`
	SkillLevels   map[string]int `json:"skill_levels" validate:"dive,keys,required,endkeys,min=1,max=5"`
	PrimaryDomain Domain         `json:"primary_domain" validate:"omitempty,oneof=DIGITAL FINANCE ENERGIE INDUSTRIE"`
	Specialty     string         `json:"specialty,omitempty"`
	ExpertiseTier ExpertiseTier  `json:"expertise_tier" validate:"omitempty,oneof=Beginner Intermediate Expert"`
	Validated     bool           `json:"validated"`
}

// Validate validates the Consultant using the validator. A stored tier must
// agree with the skill count.
func (c *Consultant) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.ExpertiseTier != "" && c.ExpertiseTier != c.Tier() {
		return fmt.Errorf("expertise tier %s does not match %d skills (want %s)",
			c.ExpertiseTier, len(c.SkillLevels), c.Tier())
	}
	return nil
}

// SetSkillLevels replaces the consultant's skills and recomputes the expertise tier
func (c *Consultant) SetSkillLevels(levels map[string]int) {
	c.SkillLevels = make(map[string]int, len(levels))
	for k, v := range levels {
		c.SkillLevels[k] = v
	}
	c.ExpertiseTier = TierForSkillCount(len(c.SkillLevels))
}

// SkillNames returns the consultant's skill names sorted alphabetically
func (c *Consultant) SkillNames() []string {
	names := make([]string, 0, len(c.SkillLevels))
	for name := range c.SkillLevels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TopSkills returns up to n skills ordered by level (descending) then name
func (c *Consultant) TopSkills(n int) []string {
	names := c.SkillNames()
	sort.SliceStable(names, func(i, j int) bool {
		return c.SkillLevels[names[i]] > c.SkillLevels[names[j]]
	})
	if len(names) > n {
		names = names[:n]
	}
	return names
}

// Tier derives the expertise tier from the skill count. ExpertiseTier is the
// stored copy and is ignored here.
func (c *Consultant) Tier() ExpertiseTier {
	return TierForSkillCount(len(c.SkillLevels))
}
