package matching

import (
	"math"
	"sort"
	"strings"

	"github.com/jonathan/richat-staffing/internal/taxonomy"
	"github.com/jonathan/richat-staffing/internal/types"
)

// Composite score constants
const (
	dateWeight            = 0.4
	skillWeight           = 0.6
	emptyDescriptionScore = 35.0
	noSkillsScore         = 10.0
	boostThreshold        = 50.0
	boostFactor           = 1.15
	sigmoidSlope          = 0.08
)

// SkillBreakdown details the composite skill score of a pair
type SkillBreakdown struct {
	TenderDomain types.Domain `json:"tender_domain"`
	Domain       float64      `json:"domain"`
	Expertise    float64      `json:"expertise"`
	Semantic     float64      `json:"semantic"`
	Skill        float64      `json:"skill"`
}

// SkillScore computes the composite skill score S_skill in [0,100] for a
// consultant against a tender whose domain has already been inferred
func SkillScore(tax *taxonomy.Taxonomy, tender *types.Tender, tenderDomain types.Domain, c *types.Consultant) SkillBreakdown {
	b := SkillBreakdown{
		TenderDomain: tenderDomain,
		Domain:       domainScore(c.PrimaryDomain, tenderDomain),
		Expertise:    expertiseScore(c.Tier()),
		Semantic:     semanticScore(tax, tender, c),
	}
	b.Skill = squash(b.Domain + b.Expertise + b.Semantic)
	return b
}

// squash boosts strong raw scores, then maps them through a sigmoid centered on 50
func squash(raw float64) float64 {
	if raw > boostThreshold {
		raw = math.Min(100, raw*boostFactor)
	}
	return 100 / (1 + math.Exp(-sigmoidSlope*(raw-50)))
}

// semanticScore is the skill overlap sub-score, at most semanticWeight
func semanticScore(tax *taxonomy.Taxonomy, tender *types.Tender, c *types.Consultant) float64 {
	if len(c.SkillLevels) == 0 {
		return noSkillsScore
	}
	if tender.HasCriteria() {
		return criteriaScore(tax, tender.Criteria, c.SkillLevels)
	}
	if strings.TrimSpace(tender.Description) == "" {
		return emptyDescriptionScore
	}
	cosine := TFIDFCosine(tender.Description, strings.Join(c.SkillNames(), " "))
	return math.Min(semanticWeight, cosine*100)
}

// criteriaScore normalizes the criteria weights to semanticWeight and credits
// each criterion with its most similar consultant skill, scaled by level
func criteriaScore(tax *taxonomy.Taxonomy, criteria map[string]float64, levels map[string]int) float64 {
	total := 0.0
	names := make([]string, 0, len(criteria))
	for name, w := range criteria {
		if w > 0 {
			total += w
			names = append(names, name)
		}
	}
	if total == 0 {
		return 0
	}
	sort.Strings(names)

	skills := make([]string, 0, len(levels))
	for s := range levels {
		skills = append(skills, s)
	}
	sort.Strings(skills)

	score := 0.0
	for _, criterion := range names {
		bestSim, bestLevel := 0.0, 0
		for _, s := range skills {
			sim := tax.Similarity(criterion, s)
			if sim > bestSim || (sim > 0 && sim == bestSim && levels[s] > bestLevel) {
				bestSim, bestLevel = sim, levels[s]
			}
		}
		if bestSim == 0 {
			continue
		}
		score += criteria[criterion] / total * semanticWeight * bestSim * levelFactor(bestLevel)
	}
	return math.Min(semanticWeight, score)
}

// levelFactor scales a 1..5 proficiency level to [0.76, 1]
func levelFactor(level int) float64 {
	level = max(1, min(5, level))
	return 0.7 + 0.3*float64(level)/5
}

// FinalScore combines rounded date and skill scores into the pair score
func FinalScore(date, skill float64) float64 {
	return clamp(round2(dateWeight*date + skillWeight*skill))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

// ScorePair computes the full score breakdown of a consultant for a tender.
// Components are rounded to two decimals before being combined.
func ScorePair(tax *taxonomy.Taxonomy, tender *types.Tender, tenderDomain types.Domain, c *types.Consultant) types.ScoreBreakdown {
	date := round2(DateScore(c.Availability, tender.Window))
	skill := round2(SkillScore(tax, tender, tenderDomain, c).Skill)
	return types.ScoreBreakdown{
		DateScore:  date,
		SkillScore: skill,
		Score:      FinalScore(date, skill),
	}
}
