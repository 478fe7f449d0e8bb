package extraction

import (
	"math"

	"github.com/jonathan/richat-staffing/internal/types"
)

// ComplianceSignals are the reference-format features observed while parsing
// that are not recoverable from the Profile alone
type ComplianceSignals struct {
	HeaderPresent   bool // "CURRICULUM VITAE (CV)" banner
	IdentityRows    int  // labeled identity rows parsed
	LanguagesParsed int  // language rows read from the CV, defaults excluded
}

// listScore credits 25 points per item, up to 100
func listScore(n int) float64 {
	return math.Min(100, float64(n)*25)
}

// ScoreQuality averages the completeness of the seven required buckets:
// identity, summary, education, experience, skills, languages and mission fit.
func ScoreQuality(p *types.Profile) int {
	buckets := []float64{
		math.Min(100, float64(p.PersonalInfo.PresentFields())*20),
		boolScore(p.ProfileSummary != ""),
		listScore(len(p.Education)),
		listScore(len(p.Experience)),
		listScore(len(p.Skills)),
		listScore(len(p.Languages)),
		listScore(len(p.MissionAdequacy.Projects)),
	}
	return meanScore(buckets)
}

// ScoreCompliance measures conformance with the reference CV format as the
// mean of six criteria
func ScoreCompliance(p *types.Profile, s ComplianceSignals) int {
	criteria := []float64{
		boolScore(s.HeaderPresent),
		math.Min(100, float64(s.IdentityRows)*25),
		boolScore(p.PersonalInfo.ProfessionalTitle != ""),
		math.Min(100, float64(len(p.Experience))*100/3),
		math.Min(100, float64(s.LanguagesParsed)*50),
		boolScore(len(p.MissionAdequacy.Projects) >= 1),
	}
	return meanScore(criteria)
}

// TaxonomyAffinity blends skill breadth (saturating at ten skills) with the
// share of skills held by the dominant domain
func TaxonomyAffinity(skillCount int, dominantShare float64) int {
	breadth := math.Min(1, float64(skillCount)/10)
	return int(math.Round(100 * (0.5*breadth + 0.5*dominantShare)))
}

func boolScore(ok bool) float64 {
	if ok {
		return 100
	}
	return 0
}

func meanScore(values []float64) int {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return int(math.Round(sum / float64(len(values))))
}
