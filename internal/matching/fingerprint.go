package matching

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/jonathan/richat-staffing/internal/taxonomy"
	"github.com/jonathan/richat-staffing/internal/types"
)

// scoreInputs is every field ScorePair reads. encoding/json sorts map keys,
// so equal inputs always marshal to the same bytes.
type scoreInputs struct {
	Taxonomy          string              `json:"taxonomy"`
	SkillLevels       map[string]int      `json:"skill_levels"`
	Tier              types.ExpertiseTier `json:"tier"`
	PrimaryDomain     types.Domain        `json:"primary_domain"`
	Availability      types.Window        `json:"availability"`
	TenderDescription string              `json:"tender_description"`
	TenderWindow      types.Window        `json:"tender_window"`
	TenderCriteria    map[string]float64  `json:"tender_criteria"`
}

// Fingerprint hashes the consultant and tender fields a pair score depends on.
// It is empty when the inputs cannot be encoded (a NaN weight), and such pairs
// bypass the cache.
func Fingerprint(tender *types.Tender, c *types.Consultant) string {
	data, err := json.Marshal(scoreInputs{
		Taxonomy:          taxonomy.Version,
		SkillLevels:       c.SkillLevels,
		Tier:              c.Tier(),
		PrimaryDomain:     c.PrimaryDomain,
		Availability:      c.Availability,
		TenderDescription: tender.Description,
		TenderWindow:      tender.Window,
		TenderCriteria:    tender.Criteria,
	})
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:16])
}
