package matching

import (
	"github.com/jonathan/richat-staffing/internal/nlp"
	"github.com/jonathan/richat-staffing/internal/taxonomy"
	"github.com/jonathan/richat-staffing/internal/types"
)

// Sub-score ceilings of the composite skill score
const (
	domainWeight    = 15.0
	domainMismatch  = 10.0
	expertiseWeight = 15.0
	semanticWeight  = 70.0
)

// domainKeywords are the sector words counted in a tender description on top
// of the taxonomy's own skill names
var domainKeywords = map[types.Domain][]string{
	types.DomainDigital: {
		"informatique", "numerique", "digital", "logiciel", "application", "plateforme",
		"systeme d information", "developpement", "site web", "base de donnees", "cloud",
		"donnees", "reseau", "software", "telecom", "telecommunications", "dematerialisation",
	},
	types.DomainFinance: {
		"finance", "financier", "financiere", "comptable", "comptes", "bancaire", "banque",
		"budget", "budgetaire", "fiscal", "audit", "tresor", "credit", "assurance",
		"investissement", "microfinance", "gestion financiere",
	},
	types.DomainEnergy: {
		"energie", "energetique", "electricite", "electrique", "solaire", "eolien",
		"petrole", "gaz", "hydrocarbures", "mines", "minier", "hydrogene", "renouvelable",
		"centrale", "environnement",
	},
	types.DomainIndustry: {
		"industrie", "industriel", "industrielle", "usine", "production", "maintenance",
		"fabrication", "logistique", "btp", "construction", "genie civil", "infrastructure",
		"qualite", "manufacture", "equipement",
	},
}

// InferDomain classifies a tender by counting domain keyword and taxonomy
// skill hits in its description. Ties resolve in types.AllDomains order.
// Without any hit the dominant domain of the criteria is used; with neither
// the result is types.DomainUndefined.
func InferDomain(tax *taxonomy.Taxonomy, tender *types.Tender) types.Domain {
	text := nlp.NormalizeTerm(tender.Description)
	best, bestHits := types.DomainUndefined, 0
	if text != "" {
		for _, d := range types.AllDomains {
			hits := 0
			for _, kw := range domainKeywords[d] {
				if nlp.ContainsPhrase(text, kw) {
					hits++
				}
			}
			for _, skill := range tax.SkillsIn(d) {
				if nlp.ContainsPhrase(text, nlp.NormalizeTerm(skill)) {
					hits++
				}
			}
			if hits > bestHits {
				best, bestHits = d, hits
			}
		}
	}
	if best != types.DomainUndefined {
		return best
	}

	criteria := make([]string, 0, len(tender.Criteria))
	for skill := range tender.Criteria {
		criteria = append(criteria, skill)
	}
	d, _ := tax.DominantDomain(criteria)
	return d
}

// domainScore rewards a consultant whose primary domain is the tender's
func domainScore(consultant types.Domain, tender types.Domain) float64 {
	if tender != types.DomainUndefined && consultant == tender {
		return domainWeight
	}
	return domainMismatch
}

// expertiseScore maps the expertise tier to its sub-score
func expertiseScore(tier types.ExpertiseTier) float64 {
	switch tier {
	case types.TierExpert:
		return expertiseWeight
	case types.TierIntermediate:
		return 10
	default:
		return 5
	}
}
