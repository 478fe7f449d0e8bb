// Package extraction turns acquired CV text into a structured types.Profile.
//
// Extraction is rule based: a detected layout family selects section cues, each
// section has its own parser, and every stage degrades to empty collections and
// recorded warnings instead of failing.
package extraction

import (
	"regexp"

	"github.com/jonathan/richat-staffing/internal/nlp"
	"github.com/jonathan/richat-staffing/internal/types"
)

// titleNouns are the role nouns a seniority marker must qualify
const titleNouns = `(?:engineer|ingenieur|developer|developpeur|consultant|consultante|manager|analyst|analyste|` +
	`architect|architecte|scientist|officer|designer|chef de projet|expert|experte|auditor|auditeur)`

var (
	reRichatHeader = regexp.MustCompile(`(?i)curriculum\s+vitae\s*\(cv\)`)
	// a seniority word only counts as part of a job title
	reModernMarkers = regexp.MustCompile(`\b(?:senior|lead|principal|chief)\s+(?:[a-z]+\s+){0,2}?` + titleNouns + `\b` +
		`|\b` + titleNouns + `\s+(?:senior|principal|lead)\b` +
		`|\bhead of\s+[a-z]+|\b(?:ceo|cto|cfo|cio|coo)\b` +
		`|digital transformation|transformation digitale`)
	reAcademicMarker = regexp.MustCompile(`\b(publications?|ph\s?d|doctorat|these de|doctoral|chercheur|maitre de conferences)\b`)
	reGenericCV      = regexp.MustCompile(`\b(experiences?|education|skills|competences|formation)\b`)
)

// DetectFormat classifies the layout family of a CV text
func DetectFormat(text string) types.Format {
	if reRichatHeader.MatchString(text) {
		return types.FormatRichatStandard
	}
	folded := nlp.Fold(text)
	switch {
	case reModernMarkers.MatchString(folded):
		return types.FormatProfessionalModern
	case reAcademicMarker.MatchString(folded):
		return types.FormatAcademic
	case reGenericCV.MatchString(folded):
		return types.FormatTraditional
	default:
		return types.FormatGeneric
	}
}

// formatHints are the extra section cues a layout family uses on top of the
// shared cue table
var formatHints = map[types.Format]map[section][]string{
	types.FormatRichatStandard: {
		secMission:      {"adequation a la mission", "adequation de l expert a la mission"},
		secAssociations: {"adhesion a des associations professionnelles"},
	},
	types.FormatProfessionalModern: {
		secExperience: {"parcours professionnel", "career history", "career"},
		secSkills:     {"core competencies", "domaines d expertise", "expertise"},
		secSummary:    {"executive summary", "profil de direction"},
	},
	types.FormatAcademic: {
		secEducation:      {"cursus", "parcours academique", "formation academique"},
		secExperience:     {"enseignement", "experience d enseignement", "teaching"},
		secCertifications: {"distinctions", "prix et distinctions"},
	},
	types.FormatTraditional: {
		secEducation: {"diplomes et formations", "etudes"},
	},
}
