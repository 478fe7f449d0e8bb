package extraction

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/richat-staffing/internal/nlp"
	"github.com/jonathan/richat-staffing/internal/taxonomy"
)

const maxSkills = 25

var (
	reCoarseSeparators = regexp.MustCompile(`[,•;|\n]+|\s+et\s+|\s+and\s+`)
	reSkillSeparators  = regexp.MustCompile(`[,•–\-;/\\|.\n]+|\s+et\s+|\s+and\s+`)
	reDevTechnology    = regexp.MustCompile(`(?i)(?:^|[^\pL\pN])(python|java|javascript|typescript|php|golang|ruby|kotlin|swift|react(?:\.?js)?|angular(?:\.?js)?|vue\.?js|node\.?js|django|flask|laravel|symfony|spring boot|docker|kubernetes|k8s|aws|azure|gcp|mysql|postgresql|postgres|mongodb|oracle|sql|git|gitlab|github|linux|html5?|css3?|power ?bi|excel|sap|autocad)(?:[^\pL\pN]|$)`)
)

// functionWords never count as skills on their own
var functionWords = map[string]bool{
	"de":     true, "des": true, "du": true, "la": true, "le": true, "les": true, "et": true,
	"en":     true, "un": true, "une": true, "pour": true, "avec": true, "sur": true,
	"the":    true, "and": true, "of": true, "in": true, "with": true, "for": true,
	"bonne":  true, "maitrise": true, "connaissance": true, "connaissances": true,
	"outils": true, "logiciels": true,
}

// extractSkills unions taxonomy hits in the whole text, canonicalized tokens
// of the skills section and developer technology mentions. Every returned
// skill is a canonical taxonomy name.
func extractSkills(tax *taxonomy.Taxonomy, text string, skillLines []string) []string {
	found := make(map[string]bool)
	add := func(term string) bool {
		name := tax.CanonicalName(term)
		if name == "" || !keepSkill(name) {
			return false
		}
		found[name] = true
		return true
	}

	for _, name := range tax.Lookup(text) {
		add(name)
	}
	for _, line := range skillLines {
		// "Langages : Python, Java" keeps only the list part
		if i := strings.IndexAny(line, ":"); i >= 0 && i < len(line)-1 {
			add(line[:i])
			line = line[i+1:]
		}
		// coarse items keep dotted and hyphenated names ("Node.js", "CI/CD") whole
		for _, item := range reCoarseSeparators.Split(line, -1) {
			item = trimToken(item)
			if item == "" || add(item) {
				continue
			}
			for _, tok := range reSkillSeparators.Split(item, -1) {
				if tok = trimToken(tok); tok != "" {
					add(tok)
				}
			}
		}
	}
	for _, m := range reDevTechnology.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}

	out := make([]string, 0, len(found))
	for name := range found {
		out = append(out, name)
	}
	sortSkills(out)
	if len(out) > maxSkills {
		out = out[:maxSkills]
	}
	return out
}

func trimToken(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "()[]\"'*"))
}

// keepSkill applies the length and function-word filters
func keepSkill(name string) bool {
	n := utf8.RuneCountInString(name)
	if n <= 2 || n >= 50 {
		return false
	}
	for _, tok := range nlp.Tokens(nlp.NormalizeTerm(name)) {
		if !functionWords[tok] {
			return true
		}
	}
	return false
}

// sortSkills orders skills alphabetically, ignoring case and accents
func sortSkills(skills []string) {
	sort.Slice(skills, func(i, j int) bool {
		a, b := nlp.Fold(skills[i]), nlp.Fold(skills[j])
		if a != b {
			return a < b
		}
		return skills[i] < skills[j]
	})
}
