package extraction

import (
	"regexp"
	"strings"

	"github.com/jonathan/richat-staffing/internal/nlp"
	"github.com/jonathan/richat-staffing/internal/types"
)

// languageNames maps folded language names to their display form
var languageNames = map[string]string{
	"arabe":     "Arabe",
	"arabic":    "Arabe",
	"hassaniya": "Hassaniya",
	"francais":  "Français",
	"french":    "Français",
	"anglais":   "Anglais",
	"english":   "Anglais",
	"espagnol":  "Espagnol",
	"spanish":   "Espagnol",
	"allemand":  "Allemand",
	"german":    "Allemand",
	"italien":   "Italien",
	"italian":   "Italien",
	"portugais": "Portugais",
	"chinois":   "Chinois",
	"russe":     "Russe",
	"turc":      "Turc",
	"pulaar":    "Pulaar",
	"peul":      "Pulaar",
	"soninke":   "Soninké",
	"wolof":     "Wolof",
}

// levelPhrases are folded proficiency phrases. Phrases sharing a prefix list
// the longer one first ("native speaker" before "native").
var levelPhrases = []struct {
	phrase string
	level  types.LanguageLevel
}{
	{"langue maternelle", types.LevelNative},
	{"native speaker", types.LevelNative},
	{"mother tongue", types.LevelNative},
	{"intermediaire", types.LevelIntermediate},
	{"intermediate", types.LevelIntermediate},
	{"assez bien", types.LevelFair},
	{"tres bien", types.LevelFluent},
	{"maternelle", types.LevelNative},
	{"excellent", types.LevelFluent},
	{"bilingue", types.LevelFluent},
	{"courant", types.LevelFluent},
	{"fluent", types.LevelFluent},
	{"native", types.LevelNative},
	{"natif", types.LevelNative},
	{"passable", types.LevelFair},
	{"notions", types.LevelFair},
	{"moyen", types.LevelFair},
	{"basic", types.LevelFair},
	{"fair", types.LevelFair},
	{"good", types.LevelGood},
	{"bonne", types.LevelGood},
	{"bien", types.LevelGood},
	{"bon", types.LevelGood},
}

var reLevelPhrase = func() *regexp.Regexp {
	alts := make([]string, len(levelPhrases))
	for i, lp := range levelPhrases {
		alts[i] = regexp.QuoteMeta(lp.phrase)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(alts, "|") + `)\b`)
}()

// defaultLanguages is the Mauritanian default used when a CV lists none
func defaultLanguages() []types.Language {
	return []types.Language{
		{Language: "Arabe", Speaking: types.LevelNative, Reading: types.LevelNative, Writing: types.LevelNative, Level: types.LevelNative},
		{Language: "Français", Speaking: types.LevelFluent, Reading: types.LevelFluent, Writing: types.LevelFluent, Level: types.LevelFluent},
		{Language: "Anglais", Speaking: types.LevelIntermediate, Reading: types.LevelIntermediate, Writing: types.LevelIntermediate, Level: types.LevelIntermediate},
	}
}

// NormalizeLevel maps a free-form proficiency to the closed level vocabulary
func NormalizeLevel(s string) (types.LanguageLevel, bool) {
	folded := nlp.NormalizeTerm(s)
	m := reLevelPhrase.FindString(folded)
	if m == "" {
		return "", false
	}
	for _, lp := range levelPhrases {
		if lp.phrase == m {
			return lp.level, true
		}
	}
	return "", false
}

// extractLanguages parses "<Language> <Speaking> <Reading> <Writing>" rows.
// One level applies to all three skills; two levels set speaking and reading,
// writing following reading.
func extractLanguages(lines []string) []types.Language {
	out := []types.Language{}
	seen := make(map[string]bool)
	for _, line := range lines {
		norm := nlp.NormalizeTerm(line)
		tokens := nlp.Tokens(norm)
		name, at := "", -1
		for i, tok := range tokens {
			if display, ok := languageNames[tok]; ok {
				name, at = display, i
				break
			}
		}
		if name == "" || seen[name] {
			continue
		}
		rest := strings.Join(tokens[at+1:], " ")
		levels := levelsIn(rest)
		if len(levels) == 0 {
			continue
		}
		lang := types.Language{Language: name, Speaking: levels[0], Reading: levels[0], Writing: levels[0]}
		if len(levels) > 1 {
			lang.Reading, lang.Writing = levels[1], levels[1]
		}
		if len(levels) > 2 {
			lang.Writing = levels[2]
		}
		lang.Level = lang.Speaking
		out = append(out, lang)
		seen[name] = true
	}
	return out
}

func levelsIn(normalized string) []types.LanguageLevel {
	var out []types.LanguageLevel
	for _, m := range reLevelPhrase.FindAllString(normalized, -1) {
		if lvl, ok := NormalizeLevel(m); ok {
			out = append(out, lvl)
		}
	}
	return out
}
