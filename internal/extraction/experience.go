package extraction

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/richat-staffing/internal/nlp"
	"github.com/jonathan/richat-staffing/internal/types"
)

const (
	maxExperience  = 6
	maxSummaryRune = 200
)

const monthNames = `(?:janvier|f[ée]vrier|mars|avril|mai|juin|juillet|ao[uû]t|septembre|octobre|novembre|d[ée]cembre|` +
	`january|february|march|april|may|june|july|august|september|october|november|december|` +
	`janv?|f[ée]v|avr|juil|sept?|oct|nov|d[ée]c|jan|feb|apr|jun|jul|aug)\.?`

// rePeriod matches "YYYY-YYYY" or "<Month> YYYY - <Month> YYYY" at the start of a cell
var rePeriod = regexp.MustCompile(`(?i)^(?:` +
	`(?:19|20)\d{2}\s*[-–—/]\s*(?:(?:19|20)\d{2}|pr[ée]sent|present|aujourd'hui|en cours|now)` +
	`|` + monthNames + `\s+(?:19|20)\d{2}\s*[-–—]\s*(?:` + monthNames + `\s+(?:19|20)\d{2}|pr[ée]sent|present|aujourd'hui|en cours|now)` +
	`|(?:depuis|since)\s+(?:` + monthNames + `\s+)?(?:19|20)\d{2}` +
	`)`)

var reFreeFormSep = regexp.MustCompile(`\s*[,;]\s*|\s+[-–]\s+`)

// experienceTableHeaders are the folded column headers of the reference table
var experienceTableHeaders = []string{"periode", "employeur", "pays", "description", "activites"}

// roleVocabulary is checked in order; the first match names the role
var roleVocabulary = []struct {
	role string
	cues []string
}{
	{"Project Manager", []string{"project manager", "chef de projet", "chef de projets", "directeur de projet"}},
	{"Manager", []string{"manager", "gestionnaire"}},
	{"Consultant", []string{"consultant", "consultante"}},
	{"Expert", []string{"expert", "experte"}},
	{"Director", []string{"director", "directeur", "directrice"}},
	{"Responsable", []string{"responsable"}},
	{"Developer", []string{"developer", "developpeur", "developpeuse"}},
	{"Analyst", []string{"analyst", "analyste"}},
}

// DeriveRole names the role held in an experience from its description
func DeriveRole(text string) string {
	norm := nlp.NormalizeTerm(text)
	for _, r := range roleVocabulary {
		for _, cue := range r.cues {
			if nlp.ContainsPhrase(norm, cue) {
				return r.role
			}
		}
	}
	return ""
}

// extractExperience reads "Period | Employer | Country | Description" rows.
// Lines starting with a period but lacking pipes open a free-form entry;
// other lines continue the description of the current entry.
func extractExperience(lines []string) []types.Experience {
	out := []types.Experience{}
	var (
		cur  *types.Experience
		desc []string
	)
	flush := func() {
		if cur == nil {
			return
		}
		finishExperience(cur, strings.Join(desc, "\n"))
		out = append(out, *cur)
		cur, desc = nil, nil
	}

	for _, line := range lines {
		if strings.Contains(line, "|") {
			if isHeaderRow(line, experienceTableHeaders) {
				continue
			}
			cells := splitCells(line)
			if len(cells) >= 2 && rePeriod.MatchString(cells[0]) {
				flush()
				if len(out) == maxExperience {
					break
				}
				cur = &types.Experience{Period: normalizePeriod(periodCell(cells[0]))}
				cur.Employer, cur.Role = splitEmployerRole(cells[1])
				if len(cells) > 2 {
					cur.Country = cells[2]
				}
				if len(cells) > 3 {
					desc = append(desc, strings.Join(cells[3:], " | "))
				}
				continue
			}
		}
		if loc := rePeriod.FindStringIndex(line); loc != nil {
			flush()
			if len(out) == maxExperience {
				break
			}
			cur = &types.Experience{Period: normalizePeriod(line[:loc[1]])}
			rest := strings.Trim(strings.TrimSpace(line[loc[1]:]), ":-–,")
			fields := splitFreeForm(rest)
			if len(fields) > 0 {
				cur.Employer, cur.Role = splitEmployerRole(fields[0])
			}
			if len(fields) > 1 {
				cur.Country = fields[len(fields)-1]
			}
			continue
		}
		if cur != nil {
			desc = append(desc, line)
		}
	}
	flush()
	return out
}

func periodCell(cell string) string {
	if m := rePeriod.FindString(cell); m != "" {
		return m
	}
	return cell
}

// splitFreeForm splits "Employer, City, Country" or "Employer - Country"
func splitFreeForm(s string) []string {
	var parts []string
	for _, p := range reFreeFormSep.Split(s, -1) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// splitEmployerRole separates "SNIM (Consultant)" or "SNIM - Consultant"
func splitEmployerRole(s string) (string, string) {
	s = nlp.CollapseSpaces(s)
	if i := strings.LastIndex(s, "("); i > 0 && strings.HasSuffix(s, ")") {
		return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1 : len(s)-1])
	}
	for _, sep := range []string{" - ", " – ", " / "} {
		if i := strings.Index(s, sep); i > 0 {
			role := strings.TrimSpace(s[i+len(sep):])
			if DeriveRole(role) != "" {
				return strings.TrimSpace(s[:i]), role
			}
		}
	}
	return s, ""
}

func finishExperience(e *types.Experience, description string) {
	description = strings.TrimSpace(description)
	e.Bullets = ExtractBullets(description)
	if e.Role == "" {
		e.Role = DeriveRole(description)
	} else if derived := DeriveRole(e.Role); derived != "" {
		e.Role = derived
	}
	e.Summary = summarize(description)
}

// summarize keeps the first sentence of a description, capped in length
func summarize(text string) string {
	text = nlp.CollapseSpaces(strings.Trim(text, " •-–"))
	if text == "" {
		return ""
	}
	if loc := reSentenceEnd.FindStringIndex(text); loc != nil {
		text = text[:loc[0]+1]
	}
	if utf8.RuneCountInString(text) > maxSummaryRune {
		r := []rune(text)
		text = strings.TrimSpace(string(r[:maxSummaryRune])) + "…"
	}
	return strings.TrimLeft(text, "•-– ")
}
