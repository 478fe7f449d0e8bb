package extraction

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/richat-staffing/internal/nlp"
	"github.com/jonathan/richat-staffing/internal/types"
)

// section identifies a CV section bucket
type section string

const (
	secSummary        section = "profile_summary"
	secEducation      section = "education"
	secExperience     section = "experience"
	secSkills         section = "skills"
	secLanguages      section = "languages"
	secCertifications section = "certifications"
	secAssociations   section = "professional_associations"
	secMission        section = "mission_adequacy"
)

// sectionOrder is the canonical order used for reporting
var sectionOrder = []section{
	secSummary, secEducation, secExperience, secSkills,
	secLanguages, secCertifications, secAssociations, secMission,
}

const (
	maxSectionLines = 100
	maxHeaderRunes  = 80
)

// sectionCues are folded, normalized header phrases. A line opens a section
// when its normalized head starts with one of them.
var sectionCues = map[section][]string{
	secSummary: {
		"resume du profil", "resume professionnel", "profil professionnel", "resume",
		"profile summary", "professional summary", "summary", "a propos", "profil", "profile",
	},
	secEducation: {
		"education", "formation", "formations", "etudes", "diplomes",
		"academic background", "qualifications",
	},
	secExperience: {
		"experience professionnelle", "experiences professionnelles", "experience", "experiences",
		"employment history", "work experience", "professional experience", "emplois",
	},
	secSkills: {
		"competences cles", "competences techniques", "competences", "key skills",
		"technical skills", "skills", "outils et technologies",
	},
	secLanguages: {"langues", "langue", "languages", "language skills"},
	secCertifications: {
		"certifications", "certification", "certificats", "certificates",
	},
	secAssociations: {
		"adhesion", "associations professionnelles", "professional associations",
		"affiliations", "membership",
	},
	secMission: {"adequation", "mission fit", "references de projets", "projets de reference"},
}

var reLeadingNumbering = regexp.MustCompile(`^\s*(?:\d{1,2}|[IVXivx]{1,4}|[A-Ha-h])\s*[.)\-]\s+`)

// sections holds the lines of each detected section
type sections struct {
	lines map[section][]string
	order []section
}

func (s *sections) has(sec section) bool {
	_, ok := s.lines[sec]
	return ok
}

func (s *sections) get(sec section) []string {
	return s.lines[sec]
}

// cueTable merges the shared cues with those preferred by the layout family
func cueTable(format types.Format) map[section][]string {
	out := make(map[section][]string, len(sectionCues))
	for sec, cues := range sectionCues {
		out[sec] = append(out[sec], formatHints[format][sec]...)
		out[sec] = append(out[sec], cues...)
	}
	return out
}

// majorCues close any open section even when followed by extra words
var majorCues = map[string]bool{
	"education":                    true,
	"experience professionnelle":   true,
	"experiences professionnelles": true,
	"competences":                  true,
	"langues":                      true,
	"certifications":               true,
	"adhesion":                     true,
	"adequation":                   true,
}

// headerMatch describes a line recognized as a section header
type headerMatch struct {
	sec    section
	inline string // content after a colon on the header line
	exact  bool   // the head is exactly a cue
	major  bool
}

// matchHeader reports which section a line opens, if any
func matchHeader(line string, cues map[section][]string) (headerMatch, bool) {
	if strings.Contains(line, "|") || strings.HasSuffix(line, ".") || strings.HasSuffix(line, ";") {
		return headerMatch{}, false
	}
	if r, _ := utf8.DecodeRuneInString(line); strings.ContainsRune("•-–o*▪►", r) && !startsWithWord(line) {
		return headerMatch{}, false
	}
	head, inline := line, ""
	if i := strings.IndexAny(line, ":："); i >= 0 {
		_, size := utf8.DecodeRuneInString(line[i:])
		head, inline = line[:i], strings.TrimSpace(line[i+size:])
	}
	if utf8.RuneCountInString(head) > maxHeaderRunes {
		return headerMatch{}, false
	}
	norm := nlp.NormalizeTerm(reLeadingNumbering.ReplaceAllString(head, ""))
	if norm == "" {
		return headerMatch{}, false
	}
	words := len(strings.Fields(norm))

	var (
		best    headerMatch
		bestLen int
	)
	for _, sec := range sectionOrder {
		for _, cue := range cues[sec] {
			if norm != cue && !strings.HasPrefix(norm, cue+" ") {
				continue
			}
			// a header carries at most two words beyond its cue
			if words > len(strings.Fields(cue))+2 {
				continue
			}
			if len(cue) > bestLen {
				best = headerMatch{sec: sec, inline: inline, exact: norm == cue, major: majorCues[cue]}
				bestLen = len(cue)
			}
		}
	}
	return best, bestLen > 0
}

// startsWithWord reports whether a line starting with 'o' or '-' is prose
// ("Organisation", "-Ahmed") rather than a bullet marker
func startsWithWord(line string) bool {
	if len(line) < 2 {
		return false
	}
	return line[0] == 'o' && line[1] != ' '
}

// splitSections assigns lines to sections. A section runs from its header to
// the next header of a different section, or for at most maxSectionLines lines.
func splitSections(lines []string, format types.Format) *sections {
	cues := cueTable(format)
	out := &sections{lines: make(map[section][]string)}
	var (
		current section
		count   int
	)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if h, ok := matchHeader(trimmed, cues); ok && h.sec != current && (current == "" || h.exact || h.major) {
			sec, rest := h.sec, h.inline
			current, count = sec, 0
			if !out.has(sec) {
				out.order = append(out.order, sec)
				out.lines[sec] = []string{}
			}
			if rest != "" {
				out.lines[sec] = append(out.lines[sec], rest)
				count++
			}
			continue
		}
		if current == "" {
			continue
		}
		if count >= maxSectionLines {
			current = ""
			continue
		}
		out.lines[current] = append(out.lines[current], trimmed)
		count++
	}
	return out
}

// preamble returns the non-empty lines before the first section header
func preamble(lines []string, format types.Format, limit int) []string {
	cues := cueTable(format)
	out := make([]string, 0, limit)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if _, ok := matchHeader(trimmed, cues); ok {
			break
		}
		out = append(out, trimmed)
		if len(out) >= limit {
			break
		}
	}
	return out
}
