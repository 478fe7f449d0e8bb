package extraction

import (
	"regexp"
	"strings"

	"github.com/jonathan/richat-staffing/internal/nlp"
	"github.com/jonathan/richat-staffing/internal/types"
)

const maxEducation = 8

var (
	reYear        = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	reYearRange   = regexp.MustCompile(`(?i)\b((?:19|20)\d{2})\s*(?:[-–—/]|à|a|to|au)\s*((?:19|20)\d{2}|pr[ée]sent|present|aujourd'hui|en cours|now|current)\b`)
	reInstitution = regexp.MustCompile(`(?i)((?:universit[ée]|university|[ée]cole|school|institut|institute|lyc[ée]e|facult[ée]|centre|center|acad[ée]mie|academy|conservatoire|iscae|supnum|esp\b|enim\b|ucad\b)[^,;|()\n]*)`)
	reDegree      = regexp.MustCompile(`(?i)((?:licence|master|mast[èe]re|doctorat|ph\.?\s?d|baccalaur[ée]at|bac\b|bts\b|dut\b|ing[ée]nieur|dipl[ôo]me|diploma|bachelor|mba\b|dea\b|dess\b|ma[îi]trise|certificat|certificate)[^,;|()\n]*)`)
)

// educationTableHeaders are the folded column headers of the reference table
var educationTableHeaders = []string{"ecole", "periode", "diplome"}

// extractEducation parses the education section in table or list mode
func extractEducation(lines []string) []types.Education {
	if len(lines) == 0 {
		return []types.Education{}
	}
	if isEducationTable(lines) {
		return educationFromTable(lines)
	}
	return educationFromList(lines)
}

func isEducationTable(lines []string) bool {
	for _, line := range lines {
		folded := nlp.Fold(line)
		matched := 0
		for _, h := range educationTableHeaders {
			if strings.Contains(folded, h) {
				matched++
			}
		}
		if matched == len(educationTableHeaders) {
			return true
		}
	}
	return false
}

// educationFromTable reads "Institution | Period | Degree" rows
func educationFromTable(lines []string) []types.Education {
	out := []types.Education{}
	for _, line := range lines {
		if !strings.Contains(line, "|") || isHeaderRow(line, educationTableHeaders) {
			continue
		}
		cells := splitCells(line)
		if len(cells) < 2 {
			continue
		}
		edu := types.Education{Institution: cells[0]}
		if len(cells) > 1 {
			edu.Period = normalizePeriod(cells[1])
		}
		if len(cells) > 2 {
			edu.Degree = cells[2]
		}
		if len(cells) > 3 {
			edu.Description = strings.Join(cells[3:], " ")
		}
		out = append(out, edu)
		if len(out) == maxEducation {
			break
		}
	}
	return out
}

// educationFromList starts an entry at every line carrying a year and fills
// missing fields from continuation lines
func educationFromList(lines []string) []types.Education {
	out := []types.Education{}
	var cur *types.Education
	flush := func() {
		if cur != nil && (cur.Institution != "" || cur.Degree != "") {
			out = append(out, *cur)
		}
		cur = nil
	}
	for _, line := range lines {
		line = cleanBullet(line)
		if line == "" {
			continue
		}
		if strings.Contains(line, "|") {
			cells := splitCells(line)
			line = strings.Join(cells, ", ")
		}
		if reYear.MatchString(line) {
			flush()
			if len(out) == maxEducation {
				break
			}
			cur = &types.Education{Period: periodIn(line)}
			rest := removePeriod(line)
			cur.Institution = firstMatch(reInstitution, rest)
			cur.Degree = firstMatch(reDegree, rest)
			if cur.Institution == "" && cur.Degree == "" && rest != "" {
				cur.Degree = rest
			}
			continue
		}
		if cur == nil {
			continue
		}
		switch {
		case cur.Institution == "" && reInstitution.MatchString(line):
			cur.Institution = firstMatch(reInstitution, line)
		case cur.Degree == "" && reDegree.MatchString(line):
			cur.Degree = firstMatch(reDegree, line)
		default:
			cur.Description = strings.TrimSpace(cur.Description + " " + line)
		}
	}
	flush()
	if len(out) > maxEducation {
		out = out[:maxEducation]
	}
	return out
}

func firstMatch(re *regexp.Regexp, s string) string {
	m := re.FindString(s)
	return strings.Trim(strings.TrimSpace(m), "-–:")
}

// splitCells splits a pipe-joined table row into trimmed cells
func splitCells(line string) []string {
	parts := strings.Split(line, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		if c := nlp.CollapseSpaces(p); c != "" {
			cells = append(cells, c)
		}
	}
	return cells
}

// isHeaderRow reports whether a row contains at least two of the column headers
func isHeaderRow(line string, headers []string) bool {
	folded := nlp.Fold(line)
	n := 0
	for _, h := range headers {
		if strings.Contains(folded, h) {
			n++
		}
	}
	return n >= 2
}
