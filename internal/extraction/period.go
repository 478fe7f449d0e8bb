package extraction

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/richat-staffing/internal/nlp"
)

// reMonthRange captures "<Month> YYYY - <Month> YYYY" and "<Month> YYYY - présent"
var reMonthRange = regexp.MustCompile(`(?i)\b(` + monthNames + `)\s+((?:19|20)\d{2})\s*(?:[-–—/]|à|au|to)\s*` +
	`(?:(` + monthNames + `)\s+((?:19|20)\d{2})|(pr[ée]sent|present|aujourd'hui|en cours|now|current))`)

// monthNumbers maps folded month names and abbreviations to 1..12
var monthNumbers = map[string]int{
	"janvier": 1, "janv": 1, "jan": 1, "january": 1,
	"fevrier": 2, "fev": 2, "february": 2, "feb": 2,
	"mars": 3, "march": 3,
	"avril": 4, "avr": 4, "april": 4, "apr": 4,
	"mai": 5, "may": 5,
	"juin": 6, "june": 6, "jun": 6,
	"juillet": 7, "juil": 7, "july": 7, "jul": 7,
	"aout": 8, "august": 8, "aug": 8,
	"septembre": 9, "sept": 9, "sep": 9, "september": 9,
	"octobre": 10, "oct": 10, "october": 10,
	"novembre": 11, "nov": 11, "november": 11,
	"decembre": 12, "dec": 12, "december": 12,
}

func monthNumber(name string) int {
	return monthNumbers[strings.TrimSuffix(nlp.Fold(strings.TrimSpace(name)), ".")]
}

// yearMonth orders a "<Month> YYYY" endpoint as YYYYMM
func yearMonth(month, year string) int {
	y, _ := strconv.Atoi(year)
	return y*100 + monthNumber(month)
}

// periodIn extracts a period from s: a month range, a "YYYY-YYYY" range, or a
// single year
func periodIn(s string) string {
	if m := reMonthRange.FindString(s); m != "" {
		return normalizePeriod(m)
	}
	if m := reYearRange.FindString(s); m != "" {
		return normalizePeriod(m)
	}
	return reYear.FindString(s)
}

func removePeriod(s string) string {
	s = reMonthRange.ReplaceAllString(s, " ")
	s = reYearRange.ReplaceAllString(s, " ")
	s = reYear.ReplaceAllString(s, " ")
	s = nlp.CollapseSpaces(s)
	return strings.Trim(s, " ,;:-–()")
}

// normalizePeriod rewrites month ranges as "<Month> YYYY - <Month> YYYY" and
// year ranges as "YYYY-YYYY", swapping reversed endpoints so that start never
// exceeds end. Anything else is returned with collapsed spaces.
func normalizePeriod(s string) string {
	s = nlp.CollapseSpaces(s)
	if m := reMonthRange.FindStringSubmatch(s); m != nil {
		return normalizeMonthRange(m)
	}
	m := reYearRange.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	start, end := m[1], m[2]
	if reYear.MatchString(end) {
		a, _ := strconv.Atoi(start)
		b, _ := strconv.Atoi(end)
		if a > b {
			start, end = end, start
		}
		return start + "-" + end
	}
	return start + "-" + strings.ToLower(end)
}

// normalizeMonthRange takes the submatches of reMonthRange
func normalizeMonthRange(m []string) string {
	start := m[1] + " " + m[2]
	if m[5] != "" {
		return start + " - " + strings.ToLower(m[5])
	}
	end := m[3] + " " + m[4]
	if yearMonth(m[1], m[2]) > yearMonth(m[3], m[4]) {
		start, end = end, start
	}
	return start + " - " + end
}
