package extraction

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/richat-staffing/internal/nlp"
	"github.com/jonathan/richat-staffing/internal/types"
)

// identityWindow is the number of leading non-empty lines searched for identity rows
const identityWindow = 15

type identityField int

const (
	fieldNone identityField = iota
	fieldName
	fieldTitle
	fieldProfessionalTitle
	fieldBirthDate
	fieldResidence
	fieldEmail
	fieldPhone
)

// identityLabels maps normalized row labels to identity fields
var identityLabels = map[string]identityField{
	"nom de l expert":       fieldName,
	"nom de l expert e":     fieldName,
	"nom et prenom":         fieldName,
	"nom et prenoms":        fieldName,
	"prenom et nom":         fieldName,
	"nom complet":           fieldName,
	"nom":                   fieldName,
	"name":                  fieldName,
	"full name":             fieldName,
	"titre":                 fieldTitle,
	"title":                 fieldTitle,
	"poste propose":         fieldTitle,
	"titre professionnel":   fieldProfessionalTitle,
	"professional title":    fieldProfessionalTitle,
	"profession":            fieldProfessionalTitle,
	"fonction":              fieldProfessionalTitle,
	"poste actuel":          fieldProfessionalTitle,
	"date de naissance":     fieldBirthDate,
	"date of birth":         fieldBirthDate,
	"ne le":                 fieldBirthDate,
	"nee le":                fieldBirthDate,
	"pays de residence":     fieldResidence,
	"country of residence":  fieldResidence,
	"residence":             fieldResidence,
	"email":                 fieldEmail,
	"e mail":                fieldEmail,
	"courriel":              fieldEmail,
	"adresse email":         fieldEmail,
	"telephone":             fieldPhone,
	"tel":                   fieldPhone,
	"phone":                 fieldPhone,
	"mobile":                fieldPhone,
	"portable":              fieldPhone,
	"gsm":                   fieldPhone,
	"numero de telephone":   fieldPhone,
	"telephone portable":    fieldPhone,
	"contact telephonique":  fieldPhone,
	"telephone whatsapp":    fieldPhone,
	"whatsapp":              fieldPhone,
	"adresse electronique":  fieldEmail,
	"pays":                  fieldResidence,
	"lieu de residence":     fieldResidence,
	"nationalite residence": fieldResidence,
}

var (
	reEmail     = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	reBirthDate = regexp.MustCompile(`\b(\d{1,2})[/.\-](\d{1,2})[/.\-]((?:19|20)\d{2})\b`)
	reNameToken = regexp.MustCompile(`^[\p{L}\p{M}\x{0600}-\x{06FF}\-'’.]+$`)

	// Phone candidates in decreasing order of confidence
	rePhonePrefixed = regexp.MustCompile(`(?:\+|00)\s*222[\s.\-]*(?:\d[\s.\-]?){8}`)
	rePhoneGrouped  = regexp.MustCompile(`\b\d{2}[\s.\-]\d{2}[\s.\-]\d{2}[\s.\-]\d{2}\b`)
	rePhoneBare     = regexp.MustCompile(`\b\d{8}\b`)
	rePhoneTen      = regexp.MustCompile(`\b\d{10}\b`)
	rePhoneValue    = regexp.MustCompile(`\+?[\d(][\d\s.\-()]{6,}\d`)

	emailValidator = validator.New()
)

// nameStopwords are words that never appear in a person's name
var nameStopwords = map[string]bool{
	"nord":       true, "sud": true, "est": true, "ouest": true,
	"north":      true, "south": true, "east": true, "west": true,
	"ville":      true, "pays": true, "email": true, "mail": true, "telephone": true,
	"tel":        true, "curriculum": true, "vitae": true, "cv": true, "richat": true,
	"partners":   true, "nouakchott": true, "nouadhibou": true, "mauritanie": true,
	"mauritania": true, "rue": true, "avenue": true, "ilot": true, "lot": true,
	"expert":     true, "consultant": true, "ingenieur": true, "nom": true,
}

// nameTitles are honorifics stripped before a name is validated
var nameTitles = map[string]bool{
	"m":  true, "mr": true, "mme": true, "mlle": true, "dr": true,
	"pr": true, "prof": true, "ing": true, "me": true, "mrs": true, "ms": true,
}

// labeledRow splits "Label : value" or "Label | value" rows
func labeledRow(line string) (identityField, string, bool) {
	i := strings.IndexAny(line, ":|：")
	if i < 0 {
		field, ok := identityLabels[nlp.NormalizeTerm(line)]
		return field, "", ok
	}
	_, size := utf8.DecodeRuneInString(line[i:])
	field, ok := identityLabels[nlp.NormalizeTerm(line[:i])]
	if !ok {
		return fieldNone, "", false
	}
	value := strings.TrimSpace(line[i+size:])
	value = strings.TrimSpace(strings.Trim(value, "|:"))
	return field, nlp.CollapseSpaces(value), true
}

// extractIdentity reads the identity block from the leading lines of a CV and
// reports how many labeled identity rows it parsed. head holds the non-empty
// lines before the first section header.
func extractIdentity(head, all []string) (types.PersonalInfo, int) {
	var info types.PersonalInfo
	window := head
	if len(window) > identityWindow {
		window = window[:identityWindow]
	}

	rows := 0
	for i := 0; i < len(window); i++ {
		field, value, ok := labeledRow(window[i])
		if !ok {
			continue
		}
		rows++
		if value == "" && i+1 < len(window) {
			if next, _, isLabel := labeledRow(window[i+1]); next == fieldNone && !isLabel {
				value = window[i+1]
				i++
			}
		}
		assignIdentity(&info, field, value)
	}

	if info.ExpertName == "" {
		info.ExpertName = guessName(window)
	}
	if info.Email == "" {
		info.Email = findEmail(strings.Join(all, "\n"))
	}
	if info.Phone == "" {
		info.Phone = findPhone(all)
	}
	if info.ProfessionalTitle == "" {
		info.ProfessionalTitle = guessProfessionalTitle(window, info)
	}
	return info, rows
}

func assignIdentity(info *types.PersonalInfo, field identityField, value string) {
	if value == "" {
		return
	}
	switch field {
	case fieldName:
		if info.ExpertName == "" {
			info.ExpertName = validName(value)
		}
	case fieldTitle:
		if info.Title == "" {
			info.Title = value
		}
	case fieldProfessionalTitle:
		if info.ProfessionalTitle == "" {
			info.ProfessionalTitle = value
		}
	case fieldBirthDate:
		if info.BirthDate == "" {
			info.BirthDate = NormalizeBirthDate(value)
		}
	case fieldResidence:
		if info.ResidenceCountry == "" {
			info.ResidenceCountry = value
		}
	case fieldEmail:
		if info.Email == "" {
			info.Email = findEmail(value)
		}
	case fieldPhone:
		if info.Phone == "" {
			info.Phone = phoneFromValue(value)
		}
	}
}

// validName returns the cleaned name, or "" when s is not a plausible name
func validName(s string) string {
	tokens := strings.Fields(s)
	for len(tokens) > 0 && nameTitles[nlp.NormalizeTerm(tokens[0])] {
		tokens = tokens[1:]
	}
	if len(tokens) < 2 {
		return ""
	}
	for _, tok := range tokens {
		if !reNameToken.MatchString(tok) {
			return ""
		}
		if nameStopwords[nlp.NormalizeTerm(tok)] {
			return ""
		}
	}
	return strings.Join(tokens, " ")
}

// guessName falls back to the first short line that reads as a name
func guessName(window []string) string {
	for _, line := range window {
		if _, _, ok := labeledRow(line); ok {
			continue
		}
		if n := len(strings.Fields(line)); n < 2 || n > 5 {
			continue
		}
		if name := validName(line); name != "" {
			return name
		}
	}
	return ""
}

// guessProfessionalTitle takes the first free-standing line of the identity
// block that is neither a labeled row, the name, a banner nor contact details
func guessProfessionalTitle(window []string, info types.PersonalInfo) string {
	for _, line := range window {
		if _, _, ok := labeledRow(line); ok {
			continue
		}
		if reEmail.MatchString(line) || rePhoneValue.MatchString(line) {
			continue
		}
		if reRichatHeader.MatchString(line) || strings.EqualFold(line, "RICHAT PARTNERS") {
			continue
		}
		if info.ExpertName != "" && validName(line) == info.ExpertName {
			continue
		}
		if utf8.RuneCountInString(line) > maxHeaderRunes || strings.Contains(line, "|") {
			continue
		}
		return line
	}
	return ""
}

func findEmail(text string) string {
	for _, candidate := range reEmail.FindAllString(text, -1) {
		candidate = strings.TrimRight(candidate, ".")
		if emailValidator.Var(candidate, "required,email") == nil {
			return strings.ToLower(candidate)
		}
	}
	return ""
}

// NormalizeBirthDate converts D/M/YYYY style dates to DD-MM-YYYY, or returns ""
func NormalizeBirthDate(s string) string {
	m := reBirthDate.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	candidate := fmt.Sprintf("%02d-%02d-%s", day, month, m[3])
	if _, err := time.Parse("02-01-2006", candidate); err != nil {
		return ""
	}
	return candidate
}

// NormalizePhone reduces a raw phone number to the Mauritanian "NN NN NN NN"
// form. The international prefix (00222, +222 or a bare 222 on 11 digits) is
// stripped; anything that does not leave exactly 8 digits yields "".
func NormalizePhone(raw string) string {
	digits := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			digits = append(digits, raw[i])
		}
	}
	d := string(digits)
	switch {
	case strings.HasPrefix(d, "00222"):
		d = d[5:]
	case strings.HasPrefix(d, "222") && len(d) == 11:
		d = d[3:]
	}
	if len(d) != 8 {
		return ""
	}
	return d[0:2] + " " + d[2:4] + " " + d[4:6] + " " + d[6:8]
}

// phoneFromValue normalizes the first number found in a labeled phone value
func phoneFromValue(value string) string {
	for _, candidate := range rePhoneValue.FindAllString(value, -1) {
		if p := NormalizePhone(candidate); p != "" {
			return p
		}
	}
	return ""
}

// findPhone searches labeled phone lines first, then the whole text
func findPhone(lines []string) string {
	for _, line := range lines {
		if field, value, ok := labeledRow(line); ok && field == fieldPhone {
			if p := phoneFromValue(value); p != "" {
				return p
			}
		}
	}
	return findPhoneIn(strings.Join(lines, "\n"))
}

func findPhoneIn(text string) string {
	for _, re := range []*regexp.Regexp{rePhonePrefixed, rePhoneGrouped, rePhoneBare, rePhoneTen} {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if re != rePhonePrefixed && !isolatedNumber(text, loc[0], loc[1]) {
				continue
			}
			if p := NormalizePhone(text[loc[0]:loc[1]]); p != "" {
				return p
			}
		}
	}
	return ""
}

// isolatedNumber reports whether text[start:end] is not the tail or head of
// a longer separated digit sequence ("+33 6 12 34 56 78")
func isolatedNumber(text string, start, end int) bool {
	isSep := func(b byte) bool { return b == ' ' || b == '.' || b == '-' }
	isDigit := func(b byte) bool { return b >= '0' && b <= '9' }

	i := start - 1
	for i >= 0 && start-i <= 2 && isSep(text[i]) {
		i--
	}
	if i >= 0 && i < start-1 && isDigit(text[i]) || i >= 0 && text[i] == '+' {
		return false
	}
	j := end
	for j < len(text) && j-end < 2 && isSep(text[j]) {
		j++
	}
	return !(j < len(text) && j > end && isDigit(text[j]))
}
