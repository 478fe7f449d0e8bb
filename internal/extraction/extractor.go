package extraction

import (
	"regexp"
	"strings"

	"github.com/jonathan/richat-staffing/internal/nlp"
	"github.com/jonathan/richat-staffing/internal/taxonomy"
	"github.com/jonathan/richat-staffing/internal/types"
)

// ProcessingMethod identifies this extractor in Profile.ProcessingMethod
const ProcessingMethod = "rule_based"

const maxCertifications = 10

var reAcquisitionMarker = regexp.MustCompile(`^=== (PAGE \d+|TABLE \d+-\d+) ===$`)

// requiredSections must be present for a Profile to be complete
var requiredSections = []section{secSummary, secEducation, secExperience, secSkills, secLanguages, secMission}

// recommendations suggests a fix for each missing required section
var recommendations = map[section]string{
	secSummary:    "Ajouter un résumé du profil",
	secEducation:  "Ajouter le tableau Éducation (Nom École | Période | Diplôme)",
	secExperience: "Détailler l'expérience professionnelle (Période | Employeur | Pays | Description)",
	secSkills:     "Lister les compétences clés",
	secLanguages:  "Ajouter le tableau des langues (parler, lecture, écriture)",
	secMission:    "Ajouter la section Adéquation à la mission avec au moins un projet de référence",
}

// Extractor builds Profiles from acquired CV text. It is safe for concurrent use.
type Extractor struct {
	tax *taxonomy.Taxonomy
}

// New creates an Extractor backed by the given taxonomy, or the default one when nil
func New(tax *taxonomy.Taxonomy) *Extractor {
	if tax == nil {
		tax = taxonomy.Default()
	}
	return &Extractor{tax: tax}
}

// Extract parses text into a Profile. It never fails: missing or unreadable
// sections yield empty collections and warnings in Profile.Errors.
// Success is false only when text is empty.
func (e *Extractor) Extract(text string) *types.Profile {
	p := types.NewProfile()
	p.ProcessingMethod = ProcessingMethod

	lines := contentLines(text)
	if len(lines) == 0 {
		p.DetectedFormat = types.FormatGeneric
		p.Errors = append(p.Errors, string(types.CodeDecodeFailed)+": no text to extract")
		p.MissingSections = sectionNames(requiredSections)
		return p
	}
	text = strings.Join(lines, "\n")

	p.DetectedFormat = DetectFormat(text)
	secs := splitSections(lines, p.DetectedFormat)
	head := preamble(lines, p.DetectedFormat, identityWindow)

	info, identityRows := extractIdentity(head, lines)
	p.PersonalInfo = info

	p.ProfileSummary = nlp.CollapseSpaces(strings.Join(secs.get(secSummary), " "))
	p.Education = extractEducation(secs.get(secEducation))
	p.Experience = extractExperience(secs.get(secExperience))
	p.Skills = extractSkills(e.tax, text, secs.get(secSkills))
	p.Certifications = extractCertifications(secs.get(secCertifications))
	p.ProfessionalAssociations = nlp.CollapseSpaces(strings.Join(secs.get(secAssociations), " "))
	p.MissionAdequacy.Projects = extractProjects(secs.get(secMission))

	p.Languages = extractLanguages(secs.get(secLanguages))
	languagesParsed := len(p.Languages)
	if languagesParsed == 0 {
		p.Languages = defaultLanguages()
		p.Warn("no language rows found, using default languages")
	}

	e.diagnose(p, secs, info, languagesParsed)

	p.QualityScore = ScoreQuality(p)
	p.ComplianceScore = ScoreCompliance(p, ComplianceSignals{
		HeaderPresent:   reRichatHeader.MatchString(text),
		IdentityRows:    identityRows,
		LanguagesParsed: languagesParsed,
	})
	p.RichatCompatibilityScore = (p.QualityScore + p.ComplianceScore + 1) / 2

	domain, share := e.tax.DominantDomain(p.Skills)
	p.PrimaryDomain = domain
	p.TaxonomyAffinityScore = TaxonomyAffinity(len(p.Skills), share)

	p.Success = true
	return p
}

// diagnose fills the section report, warnings and recommendations
func (e *Extractor) diagnose(p *types.Profile, secs *sections, info types.PersonalInfo, languagesParsed int) {
	p.SectionsFound["personal_info"] = info.ExpertName != ""
	for _, sec := range sectionOrder {
		p.SectionsFound[string(sec)] = secs.has(sec)
	}

	filled := map[section]bool{
		secSummary:    p.ProfileSummary != "",
		secEducation:  len(p.Education) > 0,
		secExperience: len(p.Experience) > 0,
		secSkills:     len(p.Skills) > 0,
		secLanguages:  languagesParsed > 0,
		secMission:    len(p.MissionAdequacy.Projects) > 0,
	}
	for _, sec := range requiredSections {
		if filled[sec] {
			continue
		}
		p.MissingSections = append(p.MissingSections, string(sec))
		p.Recommendations = append(p.Recommendations, recommendations[sec])
		if secs.has(sec) {
			p.Warn("section " + string(sec) + " found but no entries could be parsed")
		} else if sec != secLanguages {
			p.Warn("section " + string(sec) + " not found")
		}
	}

	if info.ExpertName == "" {
		p.Warn("expert name not found")
		p.Recommendations = append(p.Recommendations, "Indiquer le nom de l'expert dans le tableau d'identité")
	}
	if info.Phone == "" {
		p.Recommendations = append(p.Recommendations, "Indiquer un numéro de téléphone mauritanien à 8 chiffres")
	}
	if info.Email == "" {
		p.Recommendations = append(p.Recommendations, "Indiquer une adresse email valide")
	}
}

// contentLines drops acquisition markers and blank lines
func contentLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" || reAcquisitionMarker.MatchString(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}

func extractCertifications(lines []string) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, line := range lines {
		for _, item := range reBulletDot.Split(line, -1) {
			item = cleanBullet(item)
			key := nlp.Fold(item)
			if item == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, item)
			if len(out) == maxCertifications {
				return out
			}
		}
	}
	return out
}

func sectionNames(secs []section) []string {
	out := make([]string, len(secs))
	for i, s := range secs {
		out[i] = string(s)
	}
	return out
}
