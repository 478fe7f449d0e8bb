package rendering

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/richat-staffing/internal/types"
)

// Limits of the canonical template
const (
	maxSkills         = 10
	maxProjects       = 2
	maxCertifications = 6
)

// Section titles of the canonical template
const (
	titleSummary        = "Résumé du profil"
	titleEducation      = "Éducation"
	titleExperience     = "Expérience professionnelle"
	titleSkills         = "Compétences clés"
	titleAssociations   = "Adhésion à des associations professionnelles"
	titleLanguages      = "Langues"
	titleMission        = "Adéquation à la mission"
	titleCertifications = "Certifications"
)

// Row is a label/value line of a two-column table
type Row struct {
	Label string
	Value string
}

// Column is a fixed-width table column
type Column struct {
	Header string
	Width  float64 // millimeters
}

// Table is a gridded table with a shaded header row
type Table struct {
	Columns []Column
	Rows    [][]string
}

// Footer is the page furniture printed on every page
type Footer struct {
	GeneratedAt     time.Time
	QualityScore    int
	ComplianceScore int
	ID              string
}

// Document is the layout model of a canonical CV: every region in print order.
// Empty regions are kept so that the layout stays fixed.
type Document struct {
	Heading           []string
	Identity          []Row
	ProfessionalTitle string
	Contact           []Row
	Summary           string
	Education         Table
	Experience        Table
	Skills            []string
	Associations      string
	Languages         Table
	Projects          [][]Row
	Activities        [][]string // per project, parallel to Projects
	Certifications    []string
	Footer            Footer
}

// DocumentID returns the stable identifier printed in the footer
func DocumentID(consultantID string, now time.Time) string {
	if id := strings.TrimSpace(consultantID); id != "" {
		return "RICHAT-" + id
	}
	return "RICHAT-" + now.Format("20060102150405")
}

// BuildDocument lays out a Profile on the canonical template
func BuildDocument(p *types.Profile, consultantID string, now time.Time) *Document {
	info := p.PersonalInfo
	doc := &Document{
		Heading: []string{"RICHAT PARTNERS", "CURRICULUM VITAE (CV)"},
		Identity: []Row{
			{Label: "Titre", Value: info.Title},
			{Label: "Nom de l'expert", Value: info.ExpertName},
			{Label: "Date de naissance", Value: info.BirthDate},
			{Label: "Pays de résidence", Value: info.ResidenceCountry},
		},
		ProfessionalTitle: info.ProfessionalTitle,
		Contact: []Row{
			{Label: "Email", Value: info.Email},
			{Label: "Téléphone", Value: info.Phone},
		},
		Summary:      p.ProfileSummary,
		Associations: p.ProfessionalAssociations,
		Footer: Footer{
			GeneratedAt:     now,
			QualityScore:    p.QualityScore,
			ComplianceScore: p.ComplianceScore,
			ID:              DocumentID(consultantID, now),
		},
	}

	doc.Education = Table{Columns: []Column{
		{Header: "Nom École", Width: 70},
		{Header: "Période", Width: 30},
		{Header: "Diplôme", Width: 80},
	}}
	for _, e := range p.Education {
		doc.Education.Rows = append(doc.Education.Rows, []string{e.Institution, e.Period, e.Degree})
	}

	doc.Experience = Table{Columns: []Column{
		{Header: "Période", Width: 28},
		{Header: "Employeur", Width: 52},
		{Header: "Pays", Width: 25},
		{Header: "Description", Width: 75},
	}}
	for _, e := range p.Experience {
		doc.Experience.Rows = append(doc.Experience.Rows, []string{e.Period, employerCell(e), e.Country, activitiesCell(e)})
	}

	doc.Skills = limit(p.Skills, maxSkills)

	doc.Languages = Table{Columns: []Column{
		{Header: "Langue", Width: 45},
		{Header: "Parler", Width: 45},
		{Header: "Lecture", Width: 45},
		{Header: "Écriture", Width: 45},
	}}
	for _, l := range p.Languages {
		doc.Languages.Rows = append(doc.Languages.Rows, []string{l.Language, string(l.Speaking), string(l.Reading), string(l.Writing)})
	}

	for i, pr := range p.MissionAdequacy.Projects {
		if i == maxProjects {
			break
		}
		doc.Projects = append(doc.Projects, []Row{
			{Label: "Nom du projet", Value: pr.Name},
			{Label: "Date", Value: pr.Date},
			{Label: "Société", Value: pr.Company},
			{Label: "Poste occupé", Value: pr.Role},
			{Label: "Lieu", Value: pr.Location},
			{Label: "Client", Value: pr.Client},
			{Label: "Brève description", Value: pr.Description},
		})
		doc.Activities = append(doc.Activities, pr.Activities)
	}

	doc.Certifications = limit(p.Certifications, maxCertifications)
	return doc
}

func employerCell(e types.Experience) string {
	if e.Role == "" {
		return e.Employer
	}
	if e.Employer == "" {
		return e.Role
	}
	return fmt.Sprintf("%s (%s)", e.Employer, e.Role)
}

func activitiesCell(e types.Experience) string {
	if len(e.Bullets) == 0 {
		return e.Summary
	}
	return "• " + strings.Join(e.Bullets, " • ")
}

func limit(items []string, n int) []string {
	if len(items) > n {
		items = items[:n]
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}

// PlainText projects the document body onto text lines in print order, using
// the same labels and " | " table rows as the PDF. Page furniture is omitted
// and empty identity values are skipped.
func (d *Document) PlainText() string {
	var b strings.Builder
	line := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			b.WriteString(s)
			b.WriteByte('\n')
		}
	}
	rows := func(rs []Row) {
		for _, r := range rs {
			if r.Value != "" {
				line(r.Label + " : " + r.Value)
			}
		}
	}
	table := func(t Table) {
		headers := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			headers[i] = c.Header
		}
		line(strings.Join(headers, " | "))
		for _, r := range t.Rows {
			line(joinCells(r))
		}
	}
	bullets := func(items []string) {
		for _, it := range items {
			line("• " + it)
		}
	}

	for _, h := range d.Heading {
		line(h)
	}
	rows(d.Identity)
	line(d.ProfessionalTitle)
	rows(d.Contact)

	line(titleSummary)
	line(d.Summary)
	line(titleEducation)
	table(d.Education)
	line(titleExperience)
	table(d.Experience)
	line(titleSkills)
	bullets(d.Skills)
	line(titleAssociations)
	line(d.Associations)
	line(titleLanguages)
	table(d.Languages)
	line(titleMission)
	for i, pr := range d.Projects {
		rows(pr)
		if len(d.Activities[i]) > 0 {
			line("Activités :")
			bullets(d.Activities[i])
		}
	}
	line(titleCertifications)
	bullets(d.Certifications)
	return b.String()
}

// joinCells renders a table row, marking empty cells so that columns keep
// their position
func joinCells(cells []string) string {
	out := make([]string, len(cells))
	for i, c := range cells {
		c = strings.Join(strings.Fields(c), " ")
		if c == "" {
			c = "-"
		}
		out[i] = c
	}
	return strings.Join(out, " | ")
}
