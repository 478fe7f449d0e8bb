// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/richat-staffing/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintStep outputs a one-line progress message
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintStep(step, message string) {
	fmt.Fprintf(p.out, "[%s] %s\n", step, message)
}

// PrintProfile outputs a human-readable summary of an extracted CV profile.
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	info := profile.PersonalInfo
	sb.WriteString(fmt.Sprintf("Expert:   %s\n", info.ExpertName))
	if info.ProfessionalTitle != "" {
		sb.WriteString(fmt.Sprintf("Title:    %s\n", info.ProfessionalTitle))
	}
	sb.WriteString(fmt.Sprintf("Format:   %s\n", profile.DetectedFormat))
	if profile.PrimaryDomain != types.DomainUndefined {
		sb.WriteString(fmt.Sprintf("Domain:   %s\n", profile.PrimaryDomain))
	}
	sb.WriteString(fmt.Sprintf("Scores:   quality %d, compliance %d, affinity %d\n",
		profile.QualityScore, profile.ComplianceScore, profile.TaxonomyAffinityScore))
	sb.WriteString(fmt.Sprintf("Sections: %d education, %d experience, %d languages, %d projects\n",
		len(profile.Education), len(profile.Experience), len(profile.Languages), len(profile.MissionAdequacy.Projects)))

	if len(profile.Skills) > 0 {
		sb.WriteString("\nSkills:\n")
		count := min(len(profile.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.Skills[i]))
		}
		if len(profile.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Skills)-maxItemsToShow))
		}
	}

	if len(profile.MissingSections) > 0 {
		sb.WriteString(fmt.Sprintf("\nMissing:  %s\n", strings.Join(profile.MissingSections, ", ")))
	}

	p.printBox("EXTRACTED CV PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatchResults outputs the top ranked consultants of a tender.
func (p *Printer) PrintMatchResults(results *types.MatchResults) {
	if results == nil || len(results.Results) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Tender: %s\n", results.TenderID))
	sb.WriteString(fmt.Sprintf("Consultants ranked: %d\n\n", len(results.Results)))

	count := min(len(results.Results), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := results.Results[i]
		name := r.ConsultantName
		if name == "" {
			name = r.ConsultantID
		}
		sb.WriteString(fmt.Sprintf("#%d  %s (%s)\n", i+1, name, r.ConsultantExpertise))
		sb.WriteString(fmt.Sprintf("    Score: %.2f  (dates %.2f, skills %.2f)", r.Score, r.DateMatchScore, r.SkillsMatchScore))
		if r.IsValidated {
			sb.WriteString(" ✓")
		}
		sb.WriteString("\n")
		if len(r.TopSkills) > 0 {
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", truncate(strings.Join(r.TopSkills, ", "), 40)))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(results.Results) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more consultants", len(results.Results)-maxItemsToShow))
	}

	p.printBox("RANKED CONSULTANTS", sb.String())
}

// PrintConsultant outputs a consultant's skill levels.
func (p *Printer) PrintConsultant(c *types.Consultant) {
	if c == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Consultant: %s (%s)\n", c.Name, c.ID))
	sb.WriteString(fmt.Sprintf("Tier:       %s\n", c.Tier()))
	if c.PrimaryDomain != types.DomainUndefined {
		sb.WriteString(fmt.Sprintf("Domain:     %s\n", c.PrimaryDomain))
	}
	if len(c.SkillLevels) > 0 {
		sb.WriteString("\n")
		for _, name := range c.TopSkills(len(c.SkillLevels)) {
			sb.WriteString(fmt.Sprintf("  %-30s %s\n", truncate(name, 30), strings.Repeat("★", c.SkillLevels[name])))
		}
	}

	p.printBox("CONSULTANT SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintWarnings outputs the non-fatal problems recorded during processing.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintWarnings(warnings []string) {
	if len(warnings) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO WARNINGS")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d warnings:\n\n", len(warnings)))
	for i, w := range warnings {
		sb.WriteString(fmt.Sprintf("⚠ %s", truncate(w, boxWidth-6)))
		if i < len(warnings)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("WARNINGS", sb.String())
}
