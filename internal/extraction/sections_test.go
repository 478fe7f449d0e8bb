package extraction

import (
	"testing"

	"github.com/jonathan/richat-staffing/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		text string
		want types.Format
	}{
		{"RICHAT PARTNERS\nCURRICULUM VITAE (CV)\nNom de l'expert : A B", types.FormatRichatStandard},
		{"Senior Data Engineer\nExpérience", types.FormatProfessionalModern},
		{"Expert en transformation digitale", types.FormatProfessionalModern},
		{"Doctorat en économie\nPublications", types.FormatAcademic},
		{"Éducation\nExpérience\nCompétences", types.FormatTraditional},
		{"Bonjour", types.FormatGeneric},
		{"Lead Developer\nCompétences", types.FormatProfessionalModern},
		{"Consultant senior en audit\nFormation", types.FormatProfessionalModern},
		{"Head of Engineering\nSkills", types.FormatProfessionalModern},
		{"Chief Financial Officer", types.FormatProfessionalModern},
		{"Manager\nExpérience\nFormation", types.FormatTraditional},
		{"Directeur des ventes\nÉducation", types.FormatTraditional},
		{"Chef de projet\nExpériences professionnelles", types.FormatTraditional},
		{"J'ai su lead the team of consultants\nFormation", types.FormatTraditional},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectFormat(tt.text), "text %q", tt.text)
	}
}

func TestMatchHeader(t *testing.T) {
	cues := cueTable(types.FormatGeneric)

	h, ok := matchHeader("ÉDUCATION", cues)
	require.True(t, ok)
	assert.Equal(t, secEducation, h.sec)
	assert.True(t, h.exact)

	h, ok = matchHeader("3. Expérience professionnelle", cues)
	require.True(t, ok)
	assert.Equal(t, secExperience, h.sec)

	h, ok = matchHeader("Compétences : Python, Django", cues)
	require.True(t, ok)
	assert.Equal(t, secSkills, h.sec)
	assert.Equal(t, "Python, Django", h.inline)

	for _, line := range []string{
		"Période | Employeur | Pays",
		"Expérience de dix ans dans le secteur bancaire",
		"• Langues étrangères",
		"Formation des agents.",
		"Nom de l'expert : Ahmed Salem",
	} {
		_, ok := matchHeader(line, cues)
		assert.False(t, ok, "line %q", line)
	}
}

func TestSplitSections_MinorCueDoesNotCloseSection(t *testing.T) {
	lines := []string{
		"Expérience professionnelle",
		"2019-2023 : Consultant, SNIM, Mauritanie",
		"Formation du personnel",
		"Langues",
		"Arabe : natif",
	}
	secs := splitSections(lines, types.FormatGeneric)

	assert.Equal(t, []section{secExperience, secLanguages}, secs.order)
	assert.Equal(t, []string{"2019-2023 : Consultant, SNIM, Mauritanie", "Formation du personnel"}, secs.get(secExperience))
	assert.Equal(t, []string{"Arabe : natif"}, secs.get(secLanguages))
}

func TestSplitSections_CapsSectionLength(t *testing.T) {
	lines := []string{"Certifications"}
	for i := 0; i < maxSectionLines+20; i++ {
		lines = append(lines, "Certificat")
	}
	secs := splitSections(lines, types.FormatGeneric)
	assert.Len(t, secs.get(secCertifications), maxSectionLines)
}

func TestPreamble_StopsAtFirstHeader(t *testing.T) {
	lines := []string{"Ahmed Salem", "", "Ingénieur", "Profil", "Texte"}
	assert.Equal(t, []string{"Ahmed Salem", "Ingénieur"}, preamble(lines, types.FormatGeneric, 15))
}
