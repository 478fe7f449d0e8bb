package extraction

import (
	"testing"

	"github.com/jonathan/richat-staffing/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEducation_TableMode(t *testing.T) {
	lines := []string{
		"Nom École | Période | Diplôme",
		"Université de Nouakchott | 2003 - 2007 | Licence en informatique",
		"ISCAE | 2009-2007 | Master en finance",
	}
	got := extractEducation(lines)

	require.Len(t, got, 2)
	assert.Equal(t, types.Education{Institution: "Université de Nouakchott", Period: "2003-2007", Degree: "Licence en informatique"}, got[0])
	assert.Equal(t, "2007-2009", got[1].Period, "reversed periods are reordered")
}

func TestExtractEducation_ListMode(t *testing.T) {
	lines := []string{
		"2010 - 2012 : Master en management de projets, Université Cheikh Anta Diop",
		"Mention bien",
		"2006",
		"Baccalauréat série C",
		"Lycée national de Nouakchott",
	}
	got := extractEducation(lines)

	require.Len(t, got, 2)
	assert.Equal(t, "2010-2012", got[0].Period)
	assert.Equal(t, "Master en management de projets", got[0].Degree)
	assert.Equal(t, "Université Cheikh Anta Diop", got[0].Institution)
	assert.Equal(t, "Mention bien", got[0].Description)

	assert.Equal(t, "2006", got[1].Period)
	assert.Equal(t, "Baccalauréat série C", got[1].Degree)
	assert.Equal(t, "Lycée national de Nouakchott", got[1].Institution)
}

func TestExtractEducation_Cap(t *testing.T) {
	var lines []string
	for i := 0; i < 12; i++ {
		lines = append(lines, "2001 Licence, Université de Nouakchott")
	}
	assert.Len(t, extractEducation(lines), maxEducation)
}

func TestExtractExperience_Table(t *testing.T) {
	lines := []string{
		"Période | Employeur | Pays | Description",
		"2019-2023 | SNIM (Chef de projet) | Mauritanie | • Pilotage de la refonte du SI • Migration vers PostgreSQL",
		"Janvier 2015 - Décembre 2018 | Banque Centrale de Mauritanie | Mauritanie | Développeur Python.",
		"Conception d'API REST pour les paiements.",
	}
	got := extractExperience(lines)

	require.Len(t, got, 2)
	assert.Equal(t, "2019-2023", got[0].Period)
	assert.Equal(t, "SNIM", got[0].Employer)
	assert.Equal(t, "Project Manager", got[0].Role)
	assert.Equal(t, "Mauritanie", got[0].Country)
	assert.Equal(t, []string{"Pilotage de la refonte du SI", "Migration vers PostgreSQL"}, got[0].Bullets)

	assert.Equal(t, "Janvier 2015 - Décembre 2018", got[1].Period)
	assert.Equal(t, "Banque Centrale de Mauritanie", got[1].Employer)
	assert.Equal(t, "Developer", got[1].Role)
	assert.Equal(t, []string{"Conception d'API REST pour les paiements."}, got[1].Bullets)
	assert.Equal(t, "Développeur Python.", got[1].Summary)
}

func TestExtractExperience_FreeForm(t *testing.T) {
	lines := []string{
		"2012 - présent : Cabinet Audit Conseil, Nouakchott, Mauritanie",
		"- Audit financier des projets financés par la Banque mondiale",
		"- Missions d'expert comptable auprès des ONG",
	}
	got := extractExperience(lines)

	require.Len(t, got, 1)
	assert.Equal(t, "2012-présent", got[0].Period)
	assert.Equal(t, "Cabinet Audit Conseil", got[0].Employer)
	assert.Equal(t, "Mauritanie", got[0].Country)
	assert.Equal(t, "Expert", got[0].Role)
	assert.Len(t, got[0].Bullets, 2)
}

func TestExtractExperience_Cap(t *testing.T) {
	var lines []string
	for i := 0; i < 10; i++ {
		lines = append(lines, "2010-2011 | Employeur | Mauritanie | Consultant")
	}
	assert.Len(t, extractExperience(lines), maxExperience)
}

func TestExtractLanguages(t *testing.T) {
	lines := []string{
		"Langue | Parler | Lecture | Écriture",
		"Arabe | Langue maternelle | Excellent | Excellent",
		"Français : courant",
		"Anglais | Bon | Bon | Moyen",
		"Espagnol (notions)",
		"Wolof",
	}
	got := extractLanguages(lines)

	require.Len(t, got, 4)
	assert.Equal(t, types.Language{Language: "Arabe", Speaking: types.LevelNative, Reading: types.LevelFluent, Writing: types.LevelFluent, Level: types.LevelNative}, got[0])
	assert.Equal(t, types.LevelFluent, got[1].Writing)
	assert.Equal(t, types.Language{Language: "Anglais", Speaking: types.LevelGood, Reading: types.LevelGood, Writing: types.LevelFair, Level: types.LevelGood}, got[2])
	assert.Equal(t, types.LevelFair, got[3].Level)
}

func TestNormalizeLevel(t *testing.T) {
	tests := map[string]types.LanguageLevel{
		"Natif":          types.LevelNative,
		"Native speaker": types.LevelNative,
		"Courant":        types.LevelFluent,
		"Très bien":      types.LevelFluent,
		"Bon":            types.LevelGood,
		"Assez bien":     types.LevelFair,
		"Moyen":          types.LevelFair,
		"Intermédiaire":  types.LevelIntermediate,
	}
	for in, want := range tests {
		got, ok := NormalizeLevel(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := NormalizeLevel("Parler")
	assert.False(t, ok)
}

func TestExtractProjects(t *testing.T) {
	lines := []string{
		"Nom du projet : Modernisation du système de paie",
		"Date : 2021-2022",
		"Société : SNIM",
		"Poste occupé : Chef de projet",
		"Lieu : Nouadhibou",
		"Client | SNIM",
		"Brève description : Refonte complète",
		"du système de paie.",
		"Activités :",
		"• Analyse des besoins",
		"• Pilotage de l'équipe",
		"Nom du projet : Audit du SI",
		"Activités : Revue des accès",
	}
	got := extractProjects(lines)

	require.Len(t, got, 2)
	p := got[0]
	assert.Equal(t, "Modernisation du système de paie", p.Name)
	assert.Equal(t, "2021-2022", p.Date)
	assert.Equal(t, "SNIM", p.Company)
	assert.Equal(t, "Chef de projet", p.Role)
	assert.Equal(t, "Nouadhibou", p.Location)
	assert.Equal(t, "SNIM", p.Client)
	assert.Equal(t, "Refonte complète du système de paie.", p.Description)
	assert.Equal(t, []string{"Analyse des besoins", "Pilotage de l'équipe"}, p.Activities)

	assert.Equal(t, "Audit du SI", got[1].Name)
	assert.Equal(t, []string{"Revue des accès"}, got[1].Activities)
}
