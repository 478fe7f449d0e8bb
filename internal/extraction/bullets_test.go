package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractBullets_Splitters(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "bullet dots",
			in:   "• Analyse des besoins • Rédaction du cahier des charges",
			want: []string{"Analyse des besoins", "Rédaction du cahier des charges"},
		},
		{
			name: "dashes",
			in:   "- Audit des comptes\n- Formation des équipes",
			want: []string{"Audit des comptes", "Formation des équipes"},
		},
		{
			name: "o markers",
			in:   "o Suivi budgétaire\no Reporting mensuel",
			want: []string{"Suivi budgétaire", "Reporting mensuel"},
		},
		{
			name: "numbered",
			in:   "1. Cadrage du projet 2. Déploiement national",
			want: []string{"Cadrage du projet", "Déploiement national"},
		},
		{
			name: "sentences",
			in:   "Conception de la plateforme de paiement. Ok. Mise en place de la supervision applicative.",
			want: []string{"Conception de la plateforme de paiement.", "Mise en place de la supervision applicative."},
		},
		{
			name: "short text kept whole",
			in:   "Audit interne",
			want: []string{"Audit interne"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractBullets(tt.in))
		})
	}
}

func TestExtractBullets_Empty(t *testing.T) {
	assert.Equal(t, []string{}, ExtractBullets("   "))
}

func TestDeriveRole(t *testing.T) {
	assert.Equal(t, "Project Manager", DeriveRole("Chef de projet pour la refonte du SI"))
	assert.Equal(t, "Manager", DeriveRole("Manager d'une équipe de 10 personnes"))
	assert.Equal(t, "Developer", DeriveRole("Développeur backend"))
	assert.Equal(t, "Analyst", DeriveRole("Analyste crédit"))
	assert.Empty(t, DeriveRole("Stage d'observation"))
}
