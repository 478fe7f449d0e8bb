package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "education", Fold("Éducation"))
	assert.Equal(t, "competences cles", Fold("Compétences Clés"))
	assert.Equal(t, "adequation a la mission", Fold("Adéquation à la mission"))
}

func TestNormalizeTerm(t *testing.T) {
	tests := map[string]string{
		"Node.js":              "node js",
		"C++":                  "c++",
		"  CI/CD  ":            "ci cd",
		"Contrôle de gestion":  "controle de gestion",
		"Finance d'entreprise": "finance d entreprise",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeTerm(in), in)
	}
}

func TestContainsPhrase(t *testing.T) {
	text := NormalizeTerm("Développement d'APIs REST avec Python et Node.js")
	assert.True(t, ContainsPhrase(text, "python"))
	assert.True(t, ContainsPhrase(text, "node js"))
	assert.False(t, ContainsPhrase(text, "pyth"))
	assert.False(t, ContainsPhrase(text, ""))
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, Tokens("a  b"))
	assert.Empty(t, Tokens(""))
}
