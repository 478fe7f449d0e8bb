package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerms_DropsStopwordsAndAddsBigrams(t *testing.T) {
	assert.Equal(t,
		[]string{"audit", "comptes", "banque", "audit comptes", "comptes banque"},
		terms("Audit des comptes de la Banque"))
	assert.Empty(t, terms("de la et"))
}

func TestTFIDFCosine(t *testing.T) {
	assert.InDelta(t, 1.0, TFIDFCosine("Développement Python", "développement python"), 1e-9)
	assert.Equal(t, 0.0, TFIDFCosine("audit financier", "centrale solaire"))
	assert.Equal(t, 0.0, TFIDFCosine("", "python"))
	assert.Equal(t, 0.0, TFIDFCosine("de la", "python"))

	partial := TFIDFCosine("plateforme web Python Django", "Django Python")
	assert.Greater(t, partial, 0.0)
	assert.Less(t, partial, 1.0)
	assert.InDelta(t, partial, TFIDFCosine("Django Python", "plateforme web Python Django"), 1e-12)
}
