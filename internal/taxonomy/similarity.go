package taxonomy

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/jonathan/richat-staffing/internal/nlp"
)

// Similarity grades how interchangeable two skill terms are, in [0, 1].
// Rules are tried in order and the first one that applies wins.
func (t *Taxonomy) Similarity(a, b string) float64 {
	la := strings.ToLower(strings.TrimSpace(a))
	lb := strings.ToLower(strings.TrimSpace(b))
	if la == "" || lb == "" {
		return 0
	}
	if la == lb {
		return 1.0
	}

	na, nb := nlp.NormalizeTerm(la), nlp.NormalizeTerm(lb)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1.0
	}

	sa, okA := t.Canonicalize(na)
	sb, okB := t.Canonicalize(nb)
	if okA && okB {
		ka, kb := nlp.NormalizeTerm(sa.CanonicalName), nlp.NormalizeTerm(sb.CanonicalName)
		if ka == kb {
			return 0.95
		}
		if w, ok := t.related[pairKey(ka, kb)]; ok {
			return w
		}
	}

	va, vb := stripVersion(na), stripVersion(nb)
	if va != "" && va == vb {
		return 0.95
	}

	lenA, lenB := utf8.RuneCountInString(na), utf8.RuneCountInString(nb)
	minLen, maxLen := lenA, lenB
	if minLen > maxLen {
		minLen, maxLen = maxLen, minLen
	}

	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return 0.85 * float64(minLen) / float64(maxLen)
	}

	if j := jaccard(nlp.Tokens(na), nlp.Tokens(nb)); j > 0 {
		return 0.7 * j
	}

	d := levenshtein.ComputeDistance(na, nb)
	switch {
	case maxLen > 4 && d <= 2:
		return 0.7 * (1 - float64(d)/float64(maxLen))
	case maxLen <= 4 && d <= 1:
		return 0.6 * (1 - float64(d)/float64(maxLen))
	}
	return 0
}

func jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setA := make(map[string]bool, len(a))
	for _, tok := range a {
		setA[tok] = true
	}
	union := make(map[string]bool, len(a)+len(b))
	for tok := range setA {
		union[tok] = true
	}
	inter := 0
	seen := make(map[string]bool, len(b))
	for _, tok := range b {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		union[tok] = true
		if setA[tok] {
			inter++
		}
	}
	return float64(inter) / float64(len(union))
}
