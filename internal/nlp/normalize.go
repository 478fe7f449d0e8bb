// Package nlp provides text normalization helpers shared by the taxonomy,
// extraction and matching packages.
package nlp

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reNonTerm = regexp.MustCompile(`[^\p{L}\p{N}+#]+`)
	reSpaces  = regexp.MustCompile(`\s+`)
)

// Fold lowercases s and strips combining diacritics ("Éducation" -> "education").
// Arabic letters are left untouched.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// NormalizeTerm folds a term and replaces everything that is not a letter,
// digit, '+' or '#' by single spaces. It is the key used for whole-word matching:
// "Node.js" -> "node js", "C++" -> "c++".
func NormalizeTerm(s string) string {
	s = Fold(s)
	s = reNonTerm.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// CollapseSpaces trims s and collapses internal whitespace runs to one space
func CollapseSpaces(s string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

// ContainsPhrase reports whether an already normalized phrase occurs in an
// already normalized text as whole words.
func ContainsPhrase(normalizedText, normalizedPhrase string) bool {
	if normalizedPhrase == "" {
		return false
	}
	hay := " " + normalizedText + " "
	needle := " " + normalizedPhrase + " "
	return strings.Contains(hay, needle)
}

// Tokens splits a normalized string into its space separated tokens
func Tokens(normalized string) []string {
	if normalized == "" {
		return []string{}
	}
	return strings.Fields(normalized)
}
