package extraction

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/richat-staffing/internal/nlp"
)

// minSentenceRunes is the shortest sentence kept by the sentence splitter
const minSentenceRunes = 20

var (
	reBulletDot      = regexp.MustCompile(`[•▪►●◦]`)
	reBulletDash     = regexp.MustCompile(`(?:^|\n|\s)[-–—]\s+`)
	reBulletO        = regexp.MustCompile(`(?:^|\n|\s)o\s+`)
	reBulletNumbered = regexp.MustCompile(`(?:^|\n|\s)\d{1,2}[.)]\s+`)
	reSentenceEnd    = regexp.MustCompile(`[.!?;]\s+`)
)

// ExtractBullets splits a free-text description into activity bullets.
// Splitters are tried in order (•, dash, "o", numbered items) and the first
// that yields at least two items wins; otherwise the text is split into
// sentences of at least 20 characters.
func ExtractBullets(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{}
	}
	for _, re := range []*regexp.Regexp{reBulletDot, reBulletDash, reBulletO, reBulletNumbered} {
		if items := splitOn(re, text); len(items) >= 2 {
			return items
		}
	}
	if sentences := splitSentences(text); len(sentences) > 0 {
		return sentences
	}
	return []string{cleanBullet(text)}
}

func splitOn(re *regexp.Regexp, text string) []string {
	parts := re.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if b := cleanBullet(p); b != "" {
			out = append(out, b)
		}
	}
	return out
}

func splitSentences(text string) []string {
	var out []string
	last := 0
	for _, loc := range reSentenceEnd.FindAllStringIndex(text, -1) {
		// keep the terminator with its sentence
		out = appendSentence(out, text[last:loc[0]+1])
		last = loc[1]
	}
	out = appendSentence(out, text[last:])
	return out
}

func appendSentence(out []string, s string) []string {
	s = cleanBullet(s)
	if utf8.RuneCountInString(s) < minSentenceRunes {
		return out
	}
	return append(out, s)
}

func cleanBullet(s string) string {
	s = nlp.CollapseSpaces(s)
	return strings.TrimSpace(strings.TrimLeft(s, "-–—•*·:;,"))
}
