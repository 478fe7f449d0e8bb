package rendering

import (
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
)

// EscapeText prepares text for the PDF core fonts, which only carry the
// Windows-1252 repertoire. Control characters become spaces, typographic
// runes outside the code page get an ASCII substitute and anything else
// unencodable is replaced by '?'.
func EscapeText(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text))

	for _, r := range text {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			result.WriteByte(' ')
		case unicode.IsControl(r):
			continue
		case r == '\u00a0' || r == '\u202f' || r == '\u2009':
			result.WriteByte(' ')
		case r == '\u2010' || r == '\u2011' || r == '\u2012' || r == '\u2212':
			result.WriteByte('-')
		case r == '▪' || r == '●' || r == '◦' || r == '►' || r == '‣':
			result.WriteRune('•')
		default:
			if _, ok := charmap.Windows1252.EncodeRune(r); ok {
				result.WriteRune(r)
			} else {
				result.WriteByte('?')
			}
		}
	}

	return result.String()
}
