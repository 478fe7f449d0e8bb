package ingestion

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	xunicode "golang.org/x/text/encoding/unicode"
)

var (
	reMarker      = regexp.MustCompile(`(?m)^=== (PAGE \d+|TABLE \d+-\d+) ===$`)
	reInlineSpace = regexp.MustCompile(`[ \t\f\v\x{00A0}\x{2007}\x{202F}]+`)
	reBlankRuns   = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes extracted text while preserving its line structure:
// line endings become LF, horizontal whitespace runs collapse to one space,
// lines are trimmed and blank runs are capped at one empty line.
func CleanText(content string) string {
	if content == "" {
		return ""
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\x00", "")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(reInlineSpace.ReplaceAllString(line, " "))
	}
	result := strings.Join(lines, "\n")
	result = reBlankRuns.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// stripMarkers removes page and table markers, leaving only document text
func stripMarkers(s string) string {
	return reMarker.ReplaceAllString(s, "")
}

// charsetCandidate is one step of the plain-text decoding cascade
type charsetCandidate struct {
	name   string
	decode func([]byte) (string, bool)
}

// textCascade is tried in order; the first non-empty decoding wins
var textCascade = []charsetCandidate{
	{"utf-8", decodeUTF8},
	{"latin-1", strictSingleByte(charmap.ISO8859_1, true)},
	{"cp1252", strictSingleByte(charmap.Windows1252, false)},
	{"iso-8859-1", lenientSingleByte(charmap.ISO8859_1)},
	{"utf-16", decodeUTF16Sniffed},
}

func acquireText(data []byte, res *Result) {
	// A byte order mark is authoritative and skips the cascade
	if text, name, ok := decodeWithBOM(data); ok {
		res.Text, res.Method = text, MethodText+"_"+name
		return
	}
	for _, c := range textCascade {
		if text, ok := c.decode(data); ok && strings.TrimSpace(text) != "" {
			res.Text, res.Method = text, MethodText+"_"+c.name
			return
		}
	}
	res.fail(&DecodeError{Method: MethodText, Message: "no charset produced a non-empty decoding"})
}

func decodeWithBOM(data []byte) (string, string, bool) {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		rest := data[3:]
		if !utf8.Valid(rest) {
			return "", "", false
		}
		return string(rest), "utf-8", true
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}), bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		text, ok := decodeUTF16(data)
		return text, "utf-16", ok
	}
	return "", "", false
}

func decodeUTF8(data []byte) (string, bool) {
	if !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}

// strictSingleByte rejects decodings that contain replacement characters or,
// when rejectC1 is set, C1 control characters (which signal CP1252 input).
func strictSingleByte(cm *charmap.Charmap, rejectC1 bool) func([]byte) (string, bool) {
	return func(data []byte) (string, bool) {
		out, err := cm.NewDecoder().Bytes(data)
		if err != nil {
			return "", false
		}
		s := string(out)
		for _, r := range s {
			if r == utf8.RuneError {
				return "", false
			}
			if rejectC1 && r >= 0x80 && r <= 0x9F {
				return "", false
			}
		}
		return s, true
	}
}

func lenientSingleByte(cm *charmap.Charmap) func([]byte) (string, bool) {
	return func(data []byte) (string, bool) {
		out, err := cm.NewDecoder().Bytes(data)
		if err != nil {
			return "", false
		}
		return scrubControls(string(out)), true
	}
}

func decodeUTF16(data []byte) (string, bool) {
	var dec *encoding.Decoder
	if bytes.HasPrefix(data, []byte{0xFE, 0xFF}) {
		dec = xunicode.UTF16(xunicode.BigEndian, xunicode.UseBOM).NewDecoder()
	} else {
		dec = xunicode.UTF16(xunicode.LittleEndian, xunicode.UseBOM).NewDecoder()
	}
	out, err := dec.Bytes(data)
	if err != nil {
		return "", false
	}
	return string(out), true
}

// decodeUTF16Sniffed accepts BOM-less input only when it looks like UTF-16,
// that is when a quarter or more of its bytes are zero.
func decodeUTF16Sniffed(data []byte) (string, bool) {
	if len(data)%2 != 0 || bytes.Count(data, []byte{0}) < len(data)/4 || len(data) < 2 {
		return "", false
	}
	return decodeUTF16(data)
}

// scrubControls replaces control characters other than newlines and tabs
func scrubControls(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) || r == utf8.RuneError {
			return ' '
		}
		return r
	}, s)
}

// scrubBinary is the last-resort decoder: it keeps printable runs of at least
// minRun runes from arbitrary bytes and collapses the whitespace between them.
func scrubBinary(data []byte, minRun int) string {
	s := string(data)
	if !utf8.Valid(data) {
		if out, err := charmap.ISO8859_1.NewDecoder().Bytes(data); err == nil {
			s = string(out)
		}
	}

	var (
		out strings.Builder
		run []rune
	)
	flush := func(sep byte) {
		if len(run) >= minRun {
			word := strings.TrimSpace(string(run))
			if word != "" {
				out.WriteString(word)
				out.WriteByte(sep)
			}
		}
		run = run[:0]
	}
	for _, r := range s {
		switch {
		case r == '\n':
			flush('\n')
		case r == utf8.RuneError, unicode.IsControl(r), !unicode.IsPrint(r) && r != ' ':
			flush(' ')
		default:
			run = append(run, r)
		}
	}
	flush(' ')
	return CleanText(out.String())
}
