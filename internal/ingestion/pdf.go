package ingestion

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// minTableRows is the number of consecutive multi-cell rows that make a table
	minTableRows = 2
	// cellGapFactor is the horizontal gap, in font sizes, that separates two cells
	cellGapFactor = 2.0
	// wordGapFactor is the horizontal gap, in font sizes, that separates two words
	wordGapFactor = 0.15
)

func acquirePDF(data []byte, res *Result) {
	text, tables, err := pdfLayout(data)
	if err == nil {
		res.Text, res.Tables, res.Method = text, tables, MethodPDFLayout
		return
	}
	res.fail(err)

	text, err = pdfPlain(data)
	if err == nil {
		res.Text, res.Method = text, MethodPDFPlain
		return
	}
	res.fail(err)

	text = scrubBinary(data, 4)
	if strings.TrimSpace(text) == "" {
		res.fail(&DecodeError{Method: MethodPDFBytes, Message: "no printable text in document"})
		return
	}
	res.Text, res.Method = text, MethodPDFBytes
}

// safely runs fn and converts a parser panic into a DecodeError
func safely(method string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &DecodeError{Method: method, Message: "parser panicked", Cause: fmt.Errorf("%v", r)}
		}
	}()
	return fn()
}

func openPDF(data []byte, method string) (*pdf.Reader, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &DecodeError{Method: method, Message: "failed to open PDF", Cause: err}
	}
	return r, nil
}

// pdfLayout reads each page row by row so that table columns survive
func pdfLayout(data []byte) (string, []Table, error) {
	var (
		out    strings.Builder
		tables []Table
	)
	err := safely(MethodPDFLayout, func() error {
		r, err := openPDF(data, MethodPDFLayout)
		if err != nil {
			return err
		}
		for i := 1; i <= r.NumPage(); i++ {
			p := r.Page(i)
			if p.V.IsNull() {
				continue
			}
			rows, err := p.GetTextByRow()
			if err != nil {
				return &DecodeError{Method: MethodPDFLayout, Message: fmt.Sprintf("failed to read page %d", i), Cause: err}
			}
			cells := make([][]string, 0, len(rows))
			for _, row := range rows {
				if c := rowCells(row.Content); len(c) > 0 {
					cells = append(cells, c)
				}
			}
			pageTables := writePage(&out, i, cells)
			tables = append(tables, pageTables...)
		}
		return nil
	})
	if err != nil {
		return "", nil, err
	}
	if strings.TrimSpace(stripMarkers(out.String())) == "" {
		return "", nil, &DecodeError{Method: MethodPDFLayout, Message: "no text on any page"}
	}
	if tables == nil {
		tables = []Table{}
	}
	return out.String(), tables, nil
}

// rowCells groups the glyph runs of one visual row into cells by horizontal gap
func rowCells(content pdf.TextHorizontal) []string {
	texts := make([]pdf.Text, 0, len(content))
	for _, t := range content {
		if t.S != "" {
			texts = append(texts, t)
		}
	}
	if len(texts) == 0 {
		return nil
	}
	sort.SliceStable(texts, func(i, j int) bool { return texts[i].X < texts[j].X })

	var (
		cells []string
		cur   strings.Builder
	)
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			cells = append(cells, strings.Join(strings.Fields(s), " "))
		}
		cur.Reset()
	}
	prevEnd := texts[0].X
	for i, t := range texts {
		size := t.FontSize
		if size <= 0 {
			size = 10
		}
		if i > 0 {
			gap := t.X - prevEnd
			switch {
			case gap > size*cellGapFactor:
				flush()
			case gap > size*wordGapFactor:
				cur.WriteByte(' ')
			}
		}
		cur.WriteString(t.S)
		if end := t.X + t.W; end > prevEnd || i == 0 {
			prevEnd = end
		}
	}
	flush()
	return cells
}

// writePage emits one page with its marker. Runs of multi-cell rows become
// tables, introduced by a table marker and written as pipe-joined rows.
func writePage(out *strings.Builder, page int, rows [][]string) []Table {
	fmt.Fprintf(out, "=== PAGE %d ===\n", page)
	var tables []Table
	for i := 0; i < len(rows); {
		j := i
		for j < len(rows) && len(rows[j]) > 1 {
			j++
		}
		if j-i >= minTableRows {
			tables = append(tables, Table(rows[i:j]))
			fmt.Fprintf(out, "=== TABLE %d-%d ===\n", page, len(tables))
			for _, r := range rows[i:j] {
				out.WriteString(strings.Join(r, " | "))
				out.WriteByte('\n')
			}
			i = j
			continue
		}
		out.WriteString(strings.Join(rows[i], " "))
		out.WriteByte('\n')
		i++
	}
	out.WriteByte('\n')
	return tables
}

// pdfPlain is the simpler text-only reader used when layout extraction fails
func pdfPlain(data []byte) (string, error) {
	var out strings.Builder
	err := safely(MethodPDFPlain, func() error {
		r, err := openPDF(data, MethodPDFPlain)
		if err != nil {
			return err
		}
		for i := 1; i <= r.NumPage(); i++ {
			p := r.Page(i)
			if p.V.IsNull() {
				continue
			}
			text, err := p.GetPlainText(nil)
			if err != nil {
				return &DecodeError{Method: MethodPDFPlain, Message: fmt.Sprintf("failed to read page %d", i), Cause: err}
			}
			fmt.Fprintf(&out, "=== PAGE %d ===\n%s\n\n", i, text)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(stripMarkers(out.String())) == "" {
		return "", &DecodeError{Method: MethodPDFPlain, Message: "no text on any page"}
	}
	return out.String(), nil
}
