package ingestion

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

const docxBodyPart = "word/document.xml"

func acquireDOCX(data []byte, res *Result) {
	text, tables, err := readDOCX(data)
	if err != nil {
		res.fail(err)
		return
	}
	res.Text, res.Tables, res.Method = text, tables, MethodDOCX
}

// acquireDOC handles legacy .doc uploads. Files that are really OOXML
// packages are read as DOCX, anything else is scrubbed as raw bytes.
func acquireDOC(data []byte, res *Result) {
	if bytes.HasPrefix(data, []byte("PK\x03\x04")) {
		text, tables, err := readDOCX(data)
		if err == nil {
			res.Text, res.Tables, res.Method = text, tables, MethodDOCX
			return
		}
		res.fail(err)
	}
	text := scrubBinary(data, 4)
	if strings.TrimSpace(text) == "" {
		res.fail(&DecodeError{Method: MethodDOCBytes, Message: "no printable text in document"})
		return
	}
	res.Text, res.Method = text, MethodDOCBytes
}

// readDOCX returns the body paragraphs joined by newlines, followed by every
// table row joined by " | ".
func readDOCX(data []byte) (string, []Table, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil, &DecodeError{Method: MethodDOCX, Message: "not a valid OOXML package", Cause: err}
	}
	var body []byte
	for _, f := range zr.File {
		if f.Name != docxBodyPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", nil, &DecodeError{Method: MethodDOCX, Message: "failed to open document body", Cause: err}
		}
		body, err = io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return "", nil, &DecodeError{Method: MethodDOCX, Message: "failed to read document body", Cause: err}
		}
		break
	}
	if len(body) == 0 {
		return "", nil, &DecodeError{Method: MethodDOCX, Message: "no " + docxBodyPart + " in package"}
	}

	paragraphs, tables, err := walkDocument(body)
	if err != nil {
		return "", nil, &DecodeError{Method: MethodDOCX, Message: "malformed document body", Cause: err}
	}

	var out strings.Builder
	out.WriteString(strings.Join(paragraphs, "\n"))
	for _, t := range tables {
		for _, row := range t {
			out.WriteByte('\n')
			out.WriteString(strings.Join(row, " | "))
		}
	}
	if strings.TrimSpace(out.String()) == "" {
		return "", nil, &DecodeError{Method: MethodDOCX, Message: "document has no text"}
	}
	return out.String(), tables, nil
}

// docWalker accumulates WordprocessingML text while streaming its tokens
type docWalker struct {
	paragraphs []string
	tables     []Table
	para       strings.Builder
	tableDepth int
	row        []string
	cell       []string
	table      Table
	inText     bool
}

func walkDocument(body []byte) ([]string, []Table, error) {
	w := &docWalker{paragraphs: []string{}, tables: []Table{}}
	dec := xml.NewDecoder(bytes.NewReader(body))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			w.start(t.Name.Local)
		case xml.EndElement:
			w.end(t.Name.Local)
		case xml.CharData:
			if w.inText {
				w.para.Write(t)
			}
		}
	}
	return w.paragraphs, w.tables, nil
}

func (w *docWalker) start(name string) {
	switch name {
	case "t":
		w.inText = true
	case "tab":
		w.para.WriteByte('\t')
	case "br", "cr":
		w.para.WriteByte('\n')
	case "tbl":
		w.tableDepth++
		if w.tableDepth == 1 {
			w.table = Table{}
		}
	case "tr":
		if w.tableDepth == 1 {
			w.row = []string{}
		}
	case "tc":
		if w.tableDepth == 1 {
			w.cell = []string{}
		}
	}
}

func (w *docWalker) end(name string) {
	switch name {
	case "t":
		w.inText = false
	case "p":
		text := strings.TrimSpace(w.para.String())
		w.para.Reset()
		if text == "" {
			return
		}
		if w.tableDepth > 0 {
			w.cell = append(w.cell, text)
		} else {
			w.paragraphs = append(w.paragraphs, text)
		}
	case "tc":
		if w.tableDepth == 1 {
			w.row = append(w.row, strings.Join(w.cell, " "))
		}
	case "tr":
		if w.tableDepth == 1 && len(w.row) > 0 {
			w.table = append(w.table, w.row)
		}
	case "tbl":
		if w.tableDepth == 1 && len(w.table) > 0 {
			w.tables = append(w.tables, w.table)
		}
		w.tableDepth--
	}
}
