// Package ingestion turns uploaded CV artifacts (PDF, word-processor documents,
// plain text) into a single normalized UTF-8 text blob.
package ingestion

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jonathan/richat-staffing/internal/types"
)

// Acquisition methods reported in Result.Method
const (
	MethodPDFLayout = "pdf_layout"
	MethodPDFPlain  = "pdf_plain"
	MethodPDFBytes  = "pdf_bytes"
	MethodDOCX      = "docx"
	MethodDOCBytes  = "doc_bytes"
	MethodText      = "text"
)

// Upload is an uploaded artifact
type Upload struct {
	Filename string
	Data     []byte
}

// Table is a tabular region: rows of cells
type Table [][]string

// Result is the outcome of text acquisition
type Result struct {
	Text   string   `json:"text"`
	Tables []Table  `json:"tables"`
	Errors []string `json:"errors"`
	Method string   `json:"method"`
}

func (r *Result) fail(err error) {
	r.Errors = append(r.Errors, err.Error())
}

// SupportedExtensions lists the accepted upload extensions
var SupportedExtensions = []string{".pdf", ".docx", ".doc", ".txt"}

// IsSupported reports whether the filename has an accepted extension
func IsSupported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// Acquire extracts text from an upload. The extension selects the strategy.
//
// The returned Result is never nil. When every strategy fails, Result.Text is
// empty, Result.Errors lists each failure and the error carries the
// decode_failed code.
func Acquire(u Upload) (*Result, error) {
	res := &Result{Tables: []Table{}, Errors: []string{}}
	ext := strings.ToLower(filepath.Ext(u.Filename))

	if !IsSupported(u.Filename) {
		err := types.NewError(types.CodeUnsupportedFormat, fmt.Sprintf("unsupported file extension %q", ext), nil)
		res.fail(err)
		return res, err
	}
	if len(u.Data) == 0 {
		err := types.NewError(types.CodeDecodeFailed, "upload is empty", nil)
		res.fail(err)
		return res, err
	}

	switch ext {
	case ".pdf":
		acquirePDF(u.Data, res)
	case ".docx":
		acquireDOCX(u.Data, res)
	case ".doc":
		acquireDOC(u.Data, res)
	case ".txt":
		acquireText(u.Data, res)
	}

	res.Text = CleanText(res.Text)
	if res.Text == "" {
		res.Method = ""
		res.Tables = []Table{}
		err := types.NewError(types.CodeDecodeFailed, fmt.Sprintf("no text could be extracted from %s", u.Filename), nil)
		res.fail(err)
		return res, err
	}
	return res, nil
}
