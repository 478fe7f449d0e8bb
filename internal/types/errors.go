package types

import (
	"errors"
	"fmt"
)

// ErrorCode is a stable, caller-facing error identifier
type ErrorCode string

const (
	CodeUnsupportedFormat     ErrorCode = "unsupported_format"
	CodeDecodeFailed          ErrorCode = "decode_failed"
	CodeSectionParseWarning   ErrorCode = "section_parse_warning"
	CodePDFRenderFailed       ErrorCode = "pdf_render_failed"
	CodeMatchConsultantFailed ErrorCode = "match_consultant_failed"
	CodeStorageWriteFailed    ErrorCode = "storage_write_failed"
	CodeNotFound              ErrorCode = "not_found"
)

// Error carries a stable code alongside a human-readable message
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

// NewError creates a coded error
func NewError(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// CodeOf returns the code of the first coded error in err's chain, or "" if none
func CodeOf(err error) ErrorCode {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ""
}
