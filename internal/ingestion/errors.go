package ingestion

import "fmt"

// DecodeError represents a failure of one text acquisition strategy
type DecodeError struct {
	Method  string
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decode error (%s): %s: %v", e.Method, e.Message, e.Cause)
	}
	return fmt.Sprintf("decode error (%s): %s", e.Method, e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
