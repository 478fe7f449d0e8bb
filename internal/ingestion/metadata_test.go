package ingestion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetadata_SummarizesResult(t *testing.T) {
	u := Upload{Filename: "cv.pdf", Data: []byte("abc")}
	r := &Result{
		Text:   "=== PAGE 1 ===\nhello\n\n=== PAGE 2 ===\nworld",
		Tables: []Table{{{"a", "b"}, {"c", "d"}}},
		Method: MethodPDFLayout,
	}
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.FixedZone("GMT+1", 3600))

	m := NewMetadata(u, r, now)

	assert.Equal(t, "cv.pdf", m.Filename)
	assert.Equal(t, MethodPDFLayout, m.Method)
	assert.Equal(t, "2024-03-01T09:00:00Z", m.Timestamp)
	assert.Equal(t, 2, m.Pages)
	assert.Equal(t, 1, m.Tables)
	// sha256("abc")
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", m.Hash)
}

func TestNewMetadata_NilResult(t *testing.T) {
	m := NewMetadata(Upload{Filename: "x.txt"}, nil, time.Now())
	assert.Empty(t, m.Method)
	assert.Zero(t, m.Pages)
}

func TestMetadata_ToJSON(t *testing.T) {
	m := &Metadata{Filename: "cv.docx", Method: MethodDOCX, Timestamp: "2024-01-01T00:00:00Z", Hash: "abcd"}

	data, err := m.ToJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "cv.docx", decoded["filename"])
	assert.Equal(t, "docx", decoded["method"])
	assert.Contains(t, string(data), "\n  ")
}
