package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Metadata describes one acquisition run
type Metadata struct {
	Filename  string `json:"filename"`
	Method    string `json:"method"`
	Timestamp string `json:"timestamp"` // RFC3339 format
	Hash      string `json:"hash"`      // SHA256 hex digest of the upload bytes
	Pages     int    `json:"pages"`
	Tables    int    `json:"tables"`
	Chars     int    `json:"chars"`
}

// NewMetadata summarizes an upload and its acquisition result
func NewMetadata(u Upload, r *Result, now time.Time) *Metadata {
	m := &Metadata{
		Filename:  u.Filename,
		Timestamp: now.UTC().Format(time.RFC3339),
		Hash:      computeHash(u.Data),
	}
	if r != nil {
		m.Method = r.Method
		m.Pages = strings.Count(r.Text, "=== PAGE ")
		m.Tables = len(r.Tables)
		m.Chars = len([]rune(r.Text))
	}
	return m
}

// computeHash computes SHA256 hash of data and returns hex string
func computeHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
