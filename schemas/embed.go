// Package schemas holds the JSON Schemas of the documents the CLI reads and writes.
package schemas

import "embed"

// Schema file names
const (
	Profile      = "profile.schema.json"
	MatchResults = "match_results.schema.json"
	Tender       = "tender.schema.json"
	Consultant   = "consultant.schema.json"
)

// All lists every schema file name
var All = []string{Profile, MatchResults, Tender, Consultant}

// FS holds the schema files
//
//go:embed *.schema.json
var FS embed.FS
