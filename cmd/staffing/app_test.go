package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/richat-staffing/internal/config"
	"github.com/jonathan/richat-staffing/internal/types"
	schemafiles "github.com/jonathan/richat-staffing/schemas"
)

const consultantsJSON = `[
  {"id": "c1", "name": "Ahmed Salem", "email": "ahmed@richat.mr", "validated": true,
   "availability": {"start_date": "2024-01-01", "end_date": "2025-06-30"},
   "primary_domain": "DIGITAL", "skill_levels": {"Python": 5, "Django": 5}},
  {"id": "c2", "name": "Mariem Sidi", "validated": true,
   "availability": {"start_date": "2024-01-01", "end_date": "2024-03-01"},
   "primary_domain": "FINANCE", "skill_levels": {"Excel": 4}},
  {"id": "c3", "name": "Pending", "validated": false,
   "availability": {"start_date": "2024-01-01", "end_date": "2025-06-30"},
   "skill_levels": {"Python": 3}}
]`

const tenderJSON = `{"id": "T-WEB", "name": "Plateforme web", "client": "SNIM",
  "description": "Développement d'une plateforme web en Python et Django",
  "window": {"start_date": "2024-06-01", "end_date": "2024-12-31"},
  "criteria": {"Python": 1, "Django": 1}}`

const cvText = `Ahmed Salem
Compétences clés
Python, Docker, Kubernetes
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testApp(t *testing.T) (*app, *bytes.Buffer, string) {
	t.Helper()
	dir := t.TempDir()
	c := config.Defaults()
	c.StorageRoot = dir
	var out bytes.Buffer
	a, err := newApp(context.Background(), &c, zap.NewNop(), &out, false)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a, &out, dir
}

func seededApp(t *testing.T) (*app, *bytes.Buffer, string) {
	t.Helper()
	a, out, dir := testApp(t)
	s := seeds{
		consultants: writeFile(t, dir, "consultants.json", consultantsJSON),
		tenders:     writeFile(t, dir, "tender.json", tenderJSON),
	}
	require.NoError(t, a.seed(context.Background(), s))
	return a, out, dir
}

func TestReadJSON_SingleDocumentOrArray(t *testing.T) {
	dir := t.TempDir()

	var one []types.Tender
	require.NoError(t, readJSON(writeFile(t, dir, "t.json", tenderJSON), schemafiles.Tender, &one))
	require.Len(t, one, 1)
	assert.Equal(t, "T-WEB", one[0].ID)
	assert.Equal(t, 1.0, one[0].Criteria["Django"])

	var many []types.Consultant
	require.NoError(t, readJSON(writeFile(t, dir, "c.json", consultantsJSON), schemafiles.Consultant, &many))
	assert.Len(t, many, 3)
}

func TestReadJSON_RejectsSchemaViolations(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "c.json", `[{"id": "c1", "name": "A"}, {"id": "c2", "name": "B", "skill_levels": {"Go": 9}}]`)

	var many []types.Consultant
	err := readJSON(path, schemafiles.Consultant, &many)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document 2")
}

func TestReadJSON_Malformed(t *testing.T) {
	dir := t.TempDir()
	var v []types.Tender
	assert.Error(t, readJSON(writeFile(t, dir, "t.json", "{"), schemafiles.Tender, &v))
	assert.Error(t, readJSON(filepath.Join(dir, "missing.json"), schemafiles.Tender, &v))
}

func TestSeed(t *testing.T) {
	a, _, _ := seededApp(t)
	ctx := context.Background()

	c, err := a.store.GetConsultant(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, types.TierBeginner, c.ExpertiseTier, "tier follows the skill count")

	tender, err := a.store.GetTender(ctx, "T-WEB")
	require.NoError(t, err)
	assert.Equal(t, "SNIM", tender.Client)
}

func TestSeed_InvalidatesCachedScores(t *testing.T) {
	a, _, dir := testApp(t)
	ctx := context.Background()
	a.cache.Put(ctx, "c1", "T-OLD", types.ScoreBreakdown{Score: 1})
	a.cache.Put(ctx, "c9", "T-WEB", types.ScoreBreakdown{Score: 2})
	a.cache.Put(ctx, "c9", "T-OLD", types.ScoreBreakdown{Score: 3})

	require.NoError(t, a.seed(ctx, seeds{
		consultants: writeFile(t, dir, "consultants.json", consultantsJSON),
		tenders:     writeFile(t, dir, "tender.json", tenderJSON),
	}))

	_, ok := a.cache.Get(ctx, "c1", "T-OLD")
	assert.False(t, ok, "reloaded consultant")
	_, ok = a.cache.Get(ctx, "c9", "T-WEB")
	assert.False(t, ok, "reloaded tender")
	_, ok = a.cache.Get(ctx, "c9", "T-OLD")
	assert.True(t, ok)
}

func TestEmit_ToWriterAndFile(t *testing.T) {
	a, out, dir := testApp(t)

	require.NoError(t, a.emit("", "", map[string]int{"n": 1}))
	assert.JSONEq(t, `{"n": 1}`, out.String())

	path := filepath.Join(dir, "nested", "out.json")
	require.NoError(t, a.emit(path, "", []string{"a"}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `["a"]`, string(data))
}

func TestEmit_SchemaMismatchIsLogged(t *testing.T) {
	a, out, _ := testApp(t)
	core, logs := observer.New(zap.WarnLevel)
	a.logger = zap.New(core)

	require.NoError(t, a.emit("", schemafiles.MatchResults, map[string]string{"tender_id": "T1"}))

	assert.NotEmpty(t, out.String())
	assert.Equal(t, 1, logs.FilterMessage("output does not match its schema").Len())
}

func TestGenerateAndToggle(t *testing.T) {
	a, _, _ := seededApp(t)
	ctx := context.Background()

	results, err := a.engine.Generate(ctx, "T-WEB")
	require.NoError(t, err)
	require.Len(t, results.Results, 2, "unvalidated consultants are excluded")
	assert.Equal(t, "c1", results.Results[0].ConsultantID)

	validated, err := a.engine.ToggleValidation(ctx, results.Results[0].ID)
	require.NoError(t, err)
	assert.True(t, validated)

	stored, err := a.store.ListMatchResults(ctx, "T-WEB")
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.True(t, stored[0].IsValidated)

	_, err = a.engine.ToggleValidation(ctx, uuid.New())
	assert.Equal(t, types.CodeNotFound, types.CodeOf(err))
}

func TestShowResults(t *testing.T) {
	a, out, _ := seededApp(t)
	results, err := a.engine.Generate(context.Background(), "T-WEB")
	require.NoError(t, err)

	require.NoError(t, a.showResults(results))

	var decoded types.MatchResults
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "T-WEB", decoded.TenderID)
	assert.Len(t, decoded.Results, 2)
}
