package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/richat-staffing/internal/types"
	schemafiles "github.com/jonathan/richat-staffing/schemas"
)

func validProfile() *types.Profile {
	p := types.NewProfile()
	p.PersonalInfo = types.PersonalInfo{ExpertName: "Ahmed Salem", Phone: "22 33 44 55", BirthDate: "05-03-1985"}
	p.Skills = []string{"Python", "Django"}
	p.Experience = []types.Experience{{Period: "2019-2023", Employer: "SNIM"}}
	p.Languages = []types.Language{{Language: "Arabe", Speaking: types.LevelNative, Level: types.LevelNative}}
	p.DetectedFormat = types.FormatRichatStandard
	p.PrimaryDomain = types.DomainDigital
	p.QualityScore = 80
	p.Success = true
	return p
}

func TestEmbeddedSchemasCompile(t *testing.T) {
	for _, name := range schemafiles.All {
		t.Run(name, func(t *testing.T) {
			_, err := load(name)
			assert.NoError(t, err)
		})
	}
}

func TestValidateValue_Profile(t *testing.T) {
	assert.NoError(t, ValidateValue(schemafiles.Profile, validProfile()))

	bad := validProfile()
	bad.PersonalInfo.Phone = "+222 22334455"
	bad.QualityScore = 140

	err := ValidateValue(schemafiles.Profile, bad)
	require.Error(t, err)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, schemafiles.Profile, validationErr.Schema)
	assert.Len(t, validationErr.Errors, 2)
}

func TestValidateValue_MatchResults(t *testing.T) {
	results := &types.MatchResults{
		TenderID: "T1",
		Results: []types.MatchResult{{
			ID:                  uuid.New(),
			ConsultantID:        "c1",
			TenderID:            "T1",
			ConsultantName:      "Ahmed Salem",
			ConsultantExpertise: types.TierExpert,
			PrimaryDomain:       types.DomainDigital,
			TopSkills:           []string{"Python"},
			DateMatchScore:      100,
			SkillsMatchScore:    98.2,
			Score:               98.92,
		}},
	}
	assert.NoError(t, ValidateValue(schemafiles.MatchResults, results))

	results.Results[0].Score = 101
	assert.Error(t, ValidateValue(schemafiles.MatchResults, results))
}

func TestValidate_TenderInput(t *testing.T) {
	valid := `{"id": "T1", "name": "Plateforme web", "window": {"start_date": "2024-06-01", "end_date": "2024-12-31"}, "criteria": {"Python": 2}}`
	assert.NoError(t, Validate(schemafiles.Tender, []byte(valid)))

	zeroWeight := `{"id": "T1", "name": "Plateforme web", "window": {}, "criteria": {"Python": 0}}`
	assert.Error(t, Validate(schemafiles.Tender, []byte(zeroWeight)))

	badDate := `{"id": "T1", "name": "x", "window": {"start_date": "01/06/2024"}}`
	assert.Error(t, Validate(schemafiles.Tender, []byte(badDate)))
}

func TestValidate_ConsultantInput(t *testing.T) {
	valid := `{"id": "c1", "name": "A", "skill_levels": {"Python": 5}, "primary_domain": "DIGITAL"}`
	assert.NoError(t, Validate(schemafiles.Consultant, []byte(valid)))

	levelSix := `{"id": "c1", "name": "A", "skill_levels": {"Python": 6}}`
	assert.Error(t, Validate(schemafiles.Consultant, []byte(levelSix)))
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nope.schema.json", []byte(`{}`))
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "unknown schema")
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(schemafiles.Tender, []byte("{ invalid json }"))
	require.Error(t, err)
	var validationErr *ValidationError
	assert.False(t, errors.As(err, &validationErr), "a parse failure is not a validation error")
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tender.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id": "T1", "name": "x", "window": {}}`), 0644))

	assert.NoError(t, ValidateFile(schemafiles.Tender, path))

	err := ValidateFile(schemafiles.Tender, filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString_Valid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`
	jsonContent := `{"name": "test"}`

	err := ValidateJSONString(schemaContent, jsonContent)
	assert.NoError(t, err)
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`
	jsonContent := `{"age": 30}`

	err := ValidateJSONString(schemaContent, jsonContent)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Schema: "tender.schema.json",
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed against tender.schema.json")
	assert.Contains(t, errorMsg, "name")
	assert.Contains(t, errorMsg, "age")
}

func TestValidateJSONString_NestedField(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["person"],
		"properties": {
			"person": {
				"type": "object",
				"required": ["name"],
				"properties": {
					"name": {"type": "string"}
				}
			}
		}
	}`

	err := ValidateJSONString(schemaContent, `{"person": {}}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	require.NotEmpty(t, validationErr.Errors)
	assert.Equal(t, "person", validationErr.Errors[0].Field)
}
