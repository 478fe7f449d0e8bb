package types

import "github.com/google/uuid"

// ScoreBreakdown holds the components of a consultant/tender score
type ScoreBreakdown struct {
	DateScore  float64 `json:"date_match_score"`
	SkillScore float64 `json:"skills_match_score"`
	Score      float64 `json:"score"`
	// Inputs identifies the scoring inputs the breakdown was computed from;
	// a cached breakdown with different inputs is stale
	Inputs string `json:"inputs,omitempty"`
}

// MatchResult is the persisted score for a (consultant, tender) pair.
// At most one exists per pair.
type MatchResult struct {
	ID                  uuid.UUID     `json:"id"`
	ConsultantID        string        `json:"consultant_id"`
	TenderID            string        `json:"tender_id"`
	ConsultantName      string        `json:"consultant_name"`
	ConsultantExpertise ExpertiseTier `json:"consultant_expertise"`
	Email               string        `json:"email"`
	PrimaryDomain       Domain        `json:"domaine_principal"`
	Specialty           string        `json:"specialite"`
	TopSkills           []string      `json:"top_skills"`
	DateMatchScore      float64       `json:"date_match_score"`
	SkillsMatchScore    float64       `json:"skills_match_score"`
	Score               float64       `json:"score"`
	IsValidated         bool          `json:"is_validated"`
}

// MatchResults is the ranked output of a generation run
type MatchResults struct {
	TenderID string        `json:"tender_id"`
	Results  []MatchResult `json:"results"`
}

// MatchEvent is emitted when a MatchResult transitions to validated
type MatchEvent struct {
	ResultID       uuid.UUID `json:"result_id"`
	ConsultantID   string    `json:"consultant_id"`
	ConsultantName string    `json:"consultant_name"`
	Email          string    `json:"email"`
	TenderID       string    `json:"tender_id"`
	TenderName     string    `json:"tender_name"`
	Score          float64   `json:"score"`
}
