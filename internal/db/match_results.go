package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/richat-staffing/internal/types"
)

// -----------------------------------------------------------------------------
// Match Result Methods
// -----------------------------------------------------------------------------

const matchResultColumns = `id, consultant_id, tender_id, consultant_name, consultant_expertise, email,
	primary_domain, specialty, top_skills, date_match_score, skills_match_score, score, is_validated`

// DeleteMatchResults removes every result of a tender
func (db *DB) DeleteMatchResults(ctx context.Context, tenderID string) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM match_results WHERE tender_id = $1`, tenderID); err != nil {
		return fmt.Errorf("failed to delete match results: %w", err)
	}
	return nil
}

// SaveMatchResult stores a result, replacing any result of the same pair.
// The validated flag of a replaced result is reset.
func (db *DB) SaveMatchResult(ctx context.Context, r *types.MatchResult) error {
	skills := r.TopSkills
	if skills == nil {
		skills = []string{}
	}
	topSkills, err := json.Marshal(skills)
	if err != nil {
		return fmt.Errorf("failed to marshal top skills: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO match_results (`+matchResultColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 ON CONFLICT (consultant_id, tender_id) DO UPDATE SET
		     id = $1, consultant_name = $4, consultant_expertise = $5, email = $6,
		     primary_domain = $7, specialty = $8, top_skills = $9, date_match_score = $10,
		     skills_match_score = $11, score = $12, is_validated = $13, created_at = NOW()`,
		r.ID, r.ConsultantID, r.TenderID, r.ConsultantName, string(r.ConsultantExpertise), r.Email,
		string(r.PrimaryDomain), r.Specialty, topSkills, r.DateMatchScore, r.SkillsMatchScore,
		r.Score, r.IsValidated,
	)
	if err != nil {
		return fmt.Errorf("failed to save match result: %w", err)
	}
	return nil
}

// GetMatchResult retrieves a result by ID
func (db *DB) GetMatchResult(ctx context.Context, id uuid.UUID) (*types.MatchResult, error) {
	r, err := scanMatchResult(db.pool.QueryRow(ctx,
		`SELECT `+matchResultColumns+` FROM match_results WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("match result", id.String())
		}
		return nil, fmt.Errorf("failed to get match result: %w", err)
	}
	return r, nil
}

// SetMatchValidated updates the validated flag of a result
func (db *DB) SetMatchValidated(ctx context.Context, id uuid.UUID, validated bool) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE match_results SET is_validated = $1 WHERE id = $2`, validated, id)
	if err != nil {
		return fmt.Errorf("failed to update match result: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("match result", id.String())
	}
	return nil
}

// ListMatchResults returns the results of a tender ranked by descending score
func (db *DB) ListMatchResults(ctx context.Context, tenderID string) ([]types.MatchResult, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+matchResultColumns+` FROM match_results
		 WHERE tender_id = $1 ORDER BY score DESC, created_at ASC`, tenderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list match results: %w", err)
	}
	defer rows.Close()

	var out []types.MatchResult
	for rows.Next() {
		r, err := scanMatchResult(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match result: %w", err)
		}
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list match results: %w", err)
	}
	return out, nil
}

func scanMatchResult(row pgx.Row) (*types.MatchResult, error) {
	var (
		r              types.MatchResult
		expertise, dom string
		topSkills      []byte
	)
	if err := row.Scan(&r.ID, &r.ConsultantID, &r.TenderID, &r.ConsultantName, &expertise, &r.Email,
		&dom, &r.Specialty, &topSkills, &r.DateMatchScore, &r.SkillsMatchScore, &r.Score,
		&r.IsValidated); err != nil {
		return nil, err
	}
	r.ConsultantExpertise = types.ExpertiseTier(expertise)
	r.PrimaryDomain = types.Domain(dom)
	if err := json.Unmarshal(topSkills, &r.TopSkills); err != nil {
		return nil, fmt.Errorf("invalid top skills for %s: %w", r.ID, err)
	}
	return &r, nil
}
