package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/richat-staffing/internal/types"
)

// -----------------------------------------------------------------------------
// Profile Methods
// -----------------------------------------------------------------------------

// SaveProfile stores an extracted profile and the path of its standardized
// PDF, if one was saved. It returns the new record ID.
func (db *DB) SaveProfile(ctx context.Context, consultantID string, p *types.Profile, pdfPath *string) (uuid.UUID, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal profile: %w", err)
	}

	id := uuid.New()
	_, err = db.pool.Exec(ctx,
		`INSERT INTO profiles (id, consultant_id, profile, pdf_path, quality_score)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, consultantID, data, pdfPath, p.QualityScore,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return id, nil
}

// LatestProfile returns the most recently stored profile of a consultant
func (db *DB) LatestProfile(ctx context.Context, consultantID string) (*types.Profile, error) {
	var data []byte
	err := db.pool.QueryRow(ctx,
		`SELECT profile FROM profiles WHERE consultant_id = $1
		 ORDER BY created_at DESC LIMIT 1`,
		consultantID,
	).Scan(&data)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("profile of consultant", consultantID)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var p types.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &p, nil
}
