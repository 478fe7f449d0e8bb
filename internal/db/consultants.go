package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/richat-staffing/internal/types"
)

// -----------------------------------------------------------------------------
// Consultant Methods
// -----------------------------------------------------------------------------

const consultantColumns = `id, name, email, available_from, available_until, skill_levels,
	primary_domain, specialty, expertise_tier, validated`

// GetConsultant retrieves a consultant by ID
func (db *DB) GetConsultant(ctx context.Context, id string) (*types.Consultant, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+consultantColumns+` FROM consultants WHERE id = $1`, id)
	c, err := scanConsultant(row)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("consultant", id)
		}
		return nil, fmt.Errorf("failed to get consultant: %w", err)
	}
	return c, nil
}

// SaveConsultant inserts or replaces a consultant record
func (db *DB) SaveConsultant(ctx context.Context, c *types.Consultant) error {
	levels, err := json.Marshal(nonNilLevels(c.SkillLevels))
	if err != nil {
		return fmt.Errorf("failed to marshal skill levels: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO consultants (id, name, email, available_from, available_until, skill_levels,
		                          primary_domain, specialty, expertise_tier, validated)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (id) DO UPDATE SET
		     name = $2, email = $3, available_from = $4, available_until = $5, skill_levels = $6,
		     primary_domain = $7, specialty = $8, expertise_tier = $9, validated = $10,
		     updated_at = NOW()`,
		c.ID, c.Name, c.Email, dateArg(c.Availability.Start), dateArg(c.Availability.End), levels,
		string(c.PrimaryDomain), c.Specialty, string(c.Tier()), c.Validated,
	)
	if err != nil {
		return fmt.Errorf("failed to save consultant %s: %w", c.ID, err)
	}
	return nil
}

// ListMatchCandidates returns validated consultants with a complete availability window
func (db *DB) ListMatchCandidates(ctx context.Context) ([]types.Consultant, error) {
	return db.listConsultants(ctx,
		`SELECT `+consultantColumns+` FROM consultants
		 WHERE validated AND available_from IS NOT NULL AND available_until IS NOT NULL
		 ORDER BY id`)
}

// ListConsultants returns every consultant ordered by ID
func (db *DB) ListConsultants(ctx context.Context) ([]types.Consultant, error) {
	return db.listConsultants(ctx, `SELECT `+consultantColumns+` FROM consultants ORDER BY id`)
}

func (db *DB) listConsultants(ctx context.Context, query string) ([]types.Consultant, error) {
	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list consultants: %w", err)
	}
	defer rows.Close()

	var out []types.Consultant
	for rows.Next() {
		c, err := scanConsultant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan consultant: %w", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list consultants: %w", err)
	}
	return out, nil
}

func scanConsultant(row pgx.Row) (*types.Consultant, error) {
	var (
		c            types.Consultant
		from, until  *time.Time
		levels       []byte
		domain, tier string
	)
	// the stored tier is informational; Tier() derives it from the skills
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &from, &until, &levels,
		&domain, &c.Specialty, &tier, &c.Validated); err != nil {
		return nil, err
	}
	c.Availability = types.Window{Start: scanDate(from), End: scanDate(until)}
	c.PrimaryDomain = types.Domain(domain)
	if err := json.Unmarshal(levels, &c.SkillLevels); err != nil {
		return nil, fmt.Errorf("invalid skill levels for %s: %w", c.ID, err)
	}
	c.ExpertiseTier = c.Tier()
	return &c, nil
}

func nonNilLevels(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return m
}
