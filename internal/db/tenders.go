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
// Tender Methods
// -----------------------------------------------------------------------------

const tenderColumns = `id, name, client, description, budget, start_date, end_date, status, criteria`

// GetTender retrieves a tender by ID
func (db *DB) GetTender(ctx context.Context, id string) (*types.Tender, error) {
	t, err := scanTender(db.pool.QueryRow(ctx,
		`SELECT `+tenderColumns+` FROM tenders WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("tender", id)
		}
		return nil, fmt.Errorf("failed to get tender: %w", err)
	}
	return t, nil
}

// SaveTender inserts or replaces a tender record
func (db *DB) SaveTender(ctx context.Context, t *types.Tender) error {
	criteria := t.Criteria
	if criteria == nil {
		criteria = map[string]float64{}
	}
	data, err := json.Marshal(criteria)
	if err != nil {
		return fmt.Errorf("failed to marshal criteria: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO tenders (id, name, client, description, budget, start_date, end_date, status, criteria)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO UPDATE SET
		     name = $2, client = $3, description = $4, budget = $5, start_date = $6,
		     end_date = $7, status = $8, criteria = $9, updated_at = NOW()`,
		t.ID, t.Name, t.Client, t.Description, t.Budget,
		dateArg(t.Window.Start), dateArg(t.Window.End), t.Status, data,
	)
	if err != nil {
		return fmt.Errorf("failed to save tender %s: %w", t.ID, err)
	}
	return nil
}

// ListTenders returns every tender ordered by ID
func (db *DB) ListTenders(ctx context.Context) ([]types.Tender, error) {
	rows, err := db.pool.Query(ctx, `SELECT `+tenderColumns+` FROM tenders ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenders: %w", err)
	}
	defer rows.Close()

	var out []types.Tender
	for rows.Next() {
		t, err := scanTender(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tender: %w", err)
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tenders: %w", err)
	}
	return out, nil
}

func scanTender(row pgx.Row) (*types.Tender, error) {
	var (
		t          types.Tender
		start, end *time.Time
		criteria   []byte
	)
	if err := row.Scan(&t.ID, &t.Name, &t.Client, &t.Description, &t.Budget,
		&start, &end, &t.Status, &criteria); err != nil {
		return nil, err
	}
	t.Window = types.Window{Start: scanDate(start), End: scanDate(end)}
	if err := json.Unmarshal(criteria, &t.Criteria); err != nil {
		return nil, fmt.Errorf("invalid criteria for %s: %w", t.ID, err)
	}
	if len(t.Criteria) == 0 {
		t.Criteria = nil
	}
	return &t, nil
}
