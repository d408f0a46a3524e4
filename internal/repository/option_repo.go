package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/admin-edit-comment/internal/database"
	"github.com/lib/pq"
)

// optionRepo is the concrete implementation of OptionRepository
type optionRepo struct {
	db *database.DB
}

// NewOptionRepo creates a new option repository
func NewOptionRepo(db *database.DB) OptionRepository {
	return &optionRepo{db: db}
}

// Get returns the stored values and whether the option exists
func (r *optionRepo) Get(ctx context.Context, siteID int64, name string) ([]string, bool, error) {
	var values []string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM options WHERE site_id = $1 AND name = $2`, siteID, name,
	).Scan(pq.Array(&values))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return values, true, nil
}

// Set creates or replaces an option
func (r *optionRepo) Set(ctx context.Context, siteID int64, name string, values []string) error {
	if values == nil {
		values = []string{}
	}
	query := `
		INSERT INTO options (site_id, name, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (site_id, name) DO UPDATE SET value = EXCLUDED.value
	`
	_, err := r.db.ExecContext(ctx, query, siteID, name, pq.Array(values))
	return err
}

// Delete removes an option. It reports false when the option did not exist.
func (r *optionRepo) Delete(ctx context.Context, siteID int64, name string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM options WHERE site_id = $1 AND name = $2`, siteID, name)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
