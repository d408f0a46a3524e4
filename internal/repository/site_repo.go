package repository

import (
	"context"

	"github.com/admin-edit-comment/internal/database"
)

// siteRepo is the concrete implementation of SiteRepository
type siteRepo struct {
	db *database.DB
}

// NewSiteRepo creates a new site repository
func NewSiteRepo(db *database.DB) SiteRepository {
	return &siteRepo{db: db}
}

// ListIDs returns the IDs of every site in the installation
func (r *siteRepo) ListIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM sites ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
