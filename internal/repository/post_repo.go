package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/admin-edit-comment/internal/database"
	"github.com/admin-edit-comment/internal/models"
)

const postColumns = `id, site_id, parent_id, author_id, type, title, body, status, created_at`

// postRepo is the concrete implementation of PostRepository
type postRepo struct {
	db *database.DB
}

// NewPostRepo creates a new post repository
func NewPostRepo(db *database.DB) PostRepository {
	return &postRepo{db: db}
}

// Create inserts a new post, filling in its ID and CreatedAt
func (r *postRepo) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (site_id, parent_id, author_id, type, title, body, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		post.SiteID, post.ParentID, post.AuthorID, post.Type,
		post.Title, post.Body, post.Status,
	).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// CreateChild inserts a post under post.ParentID unless the parent already
// has limit children of the same type. The parent row stays locked for the
// whole transaction so concurrent inserts for one parent are serialized.
func (r *postRepo) CreateChild(ctx context.Context, post *models.Post, limit int) error {
	if post.ParentID == nil {
		return fmt.Errorf("insert child post: %w", ErrNotFound)
	}
	parentID := *post.ParentID

	return r.db.InTx(ctx, func(tx *sql.Tx) error {
		var siteID int64
		err := tx.QueryRowContext(ctx,
			`SELECT site_id FROM posts WHERE id = $1 FOR UPDATE`, parentID,
		).Scan(&siteID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("lock parent %d: %w", parentID, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("lock parent %d: %w", parentID, err)
		}

		var count int
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM posts WHERE parent_id = $1 AND type = $2`,
			parentID, post.Type,
		).Scan(&count)
		if err != nil {
			return fmt.Errorf("count children of %d: %w", parentID, err)
		}
		if limit > 0 && count >= limit {
			return ErrLimitReached
		}

		post.SiteID = siteID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO posts (site_id, parent_id, author_id, type, title, body, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at
		`,
			post.SiteID, parentID, post.AuthorID, post.Type,
			post.Title, post.Body, post.Status,
		).Scan(&post.ID, &post.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert child post: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a post by ID
func (r *postRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return post, nil
}

// ListByParent returns the children of a parent with the given type in creation order
func (r *postRepo) ListByParent(ctx context.Context, parentID int64, postType string) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE parent_id = $1 AND type = $2 ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, parentID, postType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	return posts, rows.Err()
}

// Delete removes a post permanently. It reports false when nothing was deleted.
func (r *postRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ListTypes returns the distinct content types stored for a site
func (r *postRepo) ListTypes(ctx context.Context, siteID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT type FROM posts WHERE site_id = $1 ORDER BY type`, siteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []string
	for rows.Next() {
		var postType string
		if err := rows.Scan(&postType); err != nil {
			return nil, err
		}
		types = append(types, postType)
	}
	return types, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	var (
		post     models.Post
		parentID sql.NullInt64
	)
	err := row.Scan(
		&post.ID, &post.SiteID, &parentID, &post.AuthorID, &post.Type,
		&post.Title, &post.Body, &post.Status, &post.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if parentID.Valid {
		post.ParentID = &parentID.Int64
	}
	return &post, nil
}
