package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/admin-edit-comment/internal/database"
	"github.com/admin-edit-comment/internal/models"
)

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) UserRepository {
	return &userRepo{db: db}
}

// GetByID retrieves a user by ID. A missing user yields nil, nil.
func (r *userRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT id, login, email, display_name, role, created_at FROM users WHERE id = $1`
	return r.get(ctx, query, id)
}

// GetByLogin retrieves a user by login name
func (r *userRepo) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	query := `SELECT id, login, email, display_name, role, created_at FROM users WHERE login = $1`
	return r.get(ctx, query, login)
}

func (r *userRepo) get(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Login, &user.Email, &user.DisplayName, &user.Role, &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}
