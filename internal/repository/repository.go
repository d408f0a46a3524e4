package repository

import (
	"context"
	"errors"

	"github.com/admin-edit-comment/internal/database"
	"github.com/admin-edit-comment/internal/models"
)

var (
	// ErrNotFound is returned when a write targets a missing record
	ErrNotFound = errors.New("record not found")
	// ErrLimitReached is returned when a parent already holds the maximum number of children
	ErrLimitReached = errors.New("child limit reached")
)

// PostRepository defines the interface for content record operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	CreateChild(ctx context.Context, post *models.Post, limit int) error
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	ListByParent(ctx context.Context, parentID int64, postType string) ([]*models.Post, error)
	Delete(ctx context.Context, id int64) (bool, error)
	ListTypes(ctx context.Context, siteID int64) ([]string, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByLogin(ctx context.Context, login string) (*models.User, error)
}

// OptionRepository defines the interface for site option operations
type OptionRepository interface {
	Get(ctx context.Context, siteID int64, name string) ([]string, bool, error)
	Set(ctx context.Context, siteID int64, name string, values []string) error
	Delete(ctx context.Context, siteID int64, name string) (bool, error)
}

// SiteRepository defines the interface for site lookups
type SiteRepository interface {
	ListIDs(ctx context.Context) ([]int64, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Post   PostRepository
	User   UserRepository
	Option OptionRepository
	Site   SiteRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Post:   NewPostRepo(db),
		User:   NewUserRepo(db),
		Option: NewOptionRepo(db),
		Site:   NewSiteRepo(db),
	}
}
