package service

import (
	"context"

	"github.com/admin-edit-comment/internal/config"
	"github.com/admin-edit-comment/internal/models"
	"github.com/admin-edit-comment/internal/repository"
	"github.com/rs/zerolog"
)

// AfterInsertFunc is called once a comment has been stored
type AfterInsertFunc func(ctx context.Context, parentID int64, author *models.User, commentID int64)

// CommentService defines the interface for comment operations
type CommentService interface {
	List(ctx context.Context, parentID int64) ([]*models.Comment, error)
	Thread(ctx context.Context, parentID int64) (*models.Thread, error)
	Create(ctx context.Context, parentID int64, author *models.User, body string) (*models.Comment, error)
	Delete(ctx context.Context, parentID, commentID int64, actor *models.User) error
	OnAfterInsert(fn AfterInsertFunc)
}

// SettingsService defines the interface for the comment box settings
type SettingsService interface {
	Get(ctx context.Context, siteID int64) (*models.Settings, error)
	EnabledTypes(ctx context.Context, siteID int64) ([]string, error)
	IsEnabled(ctx context.Context, siteID int64, postType string) (bool, error)
	SetEnabledTypes(ctx context.Context, siteID int64, types []string) ([]string, error)
	AvailableTypes(ctx context.Context, siteID int64) ([]string, error)
	Uninstall(ctx context.Context) (int, error)
}

// Services holds all service interfaces
type Services struct {
	Comment  CommentService
	Settings SettingsService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	settingsSvc := newSettingsService(repos.Option, repos.Post, repos.Site, log)
	commentSvc := newCommentService(repos.Post, settingsSvc, cfg.Comments, log)

	return &Services{
		Comment:  commentSvc,
		Settings: settingsSvc,
	}
}
