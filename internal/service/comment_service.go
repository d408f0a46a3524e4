package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/admin-edit-comment/internal/config"
	"github.com/admin-edit-comment/internal/models"
	"github.com/admin-edit-comment/internal/repository"
	"github.com/rs/zerolog"
)

// commentService stores comments as child posts of the item they annotate
type commentService struct {
	posts    repository.PostRepository
	settings SettingsService
	cfg      config.CommentsConfig
	log      zerolog.Logger

	mu    sync.RWMutex
	hooks []AfterInsertFunc
}

func newCommentService(posts repository.PostRepository, settings SettingsService, cfg config.CommentsConfig, log zerolog.Logger) *commentService {
	return &commentService{
		posts:    posts,
		settings: settings,
		cfg:      cfg,
		log:      log.With().Str("component", "comments").Logger(),
	}
}

// OnAfterInsert registers a callback fired after every successful insert
func (s *commentService) OnAfterInsert(fn AfterInsertFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}

// List returns every comment of a parent in creation order
func (s *commentService) List(ctx context.Context, parentID int64) ([]*models.Comment, error) {
	const op = "service.comments.List"

	posts, err := s.posts.ListByParent(ctx, parentID, models.CommentPostType)
	if err != nil {
		s.log.Error().Err(err).Int64("parent_id", parentID).Msg("Failed to list comments")
		return nil, fmt.Errorf("%s: %w", op, errors.Join(ErrStore, err))
	}

	comments := make([]*models.Comment, 0, len(posts))
	for _, post := range posts {
		if comment := models.CommentFromPost(post); comment != nil {
			comments = append(comments, comment)
		}
	}
	return comments, nil
}

// Thread returns the comments of a parent together with the cap that applies to it
func (s *commentService) Thread(ctx context.Context, parentID int64) (*models.Thread, error) {
	const op = "service.comments.Thread"

	parent, err := s.parent(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	comments, err := s.List(ctx, parentID)
	if err != nil {
		return nil, err
	}

	return &models.Thread{
		ParentID:   parentID,
		SiteID:     parent.SiteID,
		ParentType: parent.Type,
		Comments:   comments,
		Limit:      s.cfg.LimitFor(parent.Type),
	}, nil
}

// Create stores a new comment written by author under parentID
func (s *commentService) Create(ctx context.Context, parentID int64, author *models.User, body string) (*models.Comment, error) {
	const op = "service.comments.Create"

	if parentID <= 0 || author == nil || author.ID <= 0 {
		return nil, fmt.Errorf("%s: %w: parent and author are required", op, ErrValidation)
	}
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%s: %w: comment body is empty", op, ErrValidation)
	}

	lg := s.log.With().Int64("parent_id", parentID).Int64("author_id", author.ID).Logger()

	parent, err := s.parent(ctx, parentID)
	if err != nil {
		lg.Warn().Err(err).Msg("Comment refused")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	enabled, err := s.settings.IsEnabled(ctx, parent.SiteID, parent.Type)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !enabled {
		lg.Warn().Str("post_type", parent.Type).Msg("Comment refused, type not enabled")
		return nil, fmt.Errorf("%s: %w", op, ErrTypeDisabled)
	}

	post := &models.Post{
		ParentID: &parentID,
		AuthorID: author.ID,
		Type:     models.CommentPostType,
		Body:     body,
		Status:   models.PostStatusPublish,
	}

	limit := s.cfg.LimitFor(parent.Type)
	if err := s.posts.CreateChild(ctx, post, limit); err != nil {
		switch {
		case errors.Is(err, repository.ErrLimitReached):
			lg.Warn().Int("limit", limit).Msg("Comment limit reached")
			return nil, fmt.Errorf("%s: %w", op, ErrLimitExceeded)
		case errors.Is(err, repository.ErrNotFound):
			lg.Warn().Msg("Parent disappeared before insert")
			return nil, fmt.Errorf("%s: %w", op, ErrParentNotFound)
		default:
			lg.Error().Err(err).Msg("Failed to insert comment")
			return nil, fmt.Errorf("%s: %w", op, errors.Join(ErrStore, err))
		}
	}

	lg.Info().Int64("comment_id", post.ID).Msg("Comment inserted")

	s.mu.RLock()
	hooks := append([]AfterInsertFunc(nil), s.hooks...)
	s.mu.RUnlock()
	for _, hook := range hooks {
		hook(ctx, parentID, author, post.ID)
	}

	return models.CommentFromPost(post), nil
}

// Delete permanently removes a comment. Only its author may delete it.
func (s *commentService) Delete(ctx context.Context, parentID, commentID int64, actor *models.User) error {
	const op = "service.comments.Delete"

	if parentID <= 0 || commentID <= 0 {
		return fmt.Errorf("%s: %w: parent and comment are required", op, ErrValidation)
	}
	if actor == nil {
		return fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	lg := s.log.With().Int64("parent_id", parentID).Int64("comment_id", commentID).Int64("actor_id", actor.ID).Logger()

	post, err := s.posts.GetByID(ctx, commentID)
	if err != nil {
		lg.Error().Err(err).Msg("Failed to load comment")
		return fmt.Errorf("%s: %w", op, errors.Join(ErrStore, err))
	}

	// Ordinary content items share the table and must never be reachable here.
	comment := models.CommentFromPost(post)
	if comment == nil || comment.ParentID != parentID {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if comment.AuthorID != actor.ID {
		lg.Warn().Int64("author_id", comment.AuthorID).Msg("Delete refused, not the author")
		return fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	deleted, err := s.posts.Delete(ctx, commentID)
	if err != nil {
		lg.Error().Err(err).Msg("Failed to delete comment")
		return fmt.Errorf("%s: %w", op, errors.Join(ErrStore, err))
	}
	if !deleted {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	lg.Info().Msg("Comment deleted")
	return nil
}

// parent loads the annotated item and checks it can carry comments
func (s *commentService) parent(ctx context.Context, parentID int64) (*models.Post, error) {
	parent, err := s.posts.GetByID(ctx, parentID)
	if err != nil {
		return nil, errors.Join(ErrStore, err)
	}
	if parent == nil || parent.IsComment() {
		return nil, ErrParentNotFound
	}
	return parent, nil
}
