package mocks

import (
	"context"

	"github.com/admin-edit-comment/internal/models"
	"github.com/admin-edit-comment/internal/service"
)

// MockCommentService is a mock implementation of CommentService
type MockCommentService struct {
	ThreadFunc  func(ctx context.Context, parentID int64) (*models.Thread, error)
	CreateFunc  func(ctx context.Context, parentID int64, author *models.User, body string) (*models.Comment, error)
	DeleteFunc  func(ctx context.Context, parentID, commentID int64, actor *models.User) error
	CreateCalls int
	DeleteCalls int
	Hooks       []service.AfterInsertFunc
}

// Verify interface compliance
var _ service.CommentService = (*MockCommentService)(nil)

func NewMockCommentService() *MockCommentService {
	return &MockCommentService{}
}

func (m *MockCommentService) List(ctx context.Context, parentID int64) ([]*models.Comment, error) {
	thread, err := m.Thread(ctx, parentID)
	if err != nil {
		return nil, err
	}
	return thread.Comments, nil
}

func (m *MockCommentService) Thread(ctx context.Context, parentID int64) (*models.Thread, error) {
	if m.ThreadFunc != nil {
		return m.ThreadFunc(ctx, parentID)
	}
	return &models.Thread{ParentID: parentID, SiteID: 1, ParentType: "post", Limit: 20}, nil
}

func (m *MockCommentService) Create(ctx context.Context, parentID int64, author *models.User, body string) (*models.Comment, error) {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, parentID, author, body)
	}
	return &models.Comment{ID: 1, ParentID: parentID, AuthorID: author.ID, Body: body, TypeTag: models.CommentPostType}, nil
}

func (m *MockCommentService) Delete(ctx context.Context, parentID, commentID int64, actor *models.User) error {
	m.DeleteCalls++
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, parentID, commentID, actor)
	}
	return nil
}

func (m *MockCommentService) OnAfterInsert(fn service.AfterInsertFunc) {
	m.Hooks = append(m.Hooks, fn)
}
