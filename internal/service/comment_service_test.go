package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/admin-edit-comment/internal/config"
	"github.com/admin-edit-comment/internal/mocks"
	"github.com/admin-edit-comment/internal/models"
	"github.com/admin-edit-comment/internal/service"
	"github.com/rs/zerolog"
)

type testHarness struct {
	services *service.Services
	posts    *mocks.MockPostRepository
	users    *mocks.MockUserRepository
	options  *mocks.MockOptionRepository
	sites    *mocks.MockSiteRepository
	editor   *models.User
	other    *models.User
	parent   *models.Post
}

func newTestHarness(t *testing.T, comments config.CommentsConfig) *testHarness {
	t.Helper()

	repos, posts, users, options, sites := mocks.NewMockRepositories()
	if comments.Limit == 0 {
		comments.Limit = config.DefaultCommentLimit
	}
	cfg := &config.Config{Comments: comments}

	h := &testHarness{
		services: service.NewServices(repos, cfg, zerolog.Nop()),
		posts:    posts,
		users:    users,
		options:  options,
		sites:    sites,
	}
	h.parent = posts.AddPost(&models.Post{ID: 42, AuthorID: 7, Type: "post", Title: "Draft article", Status: models.PostStatusDraft})
	h.editor = users.AddUser(&models.User{ID: 7, Login: "alice", Email: "alice@example.com", DisplayName: "Alice", Role: models.RoleEditor})
	h.other = users.AddUser(&models.User{ID: 8, Login: "bob", Email: "bob@example.com", DisplayName: "Bob", Role: models.RoleAuthor})
	return h
}

func TestCommentService_CreateThenList(t *testing.T) {
	h := newTestHarness(t, config.CommentsConfig{})
	ctx := context.Background()

	before, err := h.services.Comment.List(ctx, 42)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	created, err := h.services.Comment.Create(ctx, 42, h.editor, "Looks good")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == 0 {
		t.Error("Created comment should have an ID")
	}
	if created.CreatedAt.IsZero() {
		t.Error("Created comment should have a timestamp")
	}
	if created.TypeTag != models.CommentPostType {
		t.Errorf("Expected type tag %q, got %q", models.CommentPostType, created.TypeTag)
	}

	after, err := h.services.Comment.List(ctx, 42)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Fatalf("Expected %d comments, got %d", len(before)+1, len(after))
	}
	last := after[len(after)-1]
	if last.Body != "Looks good" || last.AuthorID != 7 || last.ParentID != 42 {
		t.Errorf("Unexpected comment stored: %+v", last)
	}
}

func TestCommentService_ListKeepsCreationOrder(t *testing.T) {
	h := newTestHarness(t, config.CommentsConfig{})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := h.services.Comment.Create(ctx, 42, h.editor, fmt.Sprintf("comment %d", i)); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	comments, _ := h.services.Comment.List(ctx, 42)
	for i, comment := range comments {
		if want := fmt.Sprintf("comment %d", i); comment.Body != want {
			t.Errorf("Position %d: expected %q, got %q", i, want, comment.Body)
		}
	}
}

func TestCommentService_CreateValidation(t *testing.T) {
	h := newTestHarness(t, config.CommentsConfig{})
	ctx := context.Background()

	tests := []struct {
		name     string
		parentID int64
		author   *models.User
		body     string
		wantErr  error
	}{
		{"empty body", 42, h.editor, "", service.ErrValidation},
		{"blank body", 42, h.editor, "  \n ", service.ErrValidation},
		{"missing parent id", 0, h.editor, "hi", service.ErrValidation},
		{"missing author", 42, nil, "hi", service.ErrValidation},
		{"unknown parent", 999, h.editor, "hi", service.ErrParentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.services.Comment.Create(ctx, tt.parentID, tt.author, tt.body)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if !errors.Is(err, service.ErrValidation) {
				t.Errorf("Expected a validation error, got %v", err)
			}
		})
	}

	if h.posts.CreateChildCalls != 0 {
		t.Errorf("Store should not be touched, got %d calls", h.posts.CreateChildCalls)
	}
}

func TestCommentService_CreateOnCommentIsRefused(t *testing.T) {
	h := newTestHarness(t, config.CommentsConfig{})
	ctx := context.Background()

	created, err := h.services.Comment.Create(ctx, 42, h.editor, "top level")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = h.services.Comment.Create(ctx, created.ID, h.editor, "reply")
	if !errors.Is(err, service.ErrParentNotFound) {
		t.Errorf("Expected ErrParentNotFound for nested comment, got %v", err)
	}
}

func TestCommentService_CreateRespectsEnabledTypes(t *testing.T) {
	h := newTestHarness(t, config.CommentsConfig{})
	ctx := context.Background()
	product := h.posts.AddPost(&models.Post{ID: 50, AuthorID: 7, Type: "product"})

	_, err := h.services.Comment.Create(ctx, product.ID, h.editor, "hi")
	if !errors.Is(err, service.ErrTypeDisabled) {
		t.Fatalf("Expected ErrTypeDisabled, got %v", err)
	}

	if _, err := h.services.Settings.SetEnabledTypes(ctx, 1, []string{"post", "product"}); err != nil {
		t.Fatalf("SetEnabledTypes failed: %v", err)
	}
	if _, err := h.services.Comment.Create(ctx, product.ID, h.editor, "hi"); err != nil {
		t.Errorf("Create should succeed once the type is enabled, got %v", err)
	}
}

func TestCommentService_LimitIsEnforced(t *testing.T) {
	h := newTestHarness(t, config.CommentsConfig{Limit: 20})
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		if _, err := h.services.Comment.Create(ctx, 42, h.editor, fmt.Sprintf("c%d", i)); err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}

	_, err := h.services.Comment.Create(ctx, 42, h.other, "one too many")
	if !errors.Is(err, service.ErrLimitExceeded) {
		t.Fatalf("Expected ErrLimitExceeded, got %v", err)
	}

	thread, err := h.services.Comment.Thread(ctx, 42)
	if err != nil {
		t.Fatalf("Thread failed: %v", err)
	}
	if len(thread.Comments) != 20 {
		t.Errorf("Expected 20 comments, got %d", len(thread.Comments))
	}
	if !thread.LimitReached() {
		t.Error("Thread should report the limit as reached")
	}
}

func TestCommentService_LimitOverridePerType(t *testing.T) {
	h := newTestHarness(t, config.CommentsConfig{Limit: 20, LimitOverrides: map[string]int{"page": 2}})
	ctx := context.Background()
	page := h.posts.AddPost(&models.Post{ID: 60, AuthorID: 7, Type: "page"})

	for i := 0; i < 2; i++ {
		if _, err := h.services.Comment.Create(ctx, page.ID, h.editor, "note"); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	if _, err := h.services.Comment.Create(ctx, page.ID, h.editor, "note"); !errors.Is(err, service.ErrLimitExceeded) {
		t.Errorf("Expected ErrLimitExceeded, got %v", err)
	}

	thread, _ := h.services.Comment.Thread(ctx, page.ID)
	if thread.Limit != 2 {
		t.Errorf("Expected limit 2, got %d", thread.Limit)
	}
}

func TestCommentService_CreateStoreError(t *testing.T) {
	h := newTestHarness(t, config.CommentsConfig{})
	h.posts.CreateError = errors.New("connection reset")

	_, err := h.services.Comment.Create(context.Background(), 42, h.editor, "hi")
	if !errors.Is(err, service.ErrStore) {
		t.Errorf("Expected ErrStore, got %v", err)
	}
}

func TestCommentService_AfterInsertHook(t *testing.T) {
	h := newTestHarness(t, config.CommentsConfig{})

	var (
		calls     int
		gotParent int64
		gotAuthor *models.User
		gotID     int64
	)
	h.services.Comment.OnAfterInsert(func(ctx context.Context, parentID int64, author *models.User, commentID int64) {
		calls++
		gotParent, gotAuthor, gotID = parentID, author, commentID
	})

	created, err := h.services.Comment.Create(context.Background(), 42, h.editor, "hi")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if calls != 1 {
		t.Fatalf("Expected hook to fire once, got %d", calls)
	}
	if gotParent != 42 || gotAuthor != h.editor || gotID != created.ID {
		t.Errorf("Unexpected hook arguments: %d, %+v, %d", gotParent, gotAuthor, gotID)
	}

	// Failed inserts do not notify
	h.services.Comment.Create(context.Background(), 42, h.editor, "")
	if calls != 1 {
		t.Errorf("Hook should not fire on failure, got %d calls", calls)
	}
}

func TestCommentService_DeleteThenList(t *testing.T) {
	h := newTestHarness(t, config.CommentsConfig{})
	ctx := context.Background()

	created, _ := h.services.Comment.Create(ctx, 42, h.editor, "temporary")

	if err := h.services.Comment.Delete(ctx, 42, created.ID, h.editor); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	comments, _ := h.services.Comment.List(ctx, 42)
	for _, c := range comments {
		if c.ID == created.ID {
			t.Fatal("Deleted comment should not be listed")
		}
	}

	err := h.services.Comment.Delete(ctx, 42, created.ID, h.editor)
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Second delete should fail with ErrNotFound, got %v", err)
	}
}

func TestCommentService_DeleteRequiresAuthor(t *testing.T) {
	h := newTestHarness(t, config.CommentsConfig{})
	ctx := context.Background()

	created, _ := h.services.Comment.Create(ctx, 42, h.editor, "mine")

	err := h.services.Comment.Delete(ctx, 42, created.ID, h.other)
	if !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("Expected ErrForbidden, got %v", err)
	}
	if err := h.services.Comment.Delete(ctx, 42, created.ID, nil); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("Anonymous delete should be forbidden, got %v", err)
	}
	if _, exists := h.posts.Posts[created.ID]; !exists {
		t.Error("Comment should survive a refused delete")
	}
	if h.posts.DeleteCalls != 0 {
		t.Errorf("Store delete should not be called, got %d", h.posts.DeleteCalls)
	}
}

func TestCommentService_DeleteScopedToCommentsOfParent(t *testing.T) {
	h := newTestHarness(t, config.CommentsConfig{})
	ctx := context.Background()
	other := h.posts.AddPost(&models.Post{ID: 43, AuthorID: 7, Type: "post"})

	created, _ := h.services.Comment.Create(ctx, 42, h.editor, "mine")

	if err := h.services.Comment.Delete(ctx, other.ID, created.ID, h.editor); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Delete under the wrong parent should fail with ErrNotFound, got %v", err)
	}

	// The parent itself is an ordinary post authored by the same user
	if err := h.services.Comment.Delete(ctx, 42, 42, h.editor); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Deleting a non-comment should fail with ErrNotFound, got %v", err)
	}
	if _, exists := h.posts.Posts[42]; !exists {
		t.Error("Parent post must not be deleted")
	}
}

func TestCommentService_DeleteStoreError(t *testing.T) {
	h := newTestHarness(t, config.CommentsConfig{})
	ctx := context.Background()

	created, _ := h.services.Comment.Create(ctx, 42, h.editor, "mine")
	h.posts.DeleteError = errors.New("permission denied")

	if err := h.services.Comment.Delete(ctx, 42, created.ID, h.editor); !errors.Is(err, service.ErrStore) {
		t.Errorf("Expected ErrStore, got %v", err)
	}
}

func TestCommentService_ThreadUnknownParent(t *testing.T) {
	h := newTestHarness(t, config.CommentsConfig{})

	if _, err := h.services.Comment.Thread(context.Background(), 999); !errors.Is(err, service.ErrParentNotFound) {
		t.Errorf("Expected ErrParentNotFound, got %v", err)
	}
}

func TestCommentService_ThreadCarriesParentSite(t *testing.T) {
	h := newTestHarness(t, config.CommentsConfig{})
	other := h.posts.AddPost(&models.Post{ID: 60, SiteID: 2, AuthorID: 7, Type: "post"})

	thread, err := h.services.Comment.Thread(context.Background(), other.ID)
	if err != nil {
		t.Fatalf("Thread failed: %v", err)
	}
	if thread.SiteID != 2 || thread.ParentType != "post" {
		t.Errorf("Expected site 2 post thread, got site %d type %q", thread.SiteID, thread.ParentType)
	}
}
