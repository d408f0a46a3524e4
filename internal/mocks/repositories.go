package mocks

import (
	"context"
	"slices"
	"time"

	"github.com/admin-edit-comment/internal/models"
	"github.com/admin-edit-comment/internal/repository"
)

// mockEpoch anchors the timestamps the mock store assigns
var mockEpoch = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

// MockPostRepository is a mock implementation of PostRepository
type MockPostRepository struct {
	Posts            map[int64]*models.Post
	NextID           int64
	CreateError      error
	GetError         error
	ListError        error
	DeleteError      error
	CreateChildCalls int
	DeleteCalls      int
}

// Verify interface compliance
var _ repository.PostRepository = (*MockPostRepository)(nil)

func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{
		Posts:  make(map[int64]*models.Post),
		NextID: 1,
	}
}

// AddPost stores a post directly, assigning an ID and timestamp when missing
func (m *MockPostRepository) AddPost(post *models.Post) *models.Post {
	if post.ID == 0 {
		post.ID = m.NextID
	}
	if post.ID >= m.NextID {
		m.NextID = post.ID + 1
	}
	if post.SiteID == 0 {
		post.SiteID = 1
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = mockEpoch.Add(time.Duration(post.ID) * time.Minute)
	}
	m.Posts[post.ID] = post
	return post
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	post.ID = 0
	post.CreatedAt = time.Time{}
	m.AddPost(post)
	return nil
}

func (m *MockPostRepository) CreateChild(ctx context.Context, post *models.Post, limit int) error {
	m.CreateChildCalls++
	if m.CreateError != nil {
		return m.CreateError
	}
	if post.ParentID == nil {
		return repository.ErrNotFound
	}
	parent, exists := m.Posts[*post.ParentID]
	if !exists {
		return repository.ErrNotFound
	}
	if limit > 0 && m.countChildren(parent.ID, post.Type) >= limit {
		return repository.ErrLimitReached
	}
	post.SiteID = parent.SiteID
	return m.Create(ctx, post)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.Posts[id], nil
}

func (m *MockPostRepository) ListByParent(ctx context.Context, parentID int64, postType string) ([]*models.Post, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	var posts []*models.Post
	for _, post := range m.Posts {
		if post.ParentID != nil && *post.ParentID == parentID && post.Type == postType {
			posts = append(posts, post)
		}
	}
	slices.SortFunc(posts, func(a, b *models.Post) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return int(a.ID - b.ID)
	})
	return posts, nil
}

func (m *MockPostRepository) Delete(ctx context.Context, id int64) (bool, error) {
	m.DeleteCalls++
	if m.DeleteError != nil {
		return false, m.DeleteError
	}
	if _, exists := m.Posts[id]; !exists {
		return false, nil
	}
	delete(m.Posts, id)
	return true, nil
}

func (m *MockPostRepository) ListTypes(ctx context.Context, siteID int64) ([]string, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	var types []string
	for _, post := range m.Posts {
		if post.SiteID == siteID && !slices.Contains(types, post.Type) {
			types = append(types, post.Type)
		}
	}
	slices.Sort(types)
	return types, nil
}

func (m *MockPostRepository) countChildren(parentID int64, postType string) int {
	count := 0
	for _, post := range m.Posts {
		if post.ParentID != nil && *post.ParentID == parentID && post.Type == postType {
			count++
		}
	}
	return count
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	Users    map[int64]*models.User
	GetError error
	GetCalls int
}

// Verify interface compliance
var _ repository.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[int64]*models.User),
	}
}

// AddUser stores a user
func (m *MockUserRepository) AddUser(user *models.User) *models.User {
	m.Users[user.ID] = user
	return user
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	m.GetCalls++
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.Users[id], nil
}

func (m *MockUserRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, user := range m.Users {
		if user.Login == login {
			return user, nil
		}
	}
	return nil, nil
}

// MockOptionRepository is a mock implementation of OptionRepository
type MockOptionRepository struct {
	Options     map[int64]map[string][]string
	GetError    error
	SetError    error
	DeleteError error
}

// Verify interface compliance
var _ repository.OptionRepository = (*MockOptionRepository)(nil)

func NewMockOptionRepository() *MockOptionRepository {
	return &MockOptionRepository{
		Options: make(map[int64]map[string][]string),
	}
}

func (m *MockOptionRepository) Get(ctx context.Context, siteID int64, name string) ([]string, bool, error) {
	if m.GetError != nil {
		return nil, false, m.GetError
	}
	values, exists := m.Options[siteID][name]
	return values, exists, nil
}

func (m *MockOptionRepository) Set(ctx context.Context, siteID int64, name string, values []string) error {
	if m.SetError != nil {
		return m.SetError
	}
	if m.Options[siteID] == nil {
		m.Options[siteID] = make(map[string][]string)
	}
	m.Options[siteID][name] = slices.Clone(values)
	return nil
}

func (m *MockOptionRepository) Delete(ctx context.Context, siteID int64, name string) (bool, error) {
	if m.DeleteError != nil {
		return false, m.DeleteError
	}
	if _, exists := m.Options[siteID][name]; !exists {
		return false, nil
	}
	delete(m.Options[siteID], name)
	return true, nil
}

// MockSiteRepository is a mock implementation of SiteRepository
type MockSiteRepository struct {
	IDs       []int64
	ListError error
}

// Verify interface compliance
var _ repository.SiteRepository = (*MockSiteRepository)(nil)

func NewMockSiteRepository(ids ...int64) *MockSiteRepository {
	if len(ids) == 0 {
		ids = []int64{1}
	}
	return &MockSiteRepository{IDs: ids}
}

func (m *MockSiteRepository) ListIDs(ctx context.Context) ([]int64, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	return slices.Clone(m.IDs), nil
}

// NewMockRepositories bundles fresh mocks into a Repositories value
func NewMockRepositories() (*repository.Repositories, *MockPostRepository, *MockUserRepository, *MockOptionRepository, *MockSiteRepository) {
	posts := NewMockPostRepository()
	users := NewMockUserRepository()
	options := NewMockOptionRepository()
	sites := NewMockSiteRepository()
	repos := &repository.Repositories{
		Post:   posts,
		User:   users,
		Option: options,
		Site:   sites,
	}
	return repos, posts, users, options, sites
}
