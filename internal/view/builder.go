// Package view renders the comment list fragment shown in the editing screen.
package view

import (
	"context"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"fmt"
	"html"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/admin-edit-comment/internal/i18n"
	"github.com/admin-edit-comment/internal/models"
	"github.com/admin-edit-comment/internal/repository"
	"github.com/admin-edit-comment/internal/service"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
)

const (
	// LimitMarker is the aec_limit value once a parent is full
	LimitMarker = "exceeds"
	// AvatarSize is the edge length of author avatars in pixels
	AvatarSize = 18
	// DateLayout formats comment timestamps
	DateLayout = "2006-01-02 15:04:05"

	defaultAuthorCacheTTL = 5 * time.Minute
)

//go:embed templates/comments.html
var templateFS embed.FS

var commentsTemplate = template.Must(template.ParseFS(templateFS, "templates/comments.html"))

// Renderer turns the comments of a parent into an HTML fragment
type Renderer interface {
	Render(ctx context.Context, parentID int64, viewer *models.User) (string, error)
}

// Builder is the default Renderer
type Builder struct {
	comments service.CommentService
	users    repository.UserRepository
	authors  *cache.Cache
	location *time.Location
	log      zerolog.Logger
}

// Verify interface compliance
var _ Renderer = (*Builder)(nil)

type fragment struct {
	Limit string
	Items []item
}

type item struct {
	ID         int64
	Class      string
	Own        bool
	AuthorName string
	AvatarURL  string
	AvatarSize int
	Body       template.HTML
	Date       string
}

type authorInfo struct {
	name  string
	email string
}

// NewBuilder creates a Builder. Author names of other users are cached for authorTTL.
func NewBuilder(comments service.CommentService, users repository.UserRepository, authorTTL time.Duration, log zerolog.Logger) *Builder {
	if authorTTL <= 0 {
		authorTTL = defaultAuthorCacheTTL
	}
	return &Builder{
		comments: comments,
		users:    users,
		authors:  cache.New(authorTTL, 2*authorTTL),
		location: time.UTC,
		log:      log.With().Str("component", "view").Logger(),
	}
}

// Render builds the fragment for parentID as seen by viewer
func (b *Builder) Render(ctx context.Context, parentID int64, viewer *models.User) (string, error) {
	thread, err := b.comments.Thread(ctx, parentID)
	if err != nil {
		return "", err
	}

	if len(thread.Comments) == 0 {
		return template.HTMLEscapeString(i18n.T(i18n.FromContext(ctx), i18n.MsgNoComments)), nil
	}

	data := fragment{Items: make([]item, 0, len(thread.Comments))}
	if thread.LimitReached() {
		data.Limit = LimitMarker
	}

	for _, comment := range thread.Comments {
		it := item{
			ID:         comment.ID,
			AvatarSize: AvatarSize,
			Body:       template.HTML(EscapeBody(comment.Body)),
			Date:       comment.CreatedAt.In(b.location).Format(DateLayout),
		}

		if viewer != nil && viewer.ID == comment.AuthorID {
			it.Own = true
			it.AuthorName = viewer.DisplayName
			it.AvatarURL = AvatarURL(viewer.Email, AvatarSize)
		} else {
			a := b.author(ctx, comment.AuthorID)
			it.Class = "others"
			it.AuthorName = a.name
			it.AvatarURL = AvatarURL(a.email, AvatarSize)
		}

		data.Items = append(data.Items, it)
	}

	var sb strings.Builder
	if err := commentsTemplate.ExecuteTemplate(&sb, "comments", data); err != nil {
		return "", fmt.Errorf("render comments of %d: %w", parentID, err)
	}
	return sb.String(), nil
}

// author resolves display data for another user. Missing or unreadable
// accounts degrade to an empty name.
func (b *Builder) author(ctx context.Context, id int64) authorInfo {
	key := strconv.FormatInt(id, 10)
	if cached, found := b.authors.Get(key); found {
		return cached.(authorInfo)
	}

	user, err := b.users.GetByID(ctx, id)
	if err != nil {
		b.log.Warn().Err(err).Int64("author_id", id).Msg("Author lookup failed")
		return authorInfo{}
	}

	var a authorInfo
	if user != nil {
		a = authorInfo{name: user.DisplayName, email: user.Email}
	}
	b.authors.SetDefault(key, a)
	return a
}

// EscapeBody escapes all markup-significant characters and turns line breaks into <br />
func EscapeBody(body string) string {
	escaped := html.EscapeString(body)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	escaped = strings.ReplaceAll(escaped, "\r", "\n")
	return strings.ReplaceAll(escaped, "\n", "<br />\n")
}

// AvatarURL returns the Gravatar image for an email address. An empty
// address yields the generic placeholder image.
func AvatarURL(email string, size int) string {
	hash := ""
	if email = strings.ToLower(strings.TrimSpace(email)); email != "" {
		sum := sha256.Sum256([]byte(email))
		hash = hex.EncodeToString(sum[:])
	}
	return fmt.Sprintf("https://secure.gravatar.com/avatar/%s?s=%d&d=mp", hash, size)
}
