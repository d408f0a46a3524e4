package models

import (
	"time"
)

// Post is a generic typed content record. Comments are posts whose Type is
// CommentPostType and whose ParentID points at the annotated item.
type Post struct {
	ID        int64     `json:"id" db:"id"`
	SiteID    int64     `json:"site_id" db:"site_id"`
	ParentID  *int64    `json:"parent_id,omitempty" db:"parent_id"`
	AuthorID  int64     `json:"author_id" db:"author_id"`
	Type      string    `json:"type" db:"type"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Post statuses
const (
	PostStatusDraft   = "draft"
	PostStatusPublish = "publish"
)

// AttachmentPostType is the content type of binary uploads
const AttachmentPostType = "attachment"

// IsComment reports whether the record is an admin edit comment
func (p *Post) IsComment() bool {
	return p.Type == CommentPostType
}
