package models

import (
	"time"
)

// CommentPostType is the type tag that marks a post as an admin edit comment
const CommentPostType = "admin_edit_comment"

// Comment is an editorial note attached to a content item
type Comment struct {
	ID        int64     `json:"id"`
	ParentID  int64     `json:"parent_id"`
	AuthorID  int64     `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	TypeTag   string    `json:"type"`
}

// CommentFromPost converts a stored post into a comment.
// It returns nil when the post is not a comment.
func CommentFromPost(p *Post) *Comment {
	if p == nil || !p.IsComment() || p.ParentID == nil {
		return nil
	}
	return &Comment{
		ID:        p.ID,
		ParentID:  *p.ParentID,
		AuthorID:  p.AuthorID,
		Body:      p.Body,
		CreatedAt: p.CreatedAt,
		TypeTag:   p.Type,
	}
}

// Thread is the comment list of one parent together with its cap
type Thread struct {
	ParentID   int64
	SiteID     int64
	ParentType string
	Comments   []*Comment
	Limit      int
}

// LimitReached reports whether no further comments may be added
func (t *Thread) LimitReached() bool {
	return len(t.Comments) >= t.Limit
}
