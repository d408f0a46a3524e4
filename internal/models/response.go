package models

// Response is the envelope returned by every comment endpoint
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// CommentsData is the success payload carrying a rendered fragment
type CommentsData struct {
	Comments string `json:"comments"`
}

// MessageData is the failure payload
type MessageData struct {
	Message string `json:"message"`
}

// MetaBoxData is the payload of the comment box endpoint
type MetaBoxData struct {
	Comments string            `json:"comments"`
	Enabled  bool              `json:"enabled"`
	Limit    int               `json:"limit"`
	Messages map[string]string `json:"messages"`
}

// InsertCommentRequest holds insert_comment parameters as received
type InsertCommentRequest struct {
	PostID  string `json:"post_id" form:"post_id"`
	Comment string `json:"comment" form:"comment"`
}

// DeleteCommentRequest holds delete_comment parameters as received
type DeleteCommentRequest struct {
	PostID    string `json:"post_id" form:"post_id"`
	CommentID string `json:"comment_id" form:"comment_id"`
}
