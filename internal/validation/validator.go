package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/admin-edit-comment/internal/models"
)

// Content type names follow the same rule the CMS applies when registering them.
var postTypeRegex = regexp.MustCompile(`^[a-z0-9_-]{1,20}$`)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateInsertRequest checks insert_comment parameters and returns the parsed parent ID
func ValidateInsertRequest(req *models.InsertCommentRequest) (int64, []ValidationError) {
	var errors []ValidationError

	parentID, err := parseID("post_id", req.PostID)
	if err != nil {
		errors = append(errors, *err)
	}

	// Validate comment body
	if strings.TrimSpace(req.Comment) == "" {
		errors = append(errors, ValidationError{Field: "comment", Message: "comment is required"})
	}

	return parentID, errors
}

// ValidateDeleteRequest checks delete_comment parameters and returns the parsed IDs
func ValidateDeleteRequest(req *models.DeleteCommentRequest) (int64, int64, []ValidationError) {
	var errors []ValidationError

	parentID, err := parseID("post_id", req.PostID)
	if err != nil {
		errors = append(errors, *err)
	}

	commentID, err := parseID("comment_id", req.CommentID)
	if err != nil {
		errors = append(errors, *err)
	}

	return parentID, commentID, errors
}

// ValidatePostTypes checks the content types submitted on the settings page
func ValidatePostTypes(types []string) []ValidationError {
	var errors []ValidationError

	for _, postType := range types {
		switch {
		case !postTypeRegex.MatchString(postType):
			errors = append(errors, ValidationError{
				Field:   "enabled_types",
				Message: "content type must be 1-20 lowercase letters, numbers, dashes or underscores",
				Value:   postType,
			})
		case postType == models.CommentPostType || postType == models.AttachmentPostType:
			errors = append(errors, ValidationError{
				Field:   "enabled_types",
				Message: "content type cannot carry comments",
				Value:   postType,
			})
		}
	}

	return errors
}

// ParseID parses a positive record identifier
func ParseID(field, value string) (int64, error) {
	id, err := parseID(field, value)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func parseID(field, value string) (int64, *ValidationError) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, &ValidationError{Field: field, Message: field + " is required"}
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, &ValidationError{Field: field, Message: "invalid identifier", Value: value}
	}
	return id, nil
}
