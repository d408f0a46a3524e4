package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned for missing or malformed input
	ErrValidation = errors.New("validation failed")
	// ErrParentNotFound is returned when the annotated item cannot carry comments
	ErrParentNotFound = fmt.Errorf("%w: parent content item not found", ErrValidation)
	// ErrTypeDisabled is returned when comments are switched off for the parent's type
	ErrTypeDisabled = fmt.Errorf("%w: comments disabled for content type", ErrValidation)
	// ErrLimitExceeded is returned when the parent already holds the maximum number of comments
	ErrLimitExceeded = errors.New("comment limit exceeded")
	// ErrNotFound is returned when the target comment does not exist
	ErrNotFound = errors.New("comment not found")
	// ErrForbidden is returned when the acting user may not perform the operation
	ErrForbidden = errors.New("operation not permitted")
	// ErrStore is returned when the content store rejects an operation
	ErrStore = errors.New("content store error")
)
