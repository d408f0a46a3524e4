package models

import (
	"time"
)

// User represents an editorial account
type User struct {
	ID          int64     `json:"id" db:"id"`
	Login       string    `json:"login" db:"login"`
	Email       string    `json:"email" db:"email"`
	DisplayName string    `json:"display_name" db:"display_name"`
	Role        string    `json:"role" db:"role"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// User roles
const (
	RoleAdministrator = "administrator"
	RoleEditor        = "editor"
	RoleAuthor        = "author"
	RoleContributor   = "contributor"
	RoleSubscriber    = "subscriber"
)

// ValidRoles defines allowed user roles
var ValidRoles = map[string]bool{
	RoleAdministrator: true,
	RoleEditor:        true,
	RoleAuthor:        true,
	RoleContributor:   true,
	RoleSubscriber:    true,
}

// CanEditPosts reports whether the user may use the comment box
func (u *User) CanEditPosts() bool {
	switch u.Role {
	case RoleAdministrator, RoleEditor, RoleAuthor, RoleContributor:
		return true
	}
	return false
}

// CanManageOptions reports whether the user may change settings
func (u *User) CanManageOptions() bool {
	return u.Role == RoleAdministrator
}
