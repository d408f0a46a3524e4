package models

// OptionsKey is the option holding the content types that show the comment box
const OptionsKey = "admin_edit_comment_options"

// DefaultActivePostTypes is used when the option has never been saved
var DefaultActivePostTypes = []string{"post", "page"}

// Settings is the settings view exposed by the API
type Settings struct {
	SiteID         int64    `json:"site_id"`
	EnabledTypes   []string `json:"enabled_types"`
	AvailableTypes []string `json:"available_types"`
}

// UpdateSettingsRequest is the body of PUT /v1/settings
type UpdateSettingsRequest struct {
	EnabledTypes []string `json:"enabled_types"`
}
