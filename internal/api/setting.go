// File: internal/api/setting.go
package api

// swagger:model api.SettingsRequest
type SettingsRequest struct {
	Settings map[string]string `json:"settings" validate:"required,min=1" example:"site.title:My Portfolio"`
}
