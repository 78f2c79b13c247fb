// File: internal/api/user.go
package api

// swagger:model api.UpdateMeRequest
type UpdateMeRequest struct {
	Name  string `json:"name" validate:"required,max=100" example:"Alice"`
	Email string `json:"email" validate:"required,email,max=255" example:"alice@example.com"`
}

// swagger:model api.UpdateMyPasswordRequest
type UpdateMyPasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required" example:"OldSecret123!"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72" example:"NewSecret456!"`
}

// CreateUserRequest 只有超級管理員可以指定 is_admin
// swagger:model api.CreateUserRequest
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=100" example:"Bob"`
	Email    string `json:"email" validate:"required,email,max=255" example:"bob@example.com"`
	Password string `json:"password" validate:"required,min=8,max=72" example:"Secret123!"`
	IsAdmin  bool   `json:"is_admin" example:"false"`
}

// swagger:model api.UpdateUserRequest
type UpdateUserRequest struct {
	Name     string `json:"name" validate:"required,max=100" example:"Bob"`
	Email    string `json:"email" validate:"required,email,max=255" example:"bob@example.com"`
	IsActive *bool  `json:"is_active" validate:"required" example:"true"`
}

// swagger:model api.UpdateRolesRequest
type UpdateRolesRequest struct {
	IsAdmin      *bool `json:"is_admin" validate:"required" example:"true"`
	IsSuperAdmin *bool `json:"is_super_admin" validate:"required" example:"false"`
}
