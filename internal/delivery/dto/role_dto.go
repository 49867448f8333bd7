package dto

// Request DTOs

type CreateRoleRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=50"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions" validate:"dive,required"`
}

// UpdateRoleRequest replaces fields selectively: nil means "leave as is",
// while a non-nil Permissions slice replaces the whole permission set.
type UpdateRoleRequest struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Description *string   `json:"description,omitempty"`
	Permissions *[]string `json:"permissions,omitempty" validate:"omitempty,dive,required"`
}

// Response DTOs

type RoleResponse struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Permissions []string `json:"permissions"`
	UserCount   int      `json:"user_count"`
}

type RoleListResponse struct {
	Roles []RoleResponse `json:"roles"`
	Total int64          `json:"total"`
}
