package converter

import (
	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"
)

// RoleToResponse converts a Role entity to RoleResponse DTO
func RoleToResponse(role *entity.Role) *dto.RoleResponse {
	if role == nil {
		return nil
	}

	permissions := make([]string, 0, len(role.Permissions))
	for _, rp := range role.Permissions {
		permissions = append(permissions, rp.Permission)
	}

	return &dto.RoleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		Permissions: permissions,
		UserCount:   len(role.Users),
	}
}

// RolesToResponses converts a slice of Role entities to RoleResponse DTOs
func RolesToResponses(roles []entity.Role) []dto.RoleResponse {
	responses := make([]dto.RoleResponse, 0, len(roles))
	for i := range roles {
		responses = append(responses, *RoleToResponse(&roles[i]))
	}
	return responses
}
