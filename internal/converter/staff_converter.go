package converter

import (
	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"
)

// StaffProfileToResponse converts a StaffProfile entity (with preloaded User)
// to StaffResponse DTO
func StaffProfileToResponse(profile *entity.StaffProfile) *dto.StaffResponse {
	if profile == nil {
		return nil
	}

	return &dto.StaffResponse{
		ID:             profile.UserID,
		Email:          profile.User.Email,
		FullName:       profile.User.FullName,
		Role:           profile.User.Role.Name,
		IsActive:       profile.User.IsActive,
		EmployeeNumber: profile.EmployeeNumber,
		Position:       profile.Position,
		Department:     profile.Department,
		PhoneNumber:    profile.PhoneNumber,
		HireDate:       profile.HireDate.Format("2006-01-02"),
		CreatedAt:      profile.User.CreatedAt,
		UpdatedAt:      profile.User.UpdatedAt,
	}
}

// StaffProfilesToResponses converts a slice of StaffProfile entities to StaffResponse DTOs
func StaffProfilesToResponses(profiles []entity.StaffProfile) []dto.StaffResponse {
	responses := make([]dto.StaffResponse, 0, len(profiles))
	for i := range profiles {
		responses = append(responses, *StaffProfileToResponse(&profiles[i]))
	}
	return responses
}
