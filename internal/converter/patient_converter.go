package converter

import (
	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:                  patient.ID,
		MedicalRecordNumber: patient.MedicalRecordNumber,
		FullName:            patient.FullName,
		PhoneNumber:         patient.PhoneNumber,
		Email:               patient.Email,
		DateOfBirth:         patient.DateOfBirth.Format("2006-01-02"),
		Gender:              patient.Gender,
		Address:             patient.Address,
		BloodType:           patient.BloodType,
		Allergies:           patient.Allergies,
		CreatedAt:           patient.CreatedAt,
		UpdatedAt:           patient.UpdatedAt,
	}
}

// PatientsToResponses converts a slice of Patient entities to PatientResponse DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, 0, len(patients))
	for i := range patients {
		responses = append(responses, *PatientToResponse(&patients[i]))
	}
	return responses
}
