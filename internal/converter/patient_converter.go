package converter

import (
	"clinic-appointment-service/internal/delivery/dto"
	"clinic-appointment-service/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:             patient.ID,
		FullName:       patient.FullName,
		Email:          patient.Email,
		PhoneNumber:    patient.PhoneNumber,
		DateOfBirth:    patient.DateOfBirth.Format("2006-01-02"),
		Gender:         patient.Gender,
		Address:        patient.Address,
		MedicalHistory: patient.MedicalHistory,
		IsActive:       patient.Active(),
		CreatedAt:      patient.CreatedAt,
		UpdatedAt:      patient.UpdatedAt,
	}
}

// PatientsToResponses converts a slice of Patient entities to response DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		resp := PatientToResponse(&patients[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
