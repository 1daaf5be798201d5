package converter

import (
	"clinic-appointment-service/internal/delivery/dto"
	"clinic-appointment-service/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:              doctor.ID,
		FullName:        doctor.FullName,
		Email:           doctor.Email,
		PhoneNumber:     doctor.PhoneNumber,
		Specialization:  doctor.Specialization,
		Qualification:   doctor.Qualification,
		Biography:       doctor.Biography,
		ConsultationFee: doctor.ConsultationFee,
		WorkingDays:     doctor.WorkingDays,
		StartTime:       doctor.StartTime,
		EndTime:         doctor.EndTime,
		SlotMinutes:     doctor.SlotMinutes,
		IsActive:        doctor.Active(),
		CreatedAt:       doctor.CreatedAt,
		UpdatedAt:       doctor.UpdatedAt,
	}
}

// DoctorsToResponses converts a slice of Doctor entities to response DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		resp := DoctorToResponse(&doctors[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
