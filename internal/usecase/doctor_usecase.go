package usecase

import (
	"context"
	"errors"

	"clinic-appointment-service/config"
	"clinic-appointment-service/internal/converter"
	"clinic-appointment-service/internal/delivery/dto"
	"clinic-appointment-service/internal/domain/entity"
	"clinic-appointment-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidWorkingHours = errors.New("working-hours start must be before end")
	ErrDoctorInactive      = errors.New("doctor is already inactive")
)

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
	GetAllDoctors(ctx context.Context, specialization string) (*dto.DoctorListResponse, error)
	UpdateDoctor(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	DeactivateDoctor(ctx context.Context, id uuid.UUID) error
}

type doctorUsecase struct {
	log        *logrus.Logger
	cfg        config.BookingConfig
	doctorRepo repository.DoctorRepository
}

func NewDoctorUsecase(log *logrus.Logger, cfg config.BookingConfig, doctorRepo repository.DoctorRepository) DoctorUsecase {
	return &doctorUsecase{
		log:        log,
		cfg:        cfg,
		doctorRepo: doctorRepo,
	}
}

func (u *doctorUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	start, err := entity.ParseClock(req.StartTime)
	if err != nil {
		return nil, ErrInvalidTime
	}
	end, err := entity.ParseClock(req.EndTime)
	if err != nil {
		return nil, ErrInvalidTime
	}
	if start >= end {
		return nil, ErrInvalidWorkingHours
	}

	slotMinutes := req.SlotMinutes
	if slotMinutes == 0 {
		slotMinutes = u.cfg.DefaultSlotMinutes
	}

	active := true
	doctor := &entity.Doctor{
		FullName:        req.FullName,
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
		Specialization:  req.Specialization,
		Qualification:   req.Qualification,
		Biography:       req.Biography,
		ConsultationFee: req.ConsultationFee,
		WorkingDays:     entity.WorkingDays(req.WorkingDays),
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		SlotMinutes:     slotMinutes,
		IsActive:        &active,
	}

	if err := u.doctorRepo.Create(ctx, doctor); err != nil {
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	u.log.Infof("Doctor created: id=%s, specialization=%s", doctor.ID, doctor.Specialization)
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetAllDoctors(ctx context.Context, specialization string) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(ctx, specialization, false)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}
	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *doctorUsecase) UpdateDoctor(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if req.FullName != "" {
		doctor.FullName = req.FullName
	}
	if req.PhoneNumber != "" {
		doctor.PhoneNumber = req.PhoneNumber
	}
	if req.Specialization != "" {
		doctor.Specialization = req.Specialization
	}
	if req.Qualification != "" {
		doctor.Qualification = req.Qualification
	}
	if req.Biography != "" {
		doctor.Biography = req.Biography
	}
	if req.ConsultationFee != nil {
		doctor.ConsultationFee = *req.ConsultationFee
	}
	if len(req.WorkingDays) > 0 {
		doctor.WorkingDays = entity.WorkingDays(req.WorkingDays)
	}
	if req.StartTime != "" {
		if _, err := entity.ParseClock(req.StartTime); err != nil {
			return nil, ErrInvalidTime
		}
		doctor.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		if _, err := entity.ParseClock(req.EndTime); err != nil {
			return nil, ErrInvalidTime
		}
		doctor.EndTime = req.EndTime
	}
	if req.SlotMinutes != nil {
		doctor.SlotMinutes = *req.SlotMinutes
	}

	start, _ := entity.ParseClock(doctor.StartTime)
	end, _ := entity.ParseClock(doctor.EndTime)
	if start >= end {
		return nil, ErrInvalidWorkingHours
	}

	if err := u.doctorRepo.Update(ctx, doctor); err != nil {
		u.log.Warnf("Failed to update doctor %s: %+v", id, err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

// DeactivateDoctor soft-deletes: history referenced by past appointments survives.
func (u *doctorUsecase) DeactivateDoctor(ctx context.Context, id uuid.UUID) error {
	rows, err := u.doctorRepo.Deactivate(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to deactivate doctor %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		// Either unknown or already inactive; disambiguate for the caller.
		doctor, err := u.doctorRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if doctor == nil {
			return ErrDoctorNotFound
		}
		return ErrDoctorInactive
	}

	u.log.Infof("Doctor deactivated: id=%s", id)
	return nil
}
