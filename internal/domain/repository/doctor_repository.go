package repository

import (
	"context"

	"clinic-appointment-service/internal/domain/entity"

	"github.com/google/uuid"
)

type DoctorRepository interface {
	Create(ctx context.Context, doctor *entity.Doctor) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error)
	FindAll(ctx context.Context, specialization string, activeOnly bool) ([]entity.Doctor, error)
	Update(ctx context.Context, doctor *entity.Doctor) error
	// Deactivate soft-deletes a doctor. Returns affected rows: 0 = unknown or
	// already inactive.
	Deactivate(ctx context.Context, id uuid.UUID) (int64, error)
}
