package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-appointment-service/internal/delivery/dto"
	"clinic-appointment-service/internal/usecase"
	"clinic-appointment-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// fakeSlotCalendarUsecase implements usecase.SlotCalendarUsecase.
type fakeSlotCalendarUsecase struct {
	availableFn func(ctx context.Context, doctorID uuid.UUID, date string) (*dto.SlotListResponse, error)
}

func (f *fakeSlotCalendarUsecase) AvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.SlotListResponse, error) {
	return f.availableFn(ctx, doctorID, date)
}

// fakeDoctorUsecase implements usecase.DoctorUsecase; only what the slot tests need.
type fakeDoctorUsecase struct{}

func (f *fakeDoctorUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	return nil, nil
}

func (f *fakeDoctorUsecase) GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	return nil, nil
}

func (f *fakeDoctorUsecase) GetAllDoctors(ctx context.Context, specialization string) (*dto.DoctorListResponse, error) {
	return nil, nil
}

func (f *fakeDoctorUsecase) UpdateDoctor(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	return nil, nil
}

func (f *fakeDoctorUsecase) DeactivateDoctor(ctx context.Context, id uuid.UUID) error {
	return nil
}

func TestGetAvailableSlots(t *testing.T) {
	doctorID := uuid.New()
	slots := &fakeSlotCalendarUsecase{
		availableFn: func(ctx context.Context, id uuid.UUID, date string) (*dto.SlotListResponse, error) {
			switch {
			case id != doctorID:
				return nil, usecase.ErrDoctorNotFound
			case date == "2026-02-01":
				return nil, usecase.ErrPastDate
			case date == "someday":
				return nil, usecase.ErrInvalidDate
			}
			return &dto.SlotListResponse{
				DoctorID: id,
				Date:     date,
				Slots: []dto.SlotResponse{
					{StartTime: "09:00", Available: true},
					{StartTime: "09:30", Available: false},
				},
			}, nil
		},
	}
	h := NewDoctorHandler(&fakeDoctorUsecase{}, slots, validator.NewValidator())

	router := mux.NewRouter()
	router.HandleFunc("/doctors/{id}/available-slots", h.GetAvailableSlots)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"ok", "/doctors/" + doctorID.String() + "/available-slots?date=2026-03-03", http.StatusOK},
		{"missing date", "/doctors/" + doctorID.String() + "/available-slots", http.StatusBadRequest},
		{"invalid date", "/doctors/" + doctorID.String() + "/available-slots?date=someday", http.StatusBadRequest},
		{"past date", "/doctors/" + doctorID.String() + "/available-slots?date=2026-02-01", http.StatusBadRequest},
		{"unknown doctor", "/doctors/" + uuid.NewString() + "/available-slots?date=2026-03-03", http.StatusNotFound},
		{"malformed id", "/doctors/seventeen/available-slots?date=2026-03-03", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}

	t.Run("slot payload", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/doctors/"+doctorID.String()+"/available-slots?date=2026-03-03", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		var body struct {
			Data dto.SlotListResponse `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("response is not valid JSON: %v", err)
		}
		if body.Data.DoctorID != doctorID || len(body.Data.Slots) != 2 {
			t.Errorf("unexpected payload: %+v", body.Data)
		}
		if !body.Data.Slots[0].Available || body.Data.Slots[1].Available {
			t.Errorf("slot availability not preserved: %+v", body.Data.Slots)
		}
	})
}
