package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/trimsync/barbershop-api/internal/models"
)

type Appointment struct {
	ID           uuid.UUID   `json:"id"`
	BarbershopID uuid.UUID   `json:"barbershop_id"`
	BarberID     uuid.UUID   `json:"barber_id"`
	CustomerID   uuid.UUID   `json:"customer_id"`
	ServiceIDs   []uuid.UUID `json:"service_ids"`

	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	DurationMin int       `json:"duration_min"`

	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`

	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromModel(ap *models.Appointment) Appointment {
	return Appointment{
		ID:           ap.ID,
		BarbershopID: ap.BarbershopID,
		BarberID:     ap.BarberID,
		CustomerID:   ap.CustomerID,
		ServiceIDs:   ap.ServiceIDs(),
		StartTime:    ap.StartTime,
		EndTime:      ap.EndTime,
		DurationMin:  ap.DurationMin,
		Status:       ap.Status,
		Notes:        ap.Notes,
		ConfirmedAt:  ap.ConfirmedAt,
		CancelledAt:  ap.CancelledAt,
		CompletedAt:  ap.CompletedAt,
		CreatedAt:    ap.CreatedAt,
		UpdatedAt:    ap.UpdatedAt,
	}
}

func FromModels(aps []models.Appointment) []Appointment {
	out := make([]Appointment, 0, len(aps))
	for i := range aps {
		out = append(out, FromModel(&aps[i]))
	}
	return out
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
