package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	BarbershopID uuid.UUID `gorm:"type:uuid;index;not null" json:"barbershop_id"`
	BarberID     uuid.UUID `gorm:"type:uuid;index;not null" json:"barber_id"`
	CustomerID   uuid.UUID `gorm:"type:uuid;index;not null" json:"customer_id"`

	// Ordered service lines; a single-service booking is the one-element case.
	Services []AppointmentService `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"services"`

	StartTime   time.Time `gorm:"index" json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	DurationMin int       `json:"duration_min"`

	Status string `gorm:"size:20;index;default:'pending'" json:"status"`
	Notes  string `gorm:"size:255" json:"notes"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// ServiceIDs returns the booked service ids in booking order.
func (a *Appointment) ServiceIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(a.Services))
	for _, s := range a.Services {
		ids = append(ids, s.ServiceID)
	}
	return ids
}

// AppointmentService is one service line of a booking. Position preserves the
// order the customer picked the services in.
type AppointmentService struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;index;not null" json:"appointment_id"`
	ServiceID     uuid.UUID `gorm:"type:uuid;index;not null" json:"service_id"`
	Position      int       `gorm:"not null" json:"position"`

	CreatedAt time.Time `json:"created_at"`
}

func (s *AppointmentService) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
