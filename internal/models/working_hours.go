package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkingHours struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BarbershopID uuid.UUID `gorm:"type:uuid;index;not null" json:"barbershop_id"`
	BarberID     uuid.UUID `gorm:"type:uuid;index;not null" json:"barber_id"`

	Weekday int `gorm:"index" json:"weekday"`

	StartTime  string `gorm:"size:5" json:"start_time"`
	EndTime    string `gorm:"size:5" json:"end_time"`
	LunchStart string `gorm:"size:5" json:"lunch_start"`
	LunchEnd   string `gorm:"size:5" json:"lunch_end"`
	Active     bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (w *WorkingHours) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
