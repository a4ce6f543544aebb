package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Barber is a staff member able to take bookings. Owners are barbers too.
type Barber struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BarbershopID uuid.UUID `gorm:"type:uuid;index;not null" json:"barbershop_id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'barber'" json:"role"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Barber) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
