package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer has no login; identified by phone within one barbershop.
type Customer struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BarbershopID uuid.UUID `gorm:"type:uuid;index;not null" json:"barbershop_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
