package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Valid order types for a no-show event
const (
	OrderTypePickup      = "pickup"
	OrderTypeCallIn      = "call-in"
	OrderTypeDelivery    = "delivery"
	OrderTypeReservation = "reservation"
	OrderTypeOther       = "other"
)

// NoShowEvent records a single missed order or reservation. Events are
// append-only: never mutated or deleted once captured.
type NoShowEvent struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`

	Date      time.Time `gorm:"not null"`
	OrderType string    `gorm:"type:varchar(20);not null"`
	Value     *float64  `gorm:"type:decimal(10,2)"`
	Notes     string

	gorm.Model
}

func (e *NoShowEvent) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
