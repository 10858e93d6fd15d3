package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	RestaurantID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_restaurant_phone,priority:1"`

	// Raw phone string as entered; no normalization, exact-match lookup key.
	PhoneNumber string `gorm:"not null;uniqueIndex:idx_restaurant_phone,priority:2"`

	NoShows []NoShowEvent `gorm:"foreignKey:CustomerID"`

	gorm.Model
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
