package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscription states
const (
	SubscriptionTrial   = "trial"
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
	SubscriptionNone    = "none"
)

// Subscription plans
const (
	PlanNone    = "none"
	PlanPro     = "pro"
	PlanProPlus = "proPlus"
)

// Payment states
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
)

// Settings holds per-restaurant configuration: flake score thresholds,
// notification toggles and the subscription/trial metadata the paywall reads.
type Settings struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	RestaurantID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	YellowThreshold int `gorm:"default:1"`
	RedThreshold    int `gorm:"default:3"`

	EnableTextNotifications bool `gorm:"default:false"`

	RestaurantName string

	SubscriptionStatus string `gorm:"type:varchar(20);default:'trial'"`
	SubscriptionPlan   string `gorm:"type:varchar(20);default:'none'"`
	TrialStartDate     *time.Time
	PaymentStatus      string `gorm:"type:varchar(20);default:'pending'"`

	gorm.Model
}

func (s *Settings) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
