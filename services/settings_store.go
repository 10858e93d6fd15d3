// services/settings_store.go
package services

import (
	"errors"
	"fmt"
	"time"

	"dipout-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrThresholdOrder  = errors.New("yellowThreshold must be less than redThreshold")
	ErrThresholdRange  = errors.New("thresholds must be positive")
	ErrPlanStatusCombo = errors.New("an active subscription requires a plan")
	ErrUnknownStatus   = errors.New("unknown subscription status")
	ErrUnknownPlan     = errors.New("unknown subscription plan")
)

// SettingsStore holds per-restaurant thresholds and subscription metadata.
// Every write re-checks the yellowThreshold < redThreshold invariant so a
// contradictory configuration can never be persisted.
type SettingsStore struct {
	db *gorm.DB
}

func NewSettingsStore(db *gorm.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Get loads the settings row for a restaurant, initializing defaults on first use
func (s *SettingsStore) Get(restaurantID uuid.UUID) (*models.Settings, error) {
	var settings models.Settings
	err := s.db.Where("restaurant_id = ?", restaurantID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = defaultSettings(restaurantID)
		if err := s.db.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func defaultSettings(restaurantID uuid.UUID) models.Settings {
	return models.Settings{
		RestaurantID:       restaurantID,
		YellowThreshold:    1,
		RedThreshold:       3,
		SubscriptionStatus: models.SubscriptionTrial,
		SubscriptionPlan:   models.PlanNone,
		PaymentStatus:      models.PaymentPending,
	}
}

// SettingsUpdate carries a partial change set; nil fields are left untouched
type SettingsUpdate struct {
	YellowThreshold         *int    `json:"yellowThreshold"`
	RedThreshold            *int    `json:"redThreshold"`
	EnableTextNotifications *bool   `json:"enableTextNotifications"`
	RestaurantName          *string `json:"restaurantName"`
}

// Update merges the supplied fields into current settings and persists the
// full row. Threshold changes violating yellow < red are rejected.
func (s *SettingsStore) Update(restaurantID uuid.UUID, update SettingsUpdate) (*models.Settings, error) {
	settings, err := s.Get(restaurantID)
	if err != nil {
		return nil, err
	}

	if update.YellowThreshold != nil {
		settings.YellowThreshold = *update.YellowThreshold
	}
	if update.RedThreshold != nil {
		settings.RedThreshold = *update.RedThreshold
	}
	if update.EnableTextNotifications != nil {
		settings.EnableTextNotifications = *update.EnableTextNotifications
	}
	if update.RestaurantName != nil {
		settings.RestaurantName = *update.RestaurantName
	}

	if settings.YellowThreshold < 1 || settings.RedThreshold < 1 {
		return nil, ErrThresholdRange
	}
	if settings.YellowThreshold >= settings.RedThreshold {
		return nil, ErrThresholdOrder
	}

	if err := s.db.Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// UpdateSubscription sets status and plan together; they always move in
// lockstep. There is no valid state with plan=none and status=active.
func (s *SettingsStore) UpdateSubscription(restaurantID uuid.UUID, status, plan string) (*models.Settings, error) {
	switch status {
	case models.SubscriptionTrial, models.SubscriptionActive, models.SubscriptionExpired, models.SubscriptionNone:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}
	switch plan {
	case models.PlanNone, models.PlanPro, models.PlanProPlus:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlan, plan)
	}
	if status == models.SubscriptionActive && plan == models.PlanNone {
		return nil, ErrPlanStatusCombo
	}

	settings, err := s.Get(restaurantID)
	if err != nil {
		return nil, err
	}
	settings.SubscriptionStatus = status
	settings.SubscriptionPlan = plan
	if err := s.db.Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// StartTrial records the trial start timestamp if none exists yet.
// Calling it again later is a no-op; the original window stands.
func (s *SettingsStore) StartTrial(restaurantID uuid.UUID, now time.Time) (*models.Settings, error) {
	settings, err := s.Get(restaurantID)
	if err != nil {
		return nil, err
	}
	if settings.TrialStartDate != nil && !settings.TrialStartDate.IsZero() {
		return settings, nil
	}
	settings.TrialStartDate = &now
	settings.SubscriptionStatus = models.SubscriptionTrial
	if err := s.db.Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// MarkExpired is the persisted side effect of the paywall noticing a lapsed trial
func (s *SettingsStore) MarkExpired(restaurantID uuid.UUID) error {
	settings, err := s.Get(restaurantID)
	if err != nil {
		return err
	}
	if settings.SubscriptionStatus == models.SubscriptionExpired {
		return nil
	}
	settings.SubscriptionStatus = models.SubscriptionExpired
	return s.db.Save(settings).Error
}

// MarkPaymentCompleted flips payment state after a successful checkout
func (s *SettingsStore) MarkPaymentCompleted(restaurantID uuid.UUID) error {
	settings, err := s.Get(restaurantID)
	if err != nil {
		return err
	}
	settings.PaymentStatus = models.PaymentCompleted
	return s.db.Save(settings).Error
}
