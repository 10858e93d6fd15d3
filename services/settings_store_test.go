package services

import (
	"testing"
	"time"

	"dipout-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetInitializesDefaults(t *testing.T) {
	store := NewSettingsStore(newTestDB(t))
	restaurantID := uuid.New()

	settings, err := store.Get(restaurantID)
	require.NoError(t, err)
	assert.Equal(t, 1, settings.YellowThreshold)
	assert.Equal(t, 3, settings.RedThreshold)
	assert.Equal(t, models.SubscriptionTrial, settings.SubscriptionStatus)
	assert.Equal(t, models.PlanNone, settings.SubscriptionPlan)
	assert.Equal(t, models.PaymentPending, settings.PaymentStatus)
	assert.Nil(t, settings.TrialStartDate)
}

func TestUpdatePreservesUnspecifiedFields(t *testing.T) {
	store := NewSettingsStore(newTestDB(t))
	restaurantID := uuid.New()

	_, err := store.Update(restaurantID, SettingsUpdate{RestaurantName: sptr("Paolo's Pizza")})
	require.NoError(t, err)

	updated, err := store.Update(restaurantID, SettingsUpdate{YellowThreshold: iptr(2), RedThreshold: iptr(5)})
	require.NoError(t, err)
	assert.Equal(t, "Paolo's Pizza", updated.RestaurantName)
	assert.Equal(t, 2, updated.YellowThreshold)
	assert.Equal(t, 5, updated.RedThreshold)
	assert.False(t, updated.EnableTextNotifications)

	updated, err = store.Update(restaurantID, SettingsUpdate{EnableTextNotifications: bptr(true)})
	require.NoError(t, err)
	assert.True(t, updated.EnableTextNotifications)
	assert.Equal(t, "Paolo's Pizza", updated.RestaurantName)
	assert.Equal(t, 2, updated.YellowThreshold)
}

func TestUpdateRejectsThresholdInversion(t *testing.T) {
	store := NewSettingsStore(newTestDB(t))
	restaurantID := uuid.New()

	_, err := store.Update(restaurantID, SettingsUpdate{YellowThreshold: iptr(3)})
	assert.ErrorIs(t, err, ErrThresholdOrder) // equal to default red

	_, err = store.Update(restaurantID, SettingsUpdate{YellowThreshold: iptr(5), RedThreshold: iptr(2)})
	assert.ErrorIs(t, err, ErrThresholdOrder)

	_, err = store.Update(restaurantID, SettingsUpdate{YellowThreshold: iptr(0)})
	assert.ErrorIs(t, err, ErrThresholdRange)

	// Rejected writes must not stick
	settings, err := store.Get(restaurantID)
	require.NoError(t, err)
	assert.Equal(t, 1, settings.YellowThreshold)
	assert.Equal(t, 3, settings.RedThreshold)
}

func TestUpdateSubscriptionMovesInLockstep(t *testing.T) {
	store := NewSettingsStore(newTestDB(t))
	restaurantID := uuid.New()

	_, err := store.UpdateSubscription(restaurantID, models.SubscriptionActive, models.PlanNone)
	assert.ErrorIs(t, err, ErrPlanStatusCombo)

	_, err = store.UpdateSubscription(restaurantID, "lifetime", models.PlanPro)
	assert.ErrorIs(t, err, ErrUnknownStatus)

	_, err = store.UpdateSubscription(restaurantID, models.SubscriptionActive, "platinum")
	assert.ErrorIs(t, err, ErrUnknownPlan)

	settings, err := store.UpdateSubscription(restaurantID, models.SubscriptionActive, models.PlanProPlus)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionActive, settings.SubscriptionStatus)
	assert.Equal(t, models.PlanProPlus, settings.SubscriptionPlan)
}

func TestStartTrialIsIdempotent(t *testing.T) {
	store := NewSettingsStore(newTestDB(t))
	restaurantID := uuid.New()

	first := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	settings, err := store.StartTrial(restaurantID, first)
	require.NoError(t, err)
	require.NotNil(t, settings.TrialStartDate)
	assert.True(t, settings.TrialStartDate.Equal(first))

	// A later signup attempt must not reset the trial clock
	settings, err = store.StartTrial(restaurantID, first.AddDate(0, 0, 30))
	require.NoError(t, err)
	assert.True(t, settings.TrialStartDate.Equal(first))
}

func TestMarkExpiredPersists(t *testing.T) {
	store := NewSettingsStore(newTestDB(t))
	restaurantID := uuid.New()

	require.NoError(t, store.MarkExpired(restaurantID))

	settings, err := store.Get(restaurantID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionExpired, settings.SubscriptionStatus)
}
