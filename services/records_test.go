package services

import (
	"testing"
	"time"

	"dipout-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureInput(value *float64) NoShowInput {
	return NoShowInput{
		Date:      time.Now(),
		OrderType: models.OrderTypePickup,
		Value:     value,
	}
}

func TestAddNoShowCreatesCustomerOnFirstEvent(t *testing.T) {
	store := NewRecordStore(newTestDB(t))
	restaurantID := uuid.New()

	customer, event, err := store.AddNoShow(restaurantID, "555-123-4567", captureInput(fptr(32.50)))
	require.NoError(t, err)
	assert.Equal(t, "555-123-4567", customer.PhoneNumber)
	assert.NotEqual(t, uuid.Nil, event.ID)

	found, err := store.CustomerByPhone(restaurantID, "555-123-4567")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, customer.ID, found.ID)
	assert.Len(t, found.NoShows, 1)
}

func TestAddNoShowIsNeverLossy(t *testing.T) {
	store := NewRecordStore(newTestDB(t))
	restaurantID := uuid.New()

	const n = 5
	seen := map[uuid.UUID]bool{}
	for i := 0; i < n; i++ {
		_, event, err := store.AddNoShow(restaurantID, "555-987-6543", captureInput(nil))
		require.NoError(t, err)
		assert.False(t, seen[event.ID], "event ids must be distinct")
		seen[event.ID] = true
	}

	customer, err := store.CustomerByPhone(restaurantID, "555-987-6543")
	require.NoError(t, err)
	require.NotNil(t, customer)
	assert.Len(t, customer.NoShows, n)
}

func TestPhoneNumbersMatchAsExactStrings(t *testing.T) {
	store := NewRecordStore(newTestDB(t))
	restaurantID := uuid.New()

	_, _, err := store.AddNoShow(restaurantID, "555-123-4567", captureInput(nil))
	require.NoError(t, err)

	// The unformatted variant is a different key entirely
	other, err := store.CustomerByPhone(restaurantID, "5551234567")
	require.NoError(t, err)
	assert.Nil(t, other)

	_, _, err = store.AddNoShow(restaurantID, "5551234567", captureInput(nil))
	require.NoError(t, err)

	customers, err := store.Customers(restaurantID)
	require.NoError(t, err)
	assert.Len(t, customers, 2)
}

func TestLookupUnknownPhoneIsNotAnError(t *testing.T) {
	store := NewRecordStore(newTestDB(t))

	customer, err := store.CustomerByPhone(uuid.New(), "000-000-0000")
	require.NoError(t, err)
	assert.Nil(t, customer)
}

func TestLookupIsIdempotent(t *testing.T) {
	store := NewRecordStore(newTestDB(t))
	restaurantID := uuid.New()

	_, _, err := store.AddNoShow(restaurantID, "555-456-7890", captureInput(fptr(24.99)))
	require.NoError(t, err)

	first, err := store.CustomerByPhone(restaurantID, "555-456-7890")
	require.NoError(t, err)
	second, err := store.CustomerByPhone(restaurantID, "555-456-7890")
	require.NoError(t, err)

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, len(first.NoShows), len(second.NoShows))
}

func TestTotalsTreatMissingValueAsZero(t *testing.T) {
	store := NewRecordStore(newTestDB(t))
	restaurantID := uuid.New()

	for _, v := range []*float64{fptr(32.50), nil, fptr(18.25)} {
		_, _, err := store.AddNoShow(restaurantID, "555-123-4567", captureInput(v))
		require.NoError(t, err)
	}

	total, err := store.TotalNoShows(restaurantID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	lost, err := store.TotalValueLost(restaurantID)
	require.NoError(t, err)
	assert.InDelta(t, 50.75, lost, 0.001)
}

func TestTotalsAreScopedPerRestaurant(t *testing.T) {
	store := NewRecordStore(newTestDB(t))
	first := uuid.New()
	second := uuid.New()

	_, _, err := store.AddNoShow(first, "555-123-4567", captureInput(fptr(10)))
	require.NoError(t, err)
	_, _, err = store.AddNoShow(second, "555-123-4567", captureInput(fptr(99)))
	require.NoError(t, err)

	lost, err := store.TotalValueLost(first)
	require.NoError(t, err)
	assert.InDelta(t, 10, lost, 0.001)
}

func TestTopFlakersOrdersByCount(t *testing.T) {
	store := NewRecordStore(newTestDB(t))
	restaurantID := uuid.New()

	for i := 0; i < 3; i++ {
		_, _, err := store.AddNoShow(restaurantID, "555-987-6543", captureInput(nil))
		require.NoError(t, err)
	}
	_, _, err := store.AddNoShow(restaurantID, "555-456-7890", captureInput(nil))
	require.NoError(t, err)

	flakers, err := store.TopFlakers(restaurantID, 5)
	require.NoError(t, err)
	require.Len(t, flakers, 2)
	assert.Equal(t, "555-987-6543", flakers[0].PhoneNumber)
	assert.Equal(t, 3, flakers[0].NoShowCount)
	assert.Equal(t, "555-456-7890", flakers[1].PhoneNumber)
}
