package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScoringFixture(t *testing.T) (*ScoringEngine, *RecordStore, *SettingsStore, uuid.UUID) {
	db := newTestDB(t)
	records := NewRecordStore(db)
	settings := NewSettingsStore(db)
	return NewScoringEngine(records, settings), records, settings, uuid.New()
}

func recordN(t *testing.T, records *RecordStore, restaurantID uuid.UUID, phone string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, _, err := records.AddNoShow(restaurantID, phone, captureInput(nil))
		require.NoError(t, err)
	}
}

func TestFlakeScoreEqualsEventCount(t *testing.T) {
	engine, records, _, restaurantID := newScoringFixture(t)

	recordN(t, records, restaurantID, "555-123-4567", 4)

	score, err := engine.FlakeScore(restaurantID, "555-123-4567")
	require.NoError(t, err)
	assert.Equal(t, 4, score)
}

func TestFlakeScoreUnknownCustomerIsZero(t *testing.T) {
	engine, _, _, restaurantID := newScoringFixture(t)

	score, err := engine.FlakeScore(restaurantID, "000-000-0000")
	require.NoError(t, err)
	assert.Equal(t, 0, score)

	color, err := engine.FlakeColor(restaurantID, "000-000-0000")
	require.NoError(t, err)
	assert.Equal(t, ColorGreen, color)
}

func TestFlakeColorBanding(t *testing.T) {
	engine, records, settings, restaurantID := newScoringFixture(t)

	// yellow at 2, red at 4
	_, err := settings.Update(restaurantID, SettingsUpdate{
		YellowThreshold: iptr(2),
		RedThreshold:    iptr(4),
	})
	require.NoError(t, err)

	cases := []struct {
		phone string
		count int
		want  Color
	}{
		{"100", 0, ColorGreen},
		{"101", 1, ColorGreen},
		{"102", 2, ColorYellow},
		{"103", 3, ColorYellow},
		{"104", 4, ColorRed},
		{"105", 7, ColorRed},
	}
	for _, tc := range cases {
		recordN(t, records, restaurantID, "555-000-0"+tc.phone, tc.count)
		color, err := engine.FlakeColor(restaurantID, "555-000-0"+tc.phone)
		require.NoError(t, err)
		assert.Equal(t, tc.want, color, "score %d", tc.count)
	}
}

func TestThresholdsAreReadLive(t *testing.T) {
	engine, records, settings, restaurantID := newScoringFixture(t)

	recordN(t, records, restaurantID, "555-987-6543", 2)

	// Defaults: yellow 1, red 3
	color, err := engine.FlakeColor(restaurantID, "555-987-6543")
	require.NoError(t, err)
	assert.Equal(t, ColorYellow, color)

	// Lowering red must reband immediately, no restart, no cache
	_, err = settings.Update(restaurantID, SettingsUpdate{RedThreshold: iptr(2)})
	require.NoError(t, err)

	color, err = engine.FlakeColor(restaurantID, "555-987-6543")
	require.NoError(t, err)
	assert.Equal(t, ColorRed, color)
}

func TestRecommendationDependsOnlyOnColor(t *testing.T) {
	engine, records, settings, restaurantID := newScoringFixture(t)

	_, err := settings.Update(restaurantID, SettingsUpdate{
		YellowThreshold: iptr(1),
		RedThreshold:    iptr(10),
	})
	require.NoError(t, err)

	// Different scores, same band
	recordN(t, records, restaurantID, "555-111-1111", 2)
	recordN(t, records, restaurantID, "555-222-2222", 8)

	first, err := engine.Recommendation(restaurantID, "555-111-1111")
	require.NoError(t, err)
	second, err := engine.Recommendation(restaurantID, "555-222-2222")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// And each band has its own text
	assert.NotEqual(t, RecommendationFor(ColorGreen), RecommendationFor(ColorYellow))
	assert.NotEqual(t, RecommendationFor(ColorYellow), RecommendationFor(ColorRed))
}
