// services/scoring.go
package services

import (
	"github.com/google/uuid"
)

type Color string

const (
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorRed    Color = "red"
)

// Recommendation text per color band. The text depends only on the band,
// never on the raw score.
const (
	RecommendationRed    = "❌ Strongly recommend prepayment or refusal."
	RecommendationYellow = "⚠️ Recommend prepayment or delay prep until arrival."
	RecommendationGreen  = "✅ No issues detected."
)

// ScoringEngine derives a customer's flake score, color band and
// recommendation from their no-show history. Thresholds are read from the
// settings store on every call so a threshold change takes effect
// immediately, without any cache to invalidate.
type ScoringEngine struct {
	records  *RecordStore
	settings *SettingsStore
}

func NewScoringEngine(records *RecordStore, settings *SettingsStore) *ScoringEngine {
	return &ScoringEngine{records: records, settings: settings}
}

// FlakeScore is the count of recorded no-shows for a phone number,
// 0 for an unknown customer. Pure count: no decay, no value weighting.
func (e *ScoringEngine) FlakeScore(restaurantID uuid.UUID, phoneNumber string) (int, error) {
	count, err := e.records.NoShowCount(restaurantID, phoneNumber)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// FlakeColor bands the score against the configured thresholds
func (e *ScoringEngine) FlakeColor(restaurantID uuid.UUID, phoneNumber string) (Color, error) {
	score, err := e.FlakeScore(restaurantID, phoneNumber)
	if err != nil {
		return "", err
	}
	settings, err := e.settings.Get(restaurantID)
	if err != nil {
		return "", err
	}
	switch {
	case score >= settings.RedThreshold:
		return ColorRed, nil
	case score >= settings.YellowThreshold:
		return ColorYellow, nil
	default:
		return ColorGreen, nil
	}
}

// Recommendation returns the action text for the customer's color band
func (e *ScoringEngine) Recommendation(restaurantID uuid.UUID, phoneNumber string) (string, error) {
	color, err := e.FlakeColor(restaurantID, phoneNumber)
	if err != nil {
		return "", err
	}
	return RecommendationFor(color), nil
}

// RecommendationFor maps a color band to its recommendation text
func RecommendationFor(color Color) string {
	switch color {
	case ColorRed:
		return RecommendationRed
	case ColorYellow:
		return RecommendationYellow
	default:
		return RecommendationGreen
	}
}
