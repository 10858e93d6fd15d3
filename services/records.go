// services/records.go
package services

import (
	"errors"
	"time"

	"dipout-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecordStore owns customers and their no-show history. Customers are created
// implicitly on the first event recorded for an unseen phone number and are
// never deleted. Phone numbers are matched as raw strings, no normalization.
type RecordStore struct {
	db *gorm.DB
}

func NewRecordStore(db *gorm.DB) *RecordStore {
	return &RecordStore{db: db}
}

// NoShowInput is a NoShowEvent without an id; the store assigns one.
type NoShowInput struct {
	Date      time.Time
	OrderType string
	Value     *float64
	Notes     string
}

// AddNoShow appends an event to the customer matching phoneNumber, creating
// the customer record if none exists yet.
func (s *RecordStore) AddNoShow(restaurantID uuid.UUID, phoneNumber string, input NoShowInput) (*models.Customer, *models.NoShowEvent, error) {
	var customer models.Customer
	err := s.db.Where("restaurant_id = ? AND phone_number = ?", restaurantID, phoneNumber).
		First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		customer = models.Customer{
			RestaurantID: restaurantID,
			PhoneNumber:  phoneNumber,
		}
		if err := s.db.Create(&customer).Error; err != nil {
			return nil, nil, err
		}
	} else if err != nil {
		return nil, nil, err
	}

	event := models.NoShowEvent{
		CustomerID: customer.ID,
		Date:       input.Date,
		OrderType:  input.OrderType,
		Value:      input.Value,
		Notes:      input.Notes,
	}
	if err := s.db.Create(&event).Error; err != nil {
		return nil, nil, err
	}

	return &customer, &event, nil
}

// CustomerByPhone does an exact-string lookup. An unknown phone number yields
// (nil, nil), never an error.
func (s *RecordStore) CustomerByPhone(restaurantID uuid.UUID, phoneNumber string) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.Preload("NoShows").
		Where("restaurant_id = ? AND phone_number = ?", restaurantID, phoneNumber).
		First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// Customers returns the full customer collection with their event history
func (s *RecordStore) Customers(restaurantID uuid.UUID) ([]models.Customer, error) {
	var customers []models.Customer
	err := s.db.Preload("NoShows").
		Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC").
		Find(&customers).Error
	return customers, err
}

// NoShowCount returns the number of events recorded for a phone number,
// 0 if the customer is unknown.
func (s *RecordStore) NoShowCount(restaurantID uuid.UUID, phoneNumber string) (int64, error) {
	var count int64
	err := s.db.Model(&models.NoShowEvent{}).
		Joins("JOIN customers ON customers.id = no_show_events.customer_id").
		Where("customers.restaurant_id = ? AND customers.phone_number = ? AND customers.deleted_at IS NULL",
			restaurantID, phoneNumber).
		Count(&count).Error
	return count, err
}

// TotalNoShows counts events across all customers
func (s *RecordStore) TotalNoShows(restaurantID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Model(&models.NoShowEvent{}).
		Joins("JOIN customers ON customers.id = no_show_events.customer_id").
		Where("customers.restaurant_id = ? AND customers.deleted_at IS NULL", restaurantID).
		Count(&count).Error
	return count, err
}

// TotalValueLost sums the value of all events, treating a missing value as zero
func (s *RecordStore) TotalValueLost(restaurantID uuid.UUID) (float64, error) {
	var total float64
	err := s.db.Model(&models.NoShowEvent{}).
		Joins("JOIN customers ON customers.id = no_show_events.customer_id").
		Where("customers.restaurant_id = ? AND customers.deleted_at IS NULL", restaurantID).
		Select("COALESCE(SUM(no_show_events.value), 0)").
		Scan(&total).Error
	return total, err
}

type FlakerSummary struct {
	PhoneNumber string `json:"phoneNumber"`
	NoShowCount int    `json:"noShowCount"`
}

// TopFlakers lists customers ordered by no-show count, worst first
func (s *RecordStore) TopFlakers(restaurantID uuid.UUID, limit int) ([]FlakerSummary, error) {
	var flakers []FlakerSummary
	err := s.db.Raw(`
        SELECT c.phone_number, COUNT(e.id) AS no_show_count
        FROM customers c
        JOIN no_show_events e ON e.customer_id = c.id AND e.deleted_at IS NULL
        WHERE c.restaurant_id = ? AND c.deleted_at IS NULL
        GROUP BY c.id, c.phone_number
        ORDER BY no_show_count DESC
        LIMIT ?
    `, restaurantID, limit).Scan(&flakers).Error
	return flakers, err
}

type RecentNoShow struct {
	PhoneNumber string    `json:"phoneNumber"`
	Date        time.Time `json:"date"`
	OrderType   string    `json:"orderType"`
	Value       *float64  `json:"value,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

// RecentNoShows lists the latest events across all customers, newest first
func (s *RecordStore) RecentNoShows(restaurantID uuid.UUID, limit int) ([]RecentNoShow, error) {
	var recent []RecentNoShow
	err := s.db.Raw(`
        SELECT c.phone_number, e.date, e.order_type, e.value, e.notes
        FROM no_show_events e
        JOIN customers c ON c.id = e.customer_id AND c.deleted_at IS NULL
        WHERE c.restaurant_id = ? AND e.deleted_at IS NULL
        ORDER BY e.date DESC
        LIMIT ?
    `, restaurantID, limit).Scan(&recent).Error
	return recent, err
}
