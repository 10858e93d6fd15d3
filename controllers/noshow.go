package controllers

import (
	"net/http"
	"time"

	"dipout-backend/services"
	"dipout-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NoShowController struct {
	Records *services.RecordStore
	Scoring *services.ScoringEngine
	Notify  *services.NotifyService
}

// CaptureNoShowInput defines the expected JSON structure for recording a no-show
type CaptureNoShowInput struct {
	PhoneNumber string     `json:"phoneNumber" binding:"required"`
	Date        *time.Time `json:"date"`
	OrderType   string     `json:"orderType" binding:"required,oneof=pickup call-in delivery reservation other"`
	Value       *float64   `json:"value"`
	Notes       string     `json:"notes"`
}

// CaptureNoShow records a missed order against a phone number, creating the
// customer record on first sight
func (n *NoShowController) CaptureNoShow(c *gin.Context) {
	restaurantUUID, ok := restaurantIDFromContext(c)
	if !ok {
		return
	}

	var input CaptureNoShowInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.PhoneNumber) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}
	if input.Value != nil && *input.Value < 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Value must be non-negative")
		return
	}

	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	customer, event, err := n.Records.AddNoShow(restaurantUUID, input.PhoneNumber, services.NoShowInput{
		Date:      date,
		OrderType: input.OrderType,
		Value:     input.Value,
		Notes:     input.Notes,
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record no-show")
		return
	}

	// Advisory alert; capture succeeds regardless of delivery
	go n.Notify.SendNoShowAlert(restaurantUUID, input.PhoneNumber, *event)

	score, err := n.Scoring.FlakeScore(restaurantUUID, input.PhoneNumber)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute score")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"customerId": customer.ID,
		"eventId":    event.ID,
		"flakeScore": score,
	})
}

// GetCustomers lists every customer with their no-show history
func (n *NoShowController) GetCustomers(c *gin.Context) {
	restaurantUUID, ok := restaurantIDFromContext(c)
	if !ok {
		return
	}

	customers, err := n.Records.Customers(restaurantUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomerByPhone looks up a customer and their risk assessment. An
// unknown phone number is an expected outcome, not an error.
func (n *NoShowController) GetCustomerByPhone(c *gin.Context) {
	restaurantUUID, ok := restaurantIDFromContext(c)
	if !ok {
		return
	}

	phone := c.Param("phone")

	customer, err := n.Records.CustomerByPhone(restaurantUUID, phone)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to look up customer")
		return
	}
	if customer == nil {
		c.JSON(http.StatusOK, gin.H{
			"found":       false,
			"phoneNumber": phone,
		})
		return
	}

	score, err := n.Scoring.FlakeScore(restaurantUUID, phone)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute score")
		return
	}
	color, err := n.Scoring.FlakeColor(restaurantUUID, phone)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute color band")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"found":          true,
		"customer":       customer,
		"flakeScore":     score,
		"flakeColor":     color,
		"recommendation": services.RecommendationFor(color),
	})
}

// restaurantIDFromContext pulls the restaurant UUID set by the auth
// middleware, writing the error response itself when absent
func restaurantIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	restaurantID, exists := c.Get("restaurantId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Restaurant ID not found in context")
		return uuid.Nil, false
	}
	restaurantUUID, err := uuid.Parse(restaurantID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid restaurant ID format")
		return uuid.Nil, false
	}
	return restaurantUUID, true
}
