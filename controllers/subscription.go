package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"dipout-backend/models"
	"dipout-backend/services"
	"dipout-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SubscriptionController struct {
	DB       *gorm.DB
	Settings *services.SettingsStore
	Paywall  *services.Paywall
	Billing  *services.BillingService
}

// GetSubscription returns the current gate decision plus subscription
// metadata, for the status widget and the trial banner
func (s *SubscriptionController) GetSubscription(c *gin.Context) {
	restaurantUUID, ok := restaurantIDFromContext(c)
	if !ok {
		return
	}

	decision, err := s.Paywall.Evaluate(restaurantUUID, time.Now())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to check subscription")
		return
	}

	settings, err := s.Settings.Get(restaurantUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access":             decision,
		"subscriptionStatus": settings.SubscriptionStatus,
		"subscriptionPlan":   settings.SubscriptionPlan,
		"paymentStatus":      settings.PaymentStatus,
		"trialStartDate":     settings.TrialStartDate,
	})
}

type UpdateSubscriptionInput struct {
	Status string `json:"status" binding:"required"`
	Plan   string `json:"plan" binding:"required"`
}

// UpdateSubscription moves status and plan together, in lockstep
func (s *SubscriptionController) UpdateSubscription(c *gin.Context) {
	restaurantUUID, ok := restaurantIDFromContext(c)
	if !ok {
		return
	}

	var input UpdateSubscriptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	settings, err := s.Settings.UpdateSubscription(restaurantUUID, input.Status, input.Plan)
	if err != nil {
		if errors.Is(err, services.ErrPlanStatusCombo) ||
			errors.Is(err, services.ErrUnknownStatus) ||
			errors.Is(err, services.ErrUnknownPlan) {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update subscription")
		return
	}

	c.JSON(http.StatusOK, settings)
}

// GetPlans serves the public pricing catalog
func (s *SubscriptionController) GetPlans(c *gin.Context) {
	c.JSON(http.StatusOK, models.Plans)
}

type CheckoutInput struct {
	Plan string `json:"plan" binding:"required,oneof=pro proPlus"`
}

// CreateCheckout asks the external checkout endpoint for a hosted payment
// page URL. A failed call surfaces as an error; the user stays where they are.
func (s *SubscriptionController) CreateCheckout(c *gin.Context) {
	if _, ok := restaurantIDFromContext(c); !ok {
		return
	}

	var input CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	url, err := s.Billing.CreateCheckoutSession(input.Plan)
	if err != nil {
		log.Printf("Checkout session creation failed: %v", err)
		utils.RespondWithError(c, http.StatusBadGateway, "Failed to create checkout session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

type ConfirmPaymentInput struct {
	Plan string `json:"plan" binding:"required,oneof=pro proPlus"`
}

// ConfirmPayment is the payment-completion callback: it flips payment state,
// activates the subscription and fires the outbound notification.
func (s *SubscriptionController) ConfirmPayment(c *gin.Context) {
	restaurantUUID, ok := restaurantIDFromContext(c)
	if !ok {
		return
	}

	var input ConfirmPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := s.Settings.MarkPaymentCompleted(restaurantUUID); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record payment")
		return
	}

	settings, err := s.Settings.UpdateSubscription(restaurantUUID, models.SubscriptionActive, input.Plan)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to activate subscription")
		return
	}

	// Best effort; the subscription is already active
	var owner models.User
	if err := s.DB.First(&owner, "id = ?", restaurantUUID).Error; err == nil {
		trialEnd := ""
		if settings.TrialStartDate != nil {
			trialEnd = settings.TrialStartDate.
				Add(services.TrialLengthDays * 24 * time.Hour).
				Format(time.RFC3339)
		}
		go func() {
			if err := s.Billing.SendPaymentNotification(services.PaymentCustomerInfo{
				RestaurantName: owner.RestaurantName,
				Email:          owner.Email,
				Plan:           input.Plan,
				TrialEndDate:   trialEnd,
			}); err != nil {
				log.Printf("Payment notification failed: %v", err)
			}
		}()
	}

	c.JSON(http.StatusOK, settings)
}
