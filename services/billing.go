// services/billing.go
package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"dipout-backend/models"
)

// BillingService talks to the external checkout and notification endpoints.
// Calls are awaited once, never retried; a failure surfaces to the caller.
type BillingService struct {
	client *http.Client
}

func NewBillingService() *BillingService {
	return &BillingService{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type checkoutRequest struct {
	PriceID    string `json:"price_id"`
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
	Mode       string `json:"mode"`
}

type checkoutResponse struct {
	URL string `json:"url"`
}

// CreateCheckoutSession asks the checkout endpoint for a hosted payment page
// URL for the given plan. The browser is redirected to the returned URL.
func (b *BillingService) CreateCheckoutSession(planKey string) (string, error) {
	plan, ok := models.Plans[planKey]
	if !ok {
		return "", fmt.Errorf("invalid plan: %q", planKey)
	}

	endpoint := os.Getenv("CHECKOUT_ENDPOINT")
	if endpoint == "" {
		return "", errors.New("CHECKOUT_ENDPOINT not set")
	}

	base := os.Getenv("APP_BASE_URL")
	if base == "" {
		base = "http://localhost:3000"
	}

	payload, err := json.Marshal(checkoutRequest{
		PriceID:    plan.PriceID,
		SuccessURL: base + "/app/settings/billing?success=true",
		CancelURL:  base + "/app/settings/billing?success=false",
		Mode:       plan.Mode,
	})
	if err != nil {
		return "", err
	}

	resp, err := b.client.Post(endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("checkout endpoint returned %d", resp.StatusCode)
	}

	var result checkoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.URL == "" {
		return "", errors.New("checkout endpoint returned no url")
	}
	return result.URL, nil
}

// PaymentCustomerInfo is forwarded to the payment notification endpoint
type PaymentCustomerInfo struct {
	RestaurantName string `json:"restaurantName"`
	Email          string `json:"email"`
	Plan           string `json:"plan"`
	TrialEndDate   string `json:"trialEndDate"`
}

// SendPaymentNotification tells the notification endpoint that payment
// information was collected. Failures are the caller's to log; the payment
// flow itself must not block on this.
func (b *BillingService) SendPaymentNotification(info PaymentCustomerInfo) error {
	endpoint := os.Getenv("PAYMENT_NOTIFY_ENDPOINT")
	if endpoint == "" {
		return errors.New("PAYMENT_NOTIFY_ENDPOINT not set")
	}

	payload, err := json.Marshal(map[string]PaymentCustomerInfo{"customerInfo": info})
	if err != nil {
		return err
	}

	resp, err := b.client.Post(endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("payment notification endpoint returned %d", resp.StatusCode)
	}
	return nil
}
