// services/paywall.go
package services

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"dipout-backend/models"
	"dipout-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TrialLengthDays is the length of the free trial window
const TrialLengthDays = 7

// Banner appears once this few days remain in the trial
const trialBannerThreshold = 3

type AccessState string

const (
	StateNoTrial      AccessState = "no_trial"
	StateInTrial      AccessState = "in_trial"
	StateTrialExpired AccessState = "trial_expired"
	StateSubscribed   AccessState = "subscribed"
)

// AccessDecision is the outcome of one gate evaluation. The HTTP layer acts
// on it; the gate itself never navigates.
type AccessDecision struct {
	State      AccessState `json:"state"`
	Allowed    bool        `json:"allowed"`
	RedirectTo string      `json:"redirectTo,omitempty"`
	DaysLeft   int         `json:"daysLeft"`
	Banner     string      `json:"banner,omitempty"`
}

// Paywall decides, per request, whether protected content may be served,
// based on trial start date, elapsed time and subscription status.
type Paywall struct {
	settings *SettingsStore
}

func NewPaywall(settings *SettingsStore) *Paywall {
	return &Paywall{settings: settings}
}

// TrialDaysLeft computes the whole days remaining in a trial started at
// start, rounding partial days up and flooring at zero.
func TrialDaysLeft(start, now time.Time) int {
	end := start.Add(TrialLengthDays * 24 * time.Hour)
	days := int(math.Ceil(end.Sub(now).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// Evaluate runs the access-control state machine for one request.
//
// A missing trial start date fails closed: the caller is sent to signup. A
// lapsed trial persists subscriptionStatus=expired as a side effect, so the
// expiry is visible to later evaluations and the daily sweep.
func (p *Paywall) Evaluate(restaurantID uuid.UUID, now time.Time) (AccessDecision, error) {
	settings, err := p.settings.Get(restaurantID)
	if err != nil {
		return AccessDecision{}, err
	}

	if settings.TrialStartDate == nil || settings.TrialStartDate.IsZero() {
		return AccessDecision{
			State:      StateNoTrial,
			Allowed:    false,
			RedirectTo: "/signup",
		}, nil
	}

	if settings.SubscriptionStatus == models.SubscriptionActive &&
		settings.PaymentStatus == models.PaymentCompleted {
		return AccessDecision{
			State:   StateSubscribed,
			Allowed: true,
		}, nil
	}

	daysLeft := TrialDaysLeft(*settings.TrialStartDate, now)
	if daysLeft > 0 {
		decision := AccessDecision{
			State:    StateInTrial,
			Allowed:  true,
			DaysLeft: daysLeft,
		}
		if daysLeft <= trialBannerThreshold {
			decision.Banner = trialBanner(daysLeft)
		}
		return decision, nil
	}

	if err := p.settings.MarkExpired(restaurantID); err != nil {
		return AccessDecision{}, err
	}
	return AccessDecision{
		State:      StateTrialExpired,
		Allowed:    false,
		RedirectTo: "/pricing",
	}, nil
}

func trialBanner(daysLeft int) string {
	plural := "s"
	if daysLeft == 1 {
		plural = ""
	}
	return fmt.Sprintf("Your free trial expires in %d day%s. Upgrade now.", daysLeft, plural)
}

// Middleware gates protected routes. Blocked requests get 402 with the
// redirect target; allowed requests near trial expiry carry banner headers.
func (p *Paywall) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurantID, exists := c.Get("restaurantId")
		if !exists {
			utils.RespondWithError(c, http.StatusUnauthorized, "Restaurant ID not found in context")
			return
		}
		restaurantUUID, err := uuid.Parse(restaurantID.(string))
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Invalid restaurant ID format")
			return
		}

		decision, err := p.Evaluate(restaurantUUID, time.Now())
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to check subscription")
			return
		}

		if !decision.Allowed {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
				"error":    "Subscription required",
				"state":    decision.State,
				"redirect": decision.RedirectTo,
			})
			return
		}

		if decision.Banner != "" {
			c.Header("X-Trial-Days-Left", strconv.Itoa(decision.DaysLeft))
			c.Header("X-Trial-Banner", decision.Banner)
		}

		c.Next()
	}
}
