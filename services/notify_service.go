// services/notify_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"dipout-backend/models"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// NotifyService sends SMS alerts to restaurant owners and runs the daily
// trial sweep. Sends are advisory: a failed send is logged, never fatal.
type NotifyService struct {
	db       *gorm.DB
	settings *SettingsStore
	client   *twilio.RestClient
}

func NewNotifyService(db *gorm.DB, settings *SettingsStore) *NotifyService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &NotifyService{
		db:       db,
		settings: settings,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *NotifyService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", func() {
		s.RunDailySweep(time.Now())
	})

	c.Start()
	log.Println("Trial sweep scheduler started")
}

// RunDailySweep expires lapsed trials and texts owners whose trial is about
// to end, so expiry does not depend on the owner navigating the app.
func (s *NotifyService) RunDailySweep(now time.Time) {
	log.Println("Starting daily trial sweep...")

	var all []models.Settings
	if err := s.db.Find(&all).Error; err != nil {
		log.Printf("Failed to fetch settings rows: %v", err)
		return
	}

	for _, settings := range all {
		if settings.TrialStartDate == nil || settings.TrialStartDate.IsZero() {
			continue
		}
		if settings.SubscriptionStatus == models.SubscriptionActive &&
			settings.PaymentStatus == models.PaymentCompleted {
			continue
		}

		daysLeft := TrialDaysLeft(*settings.TrialStartDate, now)
		if daysLeft <= 0 {
			if settings.SubscriptionStatus != models.SubscriptionExpired {
				if err := s.settings.MarkExpired(settings.RestaurantID); err != nil {
					log.Printf("Restaurant %s: failed to expire trial: %v", settings.RestaurantID, err)
				}
			}
			continue
		}

		if daysLeft <= 3 && settings.EnableTextNotifications {
			message := fmt.Sprintf("%s: your Dipout free trial ends in %d day(s). Upgrade to keep tracking no-shows.",
				settings.RestaurantName, daysLeft)
			s.sendToOwner(settings.RestaurantID, "trial_ending", message)
		}
	}

	log.Println("Daily trial sweep completed")
}

// SendNoShowAlert texts the owner when a no-show is captured, if the
// restaurant has text notifications enabled.
func (s *NotifyService) SendNoShowAlert(restaurantID uuid.UUID, phoneNumber string, event models.NoShowEvent) {
	settings, err := s.settings.Get(restaurantID)
	if err != nil {
		log.Printf("Restaurant %s: failed to load settings for alert: %v", restaurantID, err)
		return
	}
	if !settings.EnableTextNotifications {
		return
	}

	message := fmt.Sprintf("No-show recorded for %s (%s)", phoneNumber, event.OrderType)
	if event.Value != nil {
		message += fmt.Sprintf(", $%.2f lost", *event.Value)
	}
	s.sendToOwner(restaurantID, "noshow_alert", message)
}

func (s *NotifyService) sendToOwner(restaurantID uuid.UUID, alertType, message string) {
	var owner models.User
	if err := s.db.First(&owner, "id = ?", restaurantID).Error; err != nil {
		log.Printf("Restaurant %s: owner not found for alert: %v", restaurantID, err)
		return
	}
	if owner.Phone == "" {
		log.Printf("Restaurant %s: no owner phone on file, skipping alert", restaurantID)
		return
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(owner.Phone)
	params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	params.SetBody(message)

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send %s alert to %s: %v", alertType, owner.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("%s alert sent to %s, SID: %s", alertType, owner.Phone, *resp.Sid)
	} else {
		log.Printf("%s alert sent to %s, but no SID returned", alertType, owner.Phone)
	}

	notificationLog := models.NotificationLog{
		RestaurantID: restaurantID,
		Type:         alertType,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		SentAt:       time.Now(),
	}
	if err := s.db.Create(&notificationLog).Error; err != nil {
		log.Printf("Failed to log %s alert for restaurant %s: %v", alertType, restaurantID, err)
	}
}
