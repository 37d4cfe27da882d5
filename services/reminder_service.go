// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"lawnops-backend/models"
	"lawnops-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// ReminderService sends day-before visit reminders by SMS and records an
// audit Message per send.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 8 AM
	c.AddFunc("0 8 * * *", func() {
		s.SendVisitReminders()
	})

	c.Start()
	log.Println("Visit reminder scheduler started")
}

// SendVisitReminders texts every customer with a pending or in-progress
// visit scheduled for tomorrow.
func (s *ReminderService) SendVisitReminders() {
	log.Println("Starting visit reminder processing...")

	dayStart := utils.BeginningOfDay(time.Now().AddDate(0, 0, 1))
	dayEnd := dayStart.AddDate(0, 0, 1)

	var schedules []models.ServiceSchedule
	if err := s.db.Preload("Property").Preload("Property.Customer").Preload("ServiceType").
		Where("scheduled_date >= ? AND scheduled_date < ? AND status IN ?",
			dayStart, dayEnd,
			[]string{models.ScheduleStatusPending, models.ScheduleStatusInProgress}).
		Find(&schedules).Error; err != nil {
		log.Printf("Failed to fetch tomorrow's schedules: %v", err)
		return
	}

	for _, schedule := range schedules {
		s.sendReminder(schedule)
	}

	log.Printf("Visit reminder processing completed (%d schedules)", len(schedules))
}

func (s *ReminderService) sendReminder(schedule models.ServiceSchedule) {
	customer := schedule.Property.Customer
	if customer.Phone == "" {
		log.Printf("Schedule %s: customer %s has no phone, skipping reminder", schedule.ID, customer.ID)
		return
	}

	body := fmt.Sprintf("Hi %s, a friendly reminder: your %s visit at %s is scheduled for tomorrow (%s). See you then!",
		customer.Name,
		schedule.ServiceType.Label,
		schedule.Property.Street,
		schedule.TimeWindow)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(customer.Phone)
	params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", customer.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", customer.Phone, *resp.Sid)
	}

	message := models.Message{
		CompanyID: schedule.CompanyID,
		Type:      models.MessageTypeReminder,
		Channel:   "sms",
		Body:      body,
		SentAt:    time.Now(),
		Recipients: []models.MessageRecipient{{
			CustomerID:   &customer.ID,
			Address:      customer.Phone,
			Status:       status,
			ErrorMessage: errorMsg,
		}},
	}

	if err := s.db.Create(&message).Error; err != nil {
		log.Printf("Failed to log reminder for customer %s: %v", customer.ID, err)
	}
}
