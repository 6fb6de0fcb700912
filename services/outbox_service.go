// services/outbox_service.go
package services

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"time"

	"salonhub-backend/models"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

const maxDeliveryAttempts = 5

// Sender delivers one outbox record over its channel.
type Sender interface {
	Send(rec *models.NotificationOutbox) error
}

// SMTPSender delivers email notifications.
type SMTPSender struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func NewSMTPSender() *SMTPSender {
	return &SMTPSender{
		host:     os.Getenv("SMTP_HOST"),
		port:     os.Getenv("SMTP_PORT"),
		username: os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     os.Getenv("SMTP_FROM"),
	}
}

func (s *SMTPSender) Send(rec *models.NotificationOutbox) error {
	if s.host == "" || s.username == "" {
		return fmt.Errorf("SMTP not configured")
	}

	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	msg := []byte(fmt.Sprintf("To: %s\r\n"+
		"Subject: %s\r\n"+
		"\r\n"+
		"%s\r\n", rec.Recipient, rec.Subject, rec.Body))

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, auth, s.from, []string{rec.Recipient}, msg)
}

// TwilioSender delivers SMS notifications.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSender() *TwilioSender {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: os.Getenv("TWILIO_PHONE_NUMBER"),
	}
}

func (s *TwilioSender) Send(rec *models.NotificationOutbox) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(rec.Recipient)
	params.SetFrom(s.from)
	params.SetBody(rec.Body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return err
	}
	if resp.Sid == nil {
		log.Printf("Message sent to %s, but no SID returned", rec.Recipient)
	}
	return nil
}

// OutboxDispatcher drains pending notification records on a schedule.
// Delivery state lives entirely in the outbox row; bookings are never
// touched, whatever happens here.
type OutboxDispatcher struct {
	db      *gorm.DB
	senders map[string]Sender
}

func NewOutboxDispatcher(db *gorm.DB) *OutboxDispatcher {
	return &OutboxDispatcher{
		db: db,
		senders: map[string]Sender{
			"email": NewSMTPSender(),
			"sms":   NewTwilioSender(),
		},
	}
}

// NewOutboxDispatcherWithSenders is used by tests to inject fake senders.
func NewOutboxDispatcherWithSenders(db *gorm.DB, senders map[string]Sender) *OutboxDispatcher {
	return &OutboxDispatcher{db: db, senders: senders}
}

// StartScheduler drains the outbox every minute.
func (d *OutboxDispatcher) StartScheduler() {
	c := cron.New()

	c.AddFunc("* * * * *", func() {
		if err := d.DispatchPending(); err != nil {
			log.Printf("Outbox dispatch run failed: %v", err)
		}
	})

	c.Start()
	log.Println("Outbox dispatcher started")
}

// DispatchPending sends every pending record that still has attempts left.
// A record that keeps failing is parked as failed after the last attempt.
func (d *OutboxDispatcher) DispatchPending() error {
	var pending []models.NotificationOutbox
	if err := d.db.Where("status = ? AND attempts < ?", models.OutboxPending, maxDeliveryAttempts).
		Find(&pending).Error; err != nil {
		return err
	}

	for i := range pending {
		d.dispatch(&pending[i])
	}
	return nil
}

func (d *OutboxDispatcher) dispatch(rec *models.NotificationOutbox) {
	sender, ok := d.senders[rec.Channel]
	if !ok {
		rec.Status = models.OutboxFailed
		rec.LastError = fmt.Sprintf("no sender for channel %q", rec.Channel)
		d.save(rec)
		return
	}

	rec.Attempts++
	if err := sender.Send(rec); err != nil {
		log.Printf("Failed to send notification %s to %s: %v", rec.ID, rec.Recipient, err)
		rec.LastError = err.Error()
		if rec.Attempts >= maxDeliveryAttempts {
			rec.Status = models.OutboxFailed
		}
		d.save(rec)
		return
	}

	now := time.Now()
	rec.Status = models.OutboxSent
	rec.LastError = ""
	rec.SentAt = &now
	d.save(rec)
}

func (d *OutboxDispatcher) save(rec *models.NotificationOutbox) {
	if err := d.db.Save(rec).Error; err != nil {
		log.Printf("Failed to update outbox record %s: %v", rec.ID, err)
	}
}
