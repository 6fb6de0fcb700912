// models/outbox.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OutboxPending = "pending"
	OutboxSent    = "sent"
	OutboxFailed  = "failed"
)

// NotificationOutbox decouples booking confirmations from their delivery.
// A row is written in the same transaction as the appointment; the
// dispatcher picks it up afterwards and tracks delivery attempts here.
type NotificationOutbox struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID       uuid.UUID `gorm:"type:uuid;index;not null"`
	AppointmentID uuid.UUID `gorm:"type:uuid;index;not null"`

	Channel   string `gorm:"type:varchar(20);not null"` // email, sms
	Recipient string `gorm:"not null"`
	Subject   string
	Body      string `gorm:"type:text;not null"`

	Status    string `gorm:"type:varchar(20);not null;default:'pending'"` // pending, sent, failed
	Attempts  int    `gorm:"default:0"`
	LastError string `gorm:"type:text"`
	SentAt    *time.Time

	gorm.Model
}

func (n *NotificationOutbox) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}
