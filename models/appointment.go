package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
	AppointmentCompleted = "completed"
)

// Appointment is created once per booking. Every field except Status is
// immutable after creation; rescheduling means cancel and book again.
type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID   uuid.UUID `gorm:"type:uuid;index;not null"`
	BranchID  uuid.UUID `gorm:"type:uuid;index;not null"`
	StaffID   uuid.UUID `gorm:"type:uuid;index;not null"`
	ServiceID uuid.UUID `gorm:"type:uuid;index;not null"`
	ClientID  uuid.UUID `gorm:"type:uuid;index;not null"`

	Date   string `gorm:"type:varchar(10);not null"` // "2006-01-02"
	Time   string `gorm:"type:varchar(5);not null"`  // "15:04"
	Status string `gorm:"type:varchar(20);not null;default:'pending'"`

	gorm.Model
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

// MigrateIndexes creates the indexes AutoMigrate cannot express. The partial
// unique index is what actually holds the no-double-booking rule under
// concurrent creates; the in-service count is only a friendlier fast path.
func MigrateIndexes(db *gorm.DB) error {
	return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_staff_slot
		ON appointments (staff_id, date, time)
		WHERE status <> 'cancelled' AND deleted_at IS NULL`).Error
}
