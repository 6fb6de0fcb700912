// services/appointment_service.go
package services

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"salonhub-backend/models"
	"salonhub-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// allowedTransitions is the full status graph. Completed and cancelled are
// terminal; pending can only move forward.
var allowedTransitions = map[string][]string{
	models.AppointmentPending:   {models.AppointmentConfirmed, models.AppointmentCancelled},
	models.AppointmentConfirmed: {models.AppointmentCompleted, models.AppointmentCancelled},
	models.AppointmentCancelled: {},
	models.AppointmentCompleted: {},
}

func canTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type AppointmentService struct {
	db *gorm.DB
}

func NewAppointmentService(db *gorm.DB) *AppointmentService {
	return &AppointmentService{db: db}
}

type CreateAppointmentParams struct {
	SalonID   uuid.UUID
	BranchID  uuid.UUID
	StaffID   uuid.UUID
	ServiceID uuid.UUID
	ClientID  uuid.UUID
	Date      string // "2006-01-02"
	Time      string // "15:04"
}

// Create validates the full booking tuple, persists the appointment with
// status pending and, in the same transaction, writes the confirmation
// notification to the outbox. Delivery happens asynchronously; a delivery
// failure never affects the booking.
func (s *AppointmentService) Create(params CreateAppointmentParams) (*models.Appointment, error) {
	if params.Date == "" || params.Time == "" {
		return nil, fmt.Errorf("%w: date and time are required", ErrValidation)
	}
	if !utils.ValidateDate(params.Date) {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	if !utils.ValidateClock(params.Time) {
		return nil, fmt.Errorf("%w: time must be HH:MM", ErrValidation)
	}

	sel := NewSelectionContext(s.db, params.SalonID)
	if err := sel.SetBranch(params.BranchID); err != nil {
		return nil, err
	}
	if err := sel.SetStaff(params.StaffID); err != nil {
		return nil, err
	}
	if err := sel.SetService(params.ServiceID); err != nil {
		return nil, err
	}
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	branch, staff, service := sel.Branch(), sel.Staff(), sel.Service()

	var client models.Client
	if err := s.db.Where("salon_id = ? AND id = ?", params.SalonID, params.ClientID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: client %s", ErrNotFound, params.ClientID)
		}
		return nil, err
	}

	// Reject double-booking of the same staff slot. Cancelled appointments
	// free the slot again. The idx_staff_slot partial unique index catches
	// the race this read misses under concurrent creates.
	var clash int64
	if err := s.db.Model(&models.Appointment{}).
		Where("staff_id = ? AND date = ? AND time = ? AND status <> ?",
			params.StaffID, params.Date, params.Time, models.AppointmentCancelled).
		Count(&clash).Error; err != nil {
		return nil, err
	}
	if clash > 0 {
		return nil, fmt.Errorf("%w: staff already booked at %s %s", ErrConflict, params.Date, params.Time)
	}

	var salon models.Salon
	if err := s.db.First(&salon, "id = ?", params.SalonID).Error; err != nil {
		return nil, err
	}

	appointment := models.Appointment{
		SalonID:   params.SalonID,
		BranchID:  branch.ID,
		StaffID:   staff.ID,
		ServiceID: service.ID,
		ClientID:  client.ID,
		Date:      params.Date,
		Time:      params.Time,
		Status:    models.AppointmentPending,
	}

	notifications := []models.NotificationOutbox{{
		SalonID:   params.SalonID,
		Channel:   "email",
		Recipient: client.Email,
		Subject:   fmt.Sprintf("Appointment confirmation - %s", salon.Name),
		Body: fmt.Sprintf(
			"Hi %s, your appointment is booked for %s at %s.\nSalon: %s\nBranch: %s\nStaff: %s\nService: %s\nTotal: %.2f",
			client.Name, params.Date, params.Time,
			salon.Name, branch.Name, staff.FullName, service.Name, service.Price),
		Status: models.OutboxPending,
	}}
	if client.Phone != "" && os.Getenv("TWILIO_PHONE_NUMBER") != "" {
		notifications = append(notifications, models.NotificationOutbox{
			SalonID:   params.SalonID,
			Channel:   "sms",
			Recipient: client.Phone,
			Body: fmt.Sprintf("Hi %s, your %s appointment at %s is booked for %s %s.",
				client.Name, service.Name, salon.Name, params.Date, params.Time),
			Status: models.OutboxPending,
		})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&appointment).Error; err != nil {
			return err
		}
		for i := range notifications {
			notifications[i].AppointmentID = appointment.ID
			if err := tx.Create(&notifications[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: staff already booked at %s %s", ErrConflict, params.Date, params.Time)
		}
		return nil, err
	}

	return &appointment, nil
}

// isUniqueViolation matches the duplicate-key errors the sqlite and postgres
// drivers surface when idx_staff_slot rejects an insert.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

// UpdateStatus moves an appointment along the status graph. Re-applying the
// current status is a no-op success; anything off the graph fails with
// ErrInvalidTransition.
func (s *AppointmentService) UpdateStatus(salonID, appointmentID uuid.UUID, newStatus string) (*models.Appointment, error) {
	switch newStatus {
	case models.AppointmentPending, models.AppointmentConfirmed,
		models.AppointmentCancelled, models.AppointmentCompleted:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, newStatus)
	}

	var appointment models.Appointment
	if err := s.db.Where("salon_id = ? AND id = ?", salonID, appointmentID).
		First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: appointment %s", ErrNotFound, appointmentID)
		}
		return nil, err
	}

	if appointment.Status == newStatus {
		return &appointment, nil
	}

	if !canTransition(appointment.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, newStatus)
	}

	if err := s.db.Model(&appointment).Update("status", newStatus).Error; err != nil {
		return nil, err
	}
	appointment.Status = newStatus

	return &appointment, nil
}
