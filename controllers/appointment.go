// controllers/appointment.go
package controllers

import (
	"errors"
	"net/http"

	"salonhub-backend/config"
	"salonhub-backend/models"
	"salonhub-backend/services"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateAppointmentInput defines the expected JSON structure for booking
type CreateAppointmentInput struct {
	BranchID  uuid.UUID `json:"branchId" binding:"required"`
	StaffID   uuid.UUID `json:"staffId" binding:"required"`
	ServiceID uuid.UUID `json:"serviceId" binding:"required"`
	ClientID  uuid.UUID `json:"clientId" binding:"required"`
	Date      string    `json:"date" binding:"required"`
	Time      string    `json:"time" binding:"required"`
}

// UpdateAppointmentStatusInput defines the status change request
type UpdateAppointmentStatusInput struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled completed"`
}

// CreateAppointment books an appointment. The confirmation notification is
// queued in the same transaction and delivered asynchronously.
func CreateAppointment(c *gin.Context) {
	salonUUID, ok := salonScope(c)
	if !ok {
		return
	}

	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	appointment, err := services.NewAppointmentService(config.DB).Create(services.CreateAppointmentParams{
		SalonID:   salonUUID,
		BranchID:  input.BranchID,
		StaffID:   input.StaffID,
		ServiceID: input.ServiceID,
		ClientID:  input.ClientID,
		Date:      input.Date,
		Time:      input.Time,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

// GetAppointments retrieves all appointments for the salon
func GetAppointments(c *gin.Context) {
	salonUUID, ok := salonScope(c)
	if !ok {
		return
	}

	var appointments []models.Appointment
	if err := config.DB.Where("salon_id = ?", salonUUID).
		Order("date, time").
		Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// GetAppointment retrieves a specific appointment by ID
func GetAppointment(c *gin.Context) {
	salonUUID, ok := salonScope(c)
	if !ok {
		return
	}

	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var appointment models.Appointment
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, appointmentUUID).
		First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// UpdateAppointmentStatus moves an appointment along the status lifecycle
func UpdateAppointmentStatus(c *gin.Context) {
	salonUUID, ok := salonScope(c)
	if !ok {
		return
	}

	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input UpdateAppointmentStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	appointment, err := services.NewAppointmentService(config.DB).
		UpdateStatus(salonUUID, appointmentUUID, input.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointment)
}
