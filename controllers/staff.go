// controllers/staff.go
package controllers

import (
	"errors"
	"net/http"

	"salonhub-backend/config"
	"salonhub-backend/models"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateStaffInput defines the expected JSON structure for creating staff
type CreateStaffInput struct {
	BranchID uuid.UUID `json:"branchId" binding:"required"`
	FullName string    `json:"fullName" binding:"required"`
	Contact  string    `json:"contact"`
}

// UpdateStaffInput defines the expected JSON structure for updating staff
type UpdateStaffInput struct {
	FullName *string `json:"fullName"`
	Contact  *string `json:"contact"`
}

// CreateStaff creates a staff member under a branch of the salon
func CreateStaff(c *gin.Context) {
	salonUUID, ok := salonScope(c)
	if !ok {
		return
	}

	var input CreateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !branchBelongsToSalon(c, salonUUID, input.BranchID) {
		return
	}

	staff := models.Staff{
		BranchID: input.BranchID,
		FullName: input.FullName,
		Contact:  input.Contact,
	}

	if err := config.DB.Create(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create staff")
		return
	}

	c.JSON(http.StatusCreated, staff)
}

// UpdateStaff updates an existing staff member
func UpdateStaff(c *gin.Context) {
	salonUUID, ok := salonScope(c)
	if !ok {
		return
	}

	staffUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid staff ID format")
		return
	}

	var input UpdateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	staff, ok := findSalonStaff(c, salonUUID, staffUUID)
	if !ok {
		return
	}

	if input.FullName != nil {
		staff.FullName = *input.FullName
	}
	if input.Contact != nil {
		staff.Contact = *input.Contact
	}

	if err := config.DB.Save(staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update staff")
		return
	}

	c.JSON(http.StatusOK, staff)
}

// DeleteStaff soft deletes a staff member
func DeleteStaff(c *gin.Context) {
	salonUUID, ok := salonScope(c)
	if !ok {
		return
	}

	staffUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid staff ID format")
		return
	}

	staff, ok := findSalonStaff(c, salonUUID, staffUUID)
	if !ok {
		return
	}

	if err := config.DB.Delete(staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete staff")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Staff deleted successfully"})
}

// findSalonStaff loads a staff member and verifies their branch belongs to
// the caller's salon.
func findSalonStaff(c *gin.Context, salonUUID, staffUUID uuid.UUID) (*models.Staff, bool) {
	var staff models.Staff
	err := config.DB.
		Joins("JOIN branches ON branches.id = staff.branch_id").
		Where("branches.salon_id = ? AND staff.id = ?", salonUUID, staffUUID).
		First(&staff).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Staff not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return &staff, true
}
