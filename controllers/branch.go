// controllers/branch.go
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

// CreateBranchInput defines the expected JSON structure for creating a branch
type CreateBranchInput struct {
	Name        string `json:"name" binding:"required"`
	Location    string `json:"location"`
	OpeningTime string `json:"openingTime"`
	ClosingTime string `json:"closingTime"`
	Contact     string `json:"contact"`
}

// UpdateBranchInput defines the expected JSON structure for updating a branch
type UpdateBranchInput struct {
	Name        *string `json:"name"`
	Location    *string `json:"location"`
	OpeningTime *string `json:"openingTime"`
	ClosingTime *string `json:"closingTime"`
	Contact     *string `json:"contact"`
}

// CreateBranch creates a new branch for the salon
func CreateBranch(c *gin.Context) {
	salonUUID, ok := salonScope(c)
	if !ok {
		return
	}

	var input CreateBranchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.OpeningTime != "" && !utils.ValidateClock(input.OpeningTime) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid opening time format")
		return
	}
	if input.ClosingTime != "" && !utils.ValidateClock(input.ClosingTime) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid closing time format")
		return
	}

	branch := models.Branch{
		SalonID:     salonUUID,
		Name:        input.Name,
		Location:    input.Location,
		OpeningTime: input.OpeningTime,
		ClosingTime: input.ClosingTime,
		Contact:     input.Contact,
	}

	if err := config.DB.Create(&branch).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create branch")
		return
	}

	c.JSON(http.StatusCreated, branch)
}

// GetBranches retrieves all branches for the salon. A salon without any
// branches is a not-found condition, not an empty list.
func GetBranches(c *gin.Context) {
	salonUUID, ok := salonScope(c)
	if !ok {
		return
	}

	var branches []models.Branch
	if err := config.DB.Where("salon_id = ?", salonUUID).Find(&branches).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve branches")
		return
	}

	if len(branches) == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "No branches found for salon")
		return
	}

	c.JSON(http.StatusOK, branches)
}

// GetBranch retrieves a specific branch by ID
func GetBranch(c *gin.Context) {
	salonUUID, ok := salonScope(c)
	if !ok {
		return
	}

	branchUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid branch ID format")
		return
	}

	var branch models.Branch
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, branchUUID).
		First(&branch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Branch not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, branch)
}

// UpdateBranch updates an existing branch
func UpdateBranch(c *gin.Context) {
	salonUUID, ok := salonScope(c)
	if !ok {
		return
	}

	branchUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid branch ID format")
		return
	}

	var input UpdateBranchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var branch models.Branch
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, branchUUID).
		First(&branch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Branch not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		branch.Name = *input.Name
	}
	if input.Location != nil {
		branch.Location = *input.Location
	}
	if input.OpeningTime != nil {
		if !utils.ValidateClock(*input.OpeningTime) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid opening time format")
			return
		}
		branch.OpeningTime = *input.OpeningTime
	}
	if input.ClosingTime != nil {
		if !utils.ValidateClock(*input.ClosingTime) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid closing time format")
			return
		}
		branch.ClosingTime = *input.ClosingTime
	}
	if input.Contact != nil {
		branch.Contact = *input.Contact
	}

	if err := config.DB.Save(&branch).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update branch")
		return
	}

	c.JSON(http.StatusOK, branch)
}

// DeleteBranch deletes a branch, refusing while staff or services still
// reference it
func DeleteBranch(c *gin.Context) {
	salonUUID, ok := salonScope(c)
	if !ok {
		return
	}

	branchUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid branch ID format")
		return
	}

	var branch models.Branch
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, branchUUID).
		First(&branch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Branch not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Orphan check
	var staffCount, serviceCount int64
	config.DB.Model(&models.Staff{}).Where("branch_id = ?", branchUUID).Count(&staffCount)
	config.DB.Model(&models.Service{}).Where("branch_id = ?", branchUUID).Count(&serviceCount)
	if staffCount > 0 || serviceCount > 0 {
		utils.RespondWithError(c, http.StatusConflict,
			"Branch still has staff or services; remove them first")
		return
	}

	if err := config.DB.Delete(&branch).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete branch")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Branch deleted successfully"})
}

// GetBranchStaff lists the staff of a branch. No staff is an empty list,
// not an error.
func GetBranchStaff(c *gin.Context) {
	salonUUID, ok := salonScope(c)
	if !ok {
		return
	}

	branchUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid branch ID format")
		return
	}

	if !branchBelongsToSalon(c, salonUUID, branchUUID) {
		return
	}

	staff := []models.Staff{}
	if err := config.DB.Where("branch_id = ?", branchUUID).Find(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve staff")
		return
	}

	c.JSON(http.StatusOK, staff)
}

// GetBranchServices lists the services of a branch. No services is an empty
// list, not an error.
func GetBranchServices(c *gin.Context) {
	salonUUID, ok := salonScope(c)
	if !ok {
		return
	}

	branchUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid branch ID format")
		return
	}

	if !branchBelongsToSalon(c, salonUUID, branchUUID) {
		return
	}

	servicesList := []models.Service{}
	if err := config.DB.Where("branch_id = ?", branchUUID).Find(&servicesList).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, servicesList)
}

func branchBelongsToSalon(c *gin.Context, salonUUID, branchUUID uuid.UUID) bool {
	var branch models.Branch
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, branchUUID).
		First(&branch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Branch not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return false
	}
	return true
}
