// controllers/salesperson.go
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

// CreateSalespersonInput defines the expected JSON structure for creating a salesperson
type CreateSalespersonInput struct {
	Name                 string  `json:"name" binding:"required"`
	CommissionPercentage float64 `json:"commissionPercentage" binding:"min=0,max=100"`
}

// UpdateSalespersonInput defines the expected JSON structure for updating a salesperson
type UpdateSalespersonInput struct {
	Name                 *string  `json:"name"`
	CommissionPercentage *float64 `json:"commissionPercentage" binding:"omitempty,min=0,max=100"`
}

// AddSalaryPaymentInput defines a single ledger append
type AddSalaryPaymentInput struct {
	Amount float64 `json:"amount" binding:"required"`
}

// BindReferralInput attributes a user to a salesperson via referral code
type BindReferralInput struct {
	ReferralCode string `json:"referralCode" binding:"required"`
}

// AddPurchasedPlanInput records a plan bought by a referred user
type AddPurchasedPlanInput struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"required,min=0"`
}

// CreateSalesperson creates a new salesperson with a generated referral code
func CreateSalesperson(c *gin.Context) {
	salonUUID, ok := salonScope(c)
	if !ok {
		return
	}

	var input CreateSalespersonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	sp := models.Salesperson{
		SalonID:              salonUUID,
		Name:                 input.Name,
		CommissionPercentage: input.CommissionPercentage,
		ReferralCode:         utils.GenerateReferralCode(),
	}

	if err := config.DB.Create(&sp).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create salesperson")
		return
	}

	c.JSON(http.StatusCreated, sp)
}

// GetSalespersons retrieves all salespersons for the salon
func GetSalespersons(c *gin.Context) {
	salonUUID, ok := salonScope(c)
	if !ok {
		return
	}

	var salespersons []models.Salesperson
	if err := config.DB.Where("salon_id = ?", salonUUID).Find(&salespersons).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve salespersons")
		return
	}

	c.JSON(http.StatusOK, salespersons)
}

// GetSalesperson retrieves a specific salesperson by ID
func GetSalesperson(c *gin.Context) {
	salonUUID, ok := salonScope(c)
	if !ok {
		return
	}

	spUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid salesperson ID format")
		return
	}

	var sp models.Salesperson
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, spUUID).
		First(&sp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Salesperson not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, sp)
}

// UpdateSalesperson updates an existing salesperson
func UpdateSalesperson(c *gin.Context) {
	salonUUID, ok := salonScope(c)
	if !ok {
		return
	}

	spUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid salesperson ID format")
		return
	}

	var input UpdateSalespersonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var sp models.Salesperson
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, spUUID).
		First(&sp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Salesperson not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		sp.Name = *input.Name
	}
	if input.CommissionPercentage != nil {
		sp.CommissionPercentage = *input.CommissionPercentage
	}

	if err := config.DB.Save(&sp).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update salesperson")
		return
	}

	c.JSON(http.StatusOK, sp)
}

// DeleteSalesperson deletes a salesperson, refusing while the commission
// balance is not settled
func DeleteSalesperson(c *gin.Context) {
	salonUUID, ok := salonScope(c)
	if !ok {
		return
	}

	spUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid salesperson ID format")
		return
	}

	if err := services.NewCommissionService(config.DB).DeleteSalesperson(salonUUID, spUUID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Salesperson deleted successfully"})
}

// GetCommission returns the freshly computed commission figures
func GetCommission(c *gin.Context) {
	salonUUID, ok := salonScope(c)
	if !ok {
		return
	}

	spUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid salesperson ID format")
		return
	}

	summary, err := services.NewCommissionService(config.DB).Compute(salonUUID, spUUID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// AddSalaryPayment appends one payment to the salary ledger
func AddSalaryPayment(c *gin.Context) {
	salonUUID, ok := salonScope(c)
	if !ok {
		return
	}

	spUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid salesperson ID format")
		return
	}

	var input AddSalaryPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	payment, err := services.NewCommissionService(config.DB).
		AddSalaryPayment(salonUUID, spUUID, input.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// GetSalaryPayments lists the salary ledger of a salesperson
func GetSalaryPayments(c *gin.Context) {
	salonUUID, ok := salonScope(c)
	if !ok {
		return
	}

	spUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid salesperson ID format")
		return
	}

	var sp models.Salesperson
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, spUUID).
		First(&sp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Salesperson not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	payments := []models.SalaryPayment{}
	if err := config.DB.Where("salesperson_id = ?", spUUID).
		Order("paid_at").
		Find(&payments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve salary payments")
		return
	}

	c.JSON(http.StatusOK, payments)
}

// BindReferral attributes a user to the salesperson owning the referral code
func BindReferral(c *gin.Context) {
	if _, ok := salonScope(c); !ok {
		return
	}

	userUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var input BindReferralInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var sp models.Salesperson
	if err := config.DB.Where("referral_code = ?", input.ReferralCode).
		First(&sp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Referral code not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	result := config.DB.Model(&models.User{}).
		Where("id = ?", userUUID).
		Update("referred_by_id", sp.ID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to bind referral")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Referral bound successfully"})
}

// AddPurchasedPlan records a plan purchase for a user
func AddPurchasedPlan(c *gin.Context) {
	if _, ok := salonScope(c); !ok {
		return
	}

	userUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var input AddPurchasedPlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	plan := models.PurchasedPlan{
		UserID: user.ID,
		Name:   input.Name,
		Price:  input.Price,
	}

	if err := config.DB.Create(&plan).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record plan")
		return
	}

	c.JSON(http.StatusCreated, plan)
}
