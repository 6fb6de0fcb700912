// services/commission_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"salonhub-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommissionService struct {
	db *gorm.DB
}

func NewCommissionService(db *gorm.DB) *CommissionService {
	return &CommissionService{db: db}
}

type CommissionSummary struct {
	SalespersonID        uuid.UUID `json:"salespersonId"`
	Name                 string    `json:"name"`
	TotalSales           float64   `json:"totalSales"`
	CommissionPercentage float64   `json:"commissionPercentage"`
	TotalCommission      float64   `json:"totalCommission"`
	TotalPaid            float64   `json:"totalPaid"`
	DueCommission        float64   `json:"dueCommission"`
}

// Compute re-aggregates the commission figures from the plan and salary
// tables on every call. Nothing is cached: plans and salary payments change
// independently, so a stored aggregate would go stale. DueCommission stays
// signed; an overpaid salesperson shows a negative balance.
func (s *CommissionService) Compute(salonID, salespersonID uuid.UUID) (*CommissionSummary, error) {
	var sp models.Salesperson
	if err := s.db.Where("salon_id = ? AND id = ?", salonID, salespersonID).
		First(&sp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: salesperson %s", ErrNotFound, salespersonID)
		}
		return nil, err
	}

	var totalSales float64
	if err := s.db.Raw(`
		SELECT COALESCE(SUM(p.price), 0)
		FROM purchased_plans p
		JOIN users u ON u.id = p.user_id
		WHERE u.referred_by_id = ? AND u.deleted_at IS NULL
	`, sp.ID).Scan(&totalSales).Error; err != nil {
		return nil, err
	}

	var totalPaid float64
	if err := s.db.Model(&models.SalaryPayment{}).
		Where("salesperson_id = ?", sp.ID).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalPaid).Error; err != nil {
		return nil, err
	}

	totalCommission := sp.CommissionPercentage / 100 * totalSales

	return &CommissionSummary{
		SalespersonID:        sp.ID,
		Name:                 sp.Name,
		TotalSales:           totalSales,
		CommissionPercentage: sp.CommissionPercentage,
		TotalCommission:      totalCommission,
		TotalPaid:            totalPaid,
		DueCommission:        totalCommission - totalPaid,
	}, nil
}

// AddSalaryPayment appends one entry to the salary ledger. Entries are never
// edited or removed afterwards; each append is an independent insert, so
// concurrent appends cannot lose updates.
func (s *CommissionService) AddSalaryPayment(salonID, salespersonID uuid.UUID, amount float64) (*models.SalaryPayment, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	var sp models.Salesperson
	if err := s.db.Where("salon_id = ? AND id = ?", salonID, salespersonID).
		First(&sp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: salesperson %s", ErrNotFound, salespersonID)
		}
		return nil, err
	}

	payment := models.SalaryPayment{
		SalespersonID: sp.ID,
		Amount:        amount,
		PaidAt:        time.Now(),
	}
	if err := s.db.Create(&payment).Error; err != nil {
		return nil, err
	}

	return &payment, nil
}

// DeleteSalesperson refuses to delete while the due balance is non-zero, in
// either direction: unpaid commission and unrecovered overpayment both block.
func (s *CommissionService) DeleteSalesperson(salonID, salespersonID uuid.UUID) error {
	summary, err := s.Compute(salonID, salespersonID)
	if err != nil {
		return err
	}
	if summary.DueCommission != 0 {
		return fmt.Errorf("%w: due commission of %.2f outstanding", ErrConflict, summary.DueCommission)
	}

	return s.db.Delete(&models.Salesperson{}, "id = ?", salespersonID).Error
}
