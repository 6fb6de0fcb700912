// services/selection.go
package services

import (
	"errors"
	"fmt"

	"salonhub-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SelectionContext tracks the (branch, staff, service) tuple a booking is
// being assembled from. Staff and service can only be chosen after a branch,
// and switching the branch atomically clears both dependent fields, so a
// stale staff or service from a previous branch can never leak into a
// booking.
type SelectionContext struct {
	db      *gorm.DB
	salonID uuid.UUID

	branch  *models.Branch
	staff   *models.Staff
	service *models.Service
}

func NewSelectionContext(db *gorm.DB, salonID uuid.UUID) *SelectionContext {
	return &SelectionContext{db: db, salonID: salonID}
}

// SetBranch selects a branch and clears any previously selected staff and
// service, whether or not the new branch is the same as the old one.
func (s *SelectionContext) SetBranch(branchID uuid.UUID) error {
	var branch models.Branch
	if err := s.db.Where("salon_id = ? AND id = ?", s.salonID, branchID).
		First(&branch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: branch %s", ErrNotFound, branchID)
		}
		return err
	}

	s.branch = &branch
	s.staff = nil
	s.service = nil
	return nil
}

// SetStaff fails until a branch has been chosen and rejects staff outside it.
func (s *SelectionContext) SetStaff(staffID uuid.UUID) error {
	if s.branch == nil {
		return fmt.Errorf("%w: no branch selected", ErrInvalidSelection)
	}

	var staff models.Staff
	if err := s.db.First(&staff, "id = ?", staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: staff %s", ErrNotFound, staffID)
		}
		return err
	}
	if staff.BranchID != s.branch.ID {
		return fmt.Errorf("%w: staff %s not in branch %s", ErrInvalidSelection, staffID, s.branch.ID)
	}

	s.staff = &staff
	return nil
}

// SetService fails until a branch has been chosen and rejects services
// outside it.
func (s *SelectionContext) SetService(serviceID uuid.UUID) error {
	if s.branch == nil {
		return fmt.Errorf("%w: no branch selected", ErrInvalidSelection)
	}

	var service models.Service
	if err := s.db.First(&service, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: service %s", ErrNotFound, serviceID)
		}
		return err
	}
	if service.BranchID != s.branch.ID {
		return fmt.Errorf("%w: service %s not in branch %s", ErrInvalidSelection, serviceID, s.branch.ID)
	}

	s.service = &service
	return nil
}

// Validate reports whether the tuple is complete enough to book from.
func (s *SelectionContext) Validate() error {
	if s.branch == nil {
		return fmt.Errorf("%w: branch is required", ErrValidation)
	}
	if s.staff == nil {
		return fmt.Errorf("%w: staff is required", ErrValidation)
	}
	if s.service == nil {
		return fmt.Errorf("%w: service is required", ErrValidation)
	}
	return nil
}

// Branch, Staff and Service expose the records loaded while selecting, so a
// booking built from the tuple does not have to fetch them again.
func (s *SelectionContext) Branch() *models.Branch   { return s.branch }
func (s *SelectionContext) Staff() *models.Staff     { return s.staff }
func (s *SelectionContext) Service() *models.Service { return s.service }
