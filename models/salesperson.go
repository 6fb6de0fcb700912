package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Salesperson struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name                 string  `gorm:"not null"`
	CommissionPercentage float64 `gorm:"type:decimal(5,2);not null"` // 0-100
	ReferralCode         string  `gorm:"uniqueIndex;not null"`

	SalaryPayments []SalaryPayment `gorm:"foreignKey:SalespersonID"`
	ReferredUsers  []User          `gorm:"foreignKey:ReferredByID"`

	gorm.Model
}

func (s *Salesperson) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// SalaryPayment is an append-only ledger entry. Records are never updated or
// deleted once written; due commission is derived from the full history.
type SalaryPayment struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	SalespersonID uuid.UUID `gorm:"type:uuid;index;not null"`
	Amount        float64   `gorm:"type:decimal(10,2);not null"`
	PaidAt        time.Time `gorm:"not null"`

	CreatedAt time.Time
}

func (s *SalaryPayment) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
