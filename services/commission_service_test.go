package services

import (
	"errors"
	"testing"

	"salonhub-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func seedSalesperson(t *testing.T, db *gorm.DB, salonID uuid.UUID, pct float64, planPrices []float64) models.Salesperson {
	t.Helper()

	sp := models.Salesperson{
		SalonID:              salonID,
		Name:                 "Alex",
		CommissionPercentage: pct,
		ReferralCode:         "REF-" + uuid.NewString()[:6],
	}
	if err := db.Create(&sp).Error; err != nil {
		t.Fatalf("create salesperson: %v", err)
	}

	user := models.User{
		Email:        uuid.NewString() + "@example.com",
		Password:     "password123",
		Name:         "Referred User",
		Role:         "employee",
		SalonID:      salonID,
		ReferredByID: &sp.ID,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	for _, price := range planPrices {
		plan := models.PurchasedPlan{UserID: user.ID, Name: "Plan", Price: price}
		if err := db.Create(&plan).Error; err != nil {
			t.Fatalf("create plan: %v", err)
		}
	}
	return sp
}

func TestComputeCommissionFigures(t *testing.T) {
	db := setupTestDB(t)
	fx := seedBooking(t, db)
	svc := NewCommissionService(db)

	// 15% of 3000 = 450 earned; 200 paid; 250 due
	sp := seedSalesperson(t, db, fx.salon.ID, 15, []float64{1000, 2000})
	for i := 0; i < 2; i++ {
		if _, err := svc.AddSalaryPayment(fx.salon.ID, sp.ID, 100); err != nil {
			t.Fatalf("add salary payment: %v", err)
		}
	}

	summary, err := svc.Compute(fx.salon.ID, sp.ID)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if summary.TotalSales != 3000 {
		t.Errorf("totalSales = %v, want 3000", summary.TotalSales)
	}
	if summary.TotalCommission != 450 {
		t.Errorf("totalCommission = %v, want 450", summary.TotalCommission)
	}
	if summary.TotalPaid != 200 {
		t.Errorf("totalPaid = %v, want 200", summary.TotalPaid)
	}
	if summary.DueCommission != 250 {
		t.Errorf("dueCommission = %v, want 250", summary.DueCommission)
	}
}

func TestComputeCommissionIsRepeatable(t *testing.T) {
	db := setupTestDB(t)
	fx := seedBooking(t, db)
	svc := NewCommissionService(db)

	sp := seedSalesperson(t, db, fx.salon.ID, 10, []float64{500, 250})

	first, err := svc.Compute(fx.salon.ID, sp.ID)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	second, err := svc.Compute(fx.salon.ID, sp.ID)
	if err != nil {
		t.Fatalf("compute again: %v", err)
	}
	if *first != *second {
		t.Errorf("identical inputs gave different summaries: %+v vs %+v", first, second)
	}
}

func TestComputeCommissionOverpaymentStaysNegative(t *testing.T) {
	db := setupTestDB(t)
	fx := seedBooking(t, db)
	svc := NewCommissionService(db)

	sp := seedSalesperson(t, db, fx.salon.ID, 10, []float64{100}) // earns 10
	if _, err := svc.AddSalaryPayment(fx.salon.ID, sp.ID, 50); err != nil {
		t.Fatalf("add salary payment: %v", err)
	}

	summary, err := svc.Compute(fx.salon.ID, sp.ID)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if summary.DueCommission != -40 {
		t.Errorf("dueCommission = %v, want -40 (overpayment must not be clamped)", summary.DueCommission)
	}
}

func TestComputeCommissionNoPlans(t *testing.T) {
	db := setupTestDB(t)
	fx := seedBooking(t, db)
	svc := NewCommissionService(db)

	sp := seedSalesperson(t, db, fx.salon.ID, 20, nil)

	summary, err := svc.Compute(fx.salon.ID, sp.ID)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if summary.TotalSales != 0 || summary.TotalCommission != 0 || summary.DueCommission != 0 {
		t.Errorf("expected all-zero summary, got %+v", summary)
	}
}

func TestComputeCommissionUnknownSalesperson(t *testing.T) {
	db := setupTestDB(t)
	fx := seedBooking(t, db)

	_, err := NewCommissionService(db).Compute(fx.salon.ID, uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAddSalaryPaymentRejectsNonPositive(t *testing.T) {
	db := setupTestDB(t)
	fx := seedBooking(t, db)
	svc := NewCommissionService(db)

	sp := seedSalesperson(t, db, fx.salon.ID, 10, nil)

	for _, amount := range []float64{0, -50} {
		if _, err := svc.AddSalaryPayment(fx.salon.ID, sp.ID, amount); !errors.Is(err, ErrValidation) {
			t.Errorf("amount %v: expected ErrValidation, got %v", amount, err)
		}
	}

	var count int64
	db.Model(&models.SalaryPayment{}).Count(&count)
	if count != 0 {
		t.Errorf("rejected payments must not reach the ledger, found %d rows", count)
	}
}

func TestSalaryLedgerIsAppendOnly(t *testing.T) {
	db := setupTestDB(t)
	fx := seedBooking(t, db)
	svc := NewCommissionService(db)

	sp := seedSalesperson(t, db, fx.salon.ID, 10, nil)

	first, err := svc.AddSalaryPayment(fx.salon.ID, sp.ID, 100)
	if err != nil {
		t.Fatalf("first payment: %v", err)
	}
	if _, err := svc.AddSalaryPayment(fx.salon.ID, sp.ID, 75); err != nil {
		t.Fatalf("second payment: %v", err)
	}

	var payments []models.SalaryPayment
	if err := db.Where("salesperson_id = ?", sp.ID).Order("created_at").Find(&payments).Error; err != nil {
		t.Fatalf("load ledger: %v", err)
	}
	if len(payments) != 2 {
		t.Fatalf("expected 2 ledger entries, got %d", len(payments))
	}
	if payments[0].ID != first.ID || payments[0].Amount != 100 {
		t.Errorf("earlier entry was mutated: %+v", payments[0])
	}
}

func TestDeleteSalespersonBlockedByDueCommission(t *testing.T) {
	db := setupTestDB(t)
	fx := seedBooking(t, db)
	svc := NewCommissionService(db)

	sp := seedSalesperson(t, db, fx.salon.ID, 15, []float64{1000})

	if err := svc.DeleteSalesperson(fx.salon.ID, sp.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict with 150 due, got %v", err)
	}

	// Settle the balance, then deletion goes through
	if _, err := svc.AddSalaryPayment(fx.salon.ID, sp.ID, 150); err != nil {
		t.Fatalf("settle: %v", err)
	}
	if err := svc.DeleteSalesperson(fx.salon.ID, sp.ID); err != nil {
		t.Fatalf("delete after settling: %v", err)
	}

	if _, err := svc.Compute(fx.salon.ID, sp.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected salesperson gone, got %v", err)
	}
}
