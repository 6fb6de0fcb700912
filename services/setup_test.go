package services

import (
	"fmt"
	"testing"

	"salonhub-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// unique in-memory DB per test name to avoid leakage via shared cache
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Salon{},
		&models.User{},
		&models.Branch{},
		&models.Staff{},
		&models.Service{},
		&models.Client{},
		&models.Appointment{},
		&models.Salesperson{},
		&models.SalaryPayment{},
		&models.PurchasedPlan{},
		&models.NotificationOutbox{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := models.MigrateIndexes(db); err != nil {
		t.Fatalf("migrate indexes: %v", err)
	}
	return db
}

type fixture struct {
	salon   models.Salon
	branch  models.Branch
	staff   models.Staff
	service models.Service
	client  models.Client
}

// seedBooking creates a salon with one branch, one staff member, one service
// and one client so appointment tests can book immediately.
func seedBooking(t *testing.T, db *gorm.DB) fixture {
	t.Helper()

	salon := models.Salon{ID: uuid.New(), Name: "Glow Studio"}
	if err := db.Create(&salon).Error; err != nil {
		t.Fatalf("create salon: %v", err)
	}

	branch := models.Branch{SalonID: salon.ID, Name: "Downtown", Location: "12 Main St"}
	if err := db.Create(&branch).Error; err != nil {
		t.Fatalf("create branch: %v", err)
	}

	staff := models.Staff{BranchID: branch.ID, FullName: "Sarah"}
	if err := db.Create(&staff).Error; err != nil {
		t.Fatalf("create staff: %v", err)
	}

	service := models.Service{BranchID: branch.ID, Name: "Haircut", Price: 75, Duration: 45}
	if err := db.Create(&service).Error; err != nil {
		t.Fatalf("create service: %v", err)
	}

	client := models.Client{SalonID: salon.ID, Name: "John", Email: "john@example.com"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("create client: %v", err)
	}

	return fixture{salon: salon, branch: branch, staff: staff, service: service, client: client}
}
