package controllers

import (
	"fmt"
	"testing"

	"salonhub-backend/config"
	"salonhub-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// unique in-memory DB per test name to avoid leakage via shared cache
func setupControllerTest(t *testing.T) (*gorm.DB, models.Salon, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

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
	config.DB = db

	salon := models.Salon{ID: uuid.New(), Name: "Glow Studio"}
	if err := db.Create(&salon).Error; err != nil {
		t.Fatalf("create salon: %v", err)
	}

	r := gin.New()
	// Stand-in for the JWT middleware: inject the salon scope directly
	r.Use(func(c *gin.Context) {
		c.Set("salonId", salon.ID.String())
		c.Set("userId", uuid.New().String())
		c.Next()
	})

	api := r.Group("/api")
	{
		api.POST("/branches", CreateBranch)
		api.GET("/branches", GetBranches)
		api.GET("/branches/:id", GetBranch)
		api.DELETE("/branches/:id", DeleteBranch)
		api.GET("/branches/:id/staff", GetBranchStaff)
		api.GET("/branches/:id/services", GetBranchServices)
		api.POST("/staff", CreateStaff)
		api.POST("/services", CreateService)
		api.POST("/clients", CreateClient)
		api.GET("/clients", GetClients)
		api.POST("/clients/resolve", ResolveClient)
		api.POST("/appointments", CreateAppointment)
		api.PATCH("/appointments/:id/status", UpdateAppointmentStatus)
		api.POST("/salespersons", CreateSalesperson)
		api.GET("/salespersons/:id/commission", GetCommission)
		api.POST("/salespersons/:id/salary", AddSalaryPayment)
		api.DELETE("/salespersons/:id", DeleteSalesperson)
	}

	return db, salon, r
}
