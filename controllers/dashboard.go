package controllers

import (
	"net/http"
	"time"

	"salonhub-backend/config"
	"salonhub-backend/models"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
)

type DashboardOverview struct {
	TotalClients          int64   `json:"totalClients"`
	TotalBranches         int64   `json:"totalBranches"`
	AppointmentsToday     int64   `json:"appointmentsToday"`
	PendingAppointments   int64   `json:"pendingAppointments"`
	CompletedThisMonth    int64   `json:"completedThisMonth"`
	RevenueThisMonth      float64 `json:"revenueThisMonth"`
	OutstandingCommission float64 `json:"outstandingCommission"`
}

// GetDashboardOverview aggregates the salon's headline figures. Everything
// is computed from the live tables on each call.
func GetDashboardOverview(c *gin.Context) {
	salonUUID, ok := salonScope(c)
	if !ok {
		return
	}

	var overview DashboardOverview

	config.DB.Model(&models.Client{}).
		Where("salon_id = ?", salonUUID).Count(&overview.TotalClients)

	config.DB.Model(&models.Branch{}).
		Where("salon_id = ?", salonUUID).Count(&overview.TotalBranches)

	today := utils.BeginningOfDay(time.Now()).Format("2006-01-02")
	config.DB.Model(&models.Appointment{}).
		Where("salon_id = ? AND date = ? AND status <> ?",
			salonUUID, today, models.AppointmentCancelled).
		Count(&overview.AppointmentsToday)

	config.DB.Model(&models.Appointment{}).
		Where("salon_id = ? AND status = ?", salonUUID, models.AppointmentPending).
		Count(&overview.PendingAppointments)

	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
	config.DB.Model(&models.Appointment{}).
		Where("salon_id = ? AND status = ? AND date >= ?",
			salonUUID, models.AppointmentCompleted, firstOfMonth).
		Count(&overview.CompletedThisMonth)

	// Completed appointments priced at their service rate
	config.DB.Raw(`
		SELECT COALESCE(SUM(s.price), 0)
		FROM appointments a
		JOIN services s ON s.id = a.service_id
		WHERE a.salon_id = ? AND a.status = ? AND a.date >= ? AND a.deleted_at IS NULL
	`, salonUUID, models.AppointmentCompleted, firstOfMonth).Scan(&overview.RevenueThisMonth)

	// Commission earned minus salary paid, across all salespersons
	var earned, paid float64
	config.DB.Raw(`
		SELECT COALESCE(SUM(sp.commission_percentage / 100 * p.price), 0)
		FROM purchased_plans p
		JOIN users u ON u.id = p.user_id
		JOIN salespeople sp ON sp.id = u.referred_by_id
		WHERE sp.salon_id = ? AND sp.deleted_at IS NULL AND u.deleted_at IS NULL
	`, salonUUID).Scan(&earned)
	config.DB.Raw(`
		SELECT COALESCE(SUM(pay.amount), 0)
		FROM salary_payments pay
		JOIN salespeople sp ON sp.id = pay.salesperson_id
		WHERE sp.salon_id = ? AND sp.deleted_at IS NULL
	`, salonUUID).Scan(&paid)
	overview.OutstandingCommission = earned - paid

	c.JSON(http.StatusOK, overview)
}
