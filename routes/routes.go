package routes

import (
	"os"
	"strings"

	"salonhub-backend/config"
	"salonhub-backend/controllers"
	"salonhub-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Branch routes (staff/service listings hang off their branch)
		branches := api.Group("/branches")
		{
			branches.POST("", controllers.CreateBranch)
			branches.GET("", controllers.GetBranches)
			branches.GET("/:id", controllers.GetBranch)
			branches.PUT("/:id", controllers.UpdateBranch)
			branches.DELETE("/:id", controllers.DeleteBranch)
			branches.GET("/:id/staff", controllers.GetBranchStaff)
			branches.GET("/:id/services", controllers.GetBranchServices)
		}

		// Staff routes
		staff := api.Group("/staff")
		{
			staff.POST("", controllers.CreateStaff)
			staff.PUT("/:id", controllers.UpdateStaff)
			staff.DELETE("/:id", controllers.DeleteStaff)
		}

		// Service routes
		services := api.Group("/services")
		{
			services.POST("", controllers.CreateService)
			services.GET("/:id", controllers.GetService)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		// Client routes
		clients := api.Group("/clients")
		{
			clients.POST("", controllers.CreateClient)
			clients.GET("", controllers.GetClients)
			clients.POST("/resolve", controllers.ResolveClient)
			clients.DELETE("/remembered/:sessionKey", controllers.ForgetRememberedClient)
		}

		// Appointment routes
		appointments := api.Group("/appointments")
		{
			appointments.POST("", controllers.CreateAppointment)
			appointments.GET("", controllers.GetAppointments)
			appointments.GET("/:id", controllers.GetAppointment)
			appointments.PATCH("/:id/status", controllers.UpdateAppointmentStatus)
		}

		// Salesperson and commission routes
		salespersons := api.Group("/salespersons")
		{
			salespersons.POST("", controllers.CreateSalesperson)
			salespersons.GET("", controllers.GetSalespersons)
			salespersons.GET("/:id", controllers.GetSalesperson)
			salespersons.PUT("/:id", controllers.UpdateSalesperson)
			salespersons.DELETE("/:id", controllers.DeleteSalesperson)
			salespersons.GET("/:id/commission", controllers.GetCommission)
			salespersons.GET("/:id/salary", controllers.GetSalaryPayments)
			salespersons.POST("/:id/salary", controllers.AddSalaryPayment)
		}

		// Referral attribution
		users := api.Group("/users")
		{
			users.POST("/:id/referral", controllers.BindReferral)
			users.POST("/:id/plans", controllers.AddPurchasedPlan)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
