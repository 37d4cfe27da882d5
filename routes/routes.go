package routes

import (
	"lawnops-backend/config"
	"lawnops-backend/controllers"
	"lawnops-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
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
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
		}

		properties := api.Group("/properties")
		{
			properties.POST("", controllers.CreateProperty)
			properties.GET("", controllers.GetProperties)
			properties.GET("/:id", controllers.GetProperty)
			properties.PUT("/:id", controllers.UpdateProperty)
			properties.DELETE("/:id", controllers.DeleteProperty)
		}

		crews := api.Group("/crews")
		{
			crews.POST("", controllers.CreateCrew)
			crews.GET("", controllers.GetCrews)
			crews.GET("/:id", controllers.GetCrew)
			crews.PUT("/:id", controllers.UpdateCrew)
			crews.DELETE("/:id", controllers.DeleteCrew)
		}

		technicians := api.Group("/technicians")
		{
			technicians.POST("", controllers.CreateTechnician)
			technicians.GET("", controllers.GetTechnicians)
			technicians.PUT("/:id", controllers.UpdateTechnician)
			technicians.DELETE("/:id", controllers.DeleteTechnician)
		}

		serviceTypes := api.Group("/service-types")
		{
			serviceTypes.POST("", controllers.CreateServiceType)
			serviceTypes.GET("", controllers.GetServiceTypes)
			serviceTypes.GET("/:id", controllers.GetServiceType)
			serviceTypes.PUT("/:id", controllers.UpdateServiceType)
			serviceTypes.DELETE("/:id", controllers.DeleteServiceType)
		}

		schedules := api.Group("/schedules")
		{
			schedules.POST("", controllers.CreateSchedule)
			schedules.GET("", controllers.GetSchedules)
			schedules.GET("/:id", controllers.GetSchedule)
			schedules.PUT("/:id", controllers.UpdateSchedule)
			schedules.PUT("/:id/status", controllers.UpdateScheduleStatus)
			schedules.DELETE("/:id", controllers.DeleteSchedule)
		}

		invoices := api.Group("/invoices")
		{
			invoices.POST("", controllers.CreateInvoice)
			invoices.GET("", controllers.GetInvoices)
			invoices.GET("/:id", controllers.GetInvoice)
			invoices.PUT("/:id", controllers.UpdateInvoice)
			invoices.DELETE("/:id", controllers.DeleteInvoice)
		}

		estimates := api.Group("/estimates")
		{
			estimates.POST("", controllers.CreateEstimate)
			estimates.GET("", controllers.GetEstimates)
			estimates.GET("/:id", controllers.GetEstimate)
			estimates.PUT("/:id/status", controllers.UpdateEstimateStatus)
			estimates.DELETE("/:id", controllers.DeleteEstimate)
		}

		taxes := api.Group("/tax-configurations")
		{
			taxes.POST("", controllers.CreateTaxConfiguration)
			taxes.GET("", controllers.GetTaxConfigurations)
			taxes.PUT("/:id", controllers.UpdateTaxConfiguration)
			taxes.DELETE("/:id", controllers.DeleteTaxConfiguration)
		}

		reportController := controllers.ReportController{}
		api.GET("/reports", reportController.GetReportAnalytics)

		api.GET("/dashboard", controllers.GetDashboardOverview)

		profile := api.Group("/profile")
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("", controllers.UpdateProfile)
			profile.PUT("/notifications", controllers.UpdateNotificationSettings)
		}
	}

	// Function-style endpoints, invoked out-of-band (UI action or webhook).
	// Permissive CORS and panic-to-500 recovery, no JWT.
	notification := &controllers.NotificationController{}
	document := &controllers.DocumentController{}

	functions := r.Group("/functions")
	functions.Use(controllers.FunctionRecovery())
	{
		functions.OPTIONS("/send-invoice-email", controllers.FunctionPreflight)
		functions.POST("/send-invoice-email", notification.SendInvoiceEmail)

		functions.OPTIONS("/generate-pdf", controllers.FunctionPreflight)
		functions.POST("/generate-pdf", document.GeneratePDF)
	}

	return r
}
