package main

import (
	"fmt"
	"log"
	"os"

	"lawnops-backend/config"
	"lawnops-backend/models"
	"lawnops-backend/routes"
	"lawnops-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Property{},
		&models.Crew{},
		&models.Technician{},
		&models.ServiceType{},
		&models.ServiceSchedule{},
		&models.TaxConfiguration{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.Estimate{},
		&models.EstimateItem{},
		&models.Message{},
		&models.MessageRecipient{},
	)
}

func main() {
	reminderService := services.NewReminderService(config.DB)
	reminderService.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
