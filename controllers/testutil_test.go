package controllers

import (
	"testing"

	"lawnops-backend/config"
	"lawnops-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory database, migrates the schema, and points the
// package-level connection at it for the duration of the test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
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
	))

	previous := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = previous })

	return db
}
