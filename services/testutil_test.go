package services

import (
	"testing"

	"lawnops-backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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

	return db
}
