package controllers

import (
	"testing"
	"time"

	"lawnops-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedRevenueInvoice(t *testing.T, db *gorm.DB, companyID, customerID uuid.UUID, date time.Time, total float64) {
	t.Helper()
	require.NoError(t, db.Create(&models.Invoice{
		CompanyID:     companyID,
		CustomerID:    customerID,
		InvoiceNumber: "INV-" + uuid.NewString()[:8],
		InvoiceDate:   date,
		DueDate:       date.AddDate(0, 0, 30),
		Subtotal:      total,
		Total:         total,
		Status:        models.InvoiceStatusDraft,
	}).Error)
}

func TestGetRevenueWindowIsHalfOpen(t *testing.T) {
	db := setupTestDB(t)
	companyID := uuid.New()
	customerID := uuid.New()

	monthStart := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	// Late on the last day of the month: must count
	seedRevenueInvoice(t, db, companyID, customerID, time.Date(2026, 4, 30, 23, 15, 0, 0, time.UTC), 100)
	// Mid-month
	seedRevenueInvoice(t, db, companyID, customerID, time.Date(2026, 4, 15, 9, 0, 0, 0, time.UTC), 50)
	// First instant of the next month: must not count
	seedRevenueInvoice(t, db, companyID, customerID, monthEnd, 999)
	// Another company's invoice in range: must not count
	seedRevenueInvoice(t, db, uuid.New(), customerID, time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC), 777)

	rc := &ReportController{}
	total, err := rc.getRevenue(companyID, monthStart, monthEnd)
	require.NoError(t, err)
	assert.InDelta(t, 150.0, total, 0.001)
}
