package services

import (
	"strings"
	"testing"
	"time"

	"lawnops-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type workflowFixture struct {
	db        *gorm.DB
	companyID uuid.UUID
	customer  models.Customer
	property  models.Property
	mowing    models.ServiceType
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()
	db := setupTestDB(t)
	companyID := uuid.New()

	customer := models.Customer{
		CompanyID:       companyID,
		CreatedByUserID: uuid.New(),
		Name:            "Pat Green",
		Phone:           "+15550001111",
		Email:           "pat@example.com",
	}
	require.NoError(t, db.Create(&customer).Error)

	property := models.Property{
		CompanyID:  companyID,
		CustomerID: customer.ID,
		Street:     "12 Clover Ln",
		City:       "Springfield",
	}
	require.NoError(t, db.Create(&property).Error)

	mowing := models.ServiceType{
		CompanyID: companyID,
		Label:     "Weekly Mowing",
		BasePrice: 55,
	}
	require.NoError(t, db.Create(&mowing).Error)

	return &workflowFixture{
		db:        db,
		companyID: companyID,
		customer:  customer,
		property:  property,
		mowing:    mowing,
	}
}

func (f *workflowFixture) schedule(t *testing.T, mutate func(*models.ServiceSchedule)) models.ServiceSchedule {
	t.Helper()
	price := 100.0
	schedule := models.ServiceSchedule{
		CompanyID:     f.companyID,
		PropertyID:    f.property.ID,
		ServiceTypeID: f.mowing.ID,
		ScheduledDate: time.Now(),
		TimeWindow:    models.TimeWindowMorning,
		Status:        models.ScheduleStatusPending,
		BasePrice:     &price,
	}
	if mutate != nil {
		mutate(&schedule)
	}
	require.NoError(t, f.db.Create(&schedule).Error)
	return schedule
}

func (f *workflowFixture) defaultTax(t *testing.T, rate float64) {
	t.Helper()
	tax := models.TaxConfiguration{
		CompanyID: f.companyID,
		Name:      "Sales Tax",
		Rate:      rate,
		IsDefault: true,
	}
	require.NoError(t, f.db.Create(&tax).Error)
}

func TestCompleteScheduleGeneratesInvoice(t *testing.T) {
	f := newWorkflowFixture(t)
	f.defaultTax(t, 0.08)
	schedule := f.schedule(t, nil)

	svc := NewInvoiceService(f.db)
	invoice, err := svc.ChangeScheduleStatus(f.companyID, schedule.ID, models.ScheduleStatusCompleted)
	require.NoError(t, err)
	require.NotNil(t, invoice)

	assert.InDelta(t, 100.0, invoice.Subtotal, 0.001)
	assert.InDelta(t, 8.0, invoice.TaxAmount, 0.001)
	assert.InDelta(t, 108.0, invoice.Total, 0.001)
	assert.Equal(t, models.InvoiceStatusDraft, invoice.Status)
	assert.Equal(t, f.customer.ID, invoice.CustomerID)
	assert.True(t, strings.HasPrefix(invoice.InvoiceNumber, "INV-"), "invoice number %q", invoice.InvoiceNumber)

	wantDue := invoice.InvoiceDate.AddDate(0, 0, 30)
	assert.WithinDuration(t, wantDue, invoice.DueDate, time.Second)

	require.Len(t, invoice.Items, 1)
	item := invoice.Items[0]
	assert.Equal(t, 1, item.Quantity)
	assert.InDelta(t, 100.0, item.UnitPrice, 0.001)
	assert.InDelta(t, 108.0, item.Total, 0.001)

	var stored models.ServiceSchedule
	require.NoError(t, f.db.First(&stored, "id = ?", schedule.ID).Error)
	assert.Equal(t, models.ScheduleStatusCompleted, stored.Status)
	assert.NotNil(t, stored.CompletedAt)

	var itemCount int64
	f.db.Model(&models.InvoiceItem{}).Where("invoice_id = ?", invoice.ID).Count(&itemCount)
	assert.EqualValues(t, 1, itemCount)
}

func TestCompleteScheduleWithoutDefaultTax(t *testing.T) {
	f := newWorkflowFixture(t)
	schedule := f.schedule(t, nil)

	svc := NewInvoiceService(f.db)
	invoice, err := svc.ChangeScheduleStatus(f.companyID, schedule.ID, models.ScheduleStatusCompleted)
	require.NoError(t, err)
	require.NotNil(t, invoice)

	assert.InDelta(t, 100.0, invoice.Subtotal, 0.001)
	assert.InDelta(t, 0.0, invoice.TaxAmount, 0.001)
	assert.InDelta(t, 100.0, invoice.Total, 0.001)
}

func TestCompleteScheduleWithNilBasePrice(t *testing.T) {
	f := newWorkflowFixture(t)
	f.defaultTax(t, 0.08)
	schedule := f.schedule(t, func(s *models.ServiceSchedule) {
		s.BasePrice = nil
	})

	svc := NewInvoiceService(f.db)
	invoice, err := svc.ChangeScheduleStatus(f.companyID, schedule.ID, models.ScheduleStatusCompleted)
	require.NoError(t, err)
	require.NotNil(t, invoice)

	assert.InDelta(t, 0.0, invoice.Subtotal, 0.001)
	assert.InDelta(t, 0.0, invoice.TaxAmount, 0.001)
	assert.InDelta(t, 0.0, invoice.Total, 0.001)
	require.Len(t, invoice.Items, 1)
	assert.InDelta(t, 0.0, invoice.Items[0].UnitPrice, 0.001)
}

func TestItemDescriptionFallback(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{"schedule description wins", "Front and back mow", "Front and back mow"},
		{"falls back to service type label", "", "Weekly Mowing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newWorkflowFixture(t)
			schedule := f.schedule(t, func(s *models.ServiceSchedule) {
				s.Description = tt.description
			})

			svc := NewInvoiceService(f.db)
			invoice, err := svc.ChangeScheduleStatus(f.companyID, schedule.ID, models.ScheduleStatusCompleted)
			require.NoError(t, err)
			require.Len(t, invoice.Items, 1)
			assert.Equal(t, tt.want, invoice.Items[0].Description)
		})
	}
}

func TestItemDescriptionLastResort(t *testing.T) {
	f := newWorkflowFixture(t)

	blank := models.ServiceType{CompanyID: f.companyID, Label: ""}
	require.NoError(t, f.db.Create(&blank).Error)

	schedule := f.schedule(t, func(s *models.ServiceSchedule) {
		s.ServiceTypeID = blank.ID
		s.Description = ""
	})

	svc := NewInvoiceService(f.db)
	invoice, err := svc.ChangeScheduleStatus(f.companyID, schedule.ID, models.ScheduleStatusCompleted)
	require.NoError(t, err)
	require.Len(t, invoice.Items, 1)
	assert.Equal(t, "Service", invoice.Items[0].Description)
}

func TestRecompletionIsRejected(t *testing.T) {
	f := newWorkflowFixture(t)
	schedule := f.schedule(t, nil)

	svc := NewInvoiceService(f.db)
	_, err := svc.ChangeScheduleStatus(f.companyID, schedule.ID, models.ScheduleStatusCompleted)
	require.NoError(t, err)

	_, err = svc.ChangeScheduleStatus(f.companyID, schedule.ID, models.ScheduleStatusCompleted)
	require.ErrorIs(t, err, ErrInvalidTransition)

	var invoiceCount int64
	f.db.Model(&models.Invoice{}).Where("service_schedule_id = ?", schedule.ID).Count(&invoiceCount)
	assert.EqualValues(t, 1, invoiceCount, "re-completion must not create a second invoice")
}

func TestNonCompletionStatusChange(t *testing.T) {
	f := newWorkflowFixture(t)
	schedule := f.schedule(t, nil)

	svc := NewInvoiceService(f.db)
	invoice, err := svc.ChangeScheduleStatus(f.companyID, schedule.ID, models.ScheduleStatusInProgress)
	require.NoError(t, err)
	assert.Nil(t, invoice)

	var stored models.ServiceSchedule
	require.NoError(t, f.db.First(&stored, "id = ?", schedule.ID).Error)
	assert.Equal(t, models.ScheduleStatusInProgress, stored.Status)

	var invoiceCount int64
	f.db.Model(&models.Invoice{}).Count(&invoiceCount)
	assert.EqualValues(t, 0, invoiceCount)
}

func TestInvalidTransitionFromCancelled(t *testing.T) {
	f := newWorkflowFixture(t)
	schedule := f.schedule(t, func(s *models.ServiceSchedule) {
		s.Status = models.ScheduleStatusCancelled
	})

	svc := NewInvoiceService(f.db)
	_, err := svc.ChangeScheduleStatus(f.companyID, schedule.ID, models.ScheduleStatusCompleted)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUnknownScheduleNotFound(t *testing.T) {
	f := newWorkflowFixture(t)

	svc := NewInvoiceService(f.db)
	_, err := svc.ChangeScheduleStatus(f.companyID, uuid.New(), models.ScheduleStatusCompleted)
	require.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestWrongCompanyScopeNotFound(t *testing.T) {
	f := newWorkflowFixture(t)
	schedule := f.schedule(t, nil)

	svc := NewInvoiceService(f.db)
	_, err := svc.ChangeScheduleStatus(uuid.New(), schedule.ID, models.ScheduleStatusCompleted)
	require.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestRecurringScheduleAdvancesNextServiceDate(t *testing.T) {
	f := newWorkflowFixture(t)
	visitDate := time.Date(2026, 4, 6, 9, 0, 0, 0, time.UTC)
	schedule := f.schedule(t, func(s *models.ServiceSchedule) {
		s.ScheduledDate = visitDate
		s.IsRecurring = true
		s.Frequency = "weekly"
	})

	svc := NewInvoiceService(f.db)
	_, err := svc.ChangeScheduleStatus(f.companyID, schedule.ID, models.ScheduleStatusCompleted)
	require.NoError(t, err)

	var stored models.ServiceSchedule
	require.NoError(t, f.db.First(&stored, "id = ?", schedule.ID).Error)
	require.NotNil(t, stored.NextServiceDate)
	assert.Equal(t, visitDate.AddDate(0, 0, 7).Unix(), stored.NextServiceDate.Unix())
}
