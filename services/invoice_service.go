// services/invoice_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"lawnops-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrScheduleNotFound  = errors.New("service schedule not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// InvoiceService owns the service-lifecycle workflow: status changes on a
// scheduled visit and the invoice generated when a visit is completed.
type InvoiceService struct {
	db *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{db: db}
}

// ChangeScheduleStatus moves a schedule to the target status. Completing a
// visit also generates the invoice; the returned invoice is nil for every
// other target status. Re-completing an already-completed schedule is
// rejected rather than producing a duplicate invoice.
func (s *InvoiceService) ChangeScheduleStatus(companyID, scheduleID uuid.UUID, target string) (*models.Invoice, error) {
	var schedule models.ServiceSchedule
	if err := s.db.Preload("ServiceType").Preload("Property").
		Where("company_id = ? AND id = ?", companyID, scheduleID).
		First(&schedule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	if !models.ValidScheduleTransition(schedule.Status, target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, schedule.Status, target)
	}

	if target != models.ScheduleStatusCompleted {
		if err := s.db.Model(&schedule).Update("status", target).Error; err != nil {
			return nil, err
		}
		return nil, nil
	}

	return s.completeSchedule(&schedule)
}

// completeSchedule marks the visit done and creates the invoice with its
// single line item in one transaction, so a failed item insert never leaves
// an empty invoice behind.
func (s *InvoiceService) completeSchedule(schedule *models.ServiceSchedule) (*models.Invoice, error) {
	rate := s.defaultTaxRate(schedule.CompanyID)

	subtotal := 0.0
	if schedule.BasePrice != nil {
		subtotal = *schedule.BasePrice
	}
	taxAmount := subtotal * rate
	total := subtotal * (1 + rate)

	now := time.Now()
	invoice := models.Invoice{
		CompanyID:         schedule.CompanyID,
		CustomerID:        schedule.Property.CustomerID,
		PropertyID:        &schedule.PropertyID,
		ServiceScheduleID: &schedule.ID,
		InvoiceNumber:     fmt.Sprintf("INV-%d", now.UnixMilli()),
		InvoiceDate:       now,
		DueDate:           now.AddDate(0, 0, 30),
		Subtotal:          subtotal,
		TaxAmount:         taxAmount,
		Total:             total,
		Status:            models.InvoiceStatusDraft,
	}

	item := models.InvoiceItem{
		ServiceScheduleID: &schedule.ID,
		Description:       s.itemDescription(schedule),
		Quantity:          1,
		UnitPrice:         subtotal,
		Amount:            subtotal,
		TaxAmount:         taxAmount,
		Total:             total,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":       models.ScheduleStatusCompleted,
			"completed_at": now,
		}
		if schedule.IsRecurring {
			if next := nextServiceDate(schedule.ScheduledDate, schedule.Frequency); next != nil {
				updates["next_service_date"] = next
			}
		}
		if err := tx.Model(&models.ServiceSchedule{}).
			Where("id = ?", schedule.ID).
			Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}

		item.InvoiceID = invoice.ID
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}

	invoice.Items = []models.InvoiceItem{item}
	return &invoice, nil
}

// defaultTaxRate returns the company's default rate, or 0 when no default is
// configured or the lookup fails. A missing tax setup never fails a
// completion.
func (s *InvoiceService) defaultTaxRate(companyID uuid.UUID) float64 {
	var tax models.TaxConfiguration
	if err := s.db.Where("company_id = ? AND is_default = ?", companyID, true).
		First(&tax).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Failed to look up default tax rate for company %s: %v", companyID, err)
		}
		return 0
	}
	return tax.Rate
}

func (s *InvoiceService) itemDescription(schedule *models.ServiceSchedule) string {
	if schedule.Description != "" {
		return schedule.Description
	}
	if schedule.ServiceType.Label != "" {
		return schedule.ServiceType.Label
	}
	return "Service"
}

func nextServiceDate(from time.Time, frequency string) *time.Time {
	var next time.Time
	switch frequency {
	case "weekly":
		next = from.AddDate(0, 0, 7)
	case "biweekly":
		next = from.AddDate(0, 0, 14)
	case "monthly":
		next = from.AddDate(0, 1, 0)
	default:
		return nil
	}
	return &next
}
