// controllers/invoice.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"lawnops-backend/config"
	"lawnops-backend/models"
	"lawnops-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceItemInput defines the structure for a manual invoice line
type InvoiceItemInput struct {
	Description string  `json:"description" binding:"required"`
	Quantity    int     `json:"quantity" binding:"min=1"`
	UnitPrice   float64 `json:"unitPrice" binding:"min=0"`
}

// CreateInvoiceInput defines the expected JSON structure for a manual invoice
type CreateInvoiceInput struct {
	CustomerID  uuid.UUID          `json:"customerId" binding:"required"`
	PropertyID  *uuid.UUID         `json:"propertyId"`
	InvoiceDate *time.Time         `json:"invoiceDate"`
	Items       []InvoiceItemInput `json:"items" binding:"required,min=1"`
	Notes       string             `json:"notes"`
}

type UpdateInvoiceInput struct {
	DueDate *time.Time `json:"dueDate"`
	Notes   *string    `json:"notes"`
}

// CreateInvoice creates a manual invoice outside the completion workflow
func CreateInvoice(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	var input CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.Customer
	if err := config.DB.Where("company_id = ? AND id = ?", companyID, input.CustomerID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Default tax rate; a missing configuration means untaxed lines
	var rate float64
	var tax models.TaxConfiguration
	if err := config.DB.Where("company_id = ? AND is_default = ?", companyID, true).
		First(&tax).Error; err == nil {
		rate = tax.Rate
	}

	var subtotal float64
	var items []models.InvoiceItem
	for _, item := range input.Items {
		amount := item.UnitPrice * float64(item.Quantity)
		subtotal += amount
		items = append(items, models.InvoiceItem{
			ID:          uuid.New(),
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      amount,
			TaxAmount:   amount * rate,
			Total:       amount * (1 + rate),
		})
	}

	invoiceDate := time.Now()
	if input.InvoiceDate != nil {
		invoiceDate = *input.InvoiceDate
	}

	invoice := models.Invoice{
		ID:            uuid.New(),
		CompanyID:     companyID,
		CustomerID:    input.CustomerID,
		PropertyID:    input.PropertyID,
		InvoiceNumber: fmt.Sprintf("INV-%d", time.Now().UnixMilli()),
		InvoiceDate:   invoiceDate,
		DueDate:       invoiceDate.AddDate(0, 0, 30),
		Subtotal:      subtotal,
		TaxAmount:     subtotal * rate,
		Total:         subtotal * (1 + rate),
		Status:        models.InvoiceStatusDraft,
		Notes:         input.Notes,
		Items:         items,
	}

	if err := config.DB.Create(&invoice).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create invoice")
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

// GetInvoices retrieves all invoices for the company
func GetInvoices(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	query := config.DB.Preload("Items").Preload("Customer").
		Where("company_id = ?", companyID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var invoices []models.Invoice
	if err := query.Order("invoice_date DESC").Find(&invoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// GetInvoice retrieves a specific invoice by ID
func GetInvoice(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}
	invoiceID, ok := idParam(c, "invoice")
	if !ok {
		return
	}

	var invoice models.Invoice
	if err := config.DB.Preload("Items").Preload("Customer").
		Where("company_id = ? AND id = ?", companyID, invoiceID).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// UpdateInvoice edits the mutable fields of a draft invoice
func UpdateInvoice(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}
	invoiceID, ok := idParam(c, "invoice")
	if !ok {
		return
	}

	var input UpdateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var invoice models.Invoice
	if err := config.DB.Where("company_id = ? AND id = ?", companyID, invoiceID).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if invoice.Status != models.InvoiceStatusDraft {
		utils.RespondWithError(c, http.StatusConflict, "Only draft invoices can be edited")
		return
	}

	if input.DueDate != nil {
		invoice.DueDate = *input.DueDate
	}
	if input.Notes != nil {
		invoice.Notes = *input.Notes
	}

	if err := config.DB.Save(&invoice).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update invoice")
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// DeleteInvoice removes an invoice and its items
func DeleteInvoice(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}
	invoiceID, ok := idParam(c, "invoice")
	if !ok {
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.Where("company_id = ? AND id = ?", companyID, invoiceID).
			First(&invoice).Error; err != nil {
			return err
		}

		if err := tx.Where("invoice_id = ?", invoice.ID).
			Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&invoice).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete invoice")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted successfully"})
}
