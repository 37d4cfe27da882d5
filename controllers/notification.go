// controllers/notification.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"lawnops-backend/config"
	"lawnops-backend/models"
	"lawnops-backend/services"
	"lawnops-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationController handles the send-invoice-email function endpoint.
// Sender is nil in production until the first request, at which point it is
// built from the environment; tests inject a stub.
type NotificationController struct {
	Sender services.EmailSender
	Config services.EmailConfig
}

type SendInvoiceEmailInput struct {
	InvoiceID string `json:"invoiceId" binding:"required"`
}

// FunctionPreflight answers CORS preflight for the function endpoints with a
// 204 before any business logic runs.
func FunctionPreflight(c *gin.Context) {
	setFunctionCORS(c)
	c.Status(http.StatusNoContent)
}

func setFunctionCORS(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
}

// FunctionRecovery converts a panic in a function handler into a 500 JSON
// body instead of an empty response.
func FunctionRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprint(r)})
			}
		}()
		c.Next()
	}
}

// SendInvoiceEmail loads the invoice with its customer and items, emails it,
// records the send, and advances the invoice to sent.
func (nc *NotificationController) SendInvoiceEmail(c *gin.Context) {
	setFunctionCORS(c)

	var input SendInvoiceEmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	invoiceID, err := uuid.Parse(input.InvoiceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	// Resolve the sender before touching anything else, so a misconfigured
	// environment fails fast without side effects.
	sender := nc.Sender
	cfg := nc.Config
	if sender == nil {
		cfg, err = services.EmailConfigFromEnv()
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Email delivery is not configured: "+err.Error())
			return
		}
		sender = services.NewSMTPSender(cfg)
	}

	var invoice models.Invoice
	if err := config.DB.Preload("Customer").Preload("Items").
		Where("id = ?", invoiceID).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	if invoice.Customer.Email == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Customer has no email address")
		return
	}

	message, err := services.BuildInvoiceEmail(invoice, cfg)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Failed to render invoice email: "+err.Error())
		return
	}

	if err := sender.Send(message); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Failed to send email: "+err.Error())
		return
	}

	// Audit trail is written only after the provider accepted the send
	audit := models.Message{
		CompanyID: invoice.CompanyID,
		InvoiceID: &invoice.ID,
		Type:      models.MessageTypeInvoice,
		Channel:   "email",
		Subject:   message.Subject,
		Body:      message.TextBody,
		SentAt:    time.Now(),
		Recipients: []models.MessageRecipient{{
			CustomerID: &invoice.CustomerID,
			Address:    invoice.Customer.Email,
			Status:     "sent",
		}},
	}
	if err := config.DB.Create(&audit).Error; err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Failed to record message: "+err.Error())
		return
	}

	if err := config.DB.Model(&invoice).
		Update("status", models.InvoiceStatusSent).Error; err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Failed to update invoice status: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Invoice %s sent to %s", invoice.InvoiceNumber, invoice.Customer.Email),
	})
}
