package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lawnops-backend/models"
	"lawnops-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubSender struct {
	sent []services.EmailMessage
	err  error
}

func (s *stubSender) Send(m services.EmailMessage) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, m)
	return nil
}

type stubRenderer struct {
	lastHTML string
	err      error
}

func (r *stubRenderer) RenderPDF(_ context.Context, htmlBody string) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.lastHTML = htmlBody
	return []byte("%PDF-1.4 stub"), nil
}

func functionRouter(sender services.EmailSender, renderer services.PDFRenderer) *gin.Engine {
	r := gin.New()
	nc := &NotificationController{Sender: sender, Config: services.EmailConfig{FromName: "GreenScape"}}
	dc := &DocumentController{Renderer: renderer}

	functions := r.Group("/functions", FunctionRecovery())
	functions.OPTIONS("/send-invoice-email", FunctionPreflight)
	functions.POST("/send-invoice-email", nc.SendInvoiceEmail)
	functions.OPTIONS("/generate-pdf", FunctionPreflight)
	functions.POST("/generate-pdf", dc.GeneratePDF)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedInvoice(t *testing.T, db *gorm.DB, mutate func(*models.Customer)) models.Invoice {
	t.Helper()
	companyID := uuid.New()

	owner := models.User{
		Email:       uuid.NewString() + "@example.com",
		Password:    "secret123",
		Name:        "Owner",
		Role:        "owner",
		CompanyID:   companyID,
		CompanyName: "GreenScape Lawn Care",
	}
	owner.ID = companyID
	require.NoError(t, db.Create(&owner).Error)

	customer := models.Customer{
		CompanyID:       companyID,
		CreatedByUserID: owner.ID,
		Name:            "Pat Green",
		Phone:           "5550001111",
		Email:           "pat@example.com",
		BillingStreet:   "12 Clover Ln",
		BillingCity:     "Springfield",
		BillingState:    "IL",
		BillingZip:      "62704",
	}
	if mutate != nil {
		mutate(&customer)
	}
	require.NoError(t, db.Create(&customer).Error)

	invoice := models.Invoice{
		CompanyID:     companyID,
		CustomerID:    customer.ID,
		InvoiceNumber: "INV-" + uuid.NewString()[:8],
		InvoiceDate:   time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2026, 5, 6, 0, 0, 0, 0, time.UTC),
		Subtotal:      100,
		TaxAmount:     8,
		Total:         108,
		Status:        models.InvoiceStatusDraft,
	}
	require.NoError(t, db.Create(&invoice).Error)

	item := models.InvoiceItem{
		InvoiceID:   invoice.ID,
		Description: "Weekly Mowing",
		Quantity:    1,
		UnitPrice:   100,
		Amount:      100,
		TaxAmount:   8,
		Total:       108,
	}
	require.NoError(t, db.Create(&item).Error)

	return invoice
}

func TestFunctionPreflight(t *testing.T) {
	setupTestDB(t)
	r := functionRouter(&stubSender{}, &stubRenderer{})

	for _, path := range []string{"/functions/send-invoice-email", "/functions/generate-pdf"} {
		req := httptest.NewRequest(http.MethodOptions, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code, path)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	}
}

func TestFunctionRecovery(t *testing.T) {
	setupTestDB(t)
	r := gin.New()
	r.POST("/functions/boom", FunctionRecovery(), func(c *gin.Context) {
		panic("renderer exploded")
	})

	w := postJSON(r, "/functions/boom", `{}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "renderer exploded")
}

func TestSendInvoiceEmail(t *testing.T) {
	t.Run("success advances status and records the send", func(t *testing.T) {
		db := setupTestDB(t)
		invoice := seedInvoice(t, db, nil)
		sender := &stubSender{}
		r := functionRouter(sender, nil)

		w := postJSON(r, "/functions/send-invoice-email", `{"invoiceId":"`+invoice.ID.String()+`"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), invoice.InvoiceNumber)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

		require.Len(t, sender.sent, 1)
		msg := sender.sent[0]
		assert.Equal(t, []string{"pat@example.com"}, msg.To)
		assert.Contains(t, msg.TextBody, "Weekly Mowing")

		var stored models.Invoice
		require.NoError(t, db.First(&stored, "id = ?", invoice.ID).Error)
		assert.Equal(t, models.InvoiceStatusSent, stored.Status)

		var audit models.Message
		require.NoError(t, db.Preload("Recipients").First(&audit, "invoice_id = ?", invoice.ID).Error)
		assert.Equal(t, models.MessageTypeInvoice, audit.Type)
		assert.Equal(t, "email", audit.Channel)
		require.Len(t, audit.Recipients, 1)
		assert.Equal(t, "pat@example.com", audit.Recipients[0].Address)
	})

	t.Run("unknown invoice is a 404 with no side effects", func(t *testing.T) {
		db := setupTestDB(t)
		sender := &stubSender{}
		r := functionRouter(sender, nil)

		w := postJSON(r, "/functions/send-invoice-email", `{"invoiceId":"`+uuid.NewString()+`"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Invoice not found")
		assert.Empty(t, sender.sent)

		var count int64
		db.Model(&models.Message{}).Count(&count)
		assert.EqualValues(t, 0, count)
	})

	t.Run("malformed body and bad uuid are 400s", func(t *testing.T) {
		setupTestDB(t)
		r := functionRouter(&stubSender{}, nil)

		assert.Equal(t, http.StatusBadRequest, postJSON(r, "/functions/send-invoice-email", `{}`).Code)
		assert.Equal(t, http.StatusBadRequest, postJSON(r, "/functions/send-invoice-email", `{"invoiceId":"not-a-uuid"}`).Code)
		assert.Equal(t, http.StatusBadRequest, postJSON(r, "/functions/send-invoice-email", `not json`).Code)
	})

	t.Run("customer without email is a 400", func(t *testing.T) {
		db := setupTestDB(t)
		invoice := seedInvoice(t, db, func(c *models.Customer) { c.Email = "" })
		sender := &stubSender{}
		r := functionRouter(sender, nil)

		w := postJSON(r, "/functions/send-invoice-email", `{"invoiceId":"`+invoice.ID.String()+`"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "no email address")
		assert.Empty(t, sender.sent)
	})

	t.Run("provider failure leaves the invoice draft", func(t *testing.T) {
		db := setupTestDB(t)
		invoice := seedInvoice(t, db, nil)
		r := functionRouter(&stubSender{err: errors.New("smtp: connection refused")}, nil)

		w := postJSON(r, "/functions/send-invoice-email", `{"invoiceId":"`+invoice.ID.String()+`"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var stored models.Invoice
		require.NoError(t, db.First(&stored, "id = ?", invoice.ID).Error)
		assert.Equal(t, models.InvoiceStatusDraft, stored.Status)

		var count int64
		db.Model(&models.Message{}).Count(&count)
		assert.EqualValues(t, 0, count)
	})
}

func TestGeneratePDF(t *testing.T) {
	t.Run("invoice with default layout", func(t *testing.T) {
		db := setupTestDB(t)
		invoice := seedInvoice(t, db, nil)
		renderer := &stubRenderer{}
		r := functionRouter(nil, renderer)

		w := postJSON(r, "/functions/generate-pdf", `{"type":"invoice","id":"`+invoice.ID.String()+`"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "invoice_"+invoice.ID.String()+".pdf")
		assert.Equal(t, "%PDF-1.4 stub", w.Body.String())

		assert.Contains(t, renderer.lastHTML, "GreenScape Lawn Care")
		assert.Contains(t, renderer.lastHTML, invoice.InvoiceNumber)
		assert.Contains(t, renderer.lastHTML, "Weekly Mowing")
		assert.Contains(t, renderer.lastHTML, "$108.00")
	})

	t.Run("custom template binds the record graph", func(t *testing.T) {
		db := setupTestDB(t)
		invoice := seedInvoice(t, db, nil)
		renderer := &stubRenderer{}
		r := functionRouter(nil, renderer)

		body := `{"type":"invoice","id":"` + invoice.ID.String() +
			`","template":"<h1>{{company.name}}</h1><p>{{invoice.number}} owed by {{customer.name}}: {{invoice.total}}</p><p>{{invoice.missing}}</p>"}`
		w := postJSON(r, "/functions/generate-pdf", body)
		assert.Equal(t, http.StatusOK, w.Code)

		assert.Contains(t, renderer.lastHTML, "<h1>GreenScape Lawn Care</h1>")
		assert.Contains(t, renderer.lastHTML, invoice.InvoiceNumber+" owed by Pat Green: $108.00")
		assert.Contains(t, renderer.lastHTML, "<p></p>", "unknown tokens render empty")
	})

	t.Run("estimate document", func(t *testing.T) {
		db := setupTestDB(t)
		invoice := seedInvoice(t, db, nil)

		expiry := time.Date(2026, 6, 6, 0, 0, 0, 0, time.UTC)
		estimate := models.Estimate{
			CompanyID:      invoice.CompanyID,
			CustomerID:     invoice.CustomerID,
			EstimateNumber: "EST-1001",
			EstimateDate:   time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC),
			ExpiryDate:     &expiry,
			Subtotal:       250,
			Total:          250,
			Status:         models.EstimateStatusDraft,
		}
		require.NoError(t, db.Create(&estimate).Error)
		require.NoError(t, db.Create(&models.EstimateItem{
			EstimateID:  estimate.ID,
			Description: "Spring Cleanup",
			Quantity:    1,
			UnitPrice:   250,
			Amount:      250,
			Total:       250,
		}).Error)

		renderer := &stubRenderer{}
		r := functionRouter(nil, renderer)

		w := postJSON(r, "/functions/generate-pdf", `{"type":"estimate","id":"`+estimate.ID.String()+`"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "estimate_"+estimate.ID.String()+".pdf")
		assert.Contains(t, renderer.lastHTML, "EST-1001")
		assert.Contains(t, renderer.lastHTML, "Spring Cleanup")
		assert.Contains(t, renderer.lastHTML, "Valid until: Jun 6, 2026")
	})

	t.Run("invalid parameters", func(t *testing.T) {
		setupTestDB(t)
		r := functionRouter(nil, &stubRenderer{})

		for _, body := range []string{
			`{"type":"memo","id":"` + uuid.NewString() + `"}`,
			`{"type":"invoice","id":"not-a-uuid"}`,
			`{"id":"` + uuid.NewString() + `"}`,
			`not json`,
		} {
			w := postJSON(r, "/functions/generate-pdf", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, body)
			assert.Contains(t, w.Body.String(), "Invalid request parameters", body)
		}
	})

	t.Run("unknown records", func(t *testing.T) {
		setupTestDB(t)
		r := functionRouter(nil, &stubRenderer{})

		w := postJSON(r, "/functions/generate-pdf", `{"type":"invoice","id":"`+uuid.NewString()+`"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invoice not found")

		w = postJSON(r, "/functions/generate-pdf", `{"type":"estimate","id":"`+uuid.NewString()+`"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Estimate not found")
	})

	t.Run("renderer failure", func(t *testing.T) {
		db := setupTestDB(t)
		invoice := seedInvoice(t, db, nil)
		r := functionRouter(nil, &stubRenderer{err: errors.New("chrome: exec not found")})

		w := postJSON(r, "/functions/generate-pdf", `{"type":"invoice","id":"`+invoice.ID.String()+`"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Failed to generate PDF")
	})
}
