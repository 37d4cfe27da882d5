// services/email_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"strconv"
	"strings"

	"lawnops-backend/models"
	"lawnops-backend/utils"

	"gopkg.in/gomail.v2"
)

// EmailMessage is a single outbound email with text and HTML alternatives.
type EmailMessage struct {
	To       []string
	Subject  string
	TextBody string
	HTMLBody string
}

// EmailSender delivers a message. Handlers depend on this interface so tests
// can stub out SMTP.
type EmailSender interface {
	Send(m EmailMessage) error
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromAddress  string
	FromName     string
	SiteURL      string
}

// EmailConfigFromEnv reads the SMTP settings. A missing required variable is
// an error so the notification endpoint can fail fast before any I/O.
func EmailConfigFromEnv() (EmailConfig, error) {
	cfg := EmailConfig{
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		FromAddress:  os.Getenv("EMAIL_FROM_ADDRESS"),
		FromName:     os.Getenv("EMAIL_FROM_NAME"),
		SiteURL:      os.Getenv("PUBLIC_SITE_URL"),
	}

	cfg.SMTPPort = 587
	if port := os.Getenv("SMTP_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return cfg, fmt.Errorf("invalid SMTP_PORT: %q", port)
		}
		cfg.SMTPPort = p
	}

	var missing []string
	if cfg.SMTPHost == "" {
		missing = append(missing, "SMTP_HOST")
	}
	if cfg.FromAddress == "" {
		missing = append(missing, "EMAIL_FROM_ADDRESS")
	}
	if len(missing) > 0 {
		return cfg, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if cfg.FromName == "" {
		cfg.FromName = "LawnOps"
	}
	return cfg, nil
}

// SMTPSender sends mail through gomail over SMTP.
type SMTPSender struct {
	cfg EmailConfig
}

func NewSMTPSender(cfg EmailConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(m EmailMessage) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", s.cfg.FromAddress, s.cfg.FromName)
	msg.SetHeader("To", m.To...)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/plain", m.TextBody)
	if m.HTMLBody != "" {
		msg.AddAlternative("text/html", m.HTMLBody)
	}

	d := gomail.NewDialer(s.cfg.SMTPHost, s.cfg.SMTPPort, s.cfg.SMTPUsername, s.cfg.SMTPPassword)
	return d.DialAndSend(msg)
}

var invoiceEmailHTML = template.Must(template.New("invoice-email").Funcs(template.FuncMap{
	"currency": utils.FormatCurrency,
}).Parse(`<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #16a34a;">Invoice {{.Invoice.InvoiceNumber}}</h2>
    <p>Hi {{.Invoice.Customer.Name}},</p>
    <p>Thank you for choosing {{.CompanyName}}. Your invoice is ready.</p>
    <table style="width: 100%; border-collapse: collapse; margin: 20px 0;">
        <tr style="background: #f0fdf4;">
            <th style="text-align: left; padding: 8px; border-bottom: 2px solid #16a34a;">Description</th>
            <th style="text-align: right; padding: 8px; border-bottom: 2px solid #16a34a;">Qty</th>
            <th style="text-align: right; padding: 8px; border-bottom: 2px solid #16a34a;">Price</th>
            <th style="text-align: right; padding: 8px; border-bottom: 2px solid #16a34a;">Total</th>
        </tr>
        {{range .Invoice.Items}}
        <tr>
            <td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">{{.Description}}</td>
            <td style="text-align: right; padding: 8px; border-bottom: 1px solid #e5e7eb;">{{.Quantity}}</td>
            <td style="text-align: right; padding: 8px; border-bottom: 1px solid #e5e7eb;">{{currency .UnitPrice}}</td>
            <td style="text-align: right; padding: 8px; border-bottom: 1px solid #e5e7eb;">{{currency .Total}}</td>
        </tr>
        {{end}}
    </table>
    <p style="font-size: 18px;"><strong>Total due: {{currency .Invoice.Total}}</strong></p>
    <p>Due date: {{.Invoice.DueDate.Format "January 2, 2006"}}</p>
    {{if .SiteURL}}<p><a href="{{.SiteURL}}" style="color: #16a34a;">View your account</a></p>{{end}}
    <p style="color: #6b7280; font-size: 13px;">{{.CompanyName}}</p>
</body>
</html>`))

type invoiceEmailData struct {
	Invoice     models.Invoice
	CompanyName string
	SiteURL     string
}

// BuildInvoiceEmail renders the text and HTML bodies for an invoice email.
// The invoice must have Customer and Items loaded.
func BuildInvoiceEmail(invoice models.Invoice, cfg EmailConfig) (EmailMessage, error) {
	var text strings.Builder
	fmt.Fprintf(&text, "Hi %s,\n\n", invoice.Customer.Name)
	fmt.Fprintf(&text, "Thank you for choosing %s. Your invoice %s is ready.\n\n", cfg.FromName, invoice.InvoiceNumber)
	for _, item := range invoice.Items {
		fmt.Fprintf(&text, "  %s x%d  %s  (tax %s)  %s\n",
			item.Description, item.Quantity,
			utils.FormatCurrency(item.Amount),
			utils.FormatCurrency(item.TaxAmount),
			utils.FormatCurrency(item.Total))
	}
	fmt.Fprintf(&text, "\nTotal due: %s\n", utils.FormatCurrency(invoice.Total))
	fmt.Fprintf(&text, "Due date: %s\n\n", invoice.DueDate.Format("January 2, 2006"))
	fmt.Fprintf(&text, "%s\n", cfg.FromName)

	var html bytes.Buffer
	err := invoiceEmailHTML.Execute(&html, invoiceEmailData{
		Invoice:     invoice,
		CompanyName: cfg.FromName,
		SiteURL:     cfg.SiteURL,
	})
	if err != nil {
		return EmailMessage{}, err
	}

	return EmailMessage{
		To:       []string{invoice.Customer.Email},
		Subject:  fmt.Sprintf("Invoice %s from %s", invoice.InvoiceNumber, cfg.FromName),
		TextBody: text.String(),
		HTMLBody: html.String(),
	}, nil
}
