// controllers/document.go
package controllers

import (
	"fmt"
	"net/http"

	"lawnops-backend/config"
	"lawnops-backend/models"
	"lawnops-backend/services"
	"lawnops-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DocumentController handles the generate-pdf function endpoint. Renderer is
// swapped out in tests; production lazily uses headless Chrome.
type DocumentController struct {
	Renderer services.PDFRenderer
}

type GeneratePDFInput struct {
	Type     string `json:"type"`
	ID       string `json:"id"`
	Template string `json:"template"`
}

// GeneratePDF loads the record graph for an invoice or estimate, renders it
// to HTML (caller-supplied template or the default layout) and prints it to
// PDF. Every failure surfaces as a 400 JSON body.
func (dc *DocumentController) GeneratePDF(c *gin.Context) {
	setFunctionCORS(c)

	var input GeneratePDFInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid request parameters")
		return
	}

	if input.Type != "invoice" && input.Type != "estimate" {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid request parameters")
		return
	}
	id, err := uuid.Parse(input.ID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid request parameters")
		return
	}

	var data services.DocumentData
	var graph map[string]interface{}
	switch input.Type {
	case "invoice":
		data, graph, err = loadInvoiceDocument(id)
	case "estimate":
		data, graph, err = loadEstimateDocument(id)
	}
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	var htmlBody string
	if input.Template != "" {
		htmlBody = services.RenderCustomTemplate(input.Template, graph)
	} else {
		htmlBody, err = services.BuildDocumentHTML(data)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Failed to render document: "+err.Error())
			return
		}
	}

	renderer := dc.Renderer
	if renderer == nil {
		renderer = services.NewChromeRenderer()
	}

	pdf, err := renderer.RenderPDF(c.Request.Context(), htmlBody)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Failed to generate PDF: "+err.Error())
		return
	}

	filename := fmt.Sprintf("%s_%s.pdf", input.Type, input.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func loadInvoiceDocument(id uuid.UUID) (services.DocumentData, map[string]interface{}, error) {
	var invoice models.Invoice
	if err := config.DB.Preload("Customer").Preload("Items").
		Where("id = ?", id).
		First(&invoice).Error; err != nil {
		return services.DocumentData{}, nil, fmt.Errorf("Invoice not found")
	}

	company := companyInfo(invoice.CompanyID)

	lines := make([]services.DocumentLine, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		lines = append(lines, services.DocumentLine{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
			TaxAmount:   item.TaxAmount,
			Total:       item.Total,
		})
	}

	dueDate := invoice.DueDate
	data := services.DocumentData{
		Kind:           "Invoice",
		Number:         invoice.InvoiceNumber,
		Date:           invoice.InvoiceDate,
		SecondaryLabel: "Due date",
		SecondaryDate:  &dueDate,
		CompanyName:    company.Name,
		CompanyAddress: company.Address,
		CompanyPhone:   company.Phone,
		CompanyEmail:   company.Email,
		CustomerName:   invoice.Customer.Name,
		CustomerStreet: invoice.Customer.BillingStreet,
		CustomerCity:   cityLine(invoice.Customer.BillingCity, invoice.Customer.BillingState, invoice.Customer.BillingZip),
		CustomerPhone:  invoice.Customer.Phone,
		CustomerEmail:  invoice.Customer.Email,
		Lines:          lines,
		Subtotal:       invoice.Subtotal,
		TaxAmount:      invoice.TaxAmount,
		Total:          invoice.Total,
		Notes:          invoice.Notes,
	}

	graph := map[string]interface{}{
		"invoice": map[string]interface{}{
			"number":     invoice.InvoiceNumber,
			"date":       invoice.InvoiceDate.Format("Jan 2, 2006"),
			"due_date":   invoice.DueDate.Format("Jan 2, 2006"),
			"subtotal":   invoice.Subtotal,
			"tax_amount": invoice.TaxAmount,
			"total":      invoice.Total,
			"notes":      invoice.Notes,
			"status":     invoice.Status,
		},
		"customer": customerGraph(invoice.Customer),
		"company":  companyGraph(company),
	}

	return data, graph, nil
}

func loadEstimateDocument(id uuid.UUID) (services.DocumentData, map[string]interface{}, error) {
	var estimate models.Estimate
	if err := config.DB.Preload("Customer").Preload("Items").
		Where("id = ?", id).
		First(&estimate).Error; err != nil {
		return services.DocumentData{}, nil, fmt.Errorf("Estimate not found")
	}

	company := companyInfo(estimate.CompanyID)

	lines := make([]services.DocumentLine, 0, len(estimate.Items))
	for _, item := range estimate.Items {
		lines = append(lines, services.DocumentLine{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
			TaxAmount:   item.TaxAmount,
			Total:       item.Total,
		})
	}

	data := services.DocumentData{
		Kind:           "Estimate",
		Number:         estimate.EstimateNumber,
		Date:           estimate.EstimateDate,
		SecondaryLabel: "Valid until",
		SecondaryDate:  estimate.ExpiryDate,
		CompanyName:    company.Name,
		CompanyAddress: company.Address,
		CompanyPhone:   company.Phone,
		CompanyEmail:   company.Email,
		CustomerName:   estimate.Customer.Name,
		CustomerStreet: estimate.Customer.BillingStreet,
		CustomerCity:   cityLine(estimate.Customer.BillingCity, estimate.Customer.BillingState, estimate.Customer.BillingZip),
		CustomerPhone:  estimate.Customer.Phone,
		CustomerEmail:  estimate.Customer.Email,
		Lines:          lines,
		Subtotal:       estimate.Subtotal,
		TaxAmount:      estimate.TaxAmount,
		Total:          estimate.Total,
		Notes:          estimate.Notes,
	}

	graph := map[string]interface{}{
		"estimate": map[string]interface{}{
			"number":     estimate.EstimateNumber,
			"date":       estimate.EstimateDate.Format("Jan 2, 2006"),
			"subtotal":   estimate.Subtotal,
			"tax_amount": estimate.TaxAmount,
			"total":      estimate.Total,
			"notes":      estimate.Notes,
			"status":     estimate.Status,
		},
		"customer": customerGraph(estimate.Customer),
		"company":  companyGraph(company),
	}

	return data, graph, nil
}

type companyDetails struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// companyInfo resolves the letterhead from the company owner's profile,
// falling back to a bare default if no owner row exists.
func companyInfo(companyID uuid.UUID) companyDetails {
	var owner models.User
	if err := config.DB.Where("company_id = ? AND role = ?", companyID, "owner").
		First(&owner).Error; err != nil {
		return companyDetails{Name: "LawnOps"}
	}
	return companyDetails{
		Name:    owner.CompanyName,
		Address: owner.CompanyAddress,
		Phone:   owner.CompanyPhone,
		Email:   owner.CompanyEmail,
	}
}

func customerGraph(customer models.Customer) map[string]interface{} {
	return map[string]interface{}{
		"name":           customer.Name,
		"phone":          utils.FormatPhone(customer.Phone),
		"email":          customer.Email,
		"billing_street": customer.BillingStreet,
		"billing_city":   customer.BillingCity,
		"billing_state":  customer.BillingState,
		"billing_zip":    customer.BillingZip,
	}
}

func companyGraph(company companyDetails) map[string]interface{} {
	return map[string]interface{}{
		"name":    company.Name,
		"address": company.Address,
		"phone":   utils.FormatPhone(company.Phone),
		"email":   company.Email,
	}
}

func cityLine(city, state, zip string) string {
	line := city
	if state != "" {
		if line != "" {
			line += ", "
		}
		line += state
	}
	if zip != "" {
		if line != "" {
			line += " "
		}
		line += zip
	}
	return line
}
