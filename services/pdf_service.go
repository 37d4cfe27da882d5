// services/pdf_service.go
package services

import (
	"bytes"
	"context"
	"html"
	"html/template"
	"regexp"
	"strings"
	"time"

	"lawnops-backend/utils"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// PDFRenderer turns a rendered HTML document into PDF bytes.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, htmlBody string) ([]byte, error)
}

// A4 in inches; 1cm margins.
const (
	pageWidthInches  = 8.27
	pageHeightInches = 11.69
	pageMarginInches = 0.39
)

// ChromeRenderer prints HTML to PDF through a headless Chrome instance. Each
// call gets its own browser context and deadline, and the context is always
// cancelled so a hung browser cannot outlive the request.
type ChromeRenderer struct {
	Timeout time.Duration
}

func NewChromeRenderer() *ChromeRenderer {
	return &ChromeRenderer{Timeout: 30 * time.Second}
}

func (r *ChromeRenderer) RenderPDF(ctx context.Context, htmlBody string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlBody).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPaperWidth(pageWidthInches).
				WithPaperHeight(pageHeightInches).
				WithMarginTop(pageMarginInches).
				WithMarginBottom(pageMarginInches).
				WithMarginLeft(pageMarginInches).
				WithMarginRight(pageMarginInches).
				WithPrintBackground(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdf, nil
}

var templateToken = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.]+)\s*\}\}`)

// RenderCustomTemplate substitutes every {{dotted.path}} token with the
// matching value from the data graph. Unknown paths become the empty string;
// surrounding text is left untouched. Values are HTML-escaped, so a caller
// template is trusted markup but the data bound into it is not.
func RenderCustomTemplate(tpl string, data map[string]interface{}) string {
	return templateToken.ReplaceAllStringFunc(tpl, func(token string) string {
		path := templateToken.FindStringSubmatch(token)[1]
		return html.EscapeString(lookupPath(data, path))
	})
}

func lookupPath(data map[string]interface{}, path string) string {
	var current interface{} = data
	for _, segment := range strings.Split(path, ".") {
		m, ok := current.(map[string]interface{})
		if !ok {
			return ""
		}
		current, ok = m[segment]
		if !ok {
			return ""
		}
	}
	if current == nil {
		return ""
	}
	if s, ok := current.(string); ok {
		return s
	}
	if f, ok := current.(float64); ok {
		return utils.FormatCurrency(f)
	}
	return ""
}

// DocumentLine is one row of the itemized table in a rendered document.
type DocumentLine struct {
	Description string
	Quantity    int
	UnitPrice   float64
	Amount      float64
	TaxAmount   float64
	Total       float64
}

// DocumentData is everything the default invoice/estimate layout binds.
type DocumentData struct {
	Kind           string // "Invoice" or "Estimate"
	Number         string
	Date           time.Time
	SecondaryLabel string // "Due date" / "Valid until"
	SecondaryDate  *time.Time
	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
	CompanyEmail   string
	CustomerName   string
	CustomerStreet string
	CustomerCity   string
	CustomerPhone  string
	CustomerEmail  string
	Lines          []DocumentLine
	Subtotal       float64
	TaxAmount      float64
	Total          float64
	Notes          string
}

var documentHTML = template.Must(template.New("document").Funcs(template.FuncMap{
	"currency": utils.FormatCurrency,
	"phone":    utils.FormatPhone,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
  body { font-family: 'Helvetica Neue', Arial, sans-serif; color: #1f2937; font-size: 13px; }
  .header { display: flex; justify-content: space-between; border-bottom: 3px solid #16a34a; padding-bottom: 16px; }
  .company h1 { color: #16a34a; margin: 0 0 4px; font-size: 22px; }
  .company p { margin: 2px 0; color: #6b7280; }
  .doc-meta { text-align: right; }
  .doc-meta h2 { margin: 0 0 4px; font-size: 20px; text-transform: uppercase; letter-spacing: 2px; }
  .bill-to { margin: 24px 0; }
  .bill-to h3 { color: #6b7280; text-transform: uppercase; font-size: 11px; margin-bottom: 6px; }
  table.items { width: 100%; border-collapse: collapse; margin-top: 8px; }
  table.items th { background: #16a34a; color: #fff; text-align: left; padding: 8px; }
  table.items th.num, table.items td.num { text-align: right; }
  table.items td { padding: 8px; border-bottom: 1px solid #e5e7eb; }
  .totals { margin-top: 16px; margin-left: auto; width: 260px; }
  .totals td { padding: 4px 8px; }
  .totals td.num { text-align: right; }
  .totals tr.grand td { border-top: 2px solid #16a34a; font-weight: bold; font-size: 15px; }
  .notes { margin-top: 32px; color: #6b7280; }
  .footer { margin-top: 48px; text-align: center; color: #9ca3af; font-size: 11px; }
</style>
</head>
<body>
  <div class="header">
    <div class="company">
      <h1>{{.CompanyName}}</h1>
      {{if .CompanyAddress}}<p>{{.CompanyAddress}}</p>{{end}}
      {{if .CompanyPhone}}<p>{{phone .CompanyPhone}}</p>{{end}}
      {{if .CompanyEmail}}<p>{{.CompanyEmail}}</p>{{end}}
    </div>
    <div class="doc-meta">
      <h2>{{.Kind}}</h2>
      <p><strong>{{.Number}}</strong></p>
      <p>Date: {{.Date.Format "Jan 2, 2006"}}</p>
      {{if .SecondaryDate}}<p>{{.SecondaryLabel}}: {{.SecondaryDate.Format "Jan 2, 2006"}}</p>{{end}}
    </div>
  </div>

  <div class="bill-to">
    <h3>Bill To</h3>
    <p><strong>{{.CustomerName}}</strong></p>
    {{if .CustomerStreet}}<p>{{.CustomerStreet}}</p>{{end}}
    {{if .CustomerCity}}<p>{{.CustomerCity}}</p>{{end}}
    {{if .CustomerPhone}}<p>{{phone .CustomerPhone}}</p>{{end}}
    {{if .CustomerEmail}}<p>{{.CustomerEmail}}</p>{{end}}
  </div>

  <table class="items">
    <tr>
      <th>Description</th>
      <th class="num">Qty</th>
      <th class="num">Unit Price</th>
      <th class="num">Amount</th>
      <th class="num">Tax</th>
      <th class="num">Total</th>
    </tr>
    {{range .Lines}}
    <tr>
      <td>{{.Description}}</td>
      <td class="num">{{.Quantity}}</td>
      <td class="num">{{currency .UnitPrice}}</td>
      <td class="num">{{currency .Amount}}</td>
      <td class="num">{{currency .TaxAmount}}</td>
      <td class="num">{{currency .Total}}</td>
    </tr>
    {{end}}
  </table>

  <table class="totals">
    <tr><td>Subtotal</td><td class="num">{{currency .Subtotal}}</td></tr>
    <tr><td>Tax</td><td class="num">{{currency .TaxAmount}}</td></tr>
    <tr class="grand"><td>Total</td><td class="num">{{currency .Total}}</td></tr>
  </table>

  {{if .Notes}}
  <div class="notes">
    <h3>Notes</h3>
    <p>{{.Notes}}</p>
  </div>
  {{end}}

  <div class="footer">Thank you for your business!</div>
</body>
</html>`))

// BuildDocumentHTML renders the default layout for an invoice or estimate.
func BuildDocumentHTML(data DocumentData) (string, error) {
	var buf bytes.Buffer
	if err := documentHTML.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
