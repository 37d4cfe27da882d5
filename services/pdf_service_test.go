package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCustomTemplate(t *testing.T) {
	data := map[string]interface{}{
		"invoice": map[string]interface{}{
			"number": "INV-1712345678901",
			"total":  108.0,
		},
		"customer": map[string]interface{}{
			"name": "Pat Green",
		},
	}

	tests := []struct {
		name string
		tpl  string
		want string
	}{
		{
			"simple substitution",
			"<p>{{customer.name}}</p>",
			"<p>Pat Green</p>",
		},
		{
			"nested path with whitespace",
			"Invoice {{ invoice.number }} for {{customer.name}}",
			"Invoice INV-1712345678901 for Pat Green",
		},
		{
			"numeric value formatted as currency",
			"Total: {{invoice.total}}",
			"Total: $108.00",
		},
		{
			"unknown path becomes empty",
			"before {{invoice.missing}} after",
			"before  after",
		},
		{
			"unknown root becomes empty",
			"{{nope.at.all}}",
			"",
		},
		{
			"surrounding markup untouched",
			`<div class="x">static</div>`,
			`<div class="x">static</div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderCustomTemplate(tt.tpl, data))
		})
	}
}

func TestRenderCustomTemplateEscapesValues(t *testing.T) {
	data := map[string]interface{}{
		"customer": map[string]interface{}{
			"name": `<script>alert("x")</script>`,
		},
	}
	got := RenderCustomTemplate("<p>{{customer.name}}</p>", data)
	assert.NotContains(t, got, "<script>")
	assert.Contains(t, got, "&lt;script&gt;")
}

func TestLookupPath(t *testing.T) {
	data := map[string]interface{}{
		"a": map[string]interface{}{
			"b":   "deep",
			"nil": nil,
		},
		"s": "shallow",
		"f": 1234.5,
	}

	assert.Equal(t, "shallow", lookupPath(data, "s"))
	assert.Equal(t, "deep", lookupPath(data, "a.b"))
	assert.Equal(t, "$1,234.50", lookupPath(data, "f"))
	assert.Equal(t, "", lookupPath(data, "a.nil"))
	assert.Equal(t, "", lookupPath(data, "a.b.c"), "descending through a string yields nothing")
	assert.Equal(t, "", lookupPath(data, "missing"))
}

func TestBuildDocumentHTML(t *testing.T) {
	due := time.Date(2026, 5, 6, 0, 0, 0, 0, time.UTC)
	data := DocumentData{
		Kind:           "Invoice",
		Number:         "INV-42",
		Date:           time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC),
		SecondaryLabel: "Due date",
		SecondaryDate:  &due,
		CompanyName:    "GreenScape Lawn Care",
		CompanyPhone:   "5551234567",
		CustomerName:   "Pat Green",
		CustomerStreet: "12 Clover Ln",
		Lines: []DocumentLine{
			{Description: "Weekly Mowing", Quantity: 1, UnitPrice: 100, Amount: 100, TaxAmount: 8, Total: 108},
		},
		Subtotal:  100,
		TaxAmount: 8,
		Total:     108,
		Notes:     "Gate code 4321",
	}

	htmlOut, err := BuildDocumentHTML(data)
	require.NoError(t, err)

	assert.Contains(t, htmlOut, "GreenScape Lawn Care")
	assert.Contains(t, htmlOut, "INV-42")
	assert.Contains(t, htmlOut, "Weekly Mowing")
	assert.Contains(t, htmlOut, "$108.00")
	assert.Contains(t, htmlOut, "(555) 123-4567")
	assert.Contains(t, htmlOut, "Due date: May 6, 2026")
	assert.Contains(t, htmlOut, "Gate code 4321")
}

func TestBuildDocumentHTMLEstimate(t *testing.T) {
	data := DocumentData{
		Kind:         "Estimate",
		Number:       "EST-7",
		Date:         time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC),
		CompanyName:  "GreenScape Lawn Care",
		CustomerName: "Pat Green",
		Lines:        []DocumentLine{{Description: "Spring Cleanup", Quantity: 1, UnitPrice: 250, Amount: 250, Total: 250}},
		Subtotal:     250,
		Total:        250,
	}

	htmlOut, err := BuildDocumentHTML(data)
	require.NoError(t, err)

	assert.Contains(t, htmlOut, "Estimate")
	assert.Contains(t, htmlOut, "EST-7")
	assert.NotContains(t, htmlOut, "Due date:")
	assert.NotContains(t, htmlOut, "Notes")
}
