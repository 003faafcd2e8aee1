// Package render maps documents to a presentation-neutral tree.
package render

import (
	"strings"

	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	"github.com/SscSPs/invoice_generator_app/internal/core/pricing"
	"github.com/SscSPs/invoice_generator_app/internal/utils"
	"github.com/shopspring/decimal"
)

// DateLayout is the printed date format.
const DateLayout = "January 2, 2006"

// RowKind tells line-item rows apart from deliverable rows.
type RowKind string

const (
	RowLineItem    RowKind = "item"
	RowDeliverable RowKind = "deliverable"
)

// Header is the top block of a document.
type Header struct {
	Title         string                `json:"title"`
	Number        string                `json:"number"`
	Date          string                `json:"date"`
	DeadlineLabel string                `json:"deadlineLabel,omitempty"`
	Deadline      string                `json:"deadline,omitempty"`
	Status        string                `json:"status"`
	Company       domain.CompanyProfile `json:"company"`
}

// PartyBlock is a labelled address block.
type PartyBlock struct {
	Label string   `json:"label"`
	Lines []string `json:"lines"`
}

// ProjectBlock describes the engagement.
type ProjectBlock struct {
	Name        string `json:"name"`
	Summary     string `json:"summary,omitempty"`
	Timeline    string `json:"timeline,omitempty"`
	Maintenance string `json:"maintenance,omitempty"`
}

// Row is one line of the items table. Deliverable rows carry no amounts.
type Row struct {
	Kind        RowKind `json:"kind"`
	Index       int     `json:"index"`
	Description string  `json:"description"`
	Quantity    string  `json:"quantity,omitempty"`
	Rate        string  `json:"rate,omitempty"`
	Amount      string  `json:"amount,omitempty"`
}

// TotalRow is one line of the totals block.
type TotalRow struct {
	Label    string `json:"label"`
	Amount   string `json:"amount"`
	Emphasis bool   `json:"emphasis,omitempty"`
}

// RenderedDocument is the structured preview of a document.
type RenderedDocument struct {
	Header        Header        `json:"header"`
	Parties       []PartyBlock  `json:"parties"`
	Project       *ProjectBlock `json:"project,omitempty"`
	Rows          []Row         `json:"rows"`
	Totals        []TotalRow    `json:"totals"`
	AmountInWords string        `json:"amountInWords"`
	PaymentTerms  string        `json:"paymentTerms,omitempty"`
	Terms         []string      `json:"terms,omitempty"`
	Notes         string        `json:"notes,omitempty"`
}

// Render maps doc to its preview. It reads doc only and has no side effects.
// Totals are taken from doc.Pricing as stored.
func Render(doc domain.Document) RenderedDocument {
	out := RenderedDocument{
		Header:        renderHeader(doc),
		Parties:       renderParties(doc),
		Project:       renderProject(doc.Project),
		Rows:          renderRows(doc),
		Totals:        renderTotals(doc.Terms, doc.Pricing),
		AmountInWords: utils.AmountToWords(doc.Pricing.GrandTotal),
		Notes:         doc.Notes,
	}
	if doc.Kind == domain.KindInvoice && doc.PaymentTerms != "" {
		out.PaymentTerms = doc.PaymentTerms.Label()
	}
	if len(doc.Project.Terms) > 0 {
		out.Terms = append([]string(nil), doc.Project.Terms...)
	}
	return out
}

// Preview recomputes pricing from the document inputs before rendering. It is
// used for working documents whose stored breakdown may be stale.
func Preview(doc domain.Document) RenderedDocument {
	doc = doc.Clone()
	doc.Pricing = pricing.Compute(doc.LineItems, doc.Terms)
	return Render(doc)
}

func renderHeader(doc domain.Document) Header {
	h := Header{
		Title:   strings.ToUpper(string(doc.Kind)),
		Number:  doc.Number,
		Status:  strings.ToUpper(string(doc.Status)),
		Company: doc.Company,
	}
	if !doc.Date.IsZero() {
		h.Date = doc.Date.Format(DateLayout)
	}
	switch {
	case doc.Kind == domain.KindInvoice && doc.DueDate != nil:
		h.DeadlineLabel = "Due Date"
		h.Deadline = doc.DueDate.Format(DateLayout)
	case doc.ValidUntil != nil:
		h.DeadlineLabel = "Valid Until"
		h.Deadline = doc.ValidUntil.Format(DateLayout)
	}
	return h
}

func renderParties(doc domain.Document) []PartyBlock {
	label := "Prepared For"
	if doc.Kind == domain.KindInvoice {
		label = "Bill To"
	}
	lines := nonEmpty(doc.Client.Name, doc.Client.Company, doc.Client.Address, doc.Client.Contact, doc.Client.Email)
	from := nonEmpty(doc.Company.Name, doc.Company.Tagline)
	return []PartyBlock{
		{Label: "From", Lines: from},
		{Label: label, Lines: lines},
	}
}

func renderProject(p domain.Project) *ProjectBlock {
	if p.Name == "" && p.Summary == "" && p.Timeline == "" && p.Maintenance == "" {
		return nil
	}
	return &ProjectBlock{Name: p.Name, Summary: p.Summary, Timeline: p.Timeline, Maintenance: p.Maintenance}
}

func renderRows(doc domain.Document) []Row {
	rows := make([]Row, 0, len(doc.LineItems)+len(doc.Project.Deliverables))
	itemized := doc.Terms.Mode != domain.ModePackage
	for i, it := range doc.LineItems {
		row := Row{Kind: RowLineItem, Index: i + 1, Description: it.Description}
		if itemized {
			row.Quantity = pricing.NonNegative(it.Quantity).String()
			row.Rate = utils.FormatCurrency(pricing.NonNegative(it.Rate))
			row.Amount = utils.FormatCurrency(pricing.LineTotal(it))
		}
		rows = append(rows, row)
	}
	for i, d := range doc.Project.Deliverables {
		rows = append(rows, Row{Kind: RowDeliverable, Index: i + 1, Description: d})
	}
	return rows
}

func renderTotals(terms domain.PricingTerms, p domain.PricingBreakdown) []TotalRow {
	var rows []TotalRow
	if p.Mode == domain.ModePackage {
		rows = append(rows, TotalRow{Label: "Package Cost", Amount: utils.FormatCurrency(p.Subtotal)})
		if p.DiscountAmount.IsPositive() {
			label := "Discount"
			if terms.DiscountName != "" {
				label = terms.DiscountName
			}
			rows = append(rows, TotalRow{Label: label, Amount: "-" + utils.FormatCurrency(p.DiscountAmount)})
		}
		return append(rows, TotalRow{Label: "Grand Total", Amount: utils.FormatCurrency(p.GrandTotal), Emphasis: true})
	}

	rows = append(rows,
		TotalRow{Label: "Subtotal", Amount: utils.FormatCurrency(p.Subtotal)},
		TotalRow{Label: "Discount (" + percent(terms.DiscountRate) + ")", Amount: "-" + utils.FormatCurrency(p.DiscountAmount)},
		TotalRow{Label: "Taxable Amount", Amount: utils.FormatCurrency(p.TaxableAmount)},
		TotalRow{Label: "Tax (" + percent(terms.TaxRate) + ")", Amount: utils.FormatCurrency(p.TaxAmount)},
		TotalRow{Label: "Total", Amount: utils.FormatCurrency(p.GrandTotal), Emphasis: true},
	)
	return rows
}

func percent(rate decimal.Decimal) string {
	return pricing.NonNegative(rate).String() + "%"
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
