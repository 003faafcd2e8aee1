// Package generator drafts quotation content from a free-text project
// description.
package generator

import (
	"context"
	"strings"
	"time"

	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Budget ranges accepted by the generators.
const (
	BudgetMicro      = "5000-10000"
	BudgetSmall      = "10000-25000"
	BudgetMedium     = "25000-50000"
	BudgetLarge      = "50000-100000"
	BudgetEnterprise = "100000+"
)

// DefaultClientName is used when a draft has no client.
const DefaultClientName = "Valued Client"

// DefaultValidity is how long a drafted quotation stays valid.
const DefaultValidity = 15 * 24 * time.Hour

// Request is the input to a ContentGenerator.
type Request struct {
	Description   string
	Budget        string
	Template      string
	ClientName    string
	ClientEmail   string
	ClientCompany string
}

// PricedItem is one drafted line with a lump amount.
type PricedItem struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// Content is the drafted body of a quotation.
type Content struct {
	ProjectType  string       `json:"projectType"`
	ProjectName  string       `json:"projectName"`
	Summary      string       `json:"summary"`
	Deliverables []string     `json:"deliverables"`
	Timeline     string       `json:"timeline"`
	LineItems    []PricedItem `json:"lineItems"`
	Terms        []string     `json:"terms"`
}

// Total sums the drafted amounts.
func (c Content) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range c.LineItems {
		sum = sum.Add(it.Amount)
	}
	return sum
}

// ContentGenerator drafts quotation content.
type ContentGenerator interface {
	Generate(ctx context.Context, req Request) (Content, error)
}

// ApplyPreset fills Description and Budget from the named preset when they
// are empty. Unknown presets leave req unchanged.
func ApplyPreset(req Request) Request {
	p, ok := Presets[req.Template]
	if !ok {
		return req
	}
	if strings.TrimSpace(req.Description) == "" {
		req.Description = p.Description
	}
	if req.Budget == "" {
		req.Budget = p.Budget
	}
	return req
}

// ToDocument turns drafted content into a draft quotation. Each drafted amount
// becomes a single-quantity itemized line.
func ToDocument(content Content, req Request, number string, now time.Time) domain.Document {
	clientName := strings.TrimSpace(req.ClientName)
	if clientName == "" {
		clientName = DefaultClientName
	}
	items := make([]domain.LineItem, len(content.LineItems))
	for i, it := range content.LineItems {
		items[i] = domain.LineItem{Description: it.Description, Quantity: decimal.NewFromInt(1), Rate: it.Amount}
	}
	validUntil := now.Add(DefaultValidity)
	return domain.Document{
		Kind:       domain.KindQuotation,
		Number:     number,
		Date:       now,
		ValidUntil: &validUntil,
		Client: domain.Party{
			Name:    clientName,
			Company: req.ClientCompany,
			Email:   req.ClientEmail,
		},
		Project: domain.Project{
			Name:         content.ProjectName,
			Summary:      content.Summary,
			Deliverables: append([]string(nil), content.Deliverables...),
			Timeline:     content.Timeline,
			Terms:        append([]string(nil), content.Terms...),
		},
		LineItems: items,
		Terms:     domain.PricingTerms{Mode: domain.ModeItemized},
		Status:    domain.StatusDraft,
	}
}
