package dto

import (
	"time"

	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	"github.com/SscSPs/invoice_generator_app/internal/core/pricing"
	"github.com/shopspring/decimal"
)

// CompanyPayload is the issuer block.
type CompanyPayload struct {
	Name    string `json:"name"`
	Tagline string `json:"tagline,omitempty"`
	Logo    string `json:"logo,omitempty" binding:"max=3"`
}

// DocumentMeta groups numbering, dates and lifecycle fields.
type DocumentMeta struct {
	Number       string     `json:"number" binding:"required"`
	Date         time.Time  `json:"date"`
	ValidUntil   *time.Time `json:"validUntil,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	PaymentTerms string     `json:"paymentTerms,omitempty" binding:"omitempty,paymentterms"`
	Status       string     `json:"status,omitempty" binding:"omitempty,docstatus"`
}

// PartyPayload is the client block.
type PartyPayload struct {
	Name    string `json:"name" binding:"required"`
	Company string `json:"company,omitempty"`
	Address string `json:"address,omitempty"`
	Contact string `json:"contact,omitempty"`
	Email   string `json:"email,omitempty" binding:"omitempty,email"`
}

// ProjectPayload describes the engagement.
type ProjectPayload struct {
	Name         string   `json:"name"`
	Summary      string   `json:"summary,omitempty"`
	Delivery     string   `json:"delivery,omitempty"`
	Maintenance  string   `json:"maintenance,omitempty"`
	Deliverables []string `json:"deliverables,omitempty"`
	Terms        []string `json:"terms,omitempty"`
}

// LineItemPayload is one row. Total is output only.
type LineItemPayload struct {
	Description string           `json:"description"`
	Quantity    decimal.Decimal  `json:"quantity"`
	Rate        decimal.Decimal  `json:"rate"`
	Total       *decimal.Decimal `json:"total,omitempty"`
}

// PricingPayload carries the pricing inputs. The derived fields are filled on
// responses and ignored on requests.
type PricingPayload struct {
	Mode           string          `json:"mode,omitempty" binding:"omitempty,pricingmode"`
	PackageCost    decimal.Decimal `json:"packageCost"`
	DiscountName   string          `json:"discountName,omitempty"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	DiscountRate   decimal.Decimal `json:"discountRate"`
	TaxRate        decimal.Decimal `json:"taxRate"`

	Subtotal      *decimal.Decimal `json:"subtotal,omitempty"`
	TaxableAmount *decimal.Decimal `json:"taxableAmount,omitempty"`
	TaxAmount     *decimal.Decimal `json:"taxAmount,omitempty"`
	GrandTotal    *decimal.Decimal `json:"grandTotal,omitempty"`
}

// Document is the wire shape of a quotation or invoice, grouped as
// company/invoice/client/project/items/pricing.
type Document struct {
	ID               string            `json:"id,omitempty"`
	Kind             string            `json:"kind,omitempty" binding:"omitempty,dockind"`
	Company          CompanyPayload    `json:"company"`
	Invoice          DocumentMeta      `json:"invoice"`
	Client           PartyPayload      `json:"client"`
	Project          ProjectPayload    `json:"project"`
	Items            []LineItemPayload `json:"items" binding:"required,min=1"`
	Pricing          PricingPayload    `json:"pricing"`
	Notes            string            `json:"notes,omitempty"`
	Tags             []string          `json:"tags,omitempty"`
	SourceDocumentID string            `json:"sourceDocumentId,omitempty"`

	// Server assigned, ignored on requests.
	CreatedBy string     `json:"createdBy,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	AgeInDays *int       `json:"ageInDays,omitempty"`
	IsExpired *bool      `json:"isExpired,omitempty"`
}

// ToDomain converts the payload to a domain document. Server assigned fields
// and derived totals are not copied.
func (d Document) ToDomain() domain.Document {
	kind := domain.DocumentKind(d.Kind)
	if kind == "" {
		kind = domain.KindInvoice
	}
	mode := domain.PricingMode(d.Pricing.Mode)
	if mode == "" {
		mode = domain.ModeItemized
	}
	items := make([]domain.LineItem, len(d.Items))
	for i, it := range d.Items {
		items[i] = domain.LineItem{Description: it.Description, Quantity: it.Quantity, Rate: it.Rate}
	}
	// discountAmount is an input only for package pricing. On itemized
	// documents it echoes the computed percentage discount.
	var flatDiscount decimal.Decimal
	if mode == domain.ModePackage {
		flatDiscount = d.Pricing.DiscountAmount
	}
	return domain.Document{
		DocumentID:   d.ID,
		Kind:         kind,
		Number:       d.Invoice.Number,
		Date:         d.Invoice.Date,
		ValidUntil:   d.Invoice.ValidUntil,
		DueDate:      d.Invoice.DueDate,
		PaymentTerms: domain.PaymentTerms(d.Invoice.PaymentTerms),
		Status:       domain.DocumentStatus(d.Invoice.Status),
		Company:      domain.CompanyProfile(d.Company),
		Client: domain.Party{
			Name:    d.Client.Name,
			Company: d.Client.Company,
			Address: d.Client.Address,
			Contact: d.Client.Contact,
			Email:   d.Client.Email,
		},
		Project: domain.Project{
			Name:         d.Project.Name,
			Summary:      d.Project.Summary,
			Timeline:     d.Project.Delivery,
			Maintenance:  d.Project.Maintenance,
			Deliverables: d.Project.Deliverables,
			Terms:        d.Project.Terms,
		},
		LineItems: items,
		Terms: domain.PricingTerms{
			Mode:         mode,
			DiscountRate: d.Pricing.DiscountRate,
			TaxRate:      d.Pricing.TaxRate,
			PackageCost:  d.Pricing.PackageCost,
			FlatDiscount: flatDiscount,
			DiscountName: d.Pricing.DiscountName,
		},
		Notes:            d.Notes,
		Tags:             d.Tags,
		SourceDocumentID: d.SourceDocumentID,
	}
}

// FromDomain builds the wire shape without server-only fields.
func FromDomain(doc domain.Document) Document {
	items := make([]LineItemPayload, len(doc.LineItems))
	for i, it := range doc.LineItems {
		items[i] = LineItemPayload{Description: it.Description, Quantity: it.Quantity, Rate: it.Rate}
	}
	return Document{
		ID:      doc.DocumentID,
		Kind:    string(doc.Kind),
		Company: CompanyPayload(doc.Company),
		Invoice: DocumentMeta{
			Number:       doc.Number,
			Date:         doc.Date,
			ValidUntil:   doc.ValidUntil,
			DueDate:      doc.DueDate,
			PaymentTerms: string(doc.PaymentTerms),
			Status:       string(doc.Status),
		},
		Client: PartyPayload{
			Name:    doc.Client.Name,
			Company: doc.Client.Company,
			Address: doc.Client.Address,
			Contact: doc.Client.Contact,
			Email:   doc.Client.Email,
		},
		Project: ProjectPayload{
			Name:         doc.Project.Name,
			Summary:      doc.Project.Summary,
			Delivery:     doc.Project.Timeline,
			Maintenance:  doc.Project.Maintenance,
			Deliverables: doc.Project.Deliverables,
			Terms:        doc.Project.Terms,
		},
		Items: items,
		Pricing: PricingPayload{
			Mode:           string(doc.Terms.Mode),
			PackageCost:    doc.Terms.PackageCost,
			DiscountName:   doc.Terms.DiscountName,
			DiscountAmount: doc.Terms.FlatDiscount,
			DiscountRate:   doc.Terms.DiscountRate,
			TaxRate:        doc.Terms.TaxRate,
		},
		Notes:            doc.Notes,
		Tags:             doc.Tags,
		SourceDocumentID: doc.SourceDocumentID,
	}
}

// ToDocumentResponse is FromDomain plus line totals, the derived breakdown,
// audit fields and the age/expiry virtuals.
func ToDocumentResponse(doc domain.Document, now time.Time) Document {
	out := FromDomain(doc)
	for i, it := range doc.LineItems {
		total := pricing.LineTotal(it)
		out.Items[i].Total = &total
	}
	p := doc.Pricing
	out.Pricing.DiscountAmount = p.DiscountAmount
	out.Pricing.Subtotal = &p.Subtotal
	out.Pricing.TaxableAmount = &p.TaxableAmount
	out.Pricing.TaxAmount = &p.TaxAmount
	out.Pricing.GrandTotal = &p.GrandTotal
	out.CreatedBy = doc.CreatedBy
	if !doc.CreatedAt.IsZero() {
		createdAt, updatedAt := doc.CreatedAt, doc.LastUpdatedAt
		out.CreatedAt = &createdAt
		out.UpdatedAt = &updatedAt
	}
	age := doc.AgeInDays(now)
	expired := doc.IsExpired(now)
	out.AgeInDays = &age
	out.IsExpired = &expired
	return out
}

// ToDocumentResponses converts a slice of documents.
func ToDocumentResponses(docs []domain.Document, now time.Time) []Document {
	out := make([]Document, len(docs))
	for i := range docs {
		out[i] = ToDocumentResponse(docs[i], now)
	}
	return out
}

// UpdateStatusRequest is the body of PATCH /invoices/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListDocumentsParams are the query parameters of GET /invoices.
type ListDocumentsParams struct {
	Status string `form:"status" binding:"omitempty,docstatus"`
	Kind   string `form:"kind" binding:"omitempty,dockind"`
	Page   int    `form:"page,default=1" binding:"min=1"`
	Limit  int    `form:"limit,default=10" binding:"min=1,max=100"`
	SortBy string `form:"sortBy,default=-createdAt" binding:"omitempty,sortfield"`
}

// ToQuery converts the parameters to a repository query for owner.
func (p ListDocumentsParams) ToQuery(ownerID string) domain.DocumentQuery {
	return domain.DocumentQuery{
		OwnerID: ownerID,
		Kind:    domain.DocumentKind(p.Kind),
		Status:  domain.DocumentStatus(p.Status),
		Page:    p.Page,
		Limit:   p.Limit,
		SortBy:  p.SortBy,
	}.Normalize()
}

// StatusSummaryResponse is one status bucket.
type StatusSummaryResponse struct {
	ID    string          `json:"_id"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// StatsResponse is returned by GET /invoices/stats.
type StatsResponse struct {
	StatusStats   []StatusSummaryResponse `json:"statusStats"`
	TotalInvoices int                     `json:"totalInvoices"`
	TotalRevenue  decimal.Decimal         `json:"totalRevenue"`
}

// ToStatsResponse flattens stats in lifecycle order, skipping empty buckets.
func ToStatsResponse(stats domain.DocumentStats) StatsResponse {
	out := StatsResponse{
		StatusStats:   []StatusSummaryResponse{},
		TotalInvoices: stats.TotalDocuments,
		TotalRevenue:  stats.TotalRevenue,
	}
	for _, s := range domain.AllStatuses {
		sum, ok := stats.ByStatus[s]
		if !ok {
			continue
		}
		out.StatusStats = append(out.StatusStats, StatusSummaryResponse{ID: string(s), Count: sum.Count, Total: sum.Total})
	}
	return out
}
