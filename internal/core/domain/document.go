package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind distinguishes quotations from invoices.
type DocumentKind string

const (
	KindQuotation DocumentKind = "quotation"
	KindInvoice   DocumentKind = "invoice"
)

// Valid reports whether k is a known document kind.
func (k DocumentKind) Valid() bool {
	return k == KindQuotation || k == KindInvoice
}

// NumberPrefix is the human document number prefix for the kind.
func (k DocumentKind) NumberPrefix() string {
	if k == KindInvoice {
		return "INV"
	}
	return "QUO"
}

// NextNumber returns the first free number for kind after the len(used)
// existing ones, e.g. QUO-2025-004. Numbers in used are skipped, so a gap left
// by a deleted document never yields a duplicate.
func NextNumber(kind DocumentKind, year int, used []string) string {
	taken := make(map[string]struct{}, len(used))
	for _, n := range used {
		taken[n] = struct{}{}
	}
	for n := len(used) + 1; ; n++ {
		candidate := fmt.Sprintf("%s-%d-%03d", kind.NumberPrefix(), year, n)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}

// PaymentTerms is the due-date policy printed on invoices.
type PaymentTerms string

const (
	TermsImmediate PaymentTerms = "immediate"
	TermsNet15     PaymentTerms = "net15"
	TermsNet30     PaymentTerms = "net30"
	TermsNet60     PaymentTerms = "net60"
)

// Label is the printable form of the payment terms.
func (t PaymentTerms) Label() string {
	switch t {
	case TermsImmediate:
		return "Due on Receipt"
	case TermsNet15:
		return "Net 15 Days"
	case TermsNet30:
		return "Net 30 Days"
	case TermsNet60:
		return "Net 60 Days"
	default:
		return string(t)
	}
}

// LineItem is one billable row. In package mode only Description is meaningful.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
}

// Party is a client or contact block. All fields are freeform.
type Party struct {
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	Address string `json:"address,omitempty"`
	Contact string `json:"contact,omitempty"`
	Email   string `json:"email,omitempty"`
}

// CompanyProfile is the issuer block printed on every document.
type CompanyProfile struct {
	Name    string `json:"name"`
	Tagline string `json:"tagline,omitempty"`
	Logo    string `json:"logo,omitempty"` // up to 3 characters
}

// Project describes the engagement a document is issued for.
type Project struct {
	Name         string   `json:"name"`
	Summary      string   `json:"summary,omitempty"`
	Deliverables []string `json:"deliverables,omitempty"`
	Timeline     string   `json:"timeline,omitempty"`
	Maintenance  string   `json:"maintenance,omitempty"`
	Terms        []string `json:"terms,omitempty"`
}

// Document is a quotation or invoice.
type Document struct {
	DocumentID       string           `json:"id"`
	Kind             DocumentKind     `json:"kind"`
	Number           string           `json:"number"`
	Date             time.Time        `json:"date"`
	ValidUntil       *time.Time       `json:"validUntil,omitempty"`
	DueDate          *time.Time       `json:"dueDate,omitempty"`
	PaymentTerms     PaymentTerms     `json:"paymentTerms,omitempty"`
	Company          CompanyProfile   `json:"company"`
	Client           Party            `json:"client"`
	Project          Project          `json:"project"`
	LineItems        []LineItem       `json:"items"`
	Terms            PricingTerms     `json:"pricingTerms"`
	Pricing          PricingBreakdown `json:"pricing"`
	Status           DocumentStatus   `json:"status"`
	Notes            string           `json:"notes,omitempty"`
	Tags             []string         `json:"tags,omitempty"`
	SourceDocumentID string           `json:"sourceDocumentId,omitempty"`
	IdempotencyKey   string           `json:"-"`
	AuditFields
}

// Clone returns a deep copy so callers never share slices with history.
func (d Document) Clone() Document {
	c := d
	c.LineItems = append([]LineItem(nil), d.LineItems...)
	c.Project.Deliverables = append([]string(nil), d.Project.Deliverables...)
	c.Project.Terms = append([]string(nil), d.Project.Terms...)
	c.Tags = append([]string(nil), d.Tags...)
	if d.ValidUntil != nil {
		v := *d.ValidUntil
		c.ValidUntil = &v
	}
	if d.DueDate != nil {
		v := *d.DueDate
		c.DueDate = &v
	}
	return c
}

// AgeInDays is the number of whole days since the document was created.
func (d Document) AgeInDays(now time.Time) int {
	if d.CreatedAt.IsZero() {
		return 0
	}
	return int(now.Sub(d.CreatedAt).Hours() / 24)
}

// IsExpired reports whether the validity window (quotations) or due date
// (invoices) has passed while the document is still open.
func (d Document) IsExpired(now time.Time) bool {
	if d.Status == StatusPaid || d.Status == StatusCancelled {
		return false
	}
	deadline := d.ValidUntil
	if d.Kind == KindInvoice && d.DueDate != nil {
		deadline = d.DueDate
	}
	return deadline != nil && now.After(*deadline)
}

// MatchesQuery performs the case-insensitive substring match used by search:
// document number, client name, client company and project name.
func (d Document) MatchesQuery(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	for _, field := range []string{d.Number, d.Client.Name, d.Client.Company, d.Project.Name} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// DocumentFilter is the history list filter.
type DocumentFilter string

const (
	FilterAll        DocumentFilter = "all"
	FilterQuotations DocumentFilter = "quotations"
	FilterInvoices   DocumentFilter = "invoices"
)

// Accepts reports whether a document of kind k passes the filter.
func (f DocumentFilter) Accepts(k DocumentKind) bool {
	switch f {
	case FilterQuotations:
		return k == KindQuotation
	case FilterInvoices:
		return k == KindInvoice
	default:
		return true
	}
}

// DocumentQuery carries list parameters for persisted documents.
type DocumentQuery struct {
	OwnerID string
	Kind    DocumentKind
	Status  DocumentStatus
	Page    int
	Limit   int
	// SortBy is a field name, prefixed with '-' for descending order.
	SortBy string
}

const (
	DefaultPage      = 1
	DefaultPageLimit = 10
	MaxPageLimit     = 100
	DefaultSortBy    = "-createdAt"
	SearchLimit      = 20
)

// Normalize fills defaults and clamps paging values.
func (q DocumentQuery) Normalize() DocumentQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}
	if q.SortBy == "" {
		q.SortBy = DefaultSortBy
	}
	return q
}

// Offset is the number of records skipped before the current page.
func (q DocumentQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// SortField splits SortBy into a field and direction.
func (q DocumentQuery) SortField() (field string, descending bool) {
	field = q.SortBy
	if strings.HasPrefix(field, "-") {
		return strings.TrimPrefix(field, "-"), true
	}
	return field, false
}
