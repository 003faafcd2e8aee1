// Package workspace owns the working document being edited and the local
// history of issued documents.
//
// A Workspace is the only place the working document is mutated. Edits mark it
// dirty; Recompute derives pricing and the preview synchronously. Callers that
// want debounced previews own the timer and call Recompute themselves.
package workspace

import (
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/invoice_generator_app/internal/apperrors"
	"github.com/SscSPs/invoice_generator_app/internal/core/catalog"
	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	"github.com/SscSPs/invoice_generator_app/internal/core/pricing"
	"github.com/SscSPs/invoice_generator_app/internal/core/render"
	"github.com/google/uuid"
)

// Workspace holds one working document and the history it is issued into.
type Workspace struct {
	mu sync.Mutex

	working domain.Document
	history *catalog.Catalog
	company domain.CompanyProfile

	clock func() time.Time
	newID func() string

	dirty   bool
	preview render.RenderedDocument

	saving      bool
	saveKey     string
	persistedID string
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithClock overrides time.Now.
func WithClock(clock func() time.Time) Option {
	return func(w *Workspace) { w.clock = clock }
}

// WithIDGenerator overrides the id source used for issued documents and
// idempotency keys.
func WithIDGenerator(gen func() string) Option {
	return func(w *Workspace) { w.newID = gen }
}

// WithHistory attaches an existing catalog, e.g. one restored from disk.
func WithHistory(history *catalog.Catalog) Option {
	return func(w *Workspace) { w.history = history }
}

// WithCompany sets the issuer block used for new documents.
func WithCompany(company domain.CompanyProfile) Option {
	return func(w *Workspace) { w.company = company }
}

// New creates a workspace with a blank working document of kind.
func New(kind domain.DocumentKind, opts ...Option) *Workspace {
	w := &Workspace{
		history: catalog.New(),
		company: DefaultCompany,
		clock:   time.Now,
		newID:   func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(w)
	}
	w.start(kind)
	return w
}

// Start discards the working document and begins a blank one of kind with
// the next free number.
func (w *Workspace) Start(kind domain.DocumentKind) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.start(kind)
}

func (w *Workspace) start(kind domain.DocumentKind) {
	if !kind.Valid() {
		kind = domain.KindInvoice
	}
	now := w.clock()
	w.replaceWorking(BlankDocument(kind, w.history.NextNumber(kind, now.Year()), now, w.company), "")
}

// replaceWorking swaps the working document and resets save bookkeeping.
// Callers hold mu.
func (w *Workspace) replaceWorking(doc domain.Document, persistedID string) {
	w.working = doc
	w.persistedID = persistedID
	w.saveKey = ""
	w.recompute()
}

// History exposes the catalog of issued documents.
func (w *Workspace) History() *catalog.Catalog {
	return w.history
}

// Working returns a copy of the working document.
func (w *Workspace) Working() domain.Document {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.working.Clone()
}

// Dirty reports whether the working document changed since the last
// Recompute.
func (w *Workspace) Dirty() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dirty
}

// Recompute derives pricing and the preview from the working document and
// clears the dirty flag. Calling it again without edits yields the same
// result.
func (w *Workspace) Recompute() render.RenderedDocument {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.recompute()
}

func (w *Workspace) recompute() render.RenderedDocument {
	w.working.Pricing = pricing.Compute(w.working.LineItems, w.working.Terms)
	w.preview = render.Render(w.working)
	w.dirty = false
	return w.preview
}

// Preview returns the preview from the last Recompute. It may be stale while
// Dirty is true.
func (w *Workspace) Preview() render.RenderedDocument {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.preview
}

// Pricing returns the breakdown from the last Recompute.
func (w *Workspace) Pricing() domain.PricingBreakdown {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.working.Pricing
}

// edit applies fn to the working document under the lock and marks it dirty.
func (w *Workspace) edit(fn func(doc *domain.Document)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn(&w.working)
	w.dirty = true
}

// AddLineItem appends a blank line item.
func (w *Workspace) AddLineItem() {
	w.edit(func(doc *domain.Document) {
		doc.LineItems = append(doc.LineItems, domain.LineItem{})
	})
}

// RemoveLineItem drops the item at index. The last remaining item cannot be
// removed.
func (w *Workspace) RemoveLineItem(index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.working.LineItems) <= 1 {
		return apperrors.NewValidationError(domain.MsgLineItemFloor)
	}
	if index < 0 || index >= len(w.working.LineItems) {
		return apperrors.NewValidationError("Line item does not exist")
	}
	items := make([]domain.LineItem, 0, len(w.working.LineItems)-1)
	items = append(items, w.working.LineItems[:index]...)
	w.working.LineItems = append(items, w.working.LineItems[index+1:]...)
	w.dirty = true
	return nil
}

// SetLineItem updates the item at index from raw form input. Quantity and
// rate are parsed leniently; invalid or negative values become zero.
func (w *Workspace) SetLineItem(index int, description, quantity, rate string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if index < 0 || index >= len(w.working.LineItems) {
		return apperrors.NewValidationError("Line item does not exist")
	}
	w.working.LineItems[index] = domain.LineItem{
		Description: description,
		Quantity:    pricing.ParseAmount(quantity),
		Rate:        pricing.ParseAmount(rate),
	}
	w.dirty = true
	return nil
}

// SetLineItems replaces every line item. An empty list leaves one blank item.
func (w *Workspace) SetLineItems(items []domain.LineItem) {
	w.edit(func(doc *domain.Document) {
		doc.LineItems = pricing.SanitizeItems(items)
		if len(doc.LineItems) == 0 {
			doc.LineItems = []domain.LineItem{{}}
		}
	})
}

func (w *Workspace) SetClient(client domain.Party) {
	w.edit(func(doc *domain.Document) { doc.Client = client })
}

func (w *Workspace) SetCompany(company domain.CompanyProfile) {
	w.edit(func(doc *domain.Document) { doc.Company = company })
}

func (w *Workspace) SetProject(project domain.Project) {
	w.edit(func(doc *domain.Document) {
		project.Deliverables = append([]string(nil), project.Deliverables...)
		project.Terms = append([]string(nil), project.Terms...)
		doc.Project = project
	})
}

func (w *Workspace) SetNumber(number string) {
	w.edit(func(doc *domain.Document) { doc.Number = strings.TrimSpace(number) })
}

// SetDate sets the issue date and moves the default deadline with it.
func (w *Workspace) SetDate(date time.Time) {
	w.edit(func(doc *domain.Document) {
		doc.Date = date
		applyDefaultDeadline(doc, true)
	})
}

func (w *Workspace) SetNotes(notes string) {
	w.edit(func(doc *domain.Document) { doc.Notes = notes })
}

// SetTaxRate sets the tax percentage from raw input.
func (w *Workspace) SetTaxRate(raw string) {
	w.edit(func(doc *domain.Document) { doc.Terms.TaxRate = pricing.ParseAmount(raw) })
}

// SetDiscountRate sets the itemized discount percentage from raw input.
func (w *Workspace) SetDiscountRate(raw string) {
	w.edit(func(doc *domain.Document) { doc.Terms.DiscountRate = pricing.ParseAmount(raw) })
}

// SetPackage sets the package cost and its flat discount from raw input.
func (w *Workspace) SetPackage(cost, discount, discountName string) {
	w.edit(func(doc *domain.Document) {
		doc.Terms.PackageCost = pricing.ParseAmount(cost)
		doc.Terms.FlatDiscount = pricing.ParseAmount(discount)
		doc.Terms.DiscountName = strings.TrimSpace(discountName)
	})
}

// SetMode switches the pricing mode. Inputs of the other mode are kept but
// ignored by pricing.
func (w *Workspace) SetMode(mode domain.PricingMode) error {
	if !mode.Valid() {
		return apperrors.NewValidationError(domain.MsgInvalidPricingMode)
	}
	w.edit(func(doc *domain.Document) { doc.Terms.Mode = mode })
	return nil
}

// SetPaymentTerms sets the invoice payment terms.
func (w *Workspace) SetPaymentTerms(terms domain.PaymentTerms) error {
	switch terms {
	case domain.TermsImmediate, domain.TermsNet15, domain.TermsNet30, domain.TermsNet60:
	default:
		return apperrors.NewValidationError("Invalid payment terms")
	}
	w.edit(func(doc *domain.Document) { doc.PaymentTerms = terms })
	return nil
}
