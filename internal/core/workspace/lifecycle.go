package workspace

import (
	"time"

	"github.com/SscSPs/invoice_generator_app/internal/apperrors"
	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	"github.com/SscSPs/invoice_generator_app/internal/core/pricing"
	"github.com/SscSPs/invoice_generator_app/internal/dto"
	"github.com/shopspring/decimal"
)

// MsgNumberTaken is returned when an issued document already uses the number.
const MsgNumberTaken = "Document number already exists"

// Generate validates the working document, issues it into history and returns
// the issued copy. On failure neither the working document nor history
// changes and the error carries the reason.
func (w *Workspace) Generate() (domain.Document, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	doc, err := pricing.Finalize(w.working)
	if err != nil {
		return domain.Document{}, err
	}
	if w.numberTaken(doc.Kind, doc.Number) {
		return domain.Document{}, apperrors.NewValidationError(MsgNumberTaken)
	}

	now := w.clock()
	doc.DocumentID = w.newID()
	if doc.Date.IsZero() {
		doc.Date = now
	}
	applyDefaultDeadline(&doc, false)
	doc.Status = domain.StatusDraft
	doc.CreatedAt = now
	doc.LastUpdatedAt = now
	if err := w.history.Add(doc); err != nil {
		return domain.Document{}, err
	}

	w.working = doc.Clone()
	w.recompute()
	return doc, nil
}

func (w *Workspace) numberTaken(kind domain.DocumentKind, number string) bool {
	return len(w.history.Select(func(d domain.Document) bool {
		return d.Kind == kind && d.Number == number
	})) > 0
}

// Convert starts a new working invoice from the quotation sourceID in
// history. The quotation is not modified.
func (w *Workspace) Convert(sourceID string) (domain.Document, error) {
	src, err := w.history.Get(sourceID)
	if err != nil {
		return domain.Document{}, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	now := w.clock()
	inv, err := ConvertToInvoice(src, w.history.NextNumber(domain.KindInvoice, now.Year()), now)
	if err != nil {
		return domain.Document{}, err
	}
	w.replaceWorking(inv, "")
	return w.working.Clone(), nil
}

// ConvertToInvoice builds a draft invoice from a quotation. Itemized lines are
// carried over with quantity 1 and the source line amount as rate. Package
// quotations keep their package cost and flat discount.
func ConvertToInvoice(src domain.Document, number string, now time.Time) (domain.Document, error) {
	if src.Kind != domain.KindQuotation {
		return domain.Document{}, apperrors.NewValidationError("Only quotations can be converted to invoices")
	}
	src = src.Clone()

	items := make([]domain.LineItem, len(src.LineItems))
	terms := domain.PricingTerms{
		Mode:         src.Terms.Mode,
		TaxRate:      src.Terms.TaxRate,
		DiscountRate: src.Terms.DiscountRate,
	}
	if src.Terms.Mode == domain.ModePackage {
		for i, it := range src.LineItems {
			items[i] = domain.LineItem{Description: it.Description}
		}
		terms.PackageCost = src.Terms.PackageCost
		terms.FlatDiscount = src.Terms.FlatDiscount
		terms.DiscountName = src.Terms.DiscountName
	} else {
		terms.Mode = domain.ModeItemized
		for i, it := range src.LineItems {
			items[i] = domain.LineItem{
				Description: it.Description,
				Quantity:    decimal.NewFromInt(1),
				Rate:        pricing.LineTotal(it),
			}
		}
	}
	if len(items) == 0 {
		items = []domain.LineItem{{}}
	}

	inv := domain.Document{
		Kind:             domain.KindInvoice,
		Number:           number,
		Date:             now,
		PaymentTerms:     domain.TermsNet15,
		Company:          src.Company,
		Client:           src.Client,
		Project:          src.Project,
		LineItems:        items,
		Terms:            terms,
		Status:           domain.StatusDraft,
		Notes:            src.Notes,
		Tags:             src.Tags,
		SourceDocumentID: src.DocumentID,
	}
	applyDefaultDeadline(&inv, false)
	inv.Pricing = pricing.Compute(inv.LineItems, inv.Terms)
	return inv, nil
}

// Open makes a copy of the history entry id the working document. The copy is
// not linked to any persisted document.
func (w *Workspace) Open(id string) (domain.Document, error) {
	doc, err := w.history.Get(id)
	if err != nil {
		return domain.Document{}, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.replaceWorking(doc, "")
	return doc.Clone(), nil
}

// Load makes a persisted document the working document. Later saves update it
// in place.
func (w *Workspace) Load(doc domain.Document) {
	w.mu.Lock()
	defer w.mu.Unlock()
	doc = doc.Clone()
	if len(doc.LineItems) == 0 {
		doc.LineItems = []domain.LineItem{{}}
	}
	w.replaceWorking(doc, doc.DocumentID)
}

// Reset replaces the working document with the sample package quotation.
func (w *Workspace) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	now := w.clock()
	w.replaceWorking(SampleQuotation(w.history.NextNumber(domain.KindQuotation, now.Year()), now, w.company), "")
}

// Export returns the working document in its wire shape.
func (w *Workspace) Export() dto.Document {
	w.mu.Lock()
	defer w.mu.Unlock()
	return dto.ToDocumentResponse(w.working, w.clock())
}

// Import replaces the working document with data previously produced by
// Export. Derived totals in the input are ignored.
func (w *Workspace) Import(in dto.Document) error {
	doc := in.ToDomain()
	if !doc.Kind.Valid() {
		return apperrors.NewValidationError(domain.MsgInvalidKind)
	}
	if !doc.Terms.Mode.Valid() {
		return apperrors.NewValidationError(domain.MsgInvalidPricingMode)
	}
	doc.Terms = pricing.Sanitize(doc.Terms)
	doc.LineItems = pricing.SanitizeItems(doc.LineItems)
	if len(doc.LineItems) == 0 {
		doc.LineItems = []domain.LineItem{{}}
	}
	if doc.Status == "" {
		doc.Status = domain.StatusDraft
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if doc.Date.IsZero() {
		doc.Date = w.clock()
	}
	w.replaceWorking(doc, "")
	return nil
}
