package workspace

import (
	"time"

	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	// QuotationValidity is the default validity window of a quotation.
	QuotationValidity = 5 * 24 * time.Hour
	// InvoiceDueIn is the default time until an invoice is due.
	InvoiceDueIn = 7 * 24 * time.Hour
)

// DefaultCompany is the issuer used when none is configured.
var DefaultCompany = domain.CompanyProfile{
	Name:    "PRANAYUV TECHNOLOGIES PVT LTD",
	Tagline: "Empowering Lives through Innovation",
	Logo:    "PV",
}

var defaultClient = domain.Party{
	Name:    "Apna Advertising",
	Company: "Apna Advertising Pvt Ltd",
	Address: "Pahar Ganj, New Delhi 110055",
	Contact: "9389271138",
}

var defaultProject = domain.Project{
	Name:        "Website development (Up to 5 pages)",
	Timeline:    "3-4 weeks from advance & assets",
	Maintenance: "18 months included (1 hour/month basic updates)",
}

var defaultItems = []string{
	"Custom Website Design & Development (Up to 5 Pages)",
	"Responsive & Mobile-Friendly Layout (optimized for all devices)",
	"User-Friendly Content Management System (CMS) (easy updates without coding)",
	"Contact Form Integration",
	"Google Maps Integration",
	"Basic On-Page SEO Setup (meta tags, headings, alt text, speed optimization)",
	"Social Media Integration (Facebook, Instagram, LinkedIn links/buttons)",
	"Image Optimization & Galleries (for better SEO and user experience)",
	"Training & Documentation",
}

var defaultPackageTerms = domain.PricingTerms{
	Mode:         domain.ModePackage,
	PackageCost:  decimal.NewFromInt(20000),
	FlatDiscount: decimal.NewFromInt(8000),
	DiscountName: "Inaugural Client Discount (FIRST50)",
}

// BlankDocument is an empty working document with one blank line item.
func BlankDocument(kind domain.DocumentKind, number string, now time.Time, company domain.CompanyProfile) domain.Document {
	doc := domain.Document{
		Kind:      kind,
		Number:    number,
		Date:      now,
		Company:   company,
		LineItems: []domain.LineItem{{}},
		Terms:     domain.PricingTerms{Mode: domain.ModeItemized},
		Status:    domain.StatusDraft,
	}
	if kind == domain.KindInvoice {
		doc.PaymentTerms = domain.TermsNet15
	}
	applyDefaultDeadline(&doc, false)
	return doc
}

// SampleQuotation is the package-priced quotation the form resets to.
func SampleQuotation(number string, now time.Time, company domain.CompanyProfile) domain.Document {
	items := make([]domain.LineItem, len(defaultItems))
	for i, desc := range defaultItems {
		items[i] = domain.LineItem{Description: desc}
	}
	doc := domain.Document{
		Kind:      domain.KindQuotation,
		Number:    number,
		Date:      now,
		Company:   company,
		Client:    defaultClient,
		Project:   defaultProject,
		LineItems: items,
		Terms:     defaultPackageTerms,
		Status:    domain.StatusDraft,
	}
	applyDefaultDeadline(&doc, false)
	return doc
}

// applyDefaultDeadline sets ValidUntil (quotations) or DueDate (invoices)
// relative to the issue date. Existing deadlines are kept unless force is set.
func applyDefaultDeadline(doc *domain.Document, force bool) {
	if doc.Date.IsZero() {
		return
	}
	switch doc.Kind {
	case domain.KindQuotation:
		if doc.ValidUntil == nil || force {
			v := doc.Date.Add(QuotationValidity)
			doc.ValidUntil = &v
		}
	case domain.KindInvoice:
		if doc.DueDate == nil || force {
			v := doc.Date.Add(InvoiceDueIn)
			doc.DueDate = &v
		}
	}
}
