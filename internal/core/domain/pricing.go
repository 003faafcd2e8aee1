package domain

import "github.com/shopspring/decimal"

// PricingMode selects how a document is priced. A document uses exactly one mode.
type PricingMode string

const (
	// ModeItemized prices line items individually and applies a percentage discount.
	ModeItemized PricingMode = "itemized"
	// ModePackage uses a single package cost and a flat discount amount.
	ModePackage PricingMode = "package"
)

// Valid reports whether m is a known pricing mode.
func (m PricingMode) Valid() bool {
	return m == ModeItemized || m == ModePackage
}

// PricingTerms are the user entered pricing inputs.
type PricingTerms struct {
	Mode PricingMode `json:"mode"`
	// DiscountRate is a percentage of the subtotal, itemized mode only.
	DiscountRate decimal.Decimal `json:"discountRate"`
	TaxRate      decimal.Decimal `json:"taxRate"`
	// PackageCost and FlatDiscount are used in package mode only.
	PackageCost  decimal.Decimal `json:"packageCost"`
	FlatDiscount decimal.Decimal `json:"discountAmount"`
	DiscountName string          `json:"discountName,omitempty"`
}

// PricingBreakdown is always derived from line items and PricingTerms.
type PricingBreakdown struct {
	Mode           PricingMode     `json:"mode"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TaxableAmount  decimal.Decimal `json:"taxableAmount"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	GrandTotal     decimal.Decimal `json:"grandTotal"`
}

// Equal compares two breakdowns by value.
func (p PricingBreakdown) Equal(o PricingBreakdown) bool {
	return p.Mode == o.Mode &&
		p.Subtotal.Equal(o.Subtotal) &&
		p.DiscountAmount.Equal(o.DiscountAmount) &&
		p.TaxableAmount.Equal(o.TaxableAmount) &&
		p.TaxAmount.Equal(o.TaxAmount) &&
		p.GrandTotal.Equal(o.GrandTotal)
}
