// Package pricing computes document totals. Every function here is pure.
package pricing

import (
	"strings"

	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ParseAmount converts user input to a non-negative amount. Empty, non-numeric
// and negative input all yield zero.
func ParseAmount(raw string) decimal.Decimal {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return NonNegative(d)
}

// NonNegative clamps d at zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// LineTotal is quantity*rate with both operands coerced to be non-negative.
func LineTotal(item domain.LineItem) decimal.Decimal {
	return NonNegative(item.Quantity).Mul(NonNegative(item.Rate))
}

// Percent returns amount*rate/100.
func Percent(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(NonNegative(rate)).Div(hundred)
}

// Subtotal sums the line totals.
func Subtotal(items []domain.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(LineTotal(it))
	}
	return sum
}

// Compute derives the breakdown for items under terms.
//
// Itemized: subtotal is the sum of line totals, discount = subtotal*discountRate/100,
// taxable = subtotal - discount, tax = taxable*taxRate/100 and
// grandTotal = taxable + tax.
// Package: subtotal is the package cost, the discount is an absolute amount,
// line items carry no price and no tax is applied, so grandTotal = packageCost - discount.
// The tax rate and discount rate of a package document are ignored.
// Amounts are not rounded.
func Compute(items []domain.LineItem, terms domain.PricingTerms) domain.PricingBreakdown {
	out := domain.PricingBreakdown{Mode: terms.Mode, TaxAmount: decimal.Zero}
	switch terms.Mode {
	case domain.ModePackage:
		out.Subtotal = NonNegative(terms.PackageCost)
		out.DiscountAmount = NonNegative(terms.FlatDiscount)
		out.TaxableAmount = out.Subtotal.Sub(out.DiscountAmount)
	default:
		out.Mode = domain.ModeItemized
		out.Subtotal = Subtotal(items)
		out.DiscountAmount = Percent(out.Subtotal, terms.DiscountRate)
		out.TaxableAmount = out.Subtotal.Sub(out.DiscountAmount)
		out.TaxAmount = Percent(out.TaxableAmount, terms.TaxRate)
	}
	out.GrandTotal = out.TaxableAmount.Add(out.TaxAmount)
	return out
}

// Sanitize returns a copy of terms with negative inputs coerced to zero.
func Sanitize(terms domain.PricingTerms) domain.PricingTerms {
	if !terms.Mode.Valid() {
		terms.Mode = domain.ModeItemized
	}
	terms.DiscountRate = NonNegative(terms.DiscountRate)
	terms.TaxRate = NonNegative(terms.TaxRate)
	terms.PackageCost = NonNegative(terms.PackageCost)
	terms.FlatDiscount = NonNegative(terms.FlatDiscount)
	return terms
}

// SanitizeItems returns a copy of items with negative quantities and rates
// coerced to zero.
func SanitizeItems(items []domain.LineItem) []domain.LineItem {
	out := make([]domain.LineItem, len(items))
	for i, it := range items {
		out[i] = domain.LineItem{
			Description: strings.TrimSpace(it.Description),
			Quantity:    NonNegative(it.Quantity),
			Rate:        NonNegative(it.Rate),
		}
	}
	return out
}

// Finalize coerces inputs, validates doc for issue and attaches the computed
// breakdown. doc itself is left untouched.
func Finalize(doc domain.Document) (domain.Document, error) {
	doc = doc.Clone()
	doc.Terms = Sanitize(doc.Terms)
	doc.LineItems = SanitizeItems(doc.LineItems)
	out, err := domain.PrepareForIssue(doc)
	if err != nil {
		return domain.Document{}, err
	}
	out.Pricing = Compute(out.LineItems, out.Terms)
	return out, nil
}
