package domain

import (
	"strings"

	"github.com/SscSPs/invoice_generator_app/internal/apperrors"
)

// Validation messages shown to users.
const (
	MsgClientNameRequired   = "Client name is required"
	MsgNumberRequired       = "Document number is required"
	MsgLineItemRequired     = "At least one line item is required"
	MsgItemizedLineRequired = "At least one line item needs a description, a positive quantity and a positive rate"
	MsgDiscountExceedsCost  = "Discount cannot exceed the package cost"
	MsgLineItemFloor        = "You must have at least one line item."
	MsgInvalidKind          = "Invalid document kind"
	MsgInvalidPricingMode   = "Invalid pricing mode"
)

// IsValidLineItem reports whether item can be billed under mode.
func IsValidLineItem(item LineItem, mode PricingMode) bool {
	if strings.TrimSpace(item.Description) == "" {
		return false
	}
	if mode == ModePackage {
		return true
	}
	return item.Quantity.IsPositive() && item.Rate.IsPositive()
}

// BillableLineItems drops rows that cannot be billed. Package mode rows keep
// only their description.
func BillableLineItems(items []LineItem, mode PricingMode) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, it := range items {
		if !IsValidLineItem(it, mode) {
			continue
		}
		it.Description = strings.TrimSpace(it.Description)
		if mode == ModePackage {
			it = LineItem{Description: it.Description}
		}
		out = append(out, it)
	}
	return out
}

// PrepareForIssue validates doc and returns a copy with only billable line
// items. The returned error wraps apperrors.ErrValidation and carries the
// specific reason.
func PrepareForIssue(doc Document) (Document, error) {
	if !doc.Kind.Valid() {
		return Document{}, apperrors.NewValidationError(MsgInvalidKind)
	}
	if doc.Terms.Mode == "" {
		doc.Terms.Mode = ModeItemized
	}
	if !doc.Terms.Mode.Valid() {
		return Document{}, apperrors.NewValidationError(MsgInvalidPricingMode)
	}
	if strings.TrimSpace(doc.Client.Name) == "" {
		return Document{}, apperrors.NewValidationError(MsgClientNameRequired)
	}
	if strings.TrimSpace(doc.Number) == "" {
		return Document{}, apperrors.NewValidationError(MsgNumberRequired)
	}
	if len(doc.LineItems) == 0 {
		return Document{}, apperrors.NewValidationError(MsgLineItemRequired)
	}
	billable := BillableLineItems(doc.LineItems, doc.Terms.Mode)
	if len(billable) == 0 {
		if doc.Terms.Mode == ModeItemized {
			return Document{}, apperrors.NewValidationError(MsgItemizedLineRequired)
		}
		return Document{}, apperrors.NewValidationError(MsgLineItemRequired)
	}
	if doc.Terms.Mode == ModePackage && doc.Terms.FlatDiscount.GreaterThan(doc.Terms.PackageCost) {
		return Document{}, apperrors.NewValidationError(MsgDiscountExceedsCost)
	}

	out := doc.Clone()
	out.Number = strings.TrimSpace(doc.Number)
	out.Client.Name = strings.TrimSpace(doc.Client.Name)
	out.Client.Email = strings.ToLower(strings.TrimSpace(doc.Client.Email))
	out.LineItems = billable
	if out.Status == "" {
		out.Status = StatusDraft
	}
	return out, nil
}
