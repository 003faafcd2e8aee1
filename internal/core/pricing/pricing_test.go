package pricing_test

import (
	"testing"

	"github.com/SscSPs/invoice_generator_app/internal/apperrors"
	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	"github.com/SscSPs/invoice_generator_app/internal/core/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func item(desc, qty, rate string) domain.LineItem {
	return domain.LineItem{Description: desc, Quantity: dec(qty), Rate: dec(rate)}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "%s: want %s, got %s", field, want, got.String())
}

func TestCompute_Itemized(t *testing.T) {
	items := []domain.LineItem{item("Design", "1", "15000"), item("Dev", "1", "25000")}
	terms := domain.PricingTerms{Mode: domain.ModeItemized, TaxRate: dec("18"), DiscountRate: dec("10")}

	got := pricing.Compute(items, terms)

	assert.Equal(t, domain.ModeItemized, got.Mode)
	assertDecimal(t, "40000", got.Subtotal, "subtotal")
	assertDecimal(t, "4000", got.DiscountAmount, "discount")
	assertDecimal(t, "36000", got.TaxableAmount, "taxable")
	assertDecimal(t, "6480", got.TaxAmount, "tax")
	assertDecimal(t, "42480", got.GrandTotal, "total")
}

func TestCompute_Package(t *testing.T) {
	terms := domain.PricingTerms{Mode: domain.ModePackage, PackageCost: dec("20000"), FlatDiscount: dec("8000")}

	got := pricing.Compute([]domain.LineItem{{Description: "Website"}}, terms)

	assert.Equal(t, domain.ModePackage, got.Mode)
	assertDecimal(t, "20000", got.Subtotal, "subtotal")
	assertDecimal(t, "8000", got.DiscountAmount, "discount")
	assertDecimal(t, "12000", got.GrandTotal, "grand total")
	assertDecimal(t, "0", got.TaxAmount, "tax")
}

func TestCompute_PackageIgnoresLineItemPrices(t *testing.T) {
	terms := domain.PricingTerms{Mode: domain.ModePackage, PackageCost: dec("1000"), DiscountRate: dec("50")}

	got := pricing.Compute([]domain.LineItem{item("x", "10", "999")}, terms)

	// the percentage discount belongs to itemized mode and is not applied here
	assertDecimal(t, "1000", got.GrandTotal, "grand total")
}

func TestCompute_PackageIgnoresTaxRate(t *testing.T) {
	terms := domain.PricingTerms{
		Mode:         domain.ModePackage,
		PackageCost:  dec("20000"),
		FlatDiscount: dec("8000"),
		TaxRate:      dec("18"),
	}

	got := pricing.Compute([]domain.LineItem{{Description: "Website"}}, terms)

	assertDecimal(t, "0", got.TaxAmount, "tax")
	assertDecimal(t, "12000", got.TaxableAmount, "taxable")
	assertDecimal(t, "12000", got.GrandTotal, "grand total")
}

func TestCompute_IsDeterministicAndOrderIndependent(t *testing.T) {
	items := []domain.LineItem{
		item("a", "3", "19.99"),
		item("b", "1", "0.01"),
		item("c", "7", "1234.5"),
		item("d", "2.5", "40"),
	}
	reversed := []domain.LineItem{items[3], items[2], items[1], items[0]}
	terms := domain.PricingTerms{TaxRate: dec("12.5"), DiscountRate: dec("7")}

	first := pricing.Compute(items, terms)
	second := pricing.Compute(items, terms)
	third := pricing.Compute(reversed, terms)

	assert.True(t, first.Equal(second))
	assert.True(t, first.Subtotal.Equal(third.Subtotal))
	assert.True(t, first.GrandTotal.Equal(third.GrandTotal))
}

func TestCompute_NegativeInputsContributeZero(t *testing.T) {
	tests := []struct {
		name  string
		items []domain.LineItem
		want  string
	}{
		{"negative quantity", []domain.LineItem{item("a", "-2", "100"), item("b", "1", "50")}, "50"},
		{"negative rate", []domain.LineItem{item("a", "2", "-100"), item("b", "1", "50")}, "50"},
		{"both negative", []domain.LineItem{item("a", "-2", "-100")}, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pricing.Compute(tt.items, domain.PricingTerms{TaxRate: dec("-5"), DiscountRate: dec("-10")})
			assertDecimal(t, tt.want, got.Subtotal, "subtotal")
			assertDecimal(t, tt.want, got.GrandTotal, "grand total")
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := map[string]string{
		"":          "0",
		"abc":       "0",
		"NaN":       "0",
		"-15":       "0",
		"12.50":     "12.5",
		" 1,20,000": "120000",
		"1e3":       "1000",
	}
	for in, want := range tests {
		assertDecimal(t, want, pricing.ParseAmount(in), in)
	}
}

func TestFinalize(t *testing.T) {
	doc := domain.Document{
		Kind:   domain.KindInvoice,
		Number: "INV-2025-001",
		Client: domain.Party{Name: "Acme", Email: " Billing@Acme.COM "},
		LineItems: []domain.LineItem{
			item("Design", "1", "15000"),
			item("", "1", "500"),
			item("Dev", "1", "25000"),
		},
		Terms: domain.PricingTerms{Mode: domain.ModeItemized, TaxRate: dec("18"), DiscountRate: dec("10")},
	}

	out, err := pricing.Finalize(doc)

	require.NoError(t, err)
	assert.Len(t, out.LineItems, 2)
	assert.Equal(t, "billing@acme.com", out.Client.Email)
	assert.Equal(t, domain.StatusDraft, out.Status)
	assertDecimal(t, "42480", out.Pricing.GrandTotal, "total")
	assert.Len(t, doc.LineItems, 3, "input must not be mutated")
}

func TestFinalize_ValidationFailures(t *testing.T) {
	base := func() domain.Document {
		return domain.Document{
			Kind:      domain.KindQuotation,
			Number:    "QUO-2025-001",
			Client:    domain.Party{Name: "Acme"},
			LineItems: []domain.LineItem{item("Design", "1", "100")},
		}
	}
	tests := []struct {
		name   string
		mutate func(*domain.Document)
		msg    string
	}{
		{"missing client", func(d *domain.Document) { d.Client.Name = "  " }, domain.MsgClientNameRequired},
		{"missing number", func(d *domain.Document) { d.Number = "" }, domain.MsgNumberRequired},
		{"no items", func(d *domain.Document) { d.LineItems = nil }, domain.MsgLineItemRequired},
		{"empty description", func(d *domain.Document) { d.LineItems[0].Description = "" }, domain.MsgItemizedLineRequired},
		{"zero rate", func(d *domain.Document) { d.LineItems[0].Rate = decimal.Zero }, domain.MsgItemizedLineRequired},
		{"bad kind", func(d *domain.Document) { d.Kind = "receipt" }, domain.MsgInvalidKind},
		{"discount above package", func(d *domain.Document) {
			d.Terms = domain.PricingTerms{Mode: domain.ModePackage, PackageCost: dec("100"), FlatDiscount: dec("150")}
		}, domain.MsgDiscountExceedsCost},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := base()
			tt.mutate(&doc)
			_, err := pricing.Finalize(doc)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Equal(t, tt.msg, apperrors.Message(err, ""))
		})
	}
}
