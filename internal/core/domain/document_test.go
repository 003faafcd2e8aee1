package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/invoice_generator_app/internal/apperrors"
	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to domain.DocumentStatus
		want     bool
	}{
		{domain.StatusDraft, domain.StatusSent, true},
		{domain.StatusDraft, domain.StatusCancelled, true},
		{domain.StatusDraft, domain.StatusPaid, false},
		{domain.StatusSent, domain.StatusPaid, true},
		{domain.StatusSent, domain.StatusCancelled, true},
		{domain.StatusSent, domain.StatusDraft, false},
		{domain.StatusPaid, domain.StatusCancelled, false},
		{domain.StatusCancelled, domain.StatusDraft, false},
		{domain.StatusPaid, domain.StatusPaid, true},
		{domain.StatusDraft, "archived", false},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, domain.CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestParseStatus(t *testing.T) {
	s, err := domain.ParseStatus(" PAID ")
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, s)

	_, err = domain.ParseStatus("refunded")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestMatchesQuery(t *testing.T) {
	doc := domain.Document{
		Number:  "QUO-2025-007",
		Client:  domain.Party{Name: "Ravi", Company: "Apna Advertising Pvt Ltd"},
		Project: domain.Project{Name: "Brand Website"},
	}
	assert.True(t, doc.MatchesQuery("apna"))
	assert.True(t, doc.MatchesQuery("quo-2025"))
	assert.True(t, doc.MatchesQuery("WEBSITE"))
	assert.True(t, doc.MatchesQuery("ravi"))
	assert.False(t, doc.MatchesQuery("zzz"))
	assert.False(t, doc.MatchesQuery("   "))
}

func TestSummarizeDocuments(t *testing.T) {
	mk := func(status domain.DocumentStatus, total int64) domain.Document {
		return domain.Document{Status: status, Pricing: domain.PricingBreakdown{GrandTotal: decimal.NewFromInt(total)}}
	}
	stats := domain.SummarizeDocuments([]domain.Document{
		mk(domain.StatusPaid, 100),
		mk(domain.StatusPaid, 250),
		mk(domain.StatusDraft, 75),
		mk(domain.StatusCancelled, 10),
	})

	assert.Equal(t, 4, stats.TotalDocuments)
	assert.True(t, decimal.NewFromInt(350).Equal(stats.TotalRevenue))
	assert.Equal(t, 2, stats.ByStatus[domain.StatusPaid].Count)
	assert.True(t, decimal.NewFromInt(75).Equal(stats.ByStatus[domain.StatusDraft].Total))
	_, hasSent := stats.ByStatus[domain.StatusSent]
	assert.False(t, hasSent)
}

func TestIsExpired(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 1)

	assert.True(t, domain.Document{Kind: domain.KindQuotation, Status: domain.StatusSent, ValidUntil: &past}.IsExpired(now))
	assert.False(t, domain.Document{Kind: domain.KindQuotation, Status: domain.StatusSent, ValidUntil: &future}.IsExpired(now))
	assert.False(t, domain.Document{Kind: domain.KindInvoice, Status: domain.StatusPaid, DueDate: &past}.IsExpired(now))
	assert.True(t, domain.Document{Kind: domain.KindInvoice, Status: domain.StatusDraft, DueDate: &past}.IsExpired(now))
}

func TestDocumentQueryNormalize(t *testing.T) {
	q := domain.DocumentQuery{Limit: 500}.Normalize()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, domain.MaxPageLimit, q.Limit)
	field, desc := q.SortField()
	assert.Equal(t, "createdAt", field)
	assert.True(t, desc)
	assert.Equal(t, 0, q.Offset())
}

func TestNextNumber(t *testing.T) {
	tests := []struct {
		name string
		kind domain.DocumentKind
		used []string
		want string
	}{
		{"first quotation", domain.KindQuotation, nil, "QUO-2025-001"},
		{"follows count", domain.KindInvoice, []string{"INV-2025-001", "INV-2025-002"}, "INV-2025-003"},
		{"gap after delete", domain.KindInvoice, []string{"INV-2025-002"}, "INV-2025-003"},
		{"skips taken", domain.KindInvoice, []string{"INV-2025-002", "INV-2025-003"}, "INV-2025-004"},
		{"custom numbers", domain.KindQuotation, []string{"Q-A", "Q-B"}, "QUO-2025-003"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.NextNumber(tt.kind, 2025, tt.used))
		})
	}
}
