package mapping_test

import (
	"testing"
	"time"

	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	"github.com/SscSPs/invoice_generator_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimal128KeepsPaise(t *testing.T) {
	amount := decimal.RequireFromString("31860.45")
	assert.True(t, mapping.FromDecimal128(mapping.ToDecimal128(amount)).Equal(amount))
}

func TestDocumentRecordStoresLineTotals(t *testing.T) {
	doc := domain.Document{
		DocumentID: "d1",
		LineItems: []domain.LineItem{
			{Description: "Build", Quantity: decimal.NewFromInt(3), Rate: decimal.RequireFromString("1250.50")},
		},
	}
	rec := mapping.ToDocumentRecord(doc)
	require.Len(t, rec.Items, 1)
	assert.True(t, mapping.FromDecimal128(rec.Items[0].Total).Equal(decimal.RequireFromString("3751.5")))
}

func TestDocumentRowColumnsWin(t *testing.T) {
	doc := domain.Document{
		DocumentID:     "d1",
		Kind:           domain.KindInvoice,
		Number:         "INV-2025-001",
		Status:         domain.StatusDraft,
		IdempotencyKey: "key-1",
		Client:         domain.Party{Name: "Acme"},
		AuditFields:    domain.AuditFields{CreatedBy: "u1", CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	row, err := mapping.ToDocumentRow(doc)
	require.NoError(t, err)
	require.NotNil(t, row.IdempotencyKey)
	assert.Equal(t, "Acme", row.ClientName)

	row.Status = string(domain.StatusSent)
	back, err := mapping.FromDocumentRow(row)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSent, back.Status)
	assert.Equal(t, "key-1", back.IdempotencyKey)
	assert.Equal(t, "u1", back.CreatedBy)
	assert.Equal(t, "INV-2025-001", back.Number)
}
