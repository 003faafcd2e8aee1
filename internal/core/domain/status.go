package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/invoice_generator_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// DocumentStatus is the lifecycle state of a document.
type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "draft"
	StatusSent      DocumentStatus = "sent"
	StatusPaid      DocumentStatus = "paid"
	StatusCancelled DocumentStatus = "cancelled"
)

// AllStatuses lists the statuses in lifecycle order.
var AllStatuses = []DocumentStatus{StatusDraft, StatusSent, StatusPaid, StatusCancelled}

var transitions = map[DocumentStatus][]DocumentStatus{
	StatusDraft: {StatusSent, StatusCancelled},
	StatusSent:  {StatusPaid, StatusCancelled},
}

// Valid reports whether s is one of the four lifecycle statuses.
func (s DocumentStatus) Valid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ParseStatus validates a raw status value.
func ParseStatus(raw string) (DocumentStatus, error) {
	s := DocumentStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: Invalid status", apperrors.ErrValidation)
	}
	return s, nil
}

// CanTransition reports whether from -> to is allowed. Setting the current
// status again is accepted as a no-op.
func CanTransition(from, to DocumentStatus) bool {
	if !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// StatusSummary aggregates documents sharing one status.
type StatusSummary struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// DocumentStats is the status-grouped aggregate over a set of documents.
type DocumentStats struct {
	ByStatus       map[DocumentStatus]StatusSummary `json:"byStatus"`
	TotalDocuments int                              `json:"totalDocuments"`
	// TotalRevenue sums grand totals of paid documents only.
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
}

// SummarizeDocuments computes DocumentStats in memory.
func SummarizeDocuments(docs []Document) DocumentStats {
	stats := DocumentStats{ByStatus: make(map[DocumentStatus]StatusSummary)}
	for _, d := range docs {
		s := stats.ByStatus[d.Status]
		s.Count++
		s.Total = s.Total.Add(d.Pricing.GrandTotal)
		stats.ByStatus[d.Status] = s
		stats.TotalDocuments++
		if d.Status == StatusPaid {
			stats.TotalRevenue = stats.TotalRevenue.Add(d.Pricing.GrandTotal)
		}
	}
	return stats
}
