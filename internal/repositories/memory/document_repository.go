// Package memory provides process-local repositories used when DB_TYPE=memory
// and as fakes in tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/invoice_generator_app/internal/apperrors"
	"github.com/SscSPs/invoice_generator_app/internal/core/catalog"
	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_generator_app/internal/core/ports/repositories"
)

// DocumentRepository keeps documents in a catalog. Uniqueness of numbers and
// idempotency keys is checked under a single lock.
type DocumentRepository struct {
	mu      sync.Mutex
	catalog *catalog.Catalog
}

func newDocumentRepository() *DocumentRepository {
	return &DocumentRepository{catalog: catalog.New()}
}

var _ portsrepo.DocumentRepositoryFacade = (*DocumentRepository)(nil)

func (r *DocumentRepository) owned(ownerID string) func(domain.Document) bool {
	return func(d domain.Document) bool { return d.CreatedBy == ownerID }
}

func (r *DocumentRepository) FindDocumentByID(_ context.Context, ownerID, documentID string) (*domain.Document, error) {
	doc, err := r.catalog.Get(documentID)
	if err != nil || doc.CreatedBy != ownerID {
		return nil, apperrors.ErrNotFound
	}
	return &doc, nil
}

func (r *DocumentRepository) FindPublicDocumentByID(_ context.Context, documentID string) (*domain.Document, error) {
	doc, err := r.catalog.Get(documentID)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepository) FindDocuments(_ context.Context, query domain.DocumentQuery) ([]domain.Document, int64, error) {
	query = query.Normalize()
	matched := r.catalog.Select(func(d domain.Document) bool {
		if d.CreatedBy != query.OwnerID {
			return false
		}
		if query.Kind != "" && d.Kind != query.Kind {
			return false
		}
		return query.Status == "" || d.Status == query.Status
	})
	sortDocuments(matched, query)

	total := int64(len(matched))
	start := query.Offset()
	if start >= len(matched) {
		return []domain.Document{}, total, nil
	}
	end := start + query.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// sortDocuments orders docs by the query's sort field. The catalog already
// returns them date descending in insertion order, so the sort is stable on top.
func sortDocuments(docs []domain.Document, query domain.DocumentQuery) {
	field, desc := query.SortField()
	less := func(a, b domain.Document) bool {
		switch field {
		case "updatedAt":
			return a.LastUpdatedAt.Before(b.LastUpdatedAt)
		case "date":
			return a.Date.Before(b.Date)
		case "number":
			return a.Number < b.Number
		case "grandTotal":
			return a.Pricing.GrandTotal.LessThan(b.Pricing.GrandTotal)
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.SliceStable(docs, func(i, j int) bool {
		if desc {
			return less(docs[j], docs[i])
		}
		return less(docs[i], docs[j])
	})
}

func (r *DocumentRepository) SearchDocuments(_ context.Context, ownerID, query string, limit int) ([]domain.Document, error) {
	mine := r.owned(ownerID)
	found := r.catalog.Select(func(d domain.Document) bool { return mine(d) && d.MatchesQuery(query) })
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}
	return found, nil
}

func (r *DocumentRepository) DocumentStats(_ context.Context, ownerID string) (domain.DocumentStats, error) {
	return domain.SummarizeDocuments(r.catalog.Select(r.owned(ownerID))), nil
}

func (r *DocumentRepository) FindDocumentByIdempotencyKey(_ context.Context, ownerID, key string) (*domain.Document, error) {
	if key == "" {
		return nil, apperrors.ErrNotFound
	}
	found := r.catalog.Select(func(d domain.Document) bool { return d.CreatedBy == ownerID && d.IdempotencyKey == key })
	if len(found) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &found[0], nil
}

func (r *DocumentRepository) DocumentNumbers(_ context.Context, ownerID string, kind domain.DocumentKind) ([]string, error) {
	found := r.catalog.Select(func(d domain.Document) bool { return d.CreatedBy == ownerID && d.Kind == kind })
	numbers := make([]string, len(found))
	for i, d := range found {
		numbers[i] = d.Number
	}
	return numbers, nil
}

// conflicts reports whether another document of the owner already uses doc's
// number (same kind) or idempotency key.
func (r *DocumentRepository) conflicts(doc domain.Document) bool {
	clash := r.catalog.Select(func(d domain.Document) bool {
		if d.CreatedBy != doc.CreatedBy || d.DocumentID == doc.DocumentID {
			return false
		}
		if d.Kind == doc.Kind && d.Number == doc.Number {
			return true
		}
		return doc.IdempotencyKey != "" && d.IdempotencyKey == doc.IdempotencyKey
	})
	return len(clash) > 0
}

func (r *DocumentRepository) SaveDocument(_ context.Context, doc domain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conflicts(doc) {
		return apperrors.ErrDuplicate
	}
	return r.catalog.Add(doc)
}

func (r *DocumentRepository) UpdateDocument(_ context.Context, doc domain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, err := r.catalog.Get(doc.DocumentID)
	if err != nil || current.CreatedBy != doc.CreatedBy {
		return apperrors.ErrNotFound
	}
	if r.conflicts(doc) {
		return apperrors.ErrDuplicate
	}
	return r.catalog.Replace(doc)
}

func (r *DocumentRepository) UpdateDocumentStatus(_ context.Context, ownerID, documentID string, from, to domain.DocumentStatus, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.catalog.Get(documentID)
	if err != nil || doc.CreatedBy != ownerID {
		return apperrors.ErrNotFound
	}
	if doc.Status != from {
		return apperrors.ErrConflict
	}
	doc.Status = to
	doc.LastUpdatedAt = updatedAt
	doc.LastUpdatedBy = ownerID
	return r.catalog.Replace(doc)
}

func (r *DocumentRepository) DeleteDocument(_ context.Context, ownerID, documentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.catalog.Get(documentID)
	if err != nil || doc.CreatedBy != ownerID {
		return apperrors.ErrNotFound
	}
	return r.catalog.Remove(documentID)
}
