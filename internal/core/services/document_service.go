package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/invoice_generator_app/internal/apperrors"
	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_generator_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_generator_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_generator_app/internal/core/pricing"
	"github.com/SscSPs/invoice_generator_app/internal/core/workspace"
	"github.com/google/uuid"
)

// Messages returned to API clients.
const (
	MsgDocumentNotFound = "Invoice not found"
	MsgNumberExists     = "Invoice number already exists"
	MsgInvalidStatus    = "Invalid status"
)

// documentService implements portssvc.DocumentSvcFacade.
type documentService struct {
	BaseService
	documentRepo portsrepo.DocumentRepositoryFacade
	clock        func() time.Time
}

// DocumentServiceOption configures the document service.
type DocumentServiceOption func(*documentService)

// WithDocumentClock overrides time.Now, mainly for tests.
func WithDocumentClock(clock func() time.Time) DocumentServiceOption {
	return func(s *documentService) {
		s.clock = clock
	}
}

// NewDocumentService creates a new document service.
func NewDocumentService(repo portsrepo.DocumentRepositoryFacade, options ...DocumentServiceOption) portssvc.DocumentSvcFacade {
	svc := &documentService{
		documentRepo: repo,
		clock:        time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

func notFound(err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewNotFoundError(MsgDocumentNotFound)
	}
	return err
}

func (s *documentService) GetDocument(ctx context.Context, ownerID, documentID string) (*domain.Document, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, ownerID, documentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find document", slog.String("document_id", documentID))
		}
		return nil, notFound(err)
	}
	return doc, nil
}

func (s *documentService) GetPublicDocument(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := s.documentRepo.FindPublicDocumentByID(ctx, documentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find public document", slog.String("document_id", documentID))
		}
		return nil, notFound(err)
	}
	return doc, nil
}

func (s *documentService) ListDocuments(ctx context.Context, query domain.DocumentQuery) ([]domain.Document, int64, error) {
	query = query.Normalize()
	docs, total, err := s.documentRepo.FindDocuments(ctx, query)
	if err != nil {
		s.LogError(ctx, err, "Failed to list documents", slog.Int("page", query.Page), slog.Int("limit", query.Limit))
		return nil, 0, fmt.Errorf("failed to list documents: %w", err)
	}
	if docs == nil {
		docs = []domain.Document{}
	}
	return docs, total, nil
}

func (s *documentService) SearchDocuments(ctx context.Context, ownerID, query string) ([]domain.Document, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Document{}, nil
	}
	docs, err := s.documentRepo.SearchDocuments(ctx, ownerID, query, domain.SearchLimit)
	if err != nil {
		s.LogError(ctx, err, "Failed to search documents", slog.String("query", query))
		return nil, fmt.Errorf("failed to search documents: %w", err)
	}
	if docs == nil {
		docs = []domain.Document{}
	}
	return docs, nil
}

func (s *documentService) GetStats(ctx context.Context, ownerID string) (domain.DocumentStats, error) {
	stats, err := s.documentRepo.DocumentStats(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute document stats")
		return domain.DocumentStats{}, fmt.Errorf("failed to compute stats: %w", err)
	}
	return stats, nil
}

// prepare prices and validates doc for ownerID. Client supplied totals and
// ownership are discarded.
func (s *documentService) prepare(doc domain.Document) (domain.Document, error) {
	out, err := pricing.Finalize(doc)
	if err != nil {
		return domain.Document{}, err
	}
	if out.Date.IsZero() {
		out.Date = s.clock()
	}
	return out, nil
}

func (s *documentService) CreateDocument(ctx context.Context, ownerID string, doc domain.Document, idempotencyKey string) (*domain.Document, bool, error) {
	idempotencyKey = strings.TrimSpace(idempotencyKey)
	if idempotencyKey != "" {
		existing, err := s.documentRepo.FindDocumentByIdempotencyKey(ctx, ownerID, idempotencyKey)
		if err == nil {
			s.LogInfo(ctx, "Replaying idempotent create", slog.String("document_id", existing.DocumentID))
			return existing, false, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to look up idempotency key")
			return nil, false, err
		}
	}

	prepared, err := s.prepare(doc)
	if err != nil {
		return nil, false, err
	}

	now := s.clock()
	prepared.DocumentID = uuid.NewString()
	prepared.IdempotencyKey = idempotencyKey
	prepared.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     ownerID,
		LastUpdatedAt: now,
		LastUpdatedBy: ownerID,
	}

	if err := s.documentRepo.SaveDocument(ctx, prepared); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// A concurrent request with the same key may have won the race.
			if idempotencyKey != "" {
				if existing, findErr := s.documentRepo.FindDocumentByIdempotencyKey(ctx, ownerID, idempotencyKey); findErr == nil {
					return existing, false, nil
				}
			}
			return nil, false, apperrors.NewAppError(http.StatusBadRequest, MsgNumberExists, apperrors.ErrDuplicate)
		}
		s.LogError(ctx, err, "Failed to save document", slog.String("number", prepared.Number))
		return nil, false, err
	}

	s.LogInfo(ctx, "Document created", slog.String("document_id", prepared.DocumentID), slog.String("kind", string(prepared.Kind)))
	return &prepared, true, nil
}

func (s *documentService) UpdateDocument(ctx context.Context, ownerID, documentID string, doc domain.Document) (*domain.Document, error) {
	existing, err := s.GetDocument(ctx, ownerID, documentID)
	if err != nil {
		return nil, err
	}

	if doc.Status == "" {
		doc.Status = existing.Status
	}
	if doc.Status != existing.Status && !domain.CanTransition(existing.Status, doc.Status) {
		return nil, apperrors.NewAppError(http.StatusBadRequest, fmt.Sprintf("Cannot change status from %s to %s", existing.Status, doc.Status), apperrors.ErrInvalidTransition)
	}

	prepared, err := s.prepare(doc)
	if err != nil {
		return nil, err
	}
	prepared.DocumentID = existing.DocumentID
	prepared.IdempotencyKey = existing.IdempotencyKey
	prepared.SourceDocumentID = existing.SourceDocumentID
	prepared.AuditFields = existing.AuditFields
	prepared.LastUpdatedAt = s.clock()
	prepared.LastUpdatedBy = ownerID

	if err := s.documentRepo.UpdateDocument(ctx, prepared); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewAppError(http.StatusBadRequest, MsgNumberExists, apperrors.ErrDuplicate)
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, notFound(err)
		}
		s.LogError(ctx, err, "Failed to update document", slog.String("document_id", documentID))
		return nil, err
	}
	s.LogInfo(ctx, "Document updated", slog.String("document_id", documentID))
	return &prepared, nil
}

func (s *documentService) UpdateStatus(ctx context.Context, ownerID, documentID, status string) (*domain.Document, error) {
	target, err := domain.ParseStatus(status)
	if err != nil {
		return nil, apperrors.NewValidationError(MsgInvalidStatus)
	}
	doc, err := s.GetDocument(ctx, ownerID, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Status == target {
		return doc, nil
	}
	if !domain.CanTransition(doc.Status, target) {
		return nil, apperrors.NewAppError(http.StatusBadRequest, fmt.Sprintf("Cannot change status from %s to %s", doc.Status, target), apperrors.ErrInvalidTransition)
	}

	now := s.clock()
	if err := s.documentRepo.UpdateDocumentStatus(ctx, ownerID, documentID, doc.Status, target, now); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return nil, notFound(err)
		case errors.Is(err, apperrors.ErrConflict):
			return nil, apperrors.NewConflictError("Invoice status changed, reload and try again")
		}
		s.LogError(ctx, err, "Failed to update document status", slog.String("document_id", documentID))
		return nil, err
	}

	doc.Status = target
	doc.LastUpdatedAt = now
	doc.LastUpdatedBy = ownerID
	s.LogInfo(ctx, "Document status updated", slog.String("document_id", documentID), slog.String("status", string(target)))
	return doc, nil
}

func (s *documentService) DeleteDocument(ctx context.Context, ownerID, documentID string) error {
	if err := s.documentRepo.DeleteDocument(ctx, ownerID, documentID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete document", slog.String("document_id", documentID))
		}
		return notFound(err)
	}
	s.LogInfo(ctx, "Document deleted", slog.String("document_id", documentID))
	return nil
}

func (s *documentService) ConvertToInvoice(ctx context.Context, ownerID, documentID string) (*domain.Document, error) {
	src, err := s.GetDocument(ctx, ownerID, documentID)
	if err != nil {
		return nil, err
	}
	now := s.clock()
	number, err := s.nextNumber(ctx, ownerID, domain.KindInvoice, now.Year())
	if err != nil {
		s.LogError(ctx, err, "Failed to pick invoice number")
		return nil, err
	}

	inv, err := workspace.ConvertToInvoice(*src, number, now)
	if err != nil {
		return nil, err
	}
	saved, _, err := s.CreateDocument(ctx, ownerID, inv, "")
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Quotation converted", slog.String("source_id", documentID), slog.String("document_id", saved.DocumentID))
	return saved, nil
}

// nextNumber picks the owner's first unused number for kind.
func (s *documentService) nextNumber(ctx context.Context, ownerID string, kind domain.DocumentKind, year int) (string, error) {
	return nextFreeNumber(ctx, s.documentRepo, ownerID, kind, year)
}

func nextFreeNumber(ctx context.Context, repo portsrepo.DocumentReader, ownerID string, kind domain.DocumentKind, year int) (string, error) {
	used, err := repo.DocumentNumbers(ctx, ownerID, kind)
	if err != nil {
		return "", fmt.Errorf("failed to list %s numbers: %w", kind, err)
	}
	return domain.NextNumber(kind, year, used), nil
}
