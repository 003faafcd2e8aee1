package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
)

// DocumentReader defines read operations for documents. Every lookup except
// FindPublicDocumentByID is scoped to the owning user; documents of other
// owners are reported as apperrors.ErrNotFound.
type DocumentReader interface {
	FindDocumentByID(ctx context.Context, ownerID, documentID string) (*domain.Document, error)

	// FindPublicDocumentByID ignores ownership. It backs the read-only share link.
	FindPublicDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// FindDocuments returns one page of the owner's documents plus the total
	// number of matches.
	FindDocuments(ctx context.Context, query domain.DocumentQuery) ([]domain.Document, int64, error)

	// SearchDocuments matches query case-insensitively against number, client
	// name, client company and project name, newest first.
	SearchDocuments(ctx context.Context, ownerID, query string, limit int) ([]domain.Document, error)

	// DocumentStats groups the owner's documents by status.
	DocumentStats(ctx context.Context, ownerID string) (domain.DocumentStats, error)

	// FindDocumentByIdempotencyKey returns the document created with key.
	FindDocumentByIdempotencyKey(ctx context.Context, ownerID, key string) (*domain.Document, error)

	// DocumentNumbers lists the numbers of the owner's documents of kind.
	DocumentNumbers(ctx context.Context, ownerID string, kind domain.DocumentKind) ([]string, error)
}

// DocumentWriter defines write operations for documents.
type DocumentWriter interface {
	// SaveDocument inserts doc. A number already used by the owner for the
	// same kind, or a reused idempotency key, yields apperrors.ErrDuplicate.
	SaveDocument(ctx context.Context, doc domain.Document) error

	// UpdateDocument replaces the owner's document with doc.DocumentID.
	UpdateDocument(ctx context.Context, doc domain.Document) error

	// UpdateDocumentStatus moves the document from one status to another in a
	// single step. It fails with apperrors.ErrConflict when the stored status
	// is no longer from.
	UpdateDocumentStatus(ctx context.Context, ownerID, documentID string, from, to domain.DocumentStatus, updatedAt time.Time) error

	// DeleteDocument removes the owner's document.
	DeleteDocument(ctx context.Context, ownerID, documentID string) error
}

// DocumentRepositoryFacade combines all document-related repository interfaces.
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
