package services

import (
	"context"

	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	"github.com/SscSPs/invoice_generator_app/internal/core/generator"
)

// DocumentReaderSvc defines read operations on a user's documents.
type DocumentReaderSvc interface {
	GetDocument(ctx context.Context, ownerID, documentID string) (*domain.Document, error)
	GetPublicDocument(ctx context.Context, documentID string) (*domain.Document, error)
	ListDocuments(ctx context.Context, query domain.DocumentQuery) ([]domain.Document, int64, error)
	SearchDocuments(ctx context.Context, ownerID, query string) ([]domain.Document, error)
	GetStats(ctx context.Context, ownerID string) (domain.DocumentStats, error)
}

// DocumentWriterSvc defines write operations on a user's documents.
type DocumentWriterSvc interface {
	// CreateDocument validates, prices and stores doc for ownerID. When
	// idempotencyKey was used before by the same owner the original document
	// is returned with created=false.
	CreateDocument(ctx context.Context, ownerID string, doc domain.Document, idempotencyKey string) (saved *domain.Document, created bool, err error)
	UpdateDocument(ctx context.Context, ownerID, documentID string, doc domain.Document) (*domain.Document, error)
	UpdateStatus(ctx context.Context, ownerID, documentID, status string) (*domain.Document, error)
	DeleteDocument(ctx context.Context, ownerID, documentID string) error
	// ConvertToInvoice stores a new draft invoice built from the owner's
	// quotation. The quotation is not modified.
	ConvertToInvoice(ctx context.Context, ownerID, documentID string) (*domain.Document, error)
}

// DocumentSvcFacade combines all document-related service interfaces.
type DocumentSvcFacade interface {
	DocumentReaderSvc
	DocumentWriterSvc
}

// QuotationSvcFacade drafts quotations from a project brief.
type QuotationSvcFacade interface {
	// DraftQuotation returns an unsaved quotation for ownerID.
	DraftQuotation(ctx context.Context, ownerID string, req generator.Request) (*domain.Document, error)
}

// ExportedPDF is a rendered document ready for download.
type ExportedPDF struct {
	Filename   string
	Content    []byte
	ArchiveURL string
}

// ExportSvcFacade renders documents to PDF.
type ExportSvcFacade interface {
	ExportPDF(ctx context.Context, doc domain.Document) (*ExportedPDF, error)
}
