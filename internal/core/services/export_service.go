package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_generator_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_generator_app/internal/core/render"
)

// PDFRenderer converts a standalone HTML page to PDF.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html []byte) ([]byte, error)
}

// Watermarker stamps text across every page of a PDF.
type Watermarker interface {
	Watermark(pdf []byte, text string) ([]byte, error)
}

// Archive stores exported PDFs and returns their URL.
type Archive interface {
	Put(ctx context.Context, key string, content []byte) (string, error)
}

type exportService struct {
	BaseService
	renderer    PDFRenderer
	watermarker Watermarker
	archive     Archive
}

// ExportServiceOption configures the export service.
type ExportServiceOption func(*exportService)

// WithWatermarker stamps non-final documents with their status.
func WithWatermarker(w Watermarker) ExportServiceOption {
	return func(s *exportService) {
		s.watermarker = w
	}
}

// WithArchive uploads every export to a.
func WithArchive(a Archive) ExportServiceOption {
	return func(s *exportService) {
		s.archive = a
	}
}

// NewExportService creates a PDF export service.
func NewExportService(renderer PDFRenderer, options ...ExportServiceOption) portssvc.ExportSvcFacade {
	svc := &exportService{renderer: renderer}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ExportSvcFacade = (*exportService)(nil)

// watermarkText is the stamp for status, empty when none applies.
func watermarkText(status domain.DocumentStatus) string {
	switch status {
	case domain.StatusDraft, domain.StatusPaid, domain.StatusCancelled:
		return strings.ToUpper(string(status))
	}
	return ""
}

// PDFFilename is the download name of doc.
func PDFFilename(doc domain.Document) string {
	number := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, doc.Number)
	if number == "" {
		number = doc.DocumentID
	}
	return fmt.Sprintf("%s_%s.pdf", doc.Kind, number)
}

func (s *exportService) ExportPDF(ctx context.Context, doc domain.Document) (*portssvc.ExportedPDF, error) {
	var html bytes.Buffer
	if err := render.WriteHTML(&html, render.Render(doc)); err != nil {
		return nil, fmt.Errorf("failed to render html: %w", err)
	}

	pdf, err := s.renderer.RenderPDF(ctx, html.Bytes())
	if err != nil {
		s.LogError(ctx, err, "Failed to print PDF", slog.String("document_id", doc.DocumentID))
		return nil, fmt.Errorf("failed to print pdf: %w", err)
	}

	if text := watermarkText(doc.Status); s.watermarker != nil && text != "" {
		stamped, err := s.watermarker.Watermark(pdf, text)
		if err != nil {
			s.LogError(ctx, err, "Failed to watermark PDF", slog.String("document_id", doc.DocumentID))
			return nil, fmt.Errorf("failed to watermark pdf: %w", err)
		}
		pdf = stamped
	}

	out := &portssvc.ExportedPDF{Filename: PDFFilename(doc), Content: pdf}
	if s.archive != nil {
		key := fmt.Sprintf("%s/%s/%s", doc.CreatedBy, doc.DocumentID, out.Filename)
		url, err := s.archive.Put(ctx, key, pdf)
		if err != nil {
			// The download still succeeds without the archived copy.
			s.LogError(ctx, err, "Failed to archive PDF", slog.String("key", key))
		} else {
			out.ArchiveURL = url
		}
	}
	s.LogInfo(ctx, "PDF exported", slog.String("document_id", doc.DocumentID), slog.Int("bytes", len(pdf)))
	return out, nil
}
