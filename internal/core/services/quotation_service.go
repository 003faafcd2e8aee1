package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/invoice_generator_app/internal/apperrors"
	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	"github.com/SscSPs/invoice_generator_app/internal/core/generator"
	portsrepo "github.com/SscSPs/invoice_generator_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_generator_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_generator_app/internal/core/pricing"
)

// MsgDescriptionRequired is returned when a draft has neither a description
// nor a known template.
const MsgDescriptionRequired = "Please provide a project description"

type quotationService struct {
	BaseService
	generator      generator.ContentGenerator
	documentRepo   portsrepo.DocumentReader
	userRepo       portsrepo.UserReader
	defaultCompany domain.CompanyProfile
	clock          func() time.Time
}

// NewQuotationService creates a quotation drafting service. Drafts are issued
// under the owner's company profile, or defaultCompany when the owner has none.
func NewQuotationService(gen generator.ContentGenerator, documentRepo portsrepo.DocumentReader, userRepo portsrepo.UserReader, defaultCompany domain.CompanyProfile) portssvc.QuotationSvcFacade {
	return &quotationService{
		generator:      gen,
		documentRepo:   documentRepo,
		userRepo:       userRepo,
		defaultCompany: defaultCompany,
		clock:          time.Now,
	}
}

func (s *quotationService) DraftQuotation(ctx context.Context, ownerID string, req generator.Request) (*domain.Document, error) {
	req = generator.ApplyPreset(req)
	if strings.TrimSpace(req.Description) == "" {
		return nil, apperrors.NewValidationError(MsgDescriptionRequired)
	}
	if req.Budget == "" {
		req.Budget = generator.BudgetMedium
	}

	content, err := s.generator.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.NewGatewayTimeoutError("Quotation generation timed out")
		}
		s.LogError(ctx, err, "Failed to generate quotation", slog.String("template", req.Template))
		return nil, err
	}

	now := s.clock()
	number, err := nextFreeNumber(ctx, s.documentRepo, ownerID, domain.KindQuotation, now.Year())
	if err != nil {
		s.LogError(ctx, err, "Failed to pick quotation number")
		return nil, err
	}

	doc := generator.ToDocument(content, req, number, now)
	doc.Company = s.companyFor(ctx, ownerID)
	doc.Pricing = pricing.Compute(doc.LineItems, doc.Terms)

	s.LogInfo(ctx, "Quotation drafted",
		slog.String("project_type", content.ProjectType),
		slog.String("grand_total", doc.Pricing.GrandTotal.String()))
	return &doc, nil
}

func (s *quotationService) companyFor(ctx context.Context, ownerID string) domain.CompanyProfile {
	user, err := s.userRepo.FindUserByID(ctx, ownerID)
	if err != nil || user.Company.Name == "" {
		return s.defaultCompany
	}
	return user.Company
}
