package services

import (
	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	"github.com/SscSPs/invoice_generator_app/internal/core/generator"
	portsrepo "github.com/SscSPs/invoice_generator_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_generator_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_generator_app/internal/platform/config"
)

type containerOptions struct {
	generator generator.ContentGenerator
	renderer  PDFRenderer
	export    []ExportServiceOption
}

// ContainerOption configures optional collaborators of the service container.
type ContainerOption func(*containerOptions)

// WithContentGenerator sets the quotation generator. The simulated generator
// is used otherwise.
func WithContentGenerator(g generator.ContentGenerator) ContainerOption {
	return func(o *containerOptions) {
		o.generator = g
	}
}

// WithPDFExport enables PDF export through renderer.
func WithPDFExport(renderer PDFRenderer, options ...ExportServiceOption) ContainerOption {
	return func(o *containerOptions) {
		o.renderer = renderer
		o.export = options
	}
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, options ...ContainerOption) *portssvc.ServiceContainer {
	opts := containerOptions{generator: generator.NewSimulatedGenerator()}
	for _, option := range options {
		option(&opts)
	}

	container := &portssvc.ServiceContainer{}
	container.Document = NewDocumentService(repos.DocumentRepo)
	container.User = NewUserService(repos.UserRepo)
	container.TokenService = NewTokenService(cfg)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)
	container.Health = NewHealthService(repos.Health)

	company := domain.CompanyProfile{Name: cfg.CompanyName, Tagline: cfg.CompanyTagline, Logo: cfg.CompanyLogo}
	container.Quotation = NewQuotationService(opts.generator, repos.DocumentRepo, repos.UserRepo, company)

	if opts.renderer != nil {
		container.Export = NewExportService(opts.renderer, opts.export...)
	}
	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.DocumentSvcFacade  = (*documentService)(nil)
	_ portssvc.UserSvcFacade      = (*userService)(nil)
	_ portssvc.QuotationSvcFacade = (*quotationService)(nil)
	_ portssvc.HealthSvc          = (*healthService)(nil)
)
