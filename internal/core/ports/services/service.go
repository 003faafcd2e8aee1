package services

import "context"

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Document           DocumentSvcFacade
	User               UserSvcFacade
	TokenService       TokenSvcFacade
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
	Quotation          QuotationSvcFacade
	Export             ExportSvcFacade
	Health             HealthSvc
}

// HealthSvc reports on the backing store.
type HealthSvc interface {
	// Check pings the store and returns its name.
	Check(ctx context.Context) (database string, err error)
}
