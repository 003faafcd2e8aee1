package memory

import (
	"context"

	portsrepo "github.com/SscSPs/invoice_generator_app/internal/core/ports/repositories"
)

type healthChecker struct{}

func (healthChecker) Ping(context.Context) error { return nil }
func (healthChecker) Name() string               { return "memory" }

// NewRepositoryProvider returns empty in-memory repositories.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		DocumentRepo: newDocumentRepository(),
		UserRepo:     newUserRepository(),
		Health:       healthChecker{},
	}
}
