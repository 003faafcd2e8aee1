package repositories

import "context"

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	// Ping checks connectivity to the store.
	Ping(ctx context.Context) error
	// Name identifies the store in health responses, e.g. "mongodb".
	Name() string
}

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	DocumentRepo DocumentRepositoryFacade
	UserRepo     UserRepositoryFacade
	Health       HealthChecker
}
