package services

import (
	"context"

	portsrepo "github.com/SscSPs/invoice_generator_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_generator_app/internal/core/ports/services"
)

type healthService struct {
	BaseService
	checker portsrepo.HealthChecker
}

// NewHealthService reports on the store behind checker.
func NewHealthService(checker portsrepo.HealthChecker) portssvc.HealthSvc {
	return &healthService{checker: checker}
}

func (s *healthService) Check(ctx context.Context) (string, error) {
	if s.checker == nil {
		return "none", nil
	}
	if err := s.checker.Ping(ctx); err != nil {
		s.LogError(ctx, err, "Database ping failed")
		return s.checker.Name(), err
	}
	return s.checker.Name(), nil
}
