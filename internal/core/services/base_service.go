package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/invoice_generator_app/internal/middleware"
)

// BaseService gives services a request-scoped logger.
type BaseService struct{}

// GetLogger returns the logger stored on ctx by the logging middleware, or slog.Default.
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	if logger := middleware.GetLoggerFromCtx(ctx); logger != nil {
		return logger
	}
	return slog.Default()
}

// LogError logs msg at error level with the error attached first.
func (s *BaseService) LogError(ctx context.Context, err error, msg string, attrs ...any) {
	s.GetLogger(ctx).ErrorContext(ctx, msg, append([]any{slog.Any("error", err)}, attrs...)...)
}

func (s *BaseService) LogInfo(ctx context.Context, msg string, attrs ...any) {
	s.GetLogger(ctx).InfoContext(ctx, msg, attrs...)
}

func (s *BaseService) LogDebug(ctx context.Context, msg string, attrs ...any) {
	s.GetLogger(ctx).DebugContext(ctx, msg, attrs...)
}
