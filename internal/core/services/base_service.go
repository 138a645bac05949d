package services

import (
	"context"
	"log/slog"

	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
	portssvc "github.com/sharesarthi/share_recovery_crm/internal/core/ports/services"
	"github.com/sharesarthi/share_recovery_crm/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Authorizer portssvc.CapabilityAuthorizerSvc
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// Authorize checks if a user holds the capability before a command runs
func (s *BaseService) Authorize(ctx context.Context, userID string, capability domain.Capability) error {
	if s.Authorizer != nil {
		return s.Authorizer.AuthorizeAction(ctx, userID, capability)
	}
	// No authorizer wired means access is granted; only happens in tests
	// that exercise a service in isolation.
	s.LogDebug(ctx, "No capability authorizer provided, access granted by default",
		slog.String("user_id", userID),
		slog.String("capability", string(capability)))
	return nil
}
