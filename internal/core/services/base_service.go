package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/school_ledger/internal/middleware"
	"github.com/google/uuid"
)

// BaseService provides common functionality for all services
type BaseService struct {
	now   func() time.Time
	newID func() string
}

// Option customises the shared parts of a service.
type Option func(*BaseService)

// WithClock overrides the time source used for audit fields and document years.
func WithClock(now func() time.Time) Option {
	return func(b *BaseService) {
		b.now = now
	}
}

// WithIDGenerator overrides the generator used for entity IDs.
func WithIDGenerator(newID func() string) Option {
	return func(b *BaseService) {
		b.newID = newID
	}
}

func newBaseService(opts []Option) BaseService {
	b := BaseService{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Now returns the current time from the configured clock.
func (s *BaseService) Now() time.Time {
	return s.now()
}

// NewID returns a fresh entity ID.
func (s *BaseService) NewID() string {
	return s.newID()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
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
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}
