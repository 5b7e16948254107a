package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/garmentflow/backend/internal/domain/identity"
)

// contextKey is a type for context keys used by the logger package
type contextKey string

const (
	// LoggerKey is the context key for the logger
	LoggerKey contextKey = "logger"
	// TenantIDKey is the context key for tenant ID
	TenantIDKey contextKey = "tenant_id"
	// UserIDKey is the context key for user ID
	UserIDKey contextKey = "user_id"
)

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContextOr returns the logger attached to the context, or fallback
// when none is attached. Request-scoped callers attach an enriched logger
// via WithActor; background callers pass their own logger as the fallback.
func FromContextOr(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return logger
	}
	return fallback
}

// FromContext retrieves the logger from context, returns a no-op logger if not found
func FromContext(ctx context.Context) *zap.Logger {
	return FromContextOr(ctx, zap.NewNop())
}

// WithActor stores the acting user's tenant and user IDs on the context and
// returns a logger enriched with the same fields, so every log line written
// during the operation carries the actor identity. When the context carries
// an active span the trace and span IDs are attached as well.
func WithActor(ctx context.Context, logger *zap.Logger, actor identity.Actor) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, TenantIDKey, actor.TenantID.String())
	ctx = context.WithValue(ctx, UserIDKey, actor.UserID.String())
	enriched := logger.With(
		zap.String("tenant_id", actor.TenantID.String()),
		zap.String("user_id", actor.UserID.String()),
		zap.String("username", actor.DisplayName()),
	)
	enriched = WithTraceContext(ctx, enriched)
	return WithContext(ctx, enriched), enriched
}

// GetTenantID retrieves tenant ID from context
func GetTenantID(ctx context.Context) string {
	if tenantID, ok := ctx.Value(TenantIDKey).(string); ok {
		return tenantID
	}
	return ""
}

// GetUserID retrieves user ID from context
func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

// WithTraceContext adds trace_id and span_id to the logger from the context's span.
// If no valid span exists, returns the original logger unchanged.
func WithTraceContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	span := trace.SpanFromContext(ctx)
	if span == nil {
		return logger
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return logger
	}

	return logger.With(
		zap.String("trace_id", spanCtx.TraceID().String()),
		zap.String("span_id", spanCtx.SpanID().String()),
	)
}
