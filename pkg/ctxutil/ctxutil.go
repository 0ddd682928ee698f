// Package ctxutil carries caller identity and request metadata through a context.
package ctxutil

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-catalog/internal/domain"
)

type ctxKey string

const (
	callerIDKey  ctxKey = "caller_id"
	callerRole   ctxKey = "caller_role"
	requestIDKey ctxKey = "request_id"
)

// WithCaller stores the authenticated caller and its role.
func WithCaller(ctx context.Context, id uuid.UUID, role domain.UserRole) context.Context {
	ctx = context.WithValue(ctx, callerIDKey, id)
	return context.WithValue(ctx, callerRole, role)
}

// CallerFromCtx returns the authenticated caller id.
// ok is false for anonymous requests.
func CallerFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(callerIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// RoleFromCtx returns the caller role, or "" for anonymous requests.
func RoleFromCtx(ctx context.Context) domain.UserRole {
	role, _ := ctx.Value(callerRole).(domain.UserRole)
	return role
}

// CanEditCtx reports whether the caller may change catalog content.
func CanEditCtx(ctx context.Context) bool {
	if _, ok := CallerFromCtx(ctx); !ok {
		return false
	}
	return RoleFromCtx(ctx).CanEdit()
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
