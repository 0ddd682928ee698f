package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/heartmarshall/myenglish-catalog/internal/auth"
	"github.com/heartmarshall/myenglish-catalog/pkg/ctxutil"
	"github.com/heartmarshall/myenglish-catalog/pkg/envelope"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (auth.Identity, error)
}

// Auth resolves the bearer token into a caller. Requests without a token
// continue anonymously; a token that fails validation is rejected with 401.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			id, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				envelope.WriteError(w, envelope.CodeUnauthenticated, "invalid or expired token", "")
				return
			}
			ctx := ctxutil.WithCaller(r.Context(), id.ID, id.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireEditor admits only callers whose role may change catalog content:
// anonymous callers get 401, authenticated viewers get 403.
func RequireEditor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.CallerFromCtx(r.Context()); !ok {
			envelope.WriteError(w, envelope.CodeUnauthenticated, "authentication required", "")
			return
		}
		if !ctxutil.CanEditCtx(r.Context()) {
			envelope.WriteError(w, envelope.CodeForbidden, "editor role required", "")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func extractBearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
