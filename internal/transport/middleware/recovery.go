package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/heartmarshall/myenglish-catalog/pkg/ctxutil"
	"github.com/heartmarshall/myenglish-catalog/pkg/envelope"
)

// Recovery recovers from handler panics, logs them with a stack trace and
// answers with an INTERNAL envelope.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.ErrorContext(r.Context(), "panic recovered",
					slog.Any("error", rec),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
				)
				envelope.WriteError(w, envelope.CodeInternal, "internal server error", "")
			}()
			next.ServeHTTP(w, r)
		})
	}
}
