package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/myenglish-catalog/internal/auth"
	"github.com/heartmarshall/myenglish-catalog/internal/config"
	"github.com/heartmarshall/myenglish-catalog/internal/transport/middleware"
	"github.com/heartmarshall/myenglish-catalog/pkg/envelope"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (auth.Identity, error)
}

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Logger      *slog.Logger
	Catalog     catalogService
	Tokens      tokenValidator
	Health      *HealthHandler
	RateLimiter *middleware.RateLimiter
	Server      config.ServerConfig
	CORS        config.CORSConfig
}

// NewRouter builds the catalog API router.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.CORS(deps.CORS))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		envelope.WriteError(w, envelope.CodeNotFound, "route not found", "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		envelope.Write(w, http.StatusMethodNotAllowed,
			envelope.Fail(envelope.CodeValidation, "method not allowed", ""))
	})

	if deps.Health != nil {
		r.Get("/live", deps.Health.Live)
		r.Get("/ready", deps.Health.Ready)
		r.Get("/health", deps.Health.Health)
	}

	h := NewCatalogHandler(deps.Catalog, deps.Logger, deps.Server.MaxBodyBytes)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(deps.Tokens))

		r.Group(func(r chi.Router) {
			if deps.RateLimiter != nil {
				r.Use(deps.RateLimiter.Limit(deps.Server.FetchRateLimit))
			}
			r.Post("/vocabulary/fetch", h.FetchDictionary)
		})

		r.Route("/boards", func(r chi.Router) {
			r.Get("/", h.ListBoards)
			r.With(middleware.RequireEditor).Post("/", h.CreateBoard)
			r.With(middleware.RequireEditor).Delete("/{boardId}", h.DeleteBoard)
			r.Get("/{boardId}/items", h.ListBoardItems)
			r.With(middleware.RequireEditor).Post("/{boardId}/items", h.LinkItem)
			r.With(middleware.RequireEditor).Post("/{boardId}/lessons", h.CreateLesson)
		})

		r.Get("/lessons", h.ListLessons)

		r.Route("/{resourceType}", func(r chi.Router) {
			r.Use(h.resolveKind)
			r.Get("/", h.ListRecords)
			r.With(middleware.RequireEditor).Post("/create", h.CreateRecord)
			r.With(middleware.RequireEditor).Delete("/delete/{id}", h.DeleteRecord)
			r.Get("/{id}", h.GetRecord)
			r.With(middleware.RequireEditor).Put("/{id}", h.UpdateRecord)
		})
	})

	return r
}
