package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"mixvision-service/internal/auth"
	authHnd "mixvision-service/internal/auth/handler"
	"mixvision-service/internal/config"
	"mixvision-service/internal/middleware"
	oppHnd "mixvision-service/internal/opportunity/handler"
	"mixvision-service/internal/session"
	"mixvision-service/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger, authSvc *auth.Service, sessions *session.Store) *chi.Mux {
	r := chi.NewRouter()

	// ordem importa: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	r.Get("/health", handlers.Health)
	r.Post("/login", authHnd.Login(authSvc, logger))

	// rotas autenticadas (token plano no Authorization)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(authSvc))

		r.Post("/ingest", oppHnd.Ingest(cfg, logger, sessions))
		r.Post("/ingest/url", oppHnd.IngestURL(cfg, logger, sessions))
		r.Post("/ingest/remote", oppHnd.IngestRemote(cfg, logger, sessions))

		r.Post("/select/consultant", oppHnd.SelectConsultant(sessions))
		r.Post("/select/route", oppHnd.SelectRoute(sessions))
		r.Post("/select/client", oppHnd.SelectClient(sessions))
		r.Get("/selection", oppHnd.CurrentSelection(sessions))

		r.Get("/routes", oppHnd.Routes(sessions))
		r.Get("/clients", oppHnd.Clients(sessions))
		r.Get("/opportunities", oppHnd.Opportunities(sessions))

		// administração de vendedores
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Post("/users", authHnd.CreateSeller(authSvc, logger))
			r.Get("/users", authHnd.ListSellers(authSvc, logger))
		})
	})

	return r
}
