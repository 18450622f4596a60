package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"helheim/internal/domain"
	"helheim/internal/middleware"
)

// RouterConfig holds the HTTP-surface configuration for NewRouter.
type RouterConfig struct {
	TokenCodec         domain.TokenCodec
	RateLimitRPS       float64
	RateLimitBurst     int
	CORSAllowedOrigins []string
}

// NewRouter builds the chi router with the full middleware chain. The root
// health probe and the auth endpoints are the only unauthenticated routes.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.RateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
	}))

	r.Get("/", h.HandleRoot)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/", h.HandleLogin)
		r.Post("/register", h.HandleRegister)
		r.Post("/refresh", h.HandleRefresh)
	})

	// Everything below requires a bearer token.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.TokenCodec))

		r.Route("/account/{guid}", func(r chi.Router) {
			r.Get("/", h.HandleGetAccount)
			r.Delete("/", h.HandleDeleteAccount)
		})

		r.Route("/realm", func(r chi.Router) {
			r.Get("/", h.HandleListRealms)

			r.Route("/{guid}", func(r chi.Router) {
				r.Get("/", h.HandleGetRealm)
				r.Get("/user", h.HandleListMembers)

				r.Route("/portal", func(r chi.Router) {
					r.Get("/", h.HandleListPortals)
					r.Post("/", h.HandleOpenPortal)
					r.Delete("/", h.HandleClosePortal)
				})

				r.Route("/world", func(r chi.Router) {
					r.Get("/", h.HandleListWorlds)
					r.Post("/{world}/backup", h.HandleCreateWorldBackup)
					r.Delete("/{world}", h.HandleDeleteWorld)
				})

				r.Get("/file/{file}", h.HandleGetListFile)
				r.Post("/file", h.HandleSaveListFile)
			})
		})
	})

	return r
}
