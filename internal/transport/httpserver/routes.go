package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/ulule/limiter/v3"

	"pocketcart/internal/config"
	"pocketcart/internal/metrics"
	"pocketcart/internal/transport/httpserver/handler"
	authmw "pocketcart/internal/transport/httpserver/middleware"
	"pocketcart/pkg/logger"
)

type RouterDeps struct {
	Handlers   *handler.Handlers
	Sessions   authmw.SessionService
	Metrics    *metrics.Metrics
	LimitStore limiter.Store
}

func NewRouter(cfg config.Config, deps RouterDeps, log logger.Logger) (http.Handler, error) {
	handlers := deps.Handlers

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(authmw.Metrics(deps.Metrics))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSOrigins))

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	authLimit := func(next http.Handler) http.Handler { return next }
	if cfg.RateLimit.Enabled && deps.LimitStore != nil {
		mw, err := authmw.NewRateLimit(deps.LimitStore, cfg.RateLimit.Auth)
		if err != nil {
			return nil, err
		}
		authLimit = mw
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Common.Health)

		r.Group(func(r chi.Router) {
			r.Use(authLimit)
			r.Post("/auth/register", handlers.Common.Register)
			r.Post("/auth/login", handlers.Common.Login)
		})

		auth := authmw.NewSessionAuth(cfg.Auth, deps.Sessions, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/user", handlers.Common.CurrentUser)
			r.Post("/auth/logout", handlers.Common.Logout)

			r.Get("/shopping-lists", handlers.Lists.ListLists)
			r.Post("/shopping-lists", handlers.Lists.CreateList)
			r.Get("/shopping-lists/{id}", handlers.Lists.GetList)
			r.Put("/shopping-lists/{id}", handlers.Lists.UpdateList)
			r.Delete("/shopping-lists/{id}", handlers.Lists.DeleteList)

			r.Get("/shopping-trips", handlers.Trips.ListTrips)
			r.Post("/shopping-trips", handlers.Trips.CreateTrip)
			r.Get("/shopping-trips/current", handlers.Trips.CurrentTrip)
			r.Post("/shopping-trips/checkout", handlers.Trips.Checkout)
			r.Get("/shopping-trips/history", handlers.Trips.History)
			r.Get("/shopping-trips/{id}", handlers.Trips.GetTrip)
			r.Put("/shopping-trips/{id}", handlers.Trips.UpdateTrip)
			r.Delete("/shopping-trips/{id}", handlers.Trips.DeleteTrip)
		})
	})

	return r, nil
}
