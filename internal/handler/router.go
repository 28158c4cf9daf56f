package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/wishkeeper/wishkeeper-go/internal/metrics"
	"github.com/wishkeeper/wishkeeper-go/internal/middleware"
	"github.com/wishkeeper/wishkeeper-go/internal/service"
	"go.uber.org/zap"
)

// Deps is everything the router needs to serve requests.
type Deps struct {
	Auth      *service.AuthService
	Wishlists *service.WishlistService
	Items     *service.ItemService
	Enrich    *service.EnrichService
	Store     Pinger
	Metrics   *metrics.Collector
	Logger    *zap.Logger

	SecureCookie bool
	SessionTTL   time.Duration
	CORSOrigins  []string
}

func NewRouter(d Deps) http.Handler {
	authHandler := NewAuthHandler(d.Auth, d.Logger, d.SecureCookie, d.SessionTTL)
	wishlistHandler := NewWishlistHandler(d.Wishlists, d.Logger)
	itemHandler := NewItemHandler(d.Items, d.Logger)
	scrapeHandler := NewScrapeHandler(d.Enrich, d.Logger)
	pageHandler := NewPageHandler(d.Wishlists, d.Items, d.Logger)
	healthHandler := NewHealthHandler(d.Store, d.Logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(d.Logger))
	r.Use(chimw.Recoverer)
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}
	if len(d.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   d.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	r.Use(middleware.SessionGate(d.Auth))

	r.Get("/health", healthHandler.HandleHealth)
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}
	r.Handle("/static/*", StaticHandler())

	r.Get("/login", pageHandler.HandleLogin)
	r.Get("/", pageHandler.HandleIndex)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Get("/auth/verify", authHandler.HandleVerify)
		r.Post("/auth/logout", authHandler.HandleLogout)

		r.Get("/wishlists", wishlistHandler.HandleList)
		r.Post("/wishlists", wishlistHandler.HandleCreate)
		r.Put("/wishlists", wishlistHandler.HandleUpdate)
		r.Delete("/wishlists", wishlistHandler.HandleDelete)

		r.Get("/items", itemHandler.HandleList)
		r.Post("/items", itemHandler.HandleCreate)
		r.Put("/items", itemHandler.HandleUpdate)
		r.Delete("/items", itemHandler.HandleDelete)

		r.Post("/scrape", scrapeHandler.HandleScrape)
	})

	return r
}
