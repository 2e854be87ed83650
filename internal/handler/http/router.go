package http

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/bookshop/pkg/health"
	"github.com/utafrali/bookshop/pkg/middleware"
)

//go:embed static
var staticFS embed.FS

// RouterConfig carries the tunables the router needs beyond its handlers.
type RouterConfig struct {
	RateLimitRPS   int
	RateLimitBurst int
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	storefront *StorefrontHandler,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("bookshop"))
	r.Use(middleware.RequestLogger(logger))
	if cfg.RateLimitRPS > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, logger))
	}

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Static assets
	staticRoot, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(staticRoot)))

	// Storefront pages
	r.Get("/", storefront.Home)
	r.Get("/cart", storefront.ViewCart)
	r.Post("/add-to-cart", storefront.AddToCart)
	r.Post("/update-cart", storefront.UpdateCart)
	r.Post("/remove-from-cart", storefront.RemoveFromCart)
	r.Get("/checkout", storefront.CheckoutForm)
	r.Post("/process-checkout", storefront.ProcessCheckout)
	r.Get("/order-confirmation/{orderID}", storefront.OrderConfirmation)
	r.Get("/register", storefront.RegisterForm)
	r.Post("/register", storefront.Register)
	r.Get("/login", storefront.LoginForm)
	r.Post("/login", storefront.Login)
	r.Get("/logout", storefront.Logout)
	r.Get("/account", storefront.Account)

	return r
}
