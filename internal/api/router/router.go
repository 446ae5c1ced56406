package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/silverfoxgrooming/booking-widget/internal/booking"
	httpmiddleware "github.com/silverfoxgrooming/booking-widget/internal/http/middleware"
	"github.com/silverfoxgrooming/booking-widget/internal/widget"
	"github.com/silverfoxgrooming/booking-widget/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger             *logging.Logger
	Booking            *booking.Handler
	Widget             *widget.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// CheckoutRatePerSec caps per-IP checkout link creation. Zero disables
	// rate limiting.
	CheckoutRatePerSec float64
	CheckoutBurst      int
}

// New creates a new Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.Booking != nil {
		r.Route("/api", func(api chi.Router) {
			api.Get("/services", cfg.Booking.Services)
			api.Get("/team-members", cfg.Booking.TeamMembers)
			api.Post("/availability", cfg.Booking.Availability)
			if cfg.CheckoutRatePerSec > 0 {
				api.With(httpmiddleware.RateLimit(cfg.CheckoutRatePerSec, cfg.CheckoutBurst)).Post("/checkout", cfg.Booking.Checkout)
			} else {
				api.Post("/checkout", cfg.Booking.Checkout)
			}
		})
	}

	if cfg.Widget != nil {
		r.Get("/", cfg.Widget.Page)
		r.Route("/widget/sessions", func(sessions chi.Router) {
			sessions.Post("/", cfg.Widget.CreateSession)
			sessions.Post("/{sessionID}/{action}", cfg.Widget.Action)
		})
	}

	return r
}
