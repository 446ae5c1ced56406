package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/silverfoxgrooming/booking-widget/internal/api/router"
	"github.com/silverfoxgrooming/booking-widget/internal/booking"
	"github.com/silverfoxgrooming/booking-widget/internal/catalog"
	appconfig "github.com/silverfoxgrooming/booking-widget/internal/config"
	"github.com/silverfoxgrooming/booking-widget/internal/observability/metrics"
	"github.com/silverfoxgrooming/booking-widget/internal/square"
	"github.com/silverfoxgrooming/booking-widget/internal/widget"
	"github.com/silverfoxgrooming/booking-widget/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting booking-widget API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)
	if cfg.SquareAccessToken == "" {
		logger.Warn("SQUARE_ACCESS_TOKEN is not set; provider calls will fail and the widget will serve demo data")
	}

	bookingMetrics := metrics.NewBookingMetrics(nil)

	squareClient := square.NewClient(cfg.SquareAccessToken, cfg.SquareLocationID, logger).
		WithSandbox(cfg.SquareSandbox).
		WithTimeout(cfg.SquareTimeout)
	if cfg.SquareBaseURL != "" {
		squareClient = squareClient.WithBaseURL(cfg.SquareBaseURL)
	}

	var catalogCache *catalog.Cache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warn("redis unreachable, catalog caching disabled", "error", err)
		} else {
			catalogCache = catalog.NewCache(rdb, cfg.CatalogCacheTTL)
			logger.Info("catalog cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.CatalogCacheTTL)
		}
	}

	provider := widget.NewSquareProvider(squareClient, logger).
		WithCache(catalogCache).
		WithCurrency(cfg.BookingCurrency).
		WithMetrics(bookingMetrics)

	sessions := widget.NewStore(cfg.WidgetSessionTTL)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sessions.Run(sweepCtx)

	widgetHandler := widget.NewHandler(sessions, func() *widget.Controller {
		return widget.NewController(provider, logger).
			WithSelectDelay(cfg.WidgetSelectDelay).
			WithPhone(cfg.ShopPhone)
	}, logger).WithMetrics(bookingMetrics)

	bookingHandler := booking.NewHandler(squareClient, logger).WithMetrics(bookingMetrics)

	r := router.New(&router.Config{
		Logger:             logger,
		Booking:            bookingHandler,
		Widget:             widgetHandler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		CheckoutRatePerSec: cfg.CheckoutRatePerSec,
		CheckoutBurst:      cfg.CheckoutBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
