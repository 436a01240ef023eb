package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/shopping-cart/internal/api/handlers"
	"github.com/aaravmahajanofficial/shopping-cart/internal/api/middleware"
	"github.com/aaravmahajanofficial/shopping-cart/internal/config"
	"github.com/aaravmahajanofficial/shopping-cart/internal/health"
	"github.com/aaravmahajanofficial/shopping-cart/internal/metrics"
	service "github.com/aaravmahajanofficial/shopping-cart/internal/services"
	"github.com/aaravmahajanofficial/shopping-cart/internal/storage"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx := context.Background()

	// Storage setup
	store, err := storage.New(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error opening cart storage", slog.String("driver", cfg.Storage.Driver), slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("⚠️ Error closing cart storage", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Cart storage closed")
		}
	}()

	cartService, err := service.NewCartService(ctx, store, &cfg.Cart)
	if err != nil {
		slog.Error("❌ Error initializing cart", slog.String("error", err.Error()))
		return
	}

	cartHandler := handlers.NewCartHandler(cartService)

	healthHandler, err := health.NewHealthHandler(cfg, store)
	if err != nil {
		slog.Error("❌ Error initializing health checks", slog.String("error", err.Error()))
		return
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("driver", cfg.Storage.Driver), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/cart", cartHandler.GetCart())
	routerMux.HandleFunc("DELETE /api/v1/cart", cartHandler.EmptyCart())
	routerMux.HandleFunc("GET /api/v1/cart/items", cartHandler.ListItems())
	routerMux.HandleFunc("PUT /api/v1/cart/items", cartHandler.SetItem())
	routerMux.HandleFunc("GET /api/v1/cart/items/{id}", cartHandler.GetItem())
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{id}", cartHandler.RemoveItem())
	routerMux.HandleFunc("PATCH /api/v1/cart/items/{id}/increment", cartHandler.IncrementItem())
	routerMux.HandleFunc("PATCH /api/v1/cart/items/{id}/decrement", cartHandler.DecrementItem())
	routerMux.HandleFunc("GET /api/v1/cart/total", cartHandler.GetTotals())
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining, metrics innermost so it sees the matched pattern
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}
