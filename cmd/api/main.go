package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	httpadapter "github.com/kirillkom/shopping-assistant/internal/adapters/http"
	"github.com/kirillkom/shopping-assistant/internal/bootstrap"
	"github.com/kirillkom/shopping-assistant/internal/config"
	"github.com/kirillkom/shopping-assistant/internal/core/domain"
	"github.com/kirillkom/shopping-assistant/internal/observability/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	slog.SetDefault(logging.New("shopping-assistant-api", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	router := httpadapter.NewRouter(app.Assistant, httpadapter.Options{
		MetricsHandler: app.Metrics.Handler(),
		AllowedOrigins: cfg.CORSAllowedOrigins,
		OnRun: func(kind string, result *domain.SearchResult) {
			app.Metrics.RecordSearchRun(kind, len(result.Products), result.Error != "")
		},
	}).Handler()

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      app.Metrics.Middleware("api", router),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("api_listening", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("api server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("api_shutdown_error", "error", err)
	}
}
