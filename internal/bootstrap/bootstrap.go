package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kirillkom/shopping-assistant/internal/config"
	"github.com/kirillkom/shopping-assistant/internal/core/ports"
	"github.com/kirillkom/shopping-assistant/internal/core/usecase"
	"github.com/kirillkom/shopping-assistant/internal/infrastructure/llm/ollama"
	"github.com/kirillkom/shopping-assistant/internal/infrastructure/queue/nats"
	"github.com/kirillkom/shopping-assistant/internal/infrastructure/resilience"
	"github.com/kirillkom/shopping-assistant/internal/infrastructure/reviews/synthetic"
	"github.com/kirillkom/shopping-assistant/internal/infrastructure/search/fixture"
	"github.com/kirillkom/shopping-assistant/internal/infrastructure/search/serpapi"
	"github.com/kirillkom/shopping-assistant/internal/infrastructure/sentiment/lexicon"
	sessionmemory "github.com/kirillkom/shopping-assistant/internal/infrastructure/session/memory"
	sessionpostgres "github.com/kirillkom/shopping-assistant/internal/infrastructure/session/postgres"
	sessionredis "github.com/kirillkom/shopping-assistant/internal/infrastructure/session/redis"
	"github.com/kirillkom/shopping-assistant/internal/observability/metrics"
)

type App struct {
	Config  config.Config
	Metrics *metrics.HTTPServerMetrics

	Assistant ports.ShoppingAssistant

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	serverMetrics := metrics.NewHTTPServerMetrics("api")
	executor := resilience.NewExecutor(resilience.DefaultConfig())

	sessions, closeSessions, err := buildSessionStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var publisher ports.EventPublisher
	var closePublisher func()
	if cfg.NATSEnabled {
		queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
			ResilienceExecutor: executor,
		})
		if err != nil {
			closeSessions()
			return nil, fmt.Errorf("init event publisher: %w", err)
		}
		publisher = queue
		closePublisher = queue.Close
	}

	catalog, err := fixture.NewCatalog(nil)
	if err != nil {
		closeSessions()
		if closePublisher != nil {
			closePublisher()
		}
		return nil, fmt.Errorf("init fixture catalog: %w", err)
	}

	var primary ports.ProductSearcher
	if cfg.SerpAPIKey != "" {
		primary = serpapi.New(cfg.SerpAPIBaseURL, cfg.SerpAPIKey, executor)
	} else {
		slog.Info("serpapi_disabled", "reason", "no api key, fixture catalog only")
	}

	llmClient := ollama.New(cfg.OllamaURL, cfg.OllamaGenModel, executor)

	parser := usecase.NewIntentParser(llmClient)
	retriever := usecase.NewRetriever(primary, catalog, serverMetrics)
	aggregator := usecase.NewReviewAggregator(synthetic.NewSource(nil), lexicon.New(), nil)
	ranker := usecase.NewRanker()
	pipeline := usecase.NewPipeline(parser, retriever, aggregator, ranker, cfg.MaxResults, serverMetrics)

	assistant := usecase.NewShoppingUseCase(pipeline, sessions, publisher)

	return &App{
		Config:    cfg,
		Metrics:   serverMetrics,
		Assistant: assistant,
		closeFn: func() {
			if closePublisher != nil {
				closePublisher()
			}
			closeSessions()
		},
	}, nil
}

func buildSessionStore(ctx context.Context, cfg config.Config) (ports.SessionStore, func(), error) {
	switch cfg.SessionBackend {
	case "redis":
		store, err := sessionredis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.SessionTTL)
		if err != nil {
			return nil, nil, fmt.Errorf("init redis session store: %w", err)
		}
		return store, func() { _ = store.Close() }, nil
	case "postgres":
		db, err := sessionpostgres.OpenDB(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		store := sessionpostgres.NewStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ensure schema: %w", err)
		}
		return store, func() { _ = db.Close() }, nil
	case "memory", "":
		return sessionmemory.NewStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
