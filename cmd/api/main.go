package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/wishkeeper/wishkeeper-go/internal/config"
	"github.com/wishkeeper/wishkeeper-go/internal/crypto"
	"github.com/wishkeeper/wishkeeper-go/internal/extract"
	"github.com/wishkeeper/wishkeeper-go/internal/handler"
	"github.com/wishkeeper/wishkeeper-go/internal/logger"
	"github.com/wishkeeper/wishkeeper-go/internal/metrics"
	"github.com/wishkeeper/wishkeeper-go/internal/repository"
	"github.com/wishkeeper/wishkeeper-go/internal/service"
	"go.uber.org/zap"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if envErr != nil {
		log.Info("no .env file found, using environment variables")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}
	if cfg.UsesFallbackSecret() {
		log.Warn("SESSION_SECRET is not set; sessions are signed with a publicly known fallback secret")
	}
	if cfg.AdminPasswordHash == "" {
		log.Warn("ADMIN_PASSWORD_HASH is not set; every login will fail")
	}

	m := metrics.NewCollector("wishkeeper")

	ctx := context.Background()
	backend, err := openStore(ctx, cfg, m)
	if err != nil {
		log.Fatal("document store unavailable", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	store := repository.NewInstrumentedStore(backend, m)
	defer store.Close()

	data := repository.NewCollections(store, cfg.StoreNamespace)

	codec := crypto.NewSessionCodec(cfg.SessionSecret, cfg.SessionTTL)

	var extractor service.Extractor
	if cfg.FirecrawlAPIKey != "" {
		extractor = extract.NewFirecrawl(extract.Config{
			APIKey:  cfg.FirecrawlAPIKey,
			BaseURL: cfg.FirecrawlBaseURL,
			RPS:     cfg.ExtractRPS,
			Burst:   cfg.ExtractBurst,
		}, log.Named("extract"))
	} else {
		log.Warn("FIRECRAWL_API_KEY is not set; product scraping is disabled")
	}

	router := handler.NewRouter(handler.Deps{
		Auth:         service.NewAuthService(cfg.AdminPasswordHash, codec, m),
		Wishlists:    service.NewWishlistService(data),
		Items:        service.NewItemService(data),
		Enrich:       service.NewEnrichService(extractor, m, log.Named("enrich")),
		Store:        store,
		Metrics:      m,
		Logger:       log,
		SecureCookie: cfg.IsProduction(),
		SessionTTL:   codec.TTL(),
		CORSOrigins:  cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Scrapes may wait up to a minute on the provider.
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env), zap.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced shutdown", zap.Error(err))
		return
	}

	log.Info("server stopped")
}

func openStore(ctx context.Context, cfg config.Config, m *metrics.Collector) (repository.DocumentStore, error) {
	switch cfg.StoreDriver {
	case config.StoreMySQL:
		db, err := repository.NewDB(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		store := repository.NewMySQLStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("create documents table: %w", err)
		}
		return store, nil
	default:
		client, err := repository.DialRedis(ctx, cfg.RedisURL, cfg.RedisToken)
		if err != nil {
			return nil, err
		}
		return repository.NewRedisStore(client, repository.WithConflictHook(m.IncStoreConflict)), nil
	}
}
