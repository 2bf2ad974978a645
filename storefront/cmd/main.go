package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/wtfrudb/movie-catalog/pkg/circuitbreaker"
	"github.com/wtfrudb/movie-catalog/pkg/logger"
	"github.com/wtfrudb/movie-catalog/storefront/internal/browser"
	"github.com/wtfrudb/movie-catalog/storefront/internal/checkout"
	"github.com/wtfrudb/movie-catalog/storefront/internal/config"
	"github.com/wtfrudb/movie-catalog/storefront/internal/events"
	h "github.com/wtfrudb/movie-catalog/storefront/internal/http"
	"github.com/wtfrudb/movie-catalog/storefront/internal/rentalapi"
	"github.com/wtfrudb/movie-catalog/storefront/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer zl.Sync()
	zap.ReplaceGlobals(zl)
	log := zl.Sugar()

	ctx := context.Background()

	base, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.StoreBackend, err)
	}
	defer closeStore()
	log.Infof("using %s store", cfg.StoreBackend)

	apiURL, err := url.Parse(cfg.RentalAPIURL)
	if err != nil {
		log.Fatalf("bad rental api url: %v", err)
	}
	breaker := circuitbreaker.DefaultConfig("rental-api")
	breaker.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Warnw("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
	}
	api := rentalapi.NewClient(rentalapi.NewHTTPClient(cfg.RequestTimeout, breaker), *apiURL)

	publisher := events.NewPublisher(cfg.KafkaTopic, cfg.KafkaBrokers...)
	defer publisher.Close()
	if publisher.Enabled() {
		log.Infof("publishing rental events to %s on %v", cfg.KafkaTopic, cfg.KafkaBrokers)
	}

	registry := browser.NewRegistry(base, cfg.BrowserIdleTTL, 0)
	defer registry.Close()

	router := h.NewRouter(h.RouterConfig{
		Registry:       registry,
		API:            api,
		Invoker:        checkout.NewInvoker(api, publisher),
		Logger:         log,
		RequestTimeout: cfg.RequestTimeout,
		CookieSecure:   cfg.CookieSecure,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("storefront starting on :%s, rental api %s", cfg.HTTPPort, cfg.RentalAPIURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server forced to shutdown: %v", err)
	}

	log.Info("server exited")
}

func openStore(ctx context.Context, cfg config.Config) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return store.NewRedisStore(client, store.DefaultRedisTTL), func() { client.Close() }, nil

	case config.BackendMongo:
		db, err := store.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return nil, nil, err
		}
		return store.NewMongoStore(db), func() { db.Client().Disconnect(context.Background()) }, nil

	case config.BackendPostgres:
		pg, err := store.NewPostgresStore(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := pg.RunMigrations(cfg.MigrationsPath); err != nil {
			pg.Close()
			return nil, nil, err
		}
		return pg, func() { pg.Close() }, nil

	default:
		return store.NewMemoryStore(), func() {}, nil
	}
}
