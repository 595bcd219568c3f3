package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"github.com/donutopia/storefront/internal/analytics"
	analyticskafka "github.com/donutopia/storefront/internal/analytics/kafka"
	cartapp "github.com/donutopia/storefront/internal/cart/application"
	"github.com/donutopia/storefront/internal/cart/infrastructure/memory"
	catalogdomain "github.com/donutopia/storefront/internal/catalog/domain"
	catalogpg "github.com/donutopia/storefront/internal/catalog/infrastructure/postgres"
	orderapp "github.com/donutopia/storefront/internal/order/application"
	orderhttp "github.com/donutopia/storefront/internal/order/infrastructure/http"
	"github.com/donutopia/storefront/internal/order/infrastructure/whatsapp"
	"github.com/donutopia/storefront/pkg/idempotency"
	"github.com/donutopia/storefront/pkg/logging"
	"github.com/donutopia/storefront/pkg/shutdown"
	"github.com/donutopia/storefront/pkg/toast"
)

func main() {
	log := logging.New("storefront")

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	// Configuration
	httpAddr := env("HTTP_ADDR", ":8080")
	phone := env("WHATSAPP_PHONE", whatsapp.DefaultPhone)
	catalogPG := os.Getenv("CATALOG_PG_URL")
	kafkaAddr := os.Getenv("KAFKA_ADDR")
	redisAddr := os.Getenv("REDIS_ADDR")
	eventsTopic := env("ANALYTICS_TOPIC", "storefront.events")

	// Catalog: embedded menu unless a database is configured
	catalog := catalogdomain.DefaultStore()
	if catalogPG != "" {
		pool, err := pgxpool.New(ctx, catalogPG)
		if err != nil {
			log.Error("catalog db connect failed", "err", err)
			os.Exit(1)
		}
		repo := catalogpg.NewRepository(log, pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Error("catalog schema failed", "err", err)
			os.Exit(1)
		}
		catalog, err = repo.Load(ctx)
		if err != nil {
			log.Error("catalog load failed", "err", err)
			os.Exit(1)
		}
		// loaded once; the pool has nothing further to do
		pool.Close()
	}

	// Analytics
	var tracker analytics.Tracker = analytics.Noop{}
	if kafkaAddr != "" {
		writer := analyticskafka.NewWriter(strings.Split(kafkaAddr, ","))
		defer writer.Close()
		tracker = analyticskafka.NewTracker(log, writer, eventsTopic)
	}

	// Duplicate-submit guard
	var guard *idempotency.Guard
	if redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
		defer rdb.Close()
		guard = idempotency.NewGuard(rdb, 30*time.Second)
	}

	notifier := toast.ContextNotifier{}
	carts := cartapp.NewService(log, catalog, memory.NewStore(), notifier, tracker)
	orders := orderapp.NewService(log, notifier, tracker, whatsapp.NewComposer(phone))
	handler := orderhttp.NewHandler(log, carts, orders, guard)

	r := chi.NewRouter()
	r.Mount("/", handler.Routes())
	srv := &http.Server{
		Addr:         httpAddr,
		Handler:      cors.Default().Handler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("http listening", "addr", httpAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	log.Info("storefront shutdown complete")
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
