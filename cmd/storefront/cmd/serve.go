package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/mstepanov/storefront/internal/api/handlers"
	apimw "github.com/mstepanov/storefront/internal/api/middleware"
	"github.com/mstepanov/storefront/internal/cart"
	"github.com/mstepanov/storefront/internal/config"
	"github.com/mstepanov/storefront/internal/engine"
	"github.com/mstepanov/storefront/internal/order"
	"github.com/mstepanov/storefront/internal/store"
	"github.com/mstepanov/storefront/internal/tracing"
	"github.com/mstepanov/storefront/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and meta refresh scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	ctx := context.Background()

	shutdownTracing := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		shutdownTracing, err = tracing.Init(ctx, cfg.Tracing, Version)
		if err != nil {
			return fmt.Errorf("initializing tracing: %w", err)
		}
	}

	st, err := store.NewPostgresStore(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer st.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() { _ = rdb.Close() }()

	cartSvc := cart.NewService(cart.NewRedisRepository(rdb, cfg.Redis.CartTTL), st)
	orderSvc := order.NewService(cartSvc, st)

	eng := engine.NewEngine(st, engine.WithLogger(log))
	if err := eng.RefreshMeta(ctx); err != nil {
		// Not fatal: the meta endpoint falls back to a live query
		// until the next scheduled refresh succeeds.
		log.Warn("initial meta refresh failed", "error", err)
	}

	sched, err := engine.NewScheduler(eng, cfg.Schedule.MetaRefreshInterval, log)
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}
	sched.Start()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(apimw.RequestLog(log))
	e.Use(apimw.Recovery(log))
	e.Use(apimw.Metrics())
	if cfg.Tracing.Enabled {
		e.Use(apimw.Tracing(cfg.Tracing.ServiceName))
	}

	health := handlers.NewHealthHandler(st, rdb)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("Storefront API", Version))

	handlers.RegisterCatalogRoutes(api, handlers.NewCatalogHandler(
		st, eng,
		cfg.Catalog.DefaultPageSize, cfg.Catalog.MaxPageSize, cfg.Catalog.FeaturedLimit,
	))
	handlers.RegisterProductRoutes(api, handlers.NewProductsHandler(st))
	handlers.RegisterCategoryRoutes(api, handlers.NewCategoriesHandler(st))
	handlers.RegisterFavoriteRoutes(api, handlers.NewFavoritesHandler(st))
	handlers.RegisterCartRoutes(api, handlers.NewCartHandler(cartSvc))
	handlers.RegisterOrderRoutes(api, handlers.NewOrdersHandler(orderSvc))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	<-sched.Stop().Done()

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown failed", "error", err)
	}

	log.Info("server stopped")
	return nil
}
