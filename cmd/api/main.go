package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/elitecorner/storefront-backend/api/routes"
	"github.com/elitecorner/storefront-backend/internal/cart"
	"github.com/elitecorner/storefront-backend/internal/catalog"
	checkoutsvc "github.com/elitecorner/storefront-backend/internal/checkout"
	"github.com/elitecorner/storefront-backend/internal/discounts"
	"github.com/elitecorner/storefront-backend/internal/orders"
	"github.com/elitecorner/storefront-backend/internal/siteconfig"
	"github.com/elitecorner/storefront-backend/internal/wishlist"
	"github.com/elitecorner/storefront-backend/pkg/config"
	"github.com/elitecorner/storefront-backend/pkg/db"
	"github.com/elitecorner/storefront-backend/pkg/env"
	"github.com/elitecorner/storefront-backend/pkg/logger"
	"github.com/elitecorner/storefront-backend/pkg/metrics"
	"github.com/elitecorner/storefront-backend/pkg/migrate"
	"github.com/elitecorner/storefront-backend/pkg/redis"
	"github.com/elitecorner/storefront-backend/pkg/whatsapp"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.Flags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	catalogRepo := catalog.NewRepository(dbClient.DB())
	catalogService, err := catalog.NewService(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	siteConfigService, err := siteconfig.NewService(siteconfig.ServiceParams{
		Repo:     siteconfig.NewRepository(dbClient.DB()),
		Cache:    redisClient,
		CacheTTL: cfg.SiteConfig.CacheTTL,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create site-config service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orders.ServiceParams{
		Repo:   orders.NewRepository(dbClient.DB()),
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	discountStore, err := discounts.NewStore(redisClient, cfg.Checkout.PendingDiscountTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create discount store", err)
		os.Exit(1)
	}

	numberSource, err := checkoutsvc.NewNumberSource(redisClient, cfg.Checkout.PendingDiscountTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create order number source", err)
		os.Exit(1)
	}

	linkBuilder, err := whatsapp.NewLinkBuilder(cfg.WhatsApp.Host, cfg.WhatsApp.Destination)
	if err != nil {
		logg.Error(context.Background(), "failed to create whatsapp link builder", err)
		os.Exit(1)
	}

	profile, err := checkoutsvc.ProfileByName(cfg.Checkout.Profile)
	if err != nil {
		logg.Error(context.Background(), "failed to resolve checkout profile", err)
		os.Exit(1)
	}

	carts := cart.NewContainer()
	wishlists := wishlist.NewContainer()

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{
		Profile:   profile,
		Carts:     carts,
		Discounts: discountStore,
		Orders:    ordersService,
		Numbers:   numberSource,
		Links:     linkBuilder,
		Metrics:   checkoutMetrics,
		Logger:    logg,
		Checkout:  cfg.Checkout,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	addr := ":" + env.Get("PORT", cfg.App.Port)
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:     cfg,
			Logger:     logg,
			DB:         dbClient,
			Redis:      redisClient,
			Catalog:    catalogService,
			SiteConfig: siteConfigService,
			Namer:      catalogRepo,
			Carts:      carts,
			Wishlists:  wishlists,
			Discounts:  discountStore,
			Checkout:   checkoutService,
			Orders:     ordersService,
			Metrics:    promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
