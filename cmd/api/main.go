package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/zestraw/storefront-backend/api/routes"
	"github.com/zestraw/storefront-backend/internal/auth"
	"github.com/zestraw/storefront-backend/internal/cart"
	"github.com/zestraw/storefront-backend/internal/marketplace"
	"github.com/zestraw/storefront-backend/internal/orders"
	product "github.com/zestraw/storefront-backend/internal/products"
	"github.com/zestraw/storefront-backend/internal/users"
	"github.com/zestraw/storefront-backend/pkg/auth/session"
	"github.com/zestraw/storefront-backend/pkg/config"
	"github.com/zestraw/storefront-backend/pkg/db"
	"github.com/zestraw/storefront-backend/pkg/logger"
	"github.com/zestraw/storefront-backend/pkg/metrics"
	"github.com/zestraw/storefront-backend/pkg/migrate"
	"github.com/zestraw/storefront-backend/pkg/redis"
)

// Abandoned guest carts are kept for a month before Redis drops them.
const cartTTL = 30 * 24 * time.Hour

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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := multierr.Combine(dbClient.Close(), redisClient.Close()); err != nil {
			logg.Error(context.Background(), "error closing dependencies", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	otpService, err := auth.NewOTPService(auth.OTPServiceParams{
		KV:     redisClient,
		Keyer:  redisClient,
		Users:  userRepo,
		Sender: auth.NewLogCodeSender(logg),
		Config: cfg.OTP,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create otp service", err)
		os.Exit(1)
	}

	resetService, err := auth.NewResetService(auth.ResetServiceParams{
		KV:             redisClient,
		Keyer:          redisClient,
		Users:          userRepo,
		Sender:         auth.NewLogResetSender(logg),
		OTPConfig:      cfg.OTP,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create reset service", err)
		os.Exit(1)
	}

	productRepo := product.NewRepository(dbClient.DB())
	if cfg.FeatureFlags.SeedCatalog {
		if err := product.SeedDefaults(context.Background(), productRepo, logg); err != nil {
			logg.Error(context.Background(), "failed to seed catalog", err)
			os.Exit(1)
		}
	}
	productService, err := product.NewService(productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	marketplaceService, err := marketplace.NewService(nil, marketplace.NewLogLeadSink(logg))
	if err != nil {
		logg.Error(context.Background(), "failed to create marketplace service", err)
		os.Exit(1)
	}

	cartStore, err := cart.NewRedisStore(redisClient, redisClient, logg, cartTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}
	cartService, err := cart.NewService(cartStore)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orders.ServiceParams{
		Repo:   orders.NewRepository(dbClient.DB()),
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			routes.Pingers{DB: dbClient, Redis: redisClient},
			redisClient,
			sessionManager,
			metrics.NewHTTPMetrics(),
			routes.Services{
				Auth:        authService,
				OTP:         otpService,
				Reset:       resetService,
				Products:    productService,
				Marketplace: marketplaceService,
				Cart:        cartService,
				Orders:      orderService,
			},
		),
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
