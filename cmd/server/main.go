package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/futureed/backend/internal/config"
	"github.com/futureed/backend/internal/handler"
	appMiddleware "github.com/futureed/backend/internal/middleware"
	"github.com/futureed/backend/internal/repository"
	"github.com/futureed/backend/internal/router"
	"github.com/futureed/backend/internal/service"
	"github.com/futureed/backend/pkg/payment"
)

func main() {
	// Load .env file if present (for local development)
	config.LoadDotEnv()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config error: %v", err)
	}

	ctx := context.Background()

	// User storage: Postgres when configured, process memory otherwise
	var users repository.UserStore
	var db handler.Pinger
	if cfg.DatabaseURL != "" {
		pool, err := repository.NewDB(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("❌ Database error: %v", err)
		}
		defer pool.Close()

		if err := repository.RunMigrations(ctx, pool); err != nil {
			log.Fatalf("❌ Migration error: %v", err)
		}
		log.Println("✅ Database connected & migrated")
		users = repository.NewUserRepository(pool)
		db = pool
	} else {
		log.Println("⚠️  DATABASE_URL not set, accounts are kept in memory")
		users = repository.NewMemoryUserRepository()
	}

	// Payment gateway
	var gateway payment.PaymentGateway
	switch cfg.PaymentGateway {
	case config.GatewayMock:
		log.Println("⚠️  Using mock payment gateway")
		gateway = payment.NewMockGateway()
	default:
		var opts []payment.StripeOption
		if cfg.StripeAPIURL != "" {
			opts = append(opts, payment.WithAPIURL(cfg.StripeAPIURL))
		}
		gateway = payment.NewStripeGateway(cfg.StripeSecretKey, opts...)
	}

	secretKey := cfg.StripeSecretKey
	if cfg.PaymentGateway == config.GatewayMock && secretKey == "" {
		secretKey = "mock"
	}
	checkoutSvc := service.NewCheckoutService(gateway, service.CheckoutOptions{
		SecretKey:            secretKey,
		FallbackOrigin:       cfg.FallbackOrigin,
		Timeout:              cfg.ProviderTimeout,
		ExposeProviderErrors: cfg.ProviderErrorPassthrough,
	})
	if checkoutSvc.Configured() {
		log.Println("✅ Payments configured")
	} else {
		log.Println("⚠️  STRIPE_SECRET_KEY not set, checkout requests will fail")
	}

	authSvc := service.NewAuthService(cfg.JWTSecret, users)

	globalRL := appMiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer globalRL.Stop()
	authRL := appMiddleware.NewStrictRateLimiter()
	defer authRL.Stop()

	r := router.New(router.Deps{
		Payment:       handler.NewPaymentHandler(checkoutSvc, cfg.StripeWebhookSecret),
		Auth:          handler.NewAuthHandler(authSvc),
		Health:        handler.NewHealthHandler(db, checkoutSvc.Configured()),
		Verifier:      authSvc,
		CORSOrigins:   cfg.CORSOrigins,
		GlobalLimiter: globalRL,
		AuthLimiter:   authRL,
	})

	// Start server
	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.ProviderTimeout + 15*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Println("🛑 Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("🚀 FutureEd Academy backend listening at http://%s", addr)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("❌ Server error: %v", err)
	}
}
