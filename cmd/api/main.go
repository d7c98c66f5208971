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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/kezzyngotho/aura/docs"
	"github.com/kezzyngotho/aura/internal/analytics"
	"github.com/kezzyngotho/aura/internal/chain"
	"github.com/kezzyngotho/aura/internal/chat"
	"github.com/kezzyngotho/aura/internal/classify"
	"github.com/kezzyngotho/aura/internal/config"
	"github.com/kezzyngotho/aura/internal/logging"
	"github.com/kezzyngotho/aura/internal/payout"
	"github.com/kezzyngotho/aura/internal/platform"
	"github.com/kezzyngotho/aura/internal/profile"
	"github.com/kezzyngotho/aura/internal/squad"
	mw "github.com/kezzyngotho/aura/pkg/middleware"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !cfg.AuthDisabled && cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required unless AUTH_DISABLED is set")
	}

	store, closeStore, err := platform.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	client, err := platform.NewLLMClient(ctx, cfg.LLM)
	if err != nil {
		return err
	}

	rate, err := decimal.NewFromString(cfg.AuraUSDCRate)
	if err != nil || !rate.IsPositive() {
		return fmt.Errorf("invalid AURA_USDC_RATE %q", cfg.AuraUSDCRate)
	}
	var ledger chain.Ledger = chain.NopLedger{}
	if cfg.ChainRelayerURL != "" {
		ledger = chain.NewRelayerLedger(cfg.ChainRelayerURL, cfg.ChainAPIKey)
	} else {
		logger.Warn("CHAIN_RELAYER_URL not set, on-chain operations are disabled")
	}

	// Squad feature
	squadService := squad.NewService(squad.NewRepository(store), logger)
	squadHandler := squad.NewHandler(squadService)

	// Analytics feature
	analyticsService := analytics.NewService(store, logger)
	analyticsHandler := analytics.NewHandler(analyticsService)

	// Query classification (LLM backed, records analytics)
	classifyService := classify.NewService(client, analyticsService, logger)
	classifyHandler := classify.NewHandler(classifyService)

	// Chat feature
	chatService := chat.NewService(chat.NewRepository(store), squadService, logger)
	chatHandler := chat.NewHandler(chatService)

	// Wallet and marketplace
	chainService := chain.NewService(ledger, rate, logger)
	chainHandler := chain.NewHandler(chainService)

	// Payout feature
	payoutService := payout.NewService(payout.NewRepository(store), squadService, chainService, analyticsService, logger)
	payoutHandler := payout.NewHandler(payoutService)

	// Profile feature
	profileHandler := profile.NewHandler(profile.NewService(squadService, logger))

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.AuthDisabled {
			logger.Warn("authentication disabled, trusting the X-User-ID header")
			r.Use(mw.DevUserMiddleware)
		} else {
			r.Use(mw.AuthMiddleware([]byte(cfg.JWTSecret)))
		}

		r.Mount("/squads", squadHandler.Routes())
		r.Mount("/chat", chatHandler.Routes())
		r.Mount("/queries", classifyHandler.Routes())
		r.Mount("/analytics", analyticsHandler.Routes())
		r.Mount("/wallet", chainHandler.Routes())
		r.Mount("/payouts", payoutHandler.Routes())
		r.Mount("/profiles", profileHandler.Routes())
	})

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("port", port), zap.String("kv_driver", cfg.KVDriver))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
