package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/gin-shop/config"
	"github.com/d60-Lab/gin-shop/internal/api"
	"github.com/d60-Lab/gin-shop/internal/api/handler"
	"github.com/d60-Lab/gin-shop/internal/payment"
	"github.com/d60-Lab/gin-shop/internal/repository"
	"github.com/d60-Lab/gin-shop/internal/service"
	"github.com/d60-Lab/gin-shop/pkg/database"
	"github.com/d60-Lab/gin-shop/pkg/logger"
	"github.com/d60-Lab/gin-shop/pkg/tracing"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }

// @title gin-shop API
// @version 1.0
// @description storefront cart/checkout service
func main() {
	cfg := must(config.Load())
	if err := logger.Init(cfg.Server.Mode); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx := context.Background()
	shutdownTracer := must(tracing.Init(ctx, cfg.Trace.OTLPEndpoint, cfg.Trace.ServiceName))
	defer func() { _ = shutdownTracer(context.Background()) }()

	db := must(database.InitDB(cfg))
	defer func() { _ = database.Close(db) }()

	// 目录缓存可降级：redis 不可用时直查库
	cache := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := cache.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, catalog cache disabled", zap.Error(err))
		cache = nil
	}

	itemRepo := repository.NewItemRepository(db, cache, cfg.Redis.CacheTTL)
	orderRepo := repository.NewOrderRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	gateway := payment.NewStripeGateway(cfg.Stripe.SecretKey)
	catalogSvc := service.NewCatalogService(itemRepo)
	cartSvc := service.NewCartService(db, orderRepo)
	checkoutSvc := service.NewCheckoutService(db, gateway, orderRepo, cfg.Stripe.Currency, cfg.Wallet.RedirectURL)

	h := handler.NewHandler(catalogSvc, cartSvc, checkoutSvc, orderRepo, addressRepo, paymentRepo)
	router := api.NewRouter(cfg, h)

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: router}
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
		}
	}()

	quit, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-quit.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
