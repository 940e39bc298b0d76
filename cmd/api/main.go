package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/reagan13/backend-itservice/internal/config"
	"github.com/reagan13/backend-itservice/internal/db"
	"github.com/reagan13/backend-itservice/internal/httpserver"
	cartrepo "github.com/reagan13/backend-itservice/internal/repository/cart"
	orderrepo "github.com/reagan13/backend-itservice/internal/repository/order"
	productrepo "github.com/reagan13/backend-itservice/internal/repository/product"
	tokenrepo "github.com/reagan13/backend-itservice/internal/repository/token"
	userrepo "github.com/reagan13/backend-itservice/internal/repository/user"
	accountsvc "github.com/reagan13/backend-itservice/internal/service/account"
	cartsvc "github.com/reagan13/backend-itservice/internal/service/cart"
	catalogsvc "github.com/reagan13/backend-itservice/internal/service/catalog"
	checkoutsvc "github.com/reagan13/backend-itservice/internal/service/checkout"
	ordersvc "github.com/reagan13/backend-itservice/internal/service/order"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	provider := db.NewProvider(dbpool, cfg.AcquireRetries, cfg.AcquireDelay, logger)

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer redisClient.Close()
	}

	userRepo := userrepo.NewPostgres(dbpool, logger)
	tokenRepo := tokenrepo.NewPostgres(dbpool)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)

	accountService := accountsvc.New(userRepo, tokenRepo)
	catalogCache := catalogsvc.NewCache(redisClient, 10*time.Minute, logger)
	catalogService := catalogsvc.New(productRepo, catalogCache)
	cartService := cartsvc.New(cartRepo, productRepo)
	checkoutService := checkoutsvc.New(checkoutsvc.NewTxRunner(provider, logger), cfg.OrderTopic, logger)
	orderService := ordersvc.New(orderRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		AccountSvc:  accountService,
		CatalogSvc:  catalogService,
		CartSvc:     cartService,
		CheckoutSvc: checkoutService,
		OrderSvc:    orderService,
		Diagnostics: cfg.Diagnostics,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
