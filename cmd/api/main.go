package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	cartapp "github.com/yardsale/storefront/internal/cart/app"
	cartdomain "github.com/yardsale/storefront/internal/cart/domain"
	"github.com/yardsale/storefront/internal/cart/infra/filestore"
	"github.com/yardsale/storefront/internal/cart/infra/redisstore"
	cartrest "github.com/yardsale/storefront/internal/cart/rest"

	catalogapp "github.com/yardsale/storefront/internal/catalog/app"
	catalogmem "github.com/yardsale/storefront/internal/catalog/infra/memory"
	catalogrest "github.com/yardsale/storefront/internal/catalog/rest"

	checkoutapp "github.com/yardsale/storefront/internal/checkout/app"
	"github.com/yardsale/storefront/internal/checkout/infra/adapter"
	"github.com/yardsale/storefront/internal/checkout/infra/payment"
	checkoutrest "github.com/yardsale/storefront/internal/checkout/rest"

	orderapp "github.com/yardsale/storefront/internal/order/app"
	ordermem "github.com/yardsale/storefront/internal/order/infra/memory"
	"github.com/yardsale/storefront/internal/order/infra/rabbitmq"
	orderrest "github.com/yardsale/storefront/internal/order/rest"

	"github.com/yardsale/storefront/pkg/config"
	"github.com/yardsale/storefront/pkg/logger"
	"github.com/yardsale/storefront/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "storefront", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	// Catalog
	catalogRepo := catalogmem.NewProductRepo(catalogmem.DefaultProducts())
	catalogSvc := catalogapp.NewService(catalogRepo)

	// Cart
	persistence := buildCartPersistence(cfg, log)
	cartStore := cartapp.NewStore(ctx, persistence, log)

	// Orders
	publisher := buildPublisher(cfg, log)
	orderRepo := ordermem.NewOrderRepo()
	orderSvc := orderapp.NewService(orderRepo, publisher, log)

	// Checkout
	checkoutSvc := checkoutapp.NewService(
		adapter.NewCartStoreAdapter(cartStore),
		adapter.NewCatalogServiceReader(catalogSvc),
		payment.NewMockProcessor(),
		adapter.NewOrderServicePlacer(orderSvc),
		log,
	)

	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	catalogrest.NewHandler(catalogSvc).Register(router)
	cartrest.NewHandler(cartStore, catalogSnapshots{svc: catalogSvc}).Register(router)
	orderrest.NewHandler(orderSvc).Register(router)
	checkoutrest.NewHandler(checkoutSvc).Register(router)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}

func buildCartPersistence(cfg config.Config, log *slog.Logger) cartapp.Persistence {
	switch cfg.CartBackend {
	case "redis":
		store := redisstore.New(cfg.RedisAddr, cfg.CartStorageKey)
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pingCancel()
		if err := store.Ping(pingCtx); err != nil {
			log.Error("redis unreachable", slog.String("addr", cfg.RedisAddr), slog.Any("err", err))
			os.Exit(1)
		}
		log.Info("cart persistence: redis", slog.String("addr", cfg.RedisAddr), slog.String("key", cfg.CartStorageKey))
		return store
	case "file":
		log.Info("cart persistence: file", slog.String("path", cfg.CartStoragePath))
		return filestore.New(cfg.CartStoragePath)
	default:
		log.Error("unknown cart backend", slog.String("backend", cfg.CartBackend))
		os.Exit(1)
		return nil
	}
}

func buildPublisher(cfg config.Config, log *slog.Logger) orderapp.EventPublisher {
	if cfg.AMQPURL == "" {
		log.Info("warehouse publishing disabled")
		return orderapp.NopPublisher{}
	}

	pub, err := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.WarehouseQueue)
	if err != nil {
		log.Error("amqp connect failed", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("warehouse publishing enabled", slog.String("queue", cfg.WarehouseQueue))
	return pub
}

// catalogSnapshots feeds the cart the product snapshot it captures at add
// time.
type catalogSnapshots struct {
	svc *catalogapp.Service
}

func (s catalogSnapshots) Snapshot(ctx context.Context, productID string) (cartdomain.ProductSnapshot, bool, error) {
	p, err := s.svc.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, catalogapp.ErrNotFound) || errors.Is(err, catalogapp.ErrInvalidInput) {
			return cartdomain.ProductSnapshot{}, false, nil
		}
		return cartdomain.ProductSnapshot{}, false, err
	}

	return cartdomain.ProductSnapshot{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
		Stock: p.Stock,
		Image: p.Image,
	}, true, nil
}
