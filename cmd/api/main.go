package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/sayanm085/shopnex-api/internal/application/auth"
	"github.com/sayanm085/shopnex-api/internal/application/inventory"
	"github.com/sayanm085/shopnex-api/internal/application/purchasing"
	"github.com/sayanm085/shopnex-api/internal/application/selling"
	"github.com/sayanm085/shopnex-api/internal/application/usecase"
	infrapdf "github.com/sayanm085/shopnex-api/internal/infrastructure/pdf"
	"github.com/sayanm085/shopnex-api/internal/infrastructure/postgres"
	"github.com/sayanm085/shopnex-api/internal/infrastructure/rediscache"
	httpRouter "github.com/sayanm085/shopnex-api/internal/interfaces/http"
	"github.com/sayanm085/shopnex-api/pkg/config"
	"github.com/sayanm085/shopnex-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	variantRepo := postgres.NewVariantRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	dealerRepo := postgres.NewDealerRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Redis cache for the barcode scan path. Empty REDIS_ADDR runs with a noop.
	var invCache inventory.LookupCache = rediscache.Noop{}
	var purchInvalidator purchasing.CacheInvalidator = rediscache.Noop{}
	var sellInvalidator selling.CacheInvalidator = rediscache.Noop{}
	if cfg.Redis.Addr != "" {
		lookupCache, err := rediscache.New(
			cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			time.Duration(cfg.Redis.TTL)*time.Second, log,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("connect to Redis")
		}
		defer lookupCache.Close()
		invCache = lookupCache
		purchInvalidator = lookupCache
		sellInvalidator = lookupCache
	}

	loyalty := selling.LoyaltyConfig{
		PointValue:    decimal.NewFromInt(int64(cfg.Loyalty.PointValue)),
		EarnThreshold: decimal.NewFromInt(int64(cfg.Loyalty.EarnThreshold)),
	}
	receipts := infrapdf.NewReceiptGenerator(cfg.Store)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	itemUC := usecase.NewItemUseCase(itemRepo, variantRepo)
	dealerUC := usecase.NewDealerUseCase(dealerRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)

	inventoryUC := inventory.NewUseCase(itemRepo, variantRepo, batchRepo, invCache, log)
	purchasingUC := purchasing.NewUseCase(txRunner, dealerRepo, orderRepo, purchInvalidator, log)
	sellingUC := selling.NewUseCase(txRunner, saleRepo, customerRepo, loyalty, sellInvalidator, receipts, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ItemUC:      itemUC,
		DealerUC:    dealerUC,
		CustomerUC:  customerUC,
		InventoryUC: inventoryUC,
		Purchasing:  purchasingUC,
		Selling:     sellingUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
