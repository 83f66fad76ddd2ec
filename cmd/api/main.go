package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Puntoventa-api/internal/application/auth"
	"github.com/jhoicas/Puntoventa-api/internal/application/capital"
	"github.com/jhoicas/Puntoventa-api/internal/application/checkout"
	"github.com/jhoicas/Puntoventa-api/internal/application/inventory"
	"github.com/jhoicas/Puntoventa-api/internal/application/usecase"
	infracache "github.com/jhoicas/Puntoventa-api/internal/infrastructure/cache"
	infraevents "github.com/jhoicas/Puntoventa-api/internal/infrastructure/events"
	infrapdf "github.com/jhoicas/Puntoventa-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Puntoventa-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Puntoventa-api/internal/interfaces/http"
	"github.com/jhoicas/Puntoventa-api/pkg/config"
	"github.com/jhoicas/Puntoventa-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	outletRepo := postgres.NewOutletRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	priceRepo := postgres.NewPriceRuleRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	tierRepo := postgres.NewTierRepository(pool)
	stockRepo := postgres.NewInventoryStateRepository(pool)
	eventRepo := postgres.NewInventoryEventRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	capitalRepo := postgres.NewCapitalRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache de balance: redis si está configurado, si no noop.
	var balanceCache capital.BalanceCache = infracache.NewNoopBalanceCache()
	if cfg.Redis.Addr != "" {
		redisCache := infracache.NewRedisBalanceCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis no disponible, balance sin cache")
		} else {
			balanceCache = redisCache
			defer redisCache.Close()
			log.Info().Str("addr", cfg.Redis.Addr).Msg("cache de balance en redis")
		}
	}

	// Publicador de ventas: kafka si hay brokers configurados.
	var salePublisher checkout.SalePublisher
	if brokers := cfg.Kafka.BrokerList(); len(brokers) > 0 {
		kafkaPublisher := infraevents.NewKafkaSalePublisher(brokers, cfg.Kafka.Topic, log)
		salePublisher = kafkaPublisher
		defer kafkaPublisher.Close()
		log.Info().Strs("brokers", brokers).Str("topic", cfg.Kafka.Topic).Msg("publicador de ventas en kafka")
	}

	authUC := auth.NewAuthUseCase(userRepo, outletRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	outletUC := usecase.NewOutletUseCase(outletRepo)
	productUC := usecase.NewProductUseCase(productRepo, priceRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo, tierRepo, productRepo)
	checkoutUC := checkout.NewUseCase(txRunner, customerRepo, tierRepo, productRepo, priceRepo, saleRepo, salePublisher)
	receiptUC := checkout.NewReceiptUseCase(saleRepo, outletRepo, infrapdf.NewMarotoReceiptGenerator())
	inventoryUC := inventory.NewUseCase(txRunner, productRepo, stockRepo, eventRepo)
	capitalUC := capital.NewUseCase(txRunner, capitalRepo, balanceCache)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Puntoventa API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		OutletUC:    outletUC,
		ProductUC:   productUC,
		CustomerUC:  customerUC,
		CheckoutUC:  checkoutUC,
		ReceiptUC:   receiptUC,
		InventoryUC: inventoryUC,
		CapitalUC:   capitalUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
