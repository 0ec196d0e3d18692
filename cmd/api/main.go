package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mercadodovale/estoque-api/internal/application/inventory"
	"github.com/mercadodovale/estoque-api/internal/infrastructure/cache"
	"github.com/mercadodovale/estoque-api/internal/infrastructure/metrics"
	infrapdf "github.com/mercadodovale/estoque-api/internal/infrastructure/pdf"
	"github.com/mercadodovale/estoque-api/internal/infrastructure/postgres"
	httpRouter "github.com/mercadodovale/estoque-api/internal/interfaces/http"
	"github.com/mercadodovale/estoque-api/pkg/config"
	"github.com/mercadodovale/estoque-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Fatal hace os.Exit: los defer de run ya corrieron al volver.
	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("aplicación abortada")
	}
	log.Info().Msg("aplicación detenida")
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	historyRepo := postgres.NewPriceHistoryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Sin REDIS_URL la vista agrupada se calcula en cada request.
	var groupCache inventory.GroupCache = inventory.NopCache{}
	if cfg.Cache.Enabled() {
		client, err := cache.NewRedisClient(ctx, cfg.Cache.RedisURL)
		if err != nil {
			return fmt.Errorf("conexión a Redis: %w", err)
		}
		defer client.Close()
		groupCache = cache.NewRedisGroupCache(client, cfg.Cache.Prefix, cfg.Cache.TTL())
	}

	invMetrics := metrics.NewInventoryMetrics(prometheus.DefaultRegisterer)
	invLog := log.Component("inventory")

	groupingUC := inventory.NewGroupingUseCase(productRepo, groupCache, invMetrics, invLog)
	adjustUC := inventory.NewAdjustStockUseCase(txRunner, movementRepo, groupCache, invMetrics, invLog)
	pricingUC := inventory.NewPricingUseCase(txRunner, historyRepo, groupCache, invMetrics, invLog)
	unitUC := inventory.NewUnitStatusUseCase(txRunner, groupCache, invMetrics, invLog)
	reportUC := inventory.NewReportUseCase(groupingUC, infrapdf.NewMarotoPDFGenerator(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Estoque API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Queries:   groupingUC,
		Adjuster:  adjustUC,
		Pricing:   pricingUC,
		Units:     unitUC,
		Reports:   reportUC,
		JWTSecret: cfg.JWT.Secret,
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
	return nil
}
