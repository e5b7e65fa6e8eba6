package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orderflow/cmd"
	httpin "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/out/rabbit"
	"orderflow/internal/adapters/out/rates"
	"orderflow/internal/jobs"
	"orderflow/migrations"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pressly/goose/v3"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg := getConfig()

	logger := newLogger(cfg)
	defer func() {
		_ = logger.Sync()
	}()
	zap.ReplaceGlobals(logger)

	db := openDatabase(cfg, logger)
	migrate(db, logger)

	conn, channel := connectRabbit(cfg, logger)
	defer conn.Close()

	publisher, err := rabbit.NewPublisher(channel, cfg.RabbitExchange)
	if err != nil {
		logger.Fatal("failed to set up event publisher", zap.Error(err))
	}

	rateProvider, err := rates.NewStaticProvider(cfg.ExchangeRateUZS)
	if err != nil {
		logger.Fatal("invalid exchange rate configuration", zap.Error(err))
	}

	root := cmd.NewCompositionRoot(cfg, db, publisher, rateProvider)

	jobManager := jobs.NewJobManager(db, logger)
	if err = jobManager.StartAll(); err != nil {
		logger.Fatal("failed to start background jobs", zap.Error(err))
	}
	defer jobManager.StopAll()

	e := newEcho(&root)
	startWebServer(e, cfg.HTTPPort, logger)
}

func getConfig() cmd.Config {
	// A missing .env is fine: production supplies real environment variables.
	_ = godotenv.Load(".env")

	var cfg cmd.Config
	if err := env.Parse(&cfg); err != nil {
		panic(fmt.Errorf("error while parsing config: %w", err))
	}
	return cfg
}

func newLogger(cfg cmd.Config) *zap.Logger {
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		panic(fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err))
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = level

	logger, err := zapConfig.Build()
	if err != nil {
		panic(fmt.Errorf("error while building logger: %w", err))
	}
	return logger
}

func openDatabase(cfg cmd.Config, logger *zap.Logger) *gorm.DB {
	db, err := gorm.Open(gorm_postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}
	return db
}

func migrate(db *gorm.DB, logger *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("failed to unwrap sql.DB", zap.Error(err))
	}

	goose.SetBaseFS(migrations.FS)
	if err = goose.SetDialect("postgres"); err != nil {
		logger.Fatal("failed to set migration dialect", zap.Error(err))
	}
	if err = goose.Up(sqlDB, "."); err != nil {
		logger.Fatal("failed to apply migrations", zap.Error(err))
	}
}

func connectRabbit(cfg cmd.Config, logger *zap.Logger) (*amqp091.Connection, *amqp091.Channel) {
	conn, err := amqp091.Dial(cfg.RabbitURL)
	if err != nil {
		logger.Fatal("failed to connect RabbitMQ", zap.Error(err))
	}

	channel, err := conn.Channel()
	if err != nil {
		logger.Fatal("failed to open RabbitMQ channel", zap.Error(err))
	}

	return conn, channel
}

func newEcho(root *cmd.CompositionRoot) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	// zap is the application logger; echo's own logger only reports startup errors.
	e.Logger.SetLevel(log.ERROR)
	e.Use(middleware.Recover())

	server := httpin.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateChangeOrderStatusCommandHandler(),
		root.CreateAddOrderItemCommandHandler(),
		root.CreateRegisterReturnCommandHandler(),
		root.CreateGetOrderQueryHandler(),
		root.CreateGetAllowedStatusesQueryHandler(),
		root.CreateGetOrderHistoryQueryHandler(),
	)
	server.RegisterRoutes(e)

	return e
}

func startWebServer(e *echo.Echo, port string, logger *zap.Logger) {
	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil {
			logger.Info("web server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
