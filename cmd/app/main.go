package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"dispatch/cmd"
	"dispatch/internal/adapters/in/seed"
	"dispatch/internal/adapters/out/notify"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/ports"
	"dispatch/internal/generated/servers"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	configs := getConfigs()
	if err := configs.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	if _, err := servers.GetSwagger(); err != nil {
		log.Fatalf("invalid OpenAPI document: %v", err)
	}

	gormDB := mustGormOpen(configs)
	if err := postgres.Migrate(gormDB); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	sink, closeSink := notificationSink(configs, logger)
	defer closeSink()

	app, err := cmd.NewCompositionRoot(configs, gormDB, sink, logger)
	if err != nil {
		log.Fatalf("failed to build application: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if configs.SeedFile != "" {
		seedAgents(ctx, app, configs.SeedFile, logger)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config := cmd.Config{
		HTTPPort:          envOr("HTTP_PORT", "8080"),
		DBDriver:          envOr("DB_DRIVER", cmd.DriverPostgres),
		DBHost:            os.Getenv("DB_HOST"),
		DBPort:            envOr("DB_PORT", "5432"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBSslMode:         envOr("DB_SSLMODE", "disable"),
		SQLitePath:        envOr("SQLITE_PATH", "dispatch.db"),
		RedisHost:         os.Getenv("REDIS_HOST"),
		RedisPort:         intEnv("REDIS_PORT", 6379),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           intEnv("REDIS_DB", 0),
		RedisPrefix:       envOr("REDIS_PREFIX", "dispatch:"),
		PayoutBasisPoints: intEnv("PAYOUT_BASIS_POINTS", 8000),
		ClaimAttempts:     intEnv("CLAIM_ATTEMPTS", 3),
		AvailableLimit:    intEnv("AVAILABLE_ORDERS_LIMIT", 100),
		DispatchCron:      envOr("DISPATCH_CRON", "*/5 * * * * *"),
		DispatchBatch:     intEnv("DISPATCH_BATCH", 20),
		SweepCron:         envOr("SWEEP_CRON", "*/30 * * * * *"),
		PresenceTimeout:   durationEnv("PRESENCE_TIMEOUT", 2*time.Minute),
		SweepLimit:        intEnv("SWEEP_LIMIT", 500),
		SeedFile:          os.Getenv("SEED_FILE"),
	}
	return config
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("%s must be an integer, got %q", key, raw)
	}
	return v
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("%s must be a duration, got %q", key, raw)
	}
	return v
}

func mustGormOpen(configs cmd.Config) *gorm.DB {
	var dialector gorm.Dialector
	switch configs.DBDriver {
	case cmd.DriverSQLite:
		dialector = sqlite.Open(configs.SQLitePath)
	default:
		dialector = gorm_postgres.Open(configs.DSN())
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if configs.DBDriver == cmd.DriverSQLite {
		sqlDB, dbErr := gormDB.DB()
		if dbErr != nil {
			log.Fatalf("failed to get sql.DB: %v", dbErr)
		}
		// SQLite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	}
	return gormDB
}

// notificationSink always logs; Redis is added when configured.
func notificationSink(configs cmd.Config, logger *slog.Logger) (ports.NotificationSink, func()) {
	logSink := notify.NewLogSink(logger)
	if !configs.RedisEnabled() {
		return logSink, func() {}
	}

	client, err := notify.NewRedisClient(notify.RedisConfig{
		Host:     configs.RedisHost,
		Port:     configs.RedisPort,
		Password: configs.RedisPassword,
		DB:       configs.RedisDB,
	})
	if err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}

	redisSink := notify.NewRedisSink(client, logger, notify.RedisSinkOptions{Prefix: configs.RedisPrefix})
	return notify.NewFanOut(logSink, redisSink), func() {
		redisSink.Close()
		_ = client.Close()
	}
}

func seedAgents(ctx context.Context, app cmd.CompositionRoot, path string, logger *slog.Logger) {
	f, err := seed.Load(path)
	if err != nil {
		log.Fatalf("failed to load seed file: %v", err)
	}
	created, err := app.CreateSeedLoader().Apply(ctx, f)
	if err != nil {
		log.Fatalf("failed to seed agents: %v", err)
	}
	logger.InfoContext(ctx, "seed applied", "file", path, "created", created)
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, port string) {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)
	e.Use(middleware.Recover())

	if err := app.CreateHTTPServer().Register(e); err != nil {
		e.Logger.Fatal(err)
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
