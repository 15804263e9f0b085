package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opsui/opsui-wmsv2-sub002/cmd"
	httpin "github.com/opsui/opsui-wmsv2-sub002/internal/adapters/in/http"
	"github.com/opsui/opsui-wmsv2-sub002/internal/adapters/out/postgres"
	redisout "github.com/opsui/opsui-wmsv2-sub002/internal/adapters/out/redis"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/ports"
	"github.com/opsui/opsui-wmsv2-sub002/internal/jobs"

	"github.com/bsm/redislock"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	redisPingTimeout = 3 * time.Second
	shutdownTimeout  = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.SlogLevel()}))
	slog.SetDefault(logger)

	gormDB, err := gorm.Open(pgdriver.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err := postgres.Migrate(ctx, gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	redisClient := connectRedis(ctx, configs, logger)
	var notifier ports.Notifier
	var locker jobs.Locker
	if redisClient != nil {
		defer redisClient.Close()
		notifier = redisout.NewNotifier(redisClient, configs.NotificationPrefix)
		locker = jobs.NewRedisLocker(redislock.New(redisClient))
	}

	app := cmd.NewCompositionRoot(gormDB, notifier, logger)

	if configs.SchedulerEnabled {
		jobManager := jobs.NewJobManager(app.CreateRecurringPlanJob(locker))
		if err := jobManager.StartAll(ctx); err != nil {
			log.Fatalf("Error starting jobs: %v", err)
		}
		defer jobManager.StopAll()
	}

	startWebServer(ctx, app, configs.HTTPPort, logger)
}

// connectRedis returns nil when Redis is not configured or not reachable.
// The service then runs without alerts and without the scheduler lease.
func connectRedis(ctx context.Context, configs cmd.Config, logger *slog.Logger) *redis.Client {
	if configs.RedisAddr == "" {
		logger.InfoContext(ctx, "REDIS_ADDR not set; notifications and scheduler lease disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
		DB:       configs.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.WarnContext(ctx, "redis unavailable; notifications and scheduler lease disabled",
			"addr", configs.RedisAddr,
			"error", err,
		)
		_ = client.Close()
		return nil
	}
	return client
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := httpin.NewEcho(httpin.NewServer(app.HTTPHandlers()), logger)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown", "error", err)
		}
	}()

	if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		e.Logger.Fatal(err)
	}
}
