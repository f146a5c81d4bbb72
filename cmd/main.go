package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	signupcmd "github.com/eaglebank/signup-service/internal/command"
	"github.com/eaglebank/signup-service/internal/config"
	"github.com/eaglebank/signup-service/internal/handler"
	"github.com/eaglebank/signup-service/internal/metrics"
	userqry "github.com/eaglebank/signup-service/internal/query"
	"github.com/eaglebank/signup-service/internal/repository"
	"github.com/eaglebank/signup-service/internal/store"
	"github.com/eaglebank/signup-service/migrations"
	"github.com/eaglebank/signup-service/shared/events"
	"github.com/eaglebank/signup-service/shared/logger"
	redisClient "github.com/eaglebank/signup-service/shared/redis"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.L().Fatal("invalid configuration", logger.Err(err))
	}

	logger.Init(logger.Config{Env: cfg.Env, Level: cfg.LogLevel, ServiceName: "signup-service"})
	defer logger.Sync() //nolint:errcheck
	log := logger.L()

	if strings.EqualFold(cfg.Env, "prod") {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database connection (service role)
	db, err := store.Open(ctx, cfg.Store)
	if err != nil {
		log.Fatal("failed to connect to database", logger.Err(err))
	}
	defer db.Close()

	if cfg.Migrate {
		n, err := store.Migrate(ctx, db, migrations.PostgresFS, migrations.PostgresDir)
		if err != nil {
			log.Fatal("failed to apply migrations", logger.Err(err))
		}
		log.Info("migrations up to date", zap.Int("applied", n))
	}

	// Redis connection (view cache + event stream), optional
	var redisConn *goredis.Client
	var publisher signupcmd.EventPublisher = events.NopPublisher{}
	if cfg.Redis.Enabled() {
		rc, err := redisClient.NewClient(ctx, redisClient.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("failed to connect to redis", logger.Err(err))
		}
		defer rc.Close()
		redisConn = rc.Client
		publisher = events.NewPublisher(rc.Client)
	} else {
		log.Info("REDIS_ADDR not set, view cache and event publishing disabled")
	}

	m, err := metrics.New(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal("failed to register metrics", logger.Err(err))
	}

	// --- CQRS wiring ---
	userRepo := repository.NewUserWriteRepository(db)
	profileRepo := repository.NewProfileWriteRepository(db)
	readRepo := repository.NewUserReadRepository(db, redisConn, cfg.Redis.ViewTTL)

	commandSvc := signupcmd.NewSignupCommandService(userRepo, profileRepo, readRepo, publisher, signupcmd.Options{
		Compensate: cfg.Webhook.Compensate,
		Metrics:    m,
	})
	querySvc := userqry.NewUserQueryService(readRepo)

	router := newRouter(routerDeps{
		Webhook:   handler.NewWebhookHandler(commandSvc, cfg.Webhook.EventTypes),
		Users:     handler.NewUserHandler(querySvc),
		Metrics:   m,
		JWTSecret: []byte(cfg.Webhook.JWTSecret),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("signup service starting",
			zap.String("port", cfg.Port),
			zap.Strings("event_types", cfg.Webhook.EventTypes),
			zap.Bool("compensate", cfg.Webhook.Compensate),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", logger.Err(err))
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", logger.Err(err))
	}
}
