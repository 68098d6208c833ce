package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/fittrack/exercise-tracker/internal/api"
	"github.com/fittrack/exercise-tracker/internal/core/ports"
	"github.com/fittrack/exercise-tracker/internal/core/service"
	"github.com/fittrack/exercise-tracker/internal/infrastructure/config"
	"github.com/fittrack/exercise-tracker/internal/infrastructure/db/memory"
	mongostore "github.com/fittrack/exercise-tracker/internal/infrastructure/db/mongo"
	redisstore "github.com/fittrack/exercise-tracker/internal/infrastructure/db/redis"
	"github.com/fittrack/exercise-tracker/internal/infrastructure/queue"
	"github.com/fittrack/exercise-tracker/pkg/logger"
)

// @title        Exercise Tracker API
// @version      1.0
// @description  Tracks users and their per-user exercise logs.
// @BasePath     /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	var (
		userRepo   ports.UserRepository
		auditSink  service.AuditSink
		dispatcher *queue.Dispatcher
		mongoDB    *mongodriver.Database
	)

	switch cfg.Store {
	case "memory":
		userRepo = memory.NewUserRepository()
		log.Info().Msg("using in-memory user store")
	default:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()

		repo := mongostore.NewUserRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("mongo index creation failed")
		}
		userRepo = repo
		mongoDB = db

		dispatcher = queue.NewDispatcher(cfg.AuditWorkers, mongostore.NewAuditRepository(db), log)
		dispatcher.Start()
		auditSink = dispatcher
	}

	var (
		cache service.UserListCache
		rdb   *goredis.Client
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			// cache is an optimisation, not a dependency
			log.Warn().Err(err).Msg("redis unavailable, user list cache disabled")
		} else {
			defer func() {
				_ = rdb.Close()
			}()
			cache = redisstore.NewUserListCache(rdb)
		}
	}

	userService := service.NewUserService(userRepo, cache, log)
	exerciseService := service.NewExerciseService(userRepo, auditSink, log)

	e := api.NewRouter(api.Deps{
		Users:     userService,
		Exercises: exerciseService,
		Mongo:     mongoDB,
		Redis:     rdb,
		Logger:    log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("store", cfg.Store).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	// no new appends can arrive once the server is down; drain what is queued
	if dispatcher != nil {
		dispatcher.Stop()
	}
}
