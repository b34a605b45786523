package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/roadbook/roadbook/internal/api"
	"github.com/roadbook/roadbook/internal/auth"
	"github.com/roadbook/roadbook/internal/cache"
	"github.com/roadbook/roadbook/internal/config"
	"github.com/roadbook/roadbook/internal/store"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(log); err != nil {
		log.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Pick the store: Postgres when DATABASE_URL is set, otherwise
	// process-lifetime memory.
	var (
		st          api.Store
		storePinger api.Pinger
	)
	if cfg.UsePostgres() {
		pool, err := store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer pool.Close()

		if err := store.RunMigrations(ctx, pool, cfg.MigrationsDir); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		log.Info("migrations applied")

		st = store.NewPostgres(pool)
		storePinger = pool
	} else {
		mem := store.NewMemory()
		st = mem
		storePinger = mem
		log.Info("using in-memory store; state is lost on exit")
	}

	// Roadtrip read cache is optional.
	var (
		roadtripCache api.RoadtripCache = cache.Noop{}
		cachePinger   api.Pinger
	)
	if cfg.UseRedisCache() {
		redisClient, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer func() { _ = redisClient.Close() }()

		roadtripCache = cache.NewCache(redisClient)
		cachePinger = &redisPingerAdapter{client: redisClient}
	}

	tokens, err := auth.NewTokenIssuer(cfg.TokenSecret, time.Duration(cfg.TokenTTLMin)*time.Minute)
	if err != nil {
		return err
	}

	handlers := api.NewHandlers(st, roadtripCache, tokens, cfg.AdminUsernames(), log)
	router := api.NewRouter(handlers, cfg.Origins(), storePinger, cachePinger, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("listening: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("server shut down cleanly")
	return nil
}

// redisPingerAdapter adapts redis.Client to the api.Pinger interface.
type redisPingerAdapter struct {
	client *redis.Client
}

func (r *redisPingerAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
