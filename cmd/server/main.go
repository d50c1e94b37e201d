package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/leolovestravel/vietnamtravel/internal/cache"
	"github.com/leolovestravel/vietnamtravel/internal/config"
	"github.com/leolovestravel/vietnamtravel/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}
	cfg := config.Load()

	rdb, err := connectRedis(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	if err := Run(context.Background(), cfg, rdb, signals, nil); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}

func connectRedis(cfg config.Config) (*redis.Client, error) {
	if !cfg.RedisEnabled {
		log.Println("Redis disabled, using in-memory stores")
		return nil, nil
	}

	client, err := cache.NewRedisClient(cache.RedisConfig{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("Redis enabled (host: %s, cache TTL: %v, session TTL: %v)", cfg.RedisAddr(), cfg.CacheTTL, cfg.SessionTTL)
	return client, nil
}

type ListenFunc func(e *echo.Echo, addr string) error

var defaultListen ListenFunc = func(e *echo.Echo, addr string) error {
	return e.Start(addr)
}

// Run starts the HTTP server and blocks until a signal, ctx cancellation or
// a listen error, then shuts down gracefully.
func Run(ctx context.Context, cfg config.Config, rdb *redis.Client, signals <-chan os.Signal, listen ListenFunc) error {
	srv, err := server.NewServer(cfg, rdb)
	if err != nil {
		return err
	}
	defer srv.Close()

	if listen == nil {
		listen = defaultListen
	}

	log.Printf("Starting Leo Loves Travel on port %s (API: %s)", cfg.Port, cfg.APIBaseURL)

	errCh := make(chan error, 1)
	go func() {
		errCh <- listen(srv.Echo, ":"+cfg.Port)
	}()

	select {
	case <-signals:
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Println("Shutting down")
	return srv.Echo.Shutdown(shutdownCtx)
}
