package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cartkeep/internal/catalog"
	"cartkeep/internal/checkout"
	"cartkeep/internal/config"
	"cartkeep/internal/control"
	"cartkeep/internal/db"
	"cartkeep/internal/httpserver"
	"cartkeep/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()

	var (
		pool  *pgxpool.Pool
		slots storage.Opener
	)
	switch cfg.CartStorage {
	case "postgres":
		p, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			logger.Fatalf("connect to db: %v", err)
		}
		defer p.Close()
		pool = p
		slots = storage.NewPostgresOpener(p)
	case "redis":
		client, err := db.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			logger.Fatalf("connect to redis: %v", err)
		}
		defer client.Close()
		slots = storage.NewRedisOpener(client, cfg.CartTTL)
	case "memory":
		slots = storage.NewMemoryOpener()
	default:
		logger.Fatalf("unknown CART_STORAGE %q", cfg.CartStorage)
	}

	var lookup catalog.Lookup
	switch {
	case cfg.CatalogURL != "":
		lookup = catalog.NewHTTPLookup(cfg.CatalogURL)
	case pool != nil:
		lookup = catalog.NewPostgresLookup(pool, logger)
	}
	resolver := control.NewResolver(lookup, cfg.StorefrontURL, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, pool, httpserver.Deps{
		Slots:          slots,
		Checkout:       checkout.NewClient(cfg.CheckoutURL),
		Resolver:       resolver,
		DefaultCountry: cfg.DefaultCountry,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
