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

	"github.com/redis/go-redis/v9"

	"github.com/Mbarca89/vete-front-v2/internal/backend"
	"github.com/Mbarca89/vete-front-v2/internal/cart"
	"github.com/Mbarca89/vete-front-v2/internal/catalog"
	"github.com/Mbarca89/vete-front-v2/internal/checkout"
	"github.com/Mbarca89/vete-front-v2/internal/config"
	"github.com/Mbarca89/vete-front-v2/internal/contact"
	"github.com/Mbarca89/vete-front-v2/internal/httpapi"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()

	// Session state (carts, tokens) lives in Redis when available and in
	// memory otherwise. A memory store loses carts on restart.
	var kv cart.KeyValueStore
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Redis connection failed: %v", err)
		}
		log.Printf("Connected to Redis at %s", cfg.RedisAddr)
		kv = cart.NewRedisKV(redisClient, "vdp:")
	} else {
		log.Printf("REDIS_ADDR not set, session carts are kept in memory only")
		kv = cart.NewMemoryKV()
	}

	tokens := backend.NewKVTokenStore(kv)
	client := backend.NewClient(backend.Config{
		PublicOrigin:   cfg.PublicServerURL,
		InternalOrigin: cfg.InternalServerURL,
		ExecContext:    backend.ContextInternal,
		Timeout:        cfg.BackendTimeout,
	}, tokens)

	carts := cart.NewManager(kv)
	evictCtx, stopEviction := context.WithCancel(ctx)
	defer stopEviction()
	go carts.RunEviction(evictCtx)

	handler := httpapi.NewRouter(httpapi.Deps{
		Carts:    carts,
		Checkout: checkout.NewService(client),
		Catalog:  catalog.NewService(client),
		Pets:     client,
		Mailer: contact.NewMailer(contact.Config{
			ServiceID:  cfg.EmailJSServiceID,
			TemplateID: cfg.EmailJSTemplateID,
			PublicKey:  cfg.EmailJSPublicKey,
		}),
		SiteOrigin:     cfg.PublicSiteURL,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
