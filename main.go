package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/raushankrgupta/glory-storefront/admin"
	"github.com/raushankrgupta/glory-storefront/api"
	"github.com/raushankrgupta/glory-storefront/auth"
	"github.com/raushankrgupta/glory-storefront/cache"
	"github.com/raushankrgupta/glory-storefront/config"
	"github.com/raushankrgupta/glory-storefront/storage"
	"github.com/raushankrgupta/glory-storefront/store"
	"github.com/raushankrgupta/glory-storefront/utils"
)

func main() {
	config.LoadConfig()

	if config.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	var backing store.Store
	var objects storage.ObjectStorage
	var uploads http.Handler
	if config.StoreBackend == "memory" {
		log.Println("Using in-memory store and object storage")
		backing = store.NewMemory()
		mem := storage.NewMemory("/uploads")
		objects, uploads = mem, mem
	} else {
		// Initialize MongoDB
		if err := utils.ConnectMongo(config.MongoURI); err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		backing = store.NewMongo(config.DBName)

		s3, err := storage.NewS3()
		if err != nil {
			log.Fatalf("Failed to initialize S3: %v", err)
		}
		objects = s3
	}

	var catalogCache cache.Catalog = cache.Nop{}
	if config.StoreBackend == "memory" {
		catalogCache = cache.NewMemory(config.CatalogCacheTTL)
	}
	if config.RedisAddr != "" {
		client, err := utils.ConnectRedis(config.RedisAddr)
		if err != nil {
			log.Printf("Catalog cache disabled: %v", err)
		} else {
			redisCache := cache.NewRedis(client, config.CatalogCacheTTL)
			defer redisCache.Close()
			catalogCache = redisCache
		}
	}
	catalog := cache.NewCatalogStore(backing, catalogCache)

	gate := auth.NewGate(backing)
	unsubscribe := gate.Subscribe(func(ev auth.AuthChanged) {
		if ev.User == nil {
			fmt.Println("[Auth Changed] signed out")
			return
		}
		fmt.Printf("[Auth Changed] user=%s admin=%v\n", ev.User.UserID, ev.IsAdmin)
	})
	defer unsubscribe()

	server := api.NewServer(gate, catalog, backing, admin.NewConsole(catalog, objects), api.Options{
		SignInURL:        config.SignInURL,
		DefaultHeroImage: config.DefaultHeroImage,
		SlideInterval:    config.SlideInterval,
		MaxUploadBytes:   config.MaxUploadBytes,
		SecureCookies:    config.SecureCookies,
		AssetsDir:        config.AssetsDir,
	})

	handler := server.Routes()
	if uploads != nil {
		// Serve in-memory uploads for local development
		root := http.NewServeMux()
		root.Handle("/uploads/", http.StripPrefix("/uploads", uploads))
		root.Handle("/", handler)
		handler = root
	}

	httpServer := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		fmt.Printf("Server starting on port %s...\n", config.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	utils.DisconnectMongo(shutdownCtx)
}
