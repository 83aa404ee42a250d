package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/pverlaine/convene/internal/api"
	"github.com/pverlaine/convene/internal/store"
	"github.com/pverlaine/convene/internal/store/gormstore"
	"github.com/pverlaine/convene/internal/store/redisstore"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("could not load .env: %v", err)
	}

	location := mustLoadLocation(getEnv("TZ", "UTC"))
	time.Local = location

	secretKey := getEnv("SECRET_KEY", "change_me_in_production")
	port := getEnv("PORT", "8080")
	cookieSecure := getEnv("COOKIE_SECURE", "false") == "true"

	backingStore, backendLabel := mustOpenStore()

	handler := api.NewHandler(backingStore, []byte(secretKey), location, cookieSecure)

	app := fiber.New(fiber.Config{
		AppName:               "Convene",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Convene listening on http://0.0.0.0:%s (store: %s, tz: %s)", port, backendLabel, location.String())
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func mustOpenStore() (store.Store, string) {
	backend := getEnv("STORE_BACKEND", "sqlite")
	switch backend {
	case "sqlite":
		dbPath := getEnv("DB_PATH", filepath.Join("data", "convene.db"))
		sqliteStore, err := gormstore.Open(dbPath)
		if err != nil {
			log.Fatalf("sqlite init failed: %v", err)
		}
		return sqliteStore, "sqlite:" + dbPath
	case "redis":
		redisURL := getEnv("REDIS_URL", "redis://localhost:6379/0")
		redisStore, err := redisstore.Open(redisURL)
		if err != nil {
			log.Fatalf("redis init failed: %v", err)
		}
		return redisStore, "redis"
	}
	log.Fatalf("unknown STORE_BACKEND %q (want sqlite or redis)", backend)
	return nil, ""
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
