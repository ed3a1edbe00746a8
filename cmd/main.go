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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	c "github.com/gradeshop/catalog-service/internal/cache"
	"github.com/gradeshop/catalog-service/internal/events"
	h "github.com/gradeshop/catalog-service/internal/http"
	"github.com/gradeshop/catalog-service/internal/poller"
	"github.com/gradeshop/catalog-service/internal/repository"
	s "github.com/gradeshop/catalog-service/internal/service"
)

type Config struct {
	HTTPPort           string
	CatalogDBPath      string
	MigrationsPath     string
	MongoURI           string
	MongoDBName        string
	RedisAddr          string
	RedisPassword      string
	KafkaBrokers       string
	NotificationsTopic string
	CatalogTopic       string
	JWTSecret          string
	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		CatalogDBPath:      getEnv("CATALOG_DB_PATH", "./catalog.db"),
		MigrationsPath:     getEnv("MIGRATIONS_PATH", "./migrations"),
		MongoURI:           getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:        getEnv("MONGO_DB_NAME", "storefrontdb"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:       getEnv("KAFKA_BROKERS", "localhost:9092"),
		NotificationsTopic: getEnv("NOTIFICATIONS_TOPIC", "storefront-notifications"),
		CatalogTopic:       getEnv("CATALOG_UPDATES_TOPIC", "catalog-updates"),
		JWTSecret:          getEnv("JWT_SECRET", "dev-secret"),
		RequestTimeout:     30 * time.Second,
		ShutdownTimeout:    10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	log.Println("Catalog service starting...")

	_ = godotenv.Load()
	cfg := loadConfig()

	// Catalog store (read-only tables owned by the admin subsystem)
	catalogRepo, err := repository.NewSQLiteCatalogRepository(cfg.CatalogDBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer catalogRepo.Close()

	if err := catalogRepo.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	// Cart and wishlist store
	ctx := context.Background()
	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := repository.EnsureIndexes(ctx, mongoDB); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	log.Printf("Connected to MongoDB at %s", cfg.MongoURI)

	cartRepo := repository.NewMongoCartRepository(mongoDB)
	wishlistRepo := repository.NewMongoWishlistRepository(mongoDB)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	log.Printf("Redis ping succeeded")

	cache := c.NewRedisCache(redisClient)
	broker := events.NewBroker()

	catalogService := s.NewCatalogService(catalogRepo, cache)
	cartService := s.NewCartService(catalogService, cartRepo, broker)
	wishlistService := s.NewWishlistService(wishlistRepo, broker)
	chartService := s.NewSizeChartService(catalogRepo)

	// Background workers
	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	notifier := events.NewKafkaNotifier(broker, cfg.NotificationsTopic, cfg.KafkaBrokers)
	go notifier.Run(workerCtx)
	defer notifier.Close()

	invalidator := poller.NewPoller(cache, cfg.CatalogTopic, cfg.KafkaBrokers)
	go invalidator.Run(workerCtx)
	defer invalidator.Close()

	productHandler := h.NewProductHandler(catalogService, chartService, cfg.RequestTimeout)
	cartHandler := h.NewCartHandler(cartService, cfg.RequestTimeout)
	wishlistHandler := h.NewWishlistHandler(wishlistService, cfg.RequestTimeout)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.AuthMiddleware([]byte(cfg.JWTSecret)))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products/{product_id}", func(r chi.Router) {
			r.Get("/", productHandler.GetProduct)
			r.Get("/size-chart", productHandler.GetSizeChart)
		})
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/items", cartHandler.AddItem)
			r.Delete("/items/{product_id}/{variant_id}", cartHandler.RemoveItem)
			r.Delete("/", cartHandler.ClearCart)
		})
		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", wishlistHandler.List)
			r.Post("/{product_id}/toggle", wishlistHandler.Toggle)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Catalog service listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	stopWorkers()
	if err := mongoDB.Client().Disconnect(ctx); err != nil {
		log.Printf("mongo disconnect error: %v", err)
	}
	log.Println("server exited")
}
