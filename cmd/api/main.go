package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/stillpoint/practice-api/internal/config"
	"github.com/stillpoint/practice-api/internal/handlers"
	"github.com/stillpoint/practice-api/internal/metrics"
	"github.com/stillpoint/practice-api/internal/middleware"
	"github.com/stillpoint/practice-api/internal/services"
	"github.com/stillpoint/practice-api/internal/store"
	"github.com/stillpoint/practice-api/internal/store/mongodb"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	// --- Store selection ---
	var st store.Store
	if cfg.UseMockStore {
		st = store.NewMemoryStore(cfg.RandomSeed, cfg.SeedWorkbooks, cfg.SeedAppointments)
		logger.Info("using in-memory mock store",
			zap.Int("workbooks", cfg.SeedWorkbooks),
			zap.Int("appointments", cfg.SeedAppointments),
		)
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			logger.Fatal("failed to connect to MongoDB", zap.Error(err))
		}
		defer client.Disconnect(context.Background())
		st = mongodb.New(client.Database(cfg.MongoDatabase))
		logger.Info("connected to MongoDB", zap.String("database", cfg.MongoDatabase))
	}

	// --- Services ---
	notificationSvc := services.NewNotificationService(cfg.TextbeltKey, logger)
	sanitizer := services.NewSanitizer()

	h := handlers.NewHandler(st, notificationSvc, sanitizer, logger, cfg.JWTSecret, cfg.GeminiAPIKey)

	r := handlers.NewRouter(h, handlers.RouterOptions{
		Limiter:        middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Metrics:        metrics.New(),
		AllowedOrigins: cfg.CORSOrigins,
	})

	logger.Info("starting server", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
