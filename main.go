package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"ms-lotto/internal/config"
	"ms-lotto/internal/kafka"
	"ms-lotto/internal/logger"
	"ms-lotto/internal/lotto"
	"ms-lotto/internal/lotto/lotto_api"
	qr "ms-lotto/internal/lotto/qr_generator"
	lottery "ms-lotto/internal/lotto/service"
	"ms-lotto/internal/lotto/store"
)

func connectRedis(ctx context.Context, cfg *config.Config, logger *logger.Logger) *redis.Client {
	if !cfg.Redis.Enabled {
		logger.Info("REDIS", "Redis disabled, purchases are kept in memory")
		return nil
	}
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("REDIS", fmt.Sprintf("Redis connection error, falling back to in-memory store: %v", err))
		redisClient.Close()
		return nil
	}
	logger.Info("REDIS", fmt.Sprintf("✅ Redis connection successful to %s (DB: %d)", cfg.Redis.Addr, cfg.Redis.DB))
	return redisClient
}

func main() {
	envErr := godotenv.Load()
	cfg := config.Load()

	level := logger.ParseLevel(cfg.Log.Level)
	logger := logger.NewLogger(cfg.Log.Dir, cfg.Log.Service)
	defer logger.Close()
	logger.SetLevel(level)

	logger.Info("APP", "Starting Lotto Service initialization")
	if envErr != nil {
		logger.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		logger.Info("CONFIG", "Loaded environment variables from .env file")
	}

	ctx := context.Background()

	var purchases lottery.PurchaseStore
	if redisClient := connectRedis(ctx, cfg, logger); redisClient != nil {
		defer redisClient.Close()
		purchases = store.NewRedis(redisClient, cfg.Lotto.PurchaseTTL, logger)
	} else {
		purchases = store.NewMemory(cfg.Lotto.PurchaseTTL)
	}

	var publisher lottery.EventPublisher
	if cfg.Kafka.Enabled {
		topics := kafka.Topics{
			TicketsIssued:  cfg.Kafka.Topics.TicketsIssued,
			ResultsChecked: cfg.Kafka.Topics.ResultsChecked,
		}
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, []string{topics.TicketsIssued, topics.ResultsChecked}, logger); err != nil {
			logger.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		} else {
			logger.Info("KAFKA", "Required topics ensured successfully")
		}
		producer := kafka.NewProducer(cfg.Kafka.Brokers, topics, logger)
		defer producer.Close()
		publisher = producer
		logger.Info("KAFKA", fmt.Sprintf("Kafka producer initialized for %v", cfg.Kafka.Brokers))
	} else {
		logger.Info("KAFKA", "Kafka disabled, lotto events are not published")
	}

	var rng lotto.RandomSource
	if cfg.Lotto.Seed != 0 {
		rng = lotto.NewSeededRNG(cfg.Lotto.Seed)
		logger.Warn("CONFIG", fmt.Sprintf("LOTTO_SEED=%d set, ticket generation is deterministic", cfg.Lotto.Seed))
	}

	lotteryService := lottery.NewLotteryService(purchases, publisher, qr.NewQRGenerator(cfg.Lotto.QRSecret), rng, logger)
	lotteryService.MaxTickets = cfg.Lotto.MaxTickets
	handler := lotto_api.NewHandler(lotteryService, logger)

	logger.Info("HTTP", "Setting up router and middleware")
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		handler.RegisterRoutes(r)
	})
	logger.Info("ROUTER", "Lotto routes registered under /api/lotto")

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP", fmt.Sprintf("🚀 Lotto Service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	logger.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	logger.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	} else {
		logger.Info("HTTP", "✅ Lotto Service shutdown complete")
	}
}
