package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"ms-lotto/internal/lotto"
)

type Config struct {
	Server ServerConfig
	Log    LogConfig
	Redis  RedisConfig
	Kafka  KafkaConfig
	Lotto  LottoConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
}

type LogConfig struct {
	Dir     string
	Level   string
	Service string
}

type RedisConfig struct {
	Enabled bool
	Addr    string
	DB      int
}

type KafkaConfig struct {
	Brokers []string
	Topics  TopicConfig
	Enabled bool
}

type TopicConfig struct {
	TicketsIssued  string
	ResultsChecked string
}

type LottoConfig struct {
	PurchaseTTL time.Duration
	QRSecret    string
	MaxTickets  int
	Seed        uint64 // fixed generator for reproducible runs; 0 uses crypto/rand
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", ":8085"),
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
			IdleTimeout:    60 * time.Second,
		},
		Log: LogConfig{
			Dir:     getEnv("LOG_DIR", "logs"),
			Level:   getEnv("LOG_LEVEL", "INFO"),
			Service: getEnv("SERVICE_NAME", "lotto-service"),
		},
		Redis: RedisConfig{
			Enabled: getEnvBool("REDIS_ENABLED", true),
			Addr:    getEnv("REDIS_ADDR", "localhost:6379"),
			DB:      getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvList("KAFKA_BROKERS", []string{"localhost:9092"}),
			Enabled: getEnvBool("KAFKA_ENABLED", false),
			Topics: TopicConfig{
				TicketsIssued:  getEnv("KAFKA_TOPIC_TICKETS_ISSUED", "lotto.tickets.issued"),
				ResultsChecked: getEnv("KAFKA_TOPIC_RESULTS_CHECKED", "lotto.results.checked"),
			},
		},
		Lotto: LottoConfig{
			PurchaseTTL: time.Duration(getEnvInt("PURCHASE_TTL_MINUTES", 60)) * time.Minute,
			QRSecret:    getEnv("QR_SECRET_KEY", "lotto-dev-secret"),
			Seed:        getEnvUint64("LOTTO_SEED", 0),
			MaxTickets:  getEnvInt("LOTTO_MAX_TICKETS", lotto.MaxTicketsPerPurchase),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvUint64(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseUint(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
