package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "REDIS_ENABLED", "KAFKA_ENABLED", "KAFKA_BROKERS", "PURCHASE_TTL_MINUTES", "LOTTO_SEED", "LOTTO_MAX_TICKETS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, ":8085", cfg.Server.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "lotto.tickets.issued", cfg.Kafka.Topics.TicketsIssued)
	assert.Equal(t, 60*time.Minute, cfg.Lotto.PurchaseTTL)
	assert.Equal(t, uint64(0), cfg.Lotto.Seed)
	assert.Equal(t, 100, cfg.Lotto.MaxTickets)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", ":9000")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("PURCHASE_TTL_MINUTES", "5")
	t.Setenv("LOTTO_SEED", "42")
	t.Setenv("LOTTO_MAX_TICKETS", "20")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.Server.Port)
	assert.False(t, cfg.Redis.Enabled)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 5*time.Minute, cfg.Lotto.PurchaseTTL)
	assert.Equal(t, uint64(42), cfg.Lotto.Seed)
	assert.Equal(t, 20, cfg.Lotto.MaxTickets)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("REDIS_ENABLED", "maybe")
	t.Setenv("PURCHASE_TTL_MINUTES", "soon")

	cfg := Load()

	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 60*time.Minute, cfg.Lotto.PurchaseTTL)
}
