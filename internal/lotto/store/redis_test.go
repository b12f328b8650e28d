package store

import (
	"context"
	"io"
	"testing"
	"time"

	"ms-lotto/internal/logger"
	"ms-lotto/internal/lotto"
	"ms-lotto/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a Redis client backed by miniredis
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to create miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		mr.Close()
		t.Fatalf("Failed to connect to miniredis: %v", err)
	}

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client, mr
}

func samplePurchase(t *testing.T, id string) models.Purchase {
	t.Helper()
	amount, err := lotto.NewPurchaseAmount(3 * lotto.UnitPrice)
	require.NoError(t, err)
	batch, err := lotto.GenerateBatch(amount, lotto.NewSeededRNG(11))
	require.NoError(t, err)
	return models.NewPurchase(id, amount, batch, time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC))
}

func TestRedis_SaveAndGet(t *testing.T) {
	client, _ := setupTestRedis(t)
	r := NewRedis(client, time.Hour, logger.NewLoggerWithWriter(io.Discard))
	ctx := context.Background()

	purchase := samplePurchase(t, "lotto_1")
	require.NoError(t, r.SavePurchase(ctx, purchase))

	got, err := r.GetPurchase(ctx, "lotto_1")
	require.NoError(t, err)
	assert.Equal(t, purchase.Tickets, got.Tickets)
	assert.Equal(t, purchase.Amount, got.Amount)
	assert.True(t, purchase.IssuedAt.Equal(got.IssuedAt))

	_, batch, err := got.Domain()
	require.NoError(t, err)
	assert.Equal(t, 3, batch.Len())
}

func TestRedis_GetMissing(t *testing.T) {
	client, _ := setupTestRedis(t)
	r := NewRedis(client, time.Hour, nil)

	_, err := r.GetPurchase(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedis_PurchaseExpires(t *testing.T) {
	client, mr := setupTestRedis(t)
	r := NewRedis(client, 5*time.Minute, nil)
	ctx := context.Background()

	require.NoError(t, r.SavePurchase(ctx, samplePurchase(t, "lotto_ttl")))
	assert.Equal(t, 5*time.Minute, mr.TTL(purchaseKey("lotto_ttl")))

	mr.FastForward(6 * time.Minute)

	_, err := r.GetPurchase(ctx, "lotto_ttl")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedis_DoesNotOverwrite(t *testing.T) {
	client, _ := setupTestRedis(t)
	r := NewRedis(client, time.Hour, nil)
	ctx := context.Background()

	first := samplePurchase(t, "lotto_dup")
	require.NoError(t, r.SavePurchase(ctx, first))

	second := first
	second.Amount = 9 * lotto.UnitPrice
	assert.Error(t, r.SavePurchase(ctx, second))

	got, err := r.GetPurchase(ctx, "lotto_dup")
	require.NoError(t, err)
	assert.Equal(t, first.Amount, got.Amount)
}

func TestRedis_CorruptPayload(t *testing.T) {
	client, mr := setupTestRedis(t)
	r := NewRedis(client, time.Hour, nil)

	require.NoError(t, mr.Set(purchaseKey("lotto_bad"), `{"tickets":[[1,1,2,3,4,5]]}`))

	_, err := r.GetPurchase(context.Background(), "lotto_bad")
	assert.ErrorIs(t, err, lotto.ErrDuplicateNumber)
}

func TestRedis_Delete(t *testing.T) {
	client, _ := setupTestRedis(t)
	r := NewRedis(client, time.Hour, nil)
	ctx := context.Background()

	require.NoError(t, r.SavePurchase(ctx, samplePurchase(t, "lotto_del")))
	require.NoError(t, r.DeletePurchase(ctx, "lotto_del"))
	require.NoError(t, r.DeletePurchase(ctx, "lotto_del"))

	_, err := r.GetPurchase(ctx, "lotto_del")
	assert.ErrorIs(t, err, ErrNotFound)
}
