package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ms-lotto/internal/logger"
	"ms-lotto/internal/models"

	"github.com/go-redis/redis/v8"
)

type Redis struct {
	Client *redis.Client
	TTL    time.Duration
	Logger *logger.Logger
}

func NewRedis(client *redis.Client, ttl time.Duration, log *logger.Logger) *Redis {
	return &Redis{
		Client: client,
		TTL:    ttl,
		Logger: log,
	}
}

// SavePurchase stores the purchase as JSON; it expires after TTL.
// An existing purchase with the same ID is never overwritten.
func (r *Redis) SavePurchase(ctx context.Context, purchase models.Purchase) error {
	value, err := json.Marshal(purchase)
	if err != nil {
		return fmt.Errorf("marshal purchase %s: %w", purchase.PurchaseID, err)
	}
	key := purchaseKey(purchase.PurchaseID)
	ok, err := r.Client.SetNX(ctx, key, value, r.TTL).Result()
	if err != nil {
		return fmt.Errorf("store purchase %s: %w", purchase.PurchaseID, err)
	}
	if !ok {
		return fmt.Errorf("purchase %s already exists", purchase.PurchaseID)
	}
	if r.Logger != nil {
		r.Logger.LogRedis("SET", key, fmt.Sprintf("stored %d tickets, ttl %s", len(purchase.Tickets), r.TTL))
	}
	return nil
}

func (r *Redis) GetPurchase(ctx context.Context, purchaseID string) (*models.Purchase, error) {
	value, err := r.Client.Get(ctx, purchaseKey(purchaseID)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load purchase %s: %w", purchaseID, err)
	}
	var purchase models.Purchase
	if err := json.Unmarshal(value, &purchase); err != nil {
		return nil, fmt.Errorf("decode purchase %s: %w", purchaseID, err)
	}
	return &purchase, nil
}

// DeletePurchase is a no-op for unknown IDs.
func (r *Redis) DeletePurchase(ctx context.Context, purchaseID string) error {
	_, err := r.Client.Del(ctx, purchaseKey(purchaseID)).Result()
	return err
}
