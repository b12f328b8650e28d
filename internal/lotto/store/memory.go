package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ms-lotto/internal/models"
)

// Memory is the in-process fallback used when Redis is disabled.
type Memory struct {
	mu        sync.Mutex
	purchases map[string]memoryEntry
	ttl       time.Duration
	now       func() time.Time
}

type memoryEntry struct {
	purchase  models.Purchase
	expiresAt time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		purchases: make(map[string]memoryEntry),
		ttl:       ttl,
		now:       time.Now,
	}
}

func (m *Memory) SavePurchase(_ context.Context, purchase models.Purchase) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweep()
	if _, ok := m.purchases[purchase.PurchaseID]; ok {
		return fmt.Errorf("purchase %s already exists", purchase.PurchaseID)
	}
	entry := memoryEntry{purchase: purchase}
	if m.ttl > 0 {
		entry.expiresAt = m.now().Add(m.ttl)
	}
	m.purchases[purchase.PurchaseID] = entry
	return nil
}

func (m *Memory) GetPurchase(_ context.Context, purchaseID string) (*models.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.purchases[purchaseID]
	if ok && m.expired(entry) {
		delete(m.purchases, purchaseID)
		ok = false
	}
	if !ok {
		return nil, ErrNotFound
	}
	purchase := entry.purchase
	return &purchase, nil
}

func (m *Memory) DeletePurchase(_ context.Context, purchaseID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.purchases, purchaseID)
	return nil
}

// sweep drops expired entries; callers hold mu.
func (m *Memory) sweep() {
	for id, entry := range m.purchases {
		if m.expired(entry) {
			delete(m.purchases, id)
		}
	}
}

func (m *Memory) expired(entry memoryEntry) bool {
	return !entry.expiresAt.IsZero() && m.now().After(entry.expiresAt)
}
