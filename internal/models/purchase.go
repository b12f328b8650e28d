package models

import (
	"fmt"
	"time"

	"ms-lotto/internal/lotto"
)

// Purchase is one issued batch of tickets, kept while the player checks results.
type Purchase struct {
	PurchaseID string         `json:"purchase_id"`
	Amount     int64          `json:"amount"`
	Tickets    []lotto.Ticket `json:"tickets"`
	IssuedAt   time.Time      `json:"issued_at"`
}

// NewPurchase snapshots a validated amount and batch.
func NewPurchase(id string, amount lotto.PurchaseAmount, batch lotto.Batch, issuedAt time.Time) Purchase {
	return Purchase{
		PurchaseID: id,
		Amount:     amount.Value(),
		Tickets:    batch.Tickets(),
		IssuedAt:   issuedAt,
	}
}

// Domain revalidates the stored values.
func (p Purchase) Domain() (lotto.PurchaseAmount, lotto.Batch, error) {
	amount, err := lotto.NewPurchaseAmount(p.Amount)
	if err != nil {
		return lotto.PurchaseAmount{}, lotto.Batch{}, fmt.Errorf("purchase %s: %w", p.PurchaseID, err)
	}
	batch, err := lotto.NewBatch(p.Tickets)
	if err != nil {
		return lotto.PurchaseAmount{}, lotto.Batch{}, fmt.Errorf("purchase %s: %w", p.PurchaseID, err)
	}
	if batch.Len() != amount.TicketCount() {
		return lotto.PurchaseAmount{}, lotto.Batch{}, fmt.Errorf("purchase %s: %d tickets stored for %d paid", p.PurchaseID, batch.Len(), amount.TicketCount())
	}
	return amount, batch, nil
}
