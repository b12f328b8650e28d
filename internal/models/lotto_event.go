package models

import (
	"time"

	"ms-lotto/internal/lotto"
)

// TicketsIssuedEvent is published after a purchase is stored.
type TicketsIssuedEvent struct {
	PurchaseID  string    `json:"purchase_id"`
	Amount      int64     `json:"amount"`
	TicketCount int       `json:"ticket_count"`
	IssuedAt    time.Time `json:"issued_at"`
}

// ResultsCheckedEvent is published after a purchase is compared with a winning combination.
type ResultsCheckedEvent struct {
	PurchaseID     string           `json:"purchase_id"`
	WinningNumbers []int            `json:"winning_numbers"`
	BonusNumber    int              `json:"bonus_number"`
	Statistics     lotto.Statistics `json:"statistics"`
	ProfitRate     lotto.ProfitRate `json:"profit_rate"`
	CheckedAt      time.Time        `json:"checked_at"`
}

// TicketQRPayload is what a ticket QR code carries, encrypted.
type TicketQRPayload struct {
	PurchaseID string    `json:"purchase_id"`
	Index      int       `json:"index"`
	Numbers    []int     `json:"numbers"`
	IssuedAt   time.Time `json:"issued_at"`
}
