package lotto

import (
	"fmt"
	"strconv"
	"strings"
)

// PurchaseAmount is money spent on tickets, always a positive multiple of UnitPrice.
type PurchaseAmount struct {
	value int64
}

func NewPurchaseAmount(value int64) (PurchaseAmount, error) {
	if value < UnitPrice {
		return PurchaseAmount{}, fmt.Errorf("%w: %d < %d", ErrBelowMinimumPrice, value, UnitPrice)
	}
	if value%UnitPrice != 0 {
		return PurchaseAmount{}, fmt.Errorf("%w: %d is not divisible by %d", ErrNotAMultipleOfUnitPrice, value, UnitPrice)
	}
	return PurchaseAmount{value: value}, nil
}

// ParsePurchaseAmount validates a raw amount typed by a player.
func ParsePurchaseAmount(raw string) (PurchaseAmount, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return PurchaseAmount{}, fmt.Errorf("%w: %q: %v", ErrInvalidAmountFormat, raw, err)
	}
	return NewPurchaseAmount(value)
}

func (p PurchaseAmount) Value() int64 { return p.value }

// TicketCount is the number of tickets the amount buys.
func (p PurchaseAmount) TicketCount() int {
	return int(p.value / UnitPrice)
}

// CheckTicketLimit rejects amounts buying more than maxTickets tickets.
// Inbound paths call it before GenerateBatch. maxTickets <= 0 means MaxTicketsPerPurchase.
func (p PurchaseAmount) CheckTicketLimit(maxTickets int) error {
	if maxTickets <= 0 {
		maxTickets = MaxTicketsPerPurchase
	}
	if p.value/UnitPrice > int64(maxTickets) {
		return fmt.Errorf("%w: %d KRW buys more than %d tickets", ErrTicketLimitExceeded, p.value, maxTickets)
	}
	return nil
}

// ProfitRate returns total winnings divided by the amount spent.
func (p PurchaseAmount) ProfitRate(stats Statistics) (ProfitRate, error) {
	return CalculateProfitRate(stats.TotalPayout(), p.value)
}
