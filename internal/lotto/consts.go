// Package lotto implements the 6/45 lotto game rules: tickets, purchase amounts,
// winning combinations, prize tiers and the statistics derived from a draw.
package lotto

const (
	MinNumber  = 1
	MaxNumber  = 45
	TicketSize = 6
	UnitPrice  = 1000

	// MaxTicketsPerPurchase caps one purchase at 100,000 KRW.
	MaxTicketsPerPurchase = 100
)
