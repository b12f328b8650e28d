package lotto

import "fmt"

// Batch is the ordered list of tickets issued for one purchase.
type Batch struct {
	tickets []Ticket
}

// GenerateBatch issues amount.TicketCount() random tickets.
func GenerateBatch(amount PurchaseAmount, rng RandomSource) (Batch, error) {
	if amount.TicketCount() == 0 {
		return Batch{}, ErrEmptyBatch
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	tickets := make([]Ticket, 0, amount.TicketCount())
	for i := 0; i < amount.TicketCount(); i++ {
		t, err := GenerateTicket(rng)
		if err != nil {
			return Batch{}, fmt.Errorf("generate ticket %d: %w", i+1, err)
		}
		tickets = append(tickets, t)
	}
	return Batch{tickets: tickets}, nil
}

// NewBatch wraps explicitly chosen tickets.
func NewBatch(tickets []Ticket) (Batch, error) {
	if len(tickets) == 0 {
		return Batch{}, ErrEmptyBatch
	}
	for i, t := range tickets {
		if t.IsZero() {
			return Batch{}, fmt.Errorf("%w: ticket %d", ErrNullOrMissingNumber, i+1)
		}
	}
	out := make([]Ticket, len(tickets))
	copy(out, tickets)
	return Batch{tickets: out}, nil
}

func (b Batch) Tickets() []Ticket {
	out := make([]Ticket, len(b.tickets))
	copy(out, b.tickets)
	return out
}

func (b Batch) Len() int { return len(b.tickets) }
