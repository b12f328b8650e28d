package lotto

import "fmt"

// WinningCombination is the drawn ticket plus the bonus number.
type WinningCombination struct {
	ticket Ticket
	bonus  int
}

func NewWinningCombination(ticket Ticket, bonus int) (WinningCombination, error) {
	if ticket.IsZero() {
		return WinningCombination{}, ErrNullOrMissingNumber
	}
	if bonus < MinNumber || bonus > MaxNumber {
		return WinningCombination{}, fmt.Errorf("%w: bonus %d is not between %d and %d", ErrNumberOutOfRange, bonus, MinNumber, MaxNumber)
	}
	if ticket.Contains(bonus) {
		return WinningCombination{}, fmt.Errorf("%w: %d", ErrBonusNumberCollision, bonus)
	}
	return WinningCombination{ticket: ticket, bonus: bonus}, nil
}

// ParseWinningCombination validates raw winning numbers and bonus from a player or operator.
func ParseWinningCombination(numbers []*int, bonus *int) (WinningCombination, error) {
	ticket, err := NewTicketFromNullable(numbers)
	if err != nil {
		return WinningCombination{}, fmt.Errorf("winning numbers: %w", err)
	}
	if bonus == nil {
		return WinningCombination{}, fmt.Errorf("%w: bonus number", ErrNullOrMissingNumber)
	}
	return NewWinningCombination(ticket, *bonus)
}

func (w WinningCombination) Ticket() Ticket { return w.ticket }

func (w WinningCombination) Bonus() int { return w.bonus }

// Classify returns the prize tier t earns against this combination.
func (w WinningCombination) Classify(t Ticket) Tier {
	return ClassifyMatch(t.MatchCount(w.ticket), t.Contains(w.bonus))
}
