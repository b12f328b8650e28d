package lotto

import (
	"encoding/json"
	"fmt"
	"math/bits"
	"sort"
	"strconv"
	"strings"
)

// Ticket is one lotto entry: six distinct numbers in [MinNumber, MaxNumber].
// The zero value is not a valid ticket.
type Ticket struct {
	numbers [TicketSize]int
	mask    uint64 // bit n set when n is on the ticket
}

// NewTicket validates numbers and returns an immutable ticket.
func NewTicket(numbers []int) (Ticket, error) {
	if numbers == nil {
		return Ticket{}, ErrNullOrMissingNumber
	}
	if len(numbers) != TicketSize {
		return Ticket{}, fmt.Errorf("%w: got %d", ErrInvalidTicketSize, len(numbers))
	}

	seen := make(map[int]bool, TicketSize)
	for _, n := range numbers {
		if seen[n] {
			return Ticket{}, fmt.Errorf("%w: %d appears more than once", ErrDuplicateNumber, n)
		}
		seen[n] = true
	}

	var t Ticket
	for i, n := range numbers {
		if n < MinNumber || n > MaxNumber {
			return Ticket{}, fmt.Errorf("%w: %d is not between %d and %d", ErrNumberOutOfRange, n, MinNumber, MaxNumber)
		}
		t.numbers[i] = n
		t.mask |= 1 << uint(n)
	}
	sort.Ints(t.numbers[:])
	return t, nil
}

// NewTicketFromNullable builds a ticket from raw input where entries may be absent.
func NewTicketFromNullable(numbers []*int) (Ticket, error) {
	if numbers == nil {
		return Ticket{}, ErrNullOrMissingNumber
	}
	if len(numbers) != TicketSize {
		return Ticket{}, fmt.Errorf("%w: got %d", ErrInvalidTicketSize, len(numbers))
	}
	values := make([]int, len(numbers))
	for i, n := range numbers {
		if n == nil {
			return Ticket{}, fmt.Errorf("%w: position %d", ErrNullOrMissingNumber, i+1)
		}
		values[i] = *n
	}
	return NewTicket(values)
}

// GenerateTicket draws six distinct numbers without replacement.
func GenerateTicket(rng RandomSource) (Ticket, error) {
	if rng == nil {
		rng = DefaultRNG()
	}
	pool := make([]int, MaxNumber-MinNumber+1)
	for i := range pool {
		pool[i] = MinNumber + i
	}
	// partial Fisher-Yates: the first TicketSize slots end up a uniform sample
	for i := 0; i < TicketSize; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return NewTicket(pool[:TicketSize])
}

// Numbers returns the ticket numbers in ascending order.
func (t Ticket) Numbers() []int {
	out := make([]int, TicketSize)
	copy(out, t.numbers[:])
	return out
}

// MatchCount returns how many numbers the two tickets share.
func (t Ticket) MatchCount(other Ticket) int {
	return bits.OnesCount64(t.mask & other.mask)
}

func (t Ticket) Contains(n int) bool {
	if n < MinNumber || n > MaxNumber {
		return false
	}
	return t.mask&(1<<uint(n)) != 0
}

// IsZero reports whether t was never constructed.
func (t Ticket) IsZero() bool {
	return t.mask == 0
}

func (t Ticket) String() string {
	parts := make([]string, TicketSize)
	for i, n := range t.numbers {
		parts[i] = strconv.Itoa(n)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (t Ticket) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.numbers[:])
}

func (t *Ticket) UnmarshalJSON(data []byte) error {
	var numbers []int
	if err := json.Unmarshal(data, &numbers); err != nil {
		return err
	}
	parsed, err := NewTicket(numbers)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
