// Package scenario runs one lotto round described in a YAML file and prints it
// the way the console game does.
package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"ms-lotto/internal/lotto"
)

var ErrTicketCountMismatch = errors.New("ticket count does not match purchase amount")

// Scenario is one round: a purchase, optionally with fixed tickets, and a draw.
type Scenario struct {
	Amount  string   `yaml:"amount"`
	Seed    *uint64  `yaml:"seed,omitempty"`
	Tickets [][]*int `yaml:"tickets,omitempty"`
	Winning []*int   `yaml:"winning"`
	Bonus   *int     `yaml:"bonus"`
}

// Load reads a scenario file.
func Load(path string) (Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(b)
}

func Parse(b []byte) (Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Scenario{}, fmt.Errorf("parse scenario: %w", err)
	}
	return s, nil
}

// Outcome is everything a round produces.
type Outcome struct {
	Amount     lotto.PurchaseAmount
	Batch      lotto.Batch
	Winning    lotto.WinningCombination
	Statistics lotto.Statistics
	ProfitRate lotto.ProfitRate
}

// Play validates the scenario through the core constructors and scores it.
// rng is used only when the scenario has neither tickets nor a seed; nil means crypto randomness.
func (s Scenario) Play(rng lotto.RandomSource) (Outcome, error) {
	amount, err := lotto.ParsePurchaseAmount(s.Amount)
	if err != nil {
		return Outcome{}, err
	}
	if err := amount.CheckTicketLimit(lotto.MaxTicketsPerPurchase); err != nil {
		return Outcome{}, err
	}

	batch, err := s.batch(amount, rng)
	if err != nil {
		return Outcome{}, err
	}

	wc, err := lotto.ParseWinningCombination(s.Winning, s.Bonus)
	if err != nil {
		return Outcome{}, err
	}

	stats := lotto.ComputeStatistics(batch, wc)
	rate, err := amount.ProfitRate(stats)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{
		Amount:     amount,
		Batch:      batch,
		Winning:    wc,
		Statistics: stats,
		ProfitRate: rate,
	}, nil
}

func (s Scenario) batch(amount lotto.PurchaseAmount, rng lotto.RandomSource) (lotto.Batch, error) {
	if len(s.Tickets) == 0 {
		if s.Seed != nil {
			rng = lotto.NewSeededRNG(*s.Seed)
		}
		return lotto.GenerateBatch(amount, rng)
	}

	if len(s.Tickets) != amount.TicketCount() {
		return lotto.Batch{}, fmt.Errorf("%w: %d tickets for %d KRW", ErrTicketCountMismatch, len(s.Tickets), amount.Value())
	}
	tickets := make([]lotto.Ticket, len(s.Tickets))
	for i, raw := range s.Tickets {
		t, err := lotto.NewTicketFromNullable(raw)
		if err != nil {
			return lotto.Batch{}, fmt.Errorf("ticket %d: %w", i+1, err)
		}
		tickets[i] = t
	}
	return lotto.NewBatch(tickets)
}

// Print writes the round in console form: tickets, the tier sheet from FIFTH up, then the return rate.
func Print(w io.Writer, o Outcome) error {
	p := &printer{w: w}
	p.printf("You have purchased %d tickets.\n", o.Batch.Len())
	for _, t := range o.Batch.Tickets() {
		p.printf("%s\n", t)
	}
	p.printf("\nWinning numbers: %s + bonus %d\n", o.Winning.Ticket(), o.Winning.Bonus())
	p.printf("\nWinning Statistics\n---\n")
	tiers := lotto.WinningTiers()
	for i := len(tiers) - 1; i >= 0; i-- {
		p.printf("%s - %d tickets\n", tiers[i].Description(), o.Statistics.Count(tiers[i]))
	}
	p.printf("Total return rate is %s (%s).\n", o.ProfitRate.Percent(), o.ProfitRate)
	return p.err
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
