package lotto

import (
	"encoding/json"
	"runtime"
	"sync"
)

// Statistics holds how many tickets of a batch landed in each prize tier.
type Statistics struct {
	counts    map[Tier]int
	batchSize int
}

// ComputeStatistics classifies every ticket in batch against wc.
func ComputeStatistics(batch Batch, wc WinningCombination) Statistics {
	stats := newStatistics(batch.Len())
	for _, t := range batch.tickets {
		stats.add(wc.Classify(t))
	}
	return stats
}

// ComputeStatisticsParallel splits classification across workers goroutines.
// The result is identical to ComputeStatistics.
func ComputeStatisticsParallel(batch Batch, wc WinningCombination, workers int) Statistics {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	n := batch.Len()
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		return ComputeStatistics(batch, wc)
	}

	partials := make([]map[Tier]int, workers)
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := min(start+chunk, n)
		partials[w] = make(map[Tier]int)
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(counts map[Tier]int, tickets []Ticket) {
			defer wg.Done()
			for _, t := range tickets {
				counts[wc.Classify(t)]++
			}
		}(partials[w], batch.tickets[start:end])
	}
	wg.Wait()

	stats := newStatistics(n)
	for _, partial := range partials {
		for tier, c := range partial {
			if tier != TierNone {
				stats.counts[tier] += c
			}
		}
	}
	return stats
}

func newStatistics(batchSize int) Statistics {
	counts := make(map[Tier]int, len(tierRules))
	for _, tier := range WinningTiers() {
		counts[tier] = 0
	}
	return Statistics{counts: counts, batchSize: batchSize}
}

func (s Statistics) add(tier Tier) {
	if tier == TierNone {
		return
	}
	s.counts[tier]++
}

// Count returns the number of tickets in tier. NONE is derived from the batch size.
func (s Statistics) Count(tier Tier) int {
	if tier == TierNone {
		return s.NoneCount()
	}
	return s.counts[tier]
}

// Counts returns every paying tier, including those with zero tickets.
func (s Statistics) Counts() map[Tier]int {
	out := make(map[Tier]int, len(tierRules))
	for _, tier := range WinningTiers() {
		out[tier] = s.counts[tier]
	}
	return out
}

func (s Statistics) NoneCount() int {
	won := 0
	for _, c := range s.counts {
		won += c
	}
	return s.batchSize - won
}

func (s Statistics) BatchSize() int { return s.batchSize }

// TotalPayout sums count x payout over all paying tiers.
func (s Statistics) TotalPayout() int64 {
	var total int64
	for tier, c := range s.counts {
		total += int64(c) * tier.Payout()
	}
	return total
}

type statisticsJSON struct {
	Counts      map[Tier]int `json:"counts"`
	None        int          `json:"none"`
	BatchSize   int          `json:"batch_size"`
	TotalPayout int64        `json:"total_payout"`
}

func (s Statistics) MarshalJSON() ([]byte, error) {
	return json.Marshal(statisticsJSON{
		Counts:      s.Counts(),
		None:        s.NoneCount(),
		BatchSize:   s.batchSize,
		TotalPayout: s.TotalPayout(),
	})
}
