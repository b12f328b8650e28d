package lottery

import "ms-lotto/internal/lotto"

// TierLine is one row of a result sheet.
type TierLine struct {
	Tier        lotto.Tier `json:"tier"`
	Description string     `json:"description"`
	Payout      int64      `json:"payout"`
	Count       int        `json:"count"`
}

type Result struct {
	PurchaseID     string           `json:"purchase_id"`
	WinningNumbers []int            `json:"winning_numbers"`
	BonusNumber    int              `json:"bonus_number"`
	Lines          []TierLine       `json:"lines"`
	Statistics     lotto.Statistics `json:"statistics"`
	ProfitRate     lotto.ProfitRate `json:"profit_rate"`
}

func newResult(purchaseID string, wc lotto.WinningCombination, stats lotto.Statistics, rate lotto.ProfitRate) *Result {
	return &Result{
		PurchaseID:     purchaseID,
		WinningNumbers: wc.Ticket().Numbers(),
		BonusNumber:    wc.Bonus(),
		Lines:          TierLines(stats),
		Statistics:     stats,
		ProfitRate:     rate,
	}
}

// TierLines lists the paying tiers from FIFTH up to FIRST, the order a result sheet is read.
func TierLines(stats lotto.Statistics) []TierLine {
	tiers := lotto.WinningTiers()
	lines := make([]TierLine, 0, len(tiers))
	for i := len(tiers) - 1; i >= 0; i-- {
		tier := tiers[i]
		lines = append(lines, TierLine{
			Tier:        tier,
			Description: tier.Description(),
			Payout:      tier.Payout(),
			Count:       stats.Count(tier),
		})
	}
	return lines
}

// TierInfo describes the prize table.
type TierInfo struct {
	Tier        lotto.Tier `json:"tier"`
	Description string     `json:"description"`
	Matches     int        `json:"matches"`
	Payout      int64      `json:"payout"`
}

func PrizeTable() []TierInfo {
	tiers := lotto.WinningTiers()
	out := make([]TierInfo, len(tiers))
	for i, tier := range tiers {
		out[i] = tierInfo(tier)
	}
	return out
}

// LookupTier resolves a tier by name, e.g. "second"; unknown names wrap lotto.ErrUnknownTier.
func LookupTier(name string) (TierInfo, error) {
	var tier lotto.Tier
	if err := tier.UnmarshalText([]byte(name)); err != nil {
		return TierInfo{}, err
	}
	return tierInfo(tier), nil
}

func tierInfo(tier lotto.Tier) TierInfo {
	return TierInfo{
		Tier:        tier,
		Description: tier.Description(),
		Matches:     tier.MatchCount(),
		Payout:      tier.Payout(),
	}
}
