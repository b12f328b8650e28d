package lotto

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Tier is a prize category, ordered from the largest payout down.
type Tier int

const (
	TierFirst Tier = iota + 1
	TierSecond
	TierThird
	TierFourth
	TierFifth
	TierNone
)

type bonusRule int

const (
	bonusIgnored bonusRule = iota
	bonusRequired
	bonusExcluded
)

type tierRule struct {
	tier    Tier
	name    string
	matches int
	bonus   bonusRule
	payout  int64
}

// Evaluated top to bottom; the first matching rule wins.
var tierRules = []tierRule{
	{tier: TierFirst, name: "FIRST", matches: 6, bonus: bonusIgnored, payout: 2_000_000_000},
	{tier: TierSecond, name: "SECOND", matches: 5, bonus: bonusRequired, payout: 30_000_000},
	{tier: TierThird, name: "THIRD", matches: 5, bonus: bonusExcluded, payout: 1_500_000},
	{tier: TierFourth, name: "FOURTH", matches: 4, bonus: bonusIgnored, payout: 50_000},
	{tier: TierFifth, name: "FIFTH", matches: 3, bonus: bonusIgnored, payout: 5_000},
}

func (r tierRule) matchesRule(matchCount int, bonusMatched bool) bool {
	if matchCount != r.matches {
		return false
	}
	switch r.bonus {
	case bonusRequired:
		return bonusMatched
	case bonusExcluded:
		return !bonusMatched
	default:
		return true
	}
}

// ClassifyMatch maps a match count and bonus hit to exactly one tier.
func ClassifyMatch(matchCount int, bonusMatched bool) Tier {
	for _, r := range tierRules {
		if r.matchesRule(matchCount, bonusMatched) {
			return r.tier
		}
	}
	return TierNone
}

// WinningTiers lists the paying tiers, FIRST to FIFTH.
func WinningTiers() []Tier {
	tiers := make([]Tier, len(tierRules))
	for i, r := range tierRules {
		tiers[i] = r.tier
	}
	return tiers
}

func (t Tier) rule() (tierRule, bool) {
	for _, r := range tierRules {
		if r.tier == t {
			return r, true
		}
	}
	return tierRule{}, false
}

func (t Tier) Payout() int64 {
	r, _ := t.rule()
	return r.payout
}

// MatchCount is the number of matching numbers the tier requires; 0 for NONE.
func (t Tier) MatchCount() int {
	r, _ := t.rule()
	return r.matches
}

func (t Tier) String() string {
	if r, ok := t.rule(); ok {
		return r.name
	}
	return "NONE"
}

// Description renders the tier as shown on a result sheet, e.g. "5 matches + bonus (30,000,000 KRW)".
func (t Tier) Description() string {
	r, ok := t.rule()
	if !ok {
		return "no prize"
	}
	label := fmt.Sprintf("%d matches", r.matches)
	if r.bonus == bonusRequired {
		label += " + bonus"
	}
	return fmt.Sprintf("%s (%s KRW)", label, humanize.Comma(r.payout))
}

// ParseTier accepts the names produced by String.
func ParseTier(name string) (Tier, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for _, r := range tierRules {
		if r.name == upper {
			return r.tier, nil
		}
	}
	if upper == "NONE" {
		return TierNone, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTier, name)
}

func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tier) UnmarshalText(text []byte) error {
	parsed, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
