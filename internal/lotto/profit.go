package lotto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ProfitRate is total winnings over money spent. 1.0 means break-even.
type ProfitRate struct {
	ratio float64
}

// CalculateProfitRate divides totalPayout by spent without rounding.
func CalculateProfitRate(totalPayout, spent int64) (ProfitRate, error) {
	if spent <= 0 {
		return ProfitRate{}, ErrDivisionByZeroProfitRate
	}
	ratio, _ := decimal.NewFromInt(totalPayout).Div(decimal.NewFromInt(spent)).Float64()
	return ProfitRate{ratio: ratio}, nil
}

func (p ProfitRate) Value() float64 { return p.ratio }

// String truncates the ratio to two decimals, e.g. "0.35".
func (p ProfitRate) String() string {
	return decimal.NewFromFloat(p.ratio).Truncate(2).StringFixed(2)
}

// Percent renders the ratio as a percentage with one decimal, e.g. "35.7%".
func (p ProfitRate) Percent() string {
	return decimal.NewFromFloat(p.ratio).Shift(2).Truncate(1).StringFixed(1) + "%"
}

func (p ProfitRate) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Ratio   float64 `json:"ratio"`
		Display string  `json:"display"`
		Percent string  `json:"percent"`
	}{p.ratio, p.String(), p.Percent()})
}
