package valueobject

import (
	"github.com/shopspring/decimal"
)

var (
	minCreditScore = decimal.Zero
	maxCreditScore = decimal.NewFromInt(100)
)

// CreditScore is a synthetic 0-100 creditworthiness figure. It is derived
// from loan history on every evaluation and is never persisted.
type CreditScore struct {
	value decimal.Decimal
}

// ZeroCreditScore is the score assigned when history is missing or the
// customer is over their approved limit.
var ZeroCreditScore = CreditScore{value: decimal.Zero}

// NewCreditScore clamps v into [0, 100].
func NewCreditScore(v decimal.Decimal) CreditScore {
	switch {
	case v.LessThan(minCreditScore):
		v = minCreditScore
	case v.GreaterThan(maxCreditScore):
		v = maxCreditScore
	}
	return CreditScore{value: v}
}

// Decimal returns the raw score.
func (s CreditScore) Decimal() decimal.Decimal { return s.value }

// Float64 returns the score as a float for transport layers.
func (s CreditScore) Float64() float64 { return s.value.InexactFloat64() }

// GreaterThan reports whether the score is strictly above threshold.
func (s CreditScore) GreaterThan(threshold int64) bool {
	return s.value.GreaterThan(decimal.NewFromInt(threshold))
}

// IsZero reports whether the score is exactly zero.
func (s CreditScore) IsZero() bool { return s.value.IsZero() }

// String renders the score with two decimal places.
func (s CreditScore) String() string { return s.value.StringFixed(2) }
