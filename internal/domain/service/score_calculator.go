package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/urjitutjit/creditapprovalsystem/internal/domain/model"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Score components
// ---------------------------------------------------------------------------

// ScoreComponent derives one pre-weight sub-score from a loan history.
type ScoreComponent func(history []model.LoanRecord, now time.Time) decimal.Decimal

// WeightedComponent pairs a component with the multiplier applied to its
// output before summation.
type WeightedComponent struct {
	Component ScoreComponent
	Name      string
	Weight    decimal.Decimal
}

var (
	onTimeCap      = decimal.NewFromInt(35)
	percent        = decimal.NewFromInt(100)
	lakh           = decimal.NewFromInt(100_000)
	volumeLowTier  = decimal.NewFromInt(10)
	volumeMidTier  = decimal.NewFromInt(25)
	scorePrecision = int32(16)
)

// OnTimeRepayment scores the share of completed loans whose installments
// were all paid on time, as a percentage capped at 35.
func OnTimeRepayment(history []model.LoanRecord, _ time.Time) decimal.Decimal {
	var completed, onTime int64
	for _, r := range history {
		if !r.Status.IsCompleted() {
			continue
		}
		completed++
		if r.PaidInFullOnTime() {
			onTime++
		}
	}
	if completed == 0 {
		return decimal.Zero
	}

	pct := decimal.NewFromInt(onTime).Mul(percent).DivRound(decimal.NewFromInt(completed), scorePrecision)
	return decimal.Min(onTimeCap, pct)
}

// LoanCount steps over the total number of loans ever taken.
func LoanCount(history []model.LoanRecord, _ time.Time) decimal.Decimal {
	switch n := len(history); {
	case n == 0:
		return decimal.Zero
	case n == 1:
		return decimal.NewFromInt(10)
	case n == 2:
		return decimal.NewFromInt(15)
	case n == 3:
		return decimal.NewFromInt(20)
	default:
		return decimal.NewFromInt(25)
	}
}

// CurrentYearActivity steps over the number of loans started in now's
// calendar year.
func CurrentYearActivity(history []model.LoanRecord, now time.Time) decimal.Decimal {
	n := 0
	for _, r := range history {
		if r.StartDate.Year() == now.Year() {
			n++
		}
	}

	switch {
	case n == 0:
		return decimal.Zero
	case n == 1:
		return decimal.NewFromInt(15)
	case n == 2:
		return decimal.NewFromInt(20)
	default:
		return decimal.NewFromInt(25)
	}
}

// ApprovedVolume steps over the total amount ever lent, in lakhs.
func ApprovedVolume(history []model.LoanRecord, _ time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, r := range history {
		total = total.Add(r.Amount)
	}
	lakhs := total.DivRound(lakh, scorePrecision)

	switch {
	case lakhs.IsZero():
		return decimal.Zero
	case lakhs.LessThanOrEqual(volumeLowTier):
		return decimal.NewFromInt(5)
	case lakhs.LessThanOrEqual(volumeMidTier):
		return decimal.NewFromInt(10)
	default:
		return decimal.NewFromInt(15)
	}
}

// DefaultComponents returns the production scoring model.
//
// Weights:
//   - On-time repayment: 35%
//   - Loan count: 25%
//   - Current-year activity: 25%
//   - Approved volume: 15%
func DefaultComponents() []WeightedComponent {
	return []WeightedComponent{
		{Name: "on_time_repayment", Weight: decimal.RequireFromString("0.35"), Component: OnTimeRepayment},
		{Name: "loan_count", Weight: decimal.RequireFromString("0.25"), Component: LoanCount},
		{Name: "current_year_activity", Weight: decimal.RequireFromString("0.25"), Component: CurrentYearActivity},
		{Name: "approved_volume", Weight: decimal.RequireFromString("0.15"), Component: ApprovedVolume},
	}
}

// ---------------------------------------------------------------------------
// ScoreCalculator – domain service
// ---------------------------------------------------------------------------

// ScoreFactor is one component's contribution to a computed score.
type ScoreFactor struct {
	Name     string
	Raw      decimal.Decimal
	Weighted decimal.Decimal
}

// ScoreBreakdown explains how a score was reached.
type ScoreBreakdown struct {
	Reason  string
	Factors []ScoreFactor
	Score   valueobject.CreditScore
}

const (
	ReasonOverApprovedLimit = "active loans exceed approved limit"
	ReasonNoHistory         = "no loan history"
)

// ScoreCalculator derives a 0-100 credit score from loan history. It holds no
// mutable state and is safe for concurrent use.
type ScoreCalculator struct {
	now        func() time.Time
	components []WeightedComponent
}

// NewScoreCalculator creates a calculator using DefaultComponents. A nil
// clock defaults to time.Now.
func NewScoreCalculator(now func() time.Time) *ScoreCalculator {
	return NewScoreCalculatorWithComponents(now, DefaultComponents())
}

// NewScoreCalculatorWithComponents creates a calculator over a custom model.
func NewScoreCalculatorWithComponents(now func() time.Time, components []WeightedComponent) *ScoreCalculator {
	if now == nil {
		now = time.Now
	}
	return &ScoreCalculator{now: now, components: components}
}

// ComputeScore returns the credit score for history.
func (c *ScoreCalculator) ComputeScore(
	history []model.LoanRecord,
	activeLoanTotal, approvedLimit decimal.Decimal,
) valueobject.CreditScore {
	return c.Explain(history, activeLoanTotal, approvedLimit).Score
}

// Explain computes the score along with each component's contribution.
//
// The approved-limit cutoff is checked before any component runs: a customer
// whose active loans exceed their limit scores 0 whatever their history.
func (c *ScoreCalculator) Explain(
	history []model.LoanRecord,
	activeLoanTotal, approvedLimit decimal.Decimal,
) ScoreBreakdown {
	if activeLoanTotal.GreaterThan(approvedLimit) {
		return ScoreBreakdown{Score: valueobject.ZeroCreditScore, Reason: ReasonOverApprovedLimit}
	}
	if len(history) == 0 {
		return ScoreBreakdown{Score: valueobject.ZeroCreditScore, Reason: ReasonNoHistory}
	}

	now := c.now()
	total := decimal.Zero
	factors := make([]ScoreFactor, 0, len(c.components))
	for _, wc := range c.components {
		raw := wc.Component(history, now)
		weighted := raw.Mul(wc.Weight)
		total = total.Add(weighted)
		factors = append(factors, ScoreFactor{Name: wc.Name, Raw: raw, Weighted: weighted})
	}

	return ScoreBreakdown{
		Score:   valueobject.NewCreditScore(total),
		Factors: factors,
	}
}
