package service

import (
	"github.com/shopspring/decimal"

	"github.com/urjitutjit/creditapprovalsystem/internal/domain/model"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// EligibilityEvaluator – domain service for loan approval rules
// ---------------------------------------------------------------------------

const (
	ReasonAffordabilityExceeded = "affordability exceeded"
	ReasonScoreTooLow           = "credit score too low"
	ReasonCustomerNotFound      = "customer not found"

	reasonPrimeTier    = "approved at requested rate"
	reasonStandardTier = "approved with 12% minimum rate"
	reasonSubprimeTier = "approved with 16% minimum rate"
)

var (
	maxInstallmentShare = decimal.RequireFromString("0.5")
	standardRateFloor   = decimal.NewFromInt(12)
	subprimeRateFloor   = decimal.NewFromInt(16)
)

// EligibilityDecision is the outcome of an eligibility check. Rejections
// carry the requested rate as the corrected rate and a zero installment.
type EligibilityDecision struct {
	Reason             string
	Score              valueobject.CreditScore
	RequestedRate      decimal.Decimal
	CorrectedRate      decimal.Decimal
	MonthlyInstallment decimal.Decimal
	TenureMonths       int
	Approved           bool
}

// Scorer computes a credit score from loan history.
type Scorer interface {
	ComputeScore(history []model.LoanRecord, activeLoanTotal, approvedLimit decimal.Decimal) valueobject.CreditScore
}

// EligibilityEvaluator applies affordability and score-bracket rules.
type EligibilityEvaluator struct {
	scorer Scorer
}

// NewEligibilityEvaluator returns an evaluator scoring with scorer.
func NewEligibilityEvaluator(scorer Scorer) *EligibilityEvaluator {
	return &EligibilityEvaluator{scorer: scorer}
}

// Evaluate decides whether a loan of amount at requestedRate over tenure
// months can be granted. Inputs are assumed validated by the caller:
// amount > 0, rate >= 0, tenure >= 1.
//
// Score brackets (lower bound exclusive, upper inclusive):
//
//	score > 50       -> approved, requested rate
//	30 < score <= 50 -> approved, rate at least 12%
//	10 < score <= 30 -> approved, rate at least 16%
//	score <= 10      -> rejected
func (e *EligibilityEvaluator) Evaluate(
	profile model.CustomerProfile,
	history []model.LoanRecord,
	amount, requestedRate decimal.Decimal,
	tenureMonths int,
) EligibilityDecision {
	decision := EligibilityDecision{
		Score:              valueobject.ZeroCreditScore,
		RequestedRate:      requestedRate,
		CorrectedRate:      requestedRate,
		MonthlyInstallment: decimal.Zero,
		TenureMonths:       tenureMonths,
	}

	if profile.CurrentInstallments.GreaterThan(profile.MonthlyIncome.Mul(maxInstallmentShare)) {
		decision.Reason = ReasonAffordabilityExceeded
		return decision
	}

	decision.Score = e.scorer.ComputeScore(history, profile.ActiveLoanTotal, profile.ApprovedLimit)

	approved, corrected, reason := ApplyBracket(decision.Score, requestedRate)
	decision.Reason = reason
	if !approved {
		return decision
	}

	decision.Approved = true
	decision.CorrectedRate = corrected
	decision.MonthlyInstallment = model.MonthlyInstallment(amount, corrected, tenureMonths)
	return decision
}

// ApplyBracket maps a score to an approval and a corrected rate. The rate
// floor only applies when the requested rate is at or below it.
func ApplyBracket(score valueobject.CreditScore, requestedRate decimal.Decimal) (bool, decimal.Decimal, string) {
	switch {
	case score.GreaterThan(50):
		return true, requestedRate, reasonPrimeTier
	case score.GreaterThan(30):
		return true, floorRate(requestedRate, standardRateFloor), reasonStandardTier
	case score.GreaterThan(10):
		return true, floorRate(requestedRate, subprimeRateFloor), reasonSubprimeTier
	default:
		return false, requestedRate, ReasonScoreTooLow
	}
}

func floorRate(rate, floor decimal.Decimal) decimal.Decimal {
	if rate.GreaterThan(floor) {
		return rate
	}
	return floor
}
