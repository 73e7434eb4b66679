package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/urjitutjit/creditapprovalsystem/internal/domain/model"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/service"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/valueobject"
)

type fixedScorer struct {
	score valueobject.CreditScore
	calls int
}

func (s *fixedScorer) ComputeScore([]model.LoanRecord, decimal.Decimal, decimal.Decimal) valueobject.CreditScore {
	s.calls++
	return s.score
}

func scorer(v string) *fixedScorer {
	return &fixedScorer{score: valueobject.NewCreditScore(dec(v))}
}

func healthyProfile() model.CustomerProfile {
	return model.CustomerProfile{
		MonthlyIncome:       decimal.NewFromInt(60_000),
		CurrentInstallments: decimal.NewFromInt(10_000),
		ActiveLoanTotal:     decimal.NewFromInt(200_000),
		ApprovedLimit:       decimal.NewFromInt(2_200_000),
	}
}

func TestEvaluate_AffordabilityExceeded(t *testing.T) {
	s := scorer("90")
	eval := service.NewEligibilityEvaluator(s)
	profile := healthyProfile()
	profile.CurrentInstallments = decimal.NewFromInt(30_001)

	d := eval.Evaluate(profile, nil, decimal.NewFromInt(100_000), dec("9"), 12)

	assert.False(t, d.Approved)
	assert.Equal(t, service.ReasonAffordabilityExceeded, d.Reason)
	assert.True(t, d.CorrectedRate.Equal(dec("9")))
	assert.True(t, d.MonthlyInstallment.IsZero())
	assert.Equal(t, 12, d.TenureMonths)
	assert.Zero(t, s.calls, "score must not be computed once affordability fails")
}

func TestEvaluate_AffordabilityAtExactlyHalfIncome(t *testing.T) {
	eval := service.NewEligibilityEvaluator(scorer("90"))
	profile := healthyProfile()
	profile.CurrentInstallments = decimal.NewFromInt(30_000)

	d := eval.Evaluate(profile, nil, decimal.NewFromInt(100_000), dec("12"), 12)

	assert.True(t, d.Approved)
}

func TestEvaluate_Brackets(t *testing.T) {
	tests := []struct {
		name          string
		score         string
		requestedRate string
		wantApproved  bool
		wantRate      string
	}{
		{name: "prime keeps low rate", score: "75", requestedRate: "8", wantApproved: true, wantRate: "8"},
		{name: "just above 50", score: "50.01", requestedRate: "5", wantApproved: true, wantRate: "5"},
		{name: "exactly 50 is standard", score: "50", requestedRate: "8", wantApproved: true, wantRate: "12"},
		{name: "standard floors 8 to 12", score: "40", requestedRate: "8", wantApproved: true, wantRate: "12"},
		{name: "standard passes 14 through", score: "40", requestedRate: "14", wantApproved: true, wantRate: "14"},
		{name: "standard at the floor", score: "40", requestedRate: "12", wantApproved: true, wantRate: "12"},
		{name: "exactly 30 is subprime", score: "30", requestedRate: "14", wantApproved: true, wantRate: "16"},
		{name: "subprime passes 18 through", score: "20", requestedRate: "18", wantApproved: true, wantRate: "18"},
		{name: "just above 10", score: "10.5", requestedRate: "0", wantApproved: true, wantRate: "16"},
		{name: "exactly 10 is rejected", score: "10", requestedRate: "8", wantApproved: false, wantRate: "8"},
		{name: "zero is rejected", score: "0", requestedRate: "20", wantApproved: false, wantRate: "20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := service.NewEligibilityEvaluator(scorer(tt.score))

			d := eval.Evaluate(healthyProfile(), nil, decimal.NewFromInt(100_000), dec(tt.requestedRate), 24)

			assert.Equal(t, tt.wantApproved, d.Approved)
			assert.True(t, d.CorrectedRate.Equal(dec(tt.wantRate)), "want rate %s got %s", tt.wantRate, d.CorrectedRate)
			assert.True(t, d.RequestedRate.Equal(dec(tt.requestedRate)))
			assert.True(t, d.CorrectedRate.GreaterThanOrEqual(d.RequestedRate))
			if tt.wantApproved {
				assert.True(t, d.MonthlyInstallment.IsPositive())
			} else {
				assert.True(t, d.MonthlyInstallment.IsZero())
				assert.Equal(t, service.ReasonScoreTooLow, d.Reason)
			}
		})
	}
}

func TestEvaluate_InstallmentUsesCorrectedRate(t *testing.T) {
	eval := service.NewEligibilityEvaluator(scorer("40"))

	d := eval.Evaluate(healthyProfile(), nil, decimal.NewFromInt(100_000), dec("6"), 12)

	assert.True(t, d.CorrectedRate.Equal(dec("12")))
	assert.True(t, d.MonthlyInstallment.Sub(dec("8884.88")).Abs().LessThanOrEqual(dec("0.01")),
		"got %s", d.MonthlyInstallment)
}

func TestEvaluate_ZeroRate(t *testing.T) {
	eval := service.NewEligibilityEvaluator(scorer("80"))

	d := eval.Evaluate(healthyProfile(), nil, decimal.NewFromInt(120_000), decimal.Zero, 12)

	assert.True(t, d.Approved)
	assert.True(t, d.MonthlyInstallment.Equal(decimal.NewFromInt(10_000)), "got %s", d.MonthlyInstallment)
}

func TestEvaluate_WithScoreCalculator(t *testing.T) {
	eval := service.NewEligibilityEvaluator(service.NewScoreCalculator(clock))
	history := []model.LoanRecord{
		completedLoan(50_000, 12, 12, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)),
	}

	d := eval.Evaluate(healthyProfile(), history, decimal.NewFromInt(250_000), dec("8"), 36)

	// Score 15.5 lands in the 16% bracket.
	assert.True(t, d.Approved)
	assert.True(t, d.Score.Decimal().Equal(dec("15.5")))
	assert.True(t, d.CorrectedRate.Equal(dec("16")))
	assert.True(t, d.MonthlyInstallment.Sub(dec("8789.26")).Abs().LessThanOrEqual(dec("0.01")),
		"got %s", d.MonthlyInstallment)
}

func TestEvaluate_EmptyHistoryRejects(t *testing.T) {
	eval := service.NewEligibilityEvaluator(service.NewScoreCalculator(clock))

	d := eval.Evaluate(healthyProfile(), nil, decimal.NewFromInt(50_000), dec("10"), 12)

	assert.False(t, d.Approved)
	assert.True(t, d.Score.IsZero())
	assert.True(t, d.MonthlyInstallment.IsZero())
}

func TestApplyBracket(t *testing.T) {
	approved, rate, reason := service.ApplyBracket(valueobject.NewCreditScore(dec("31")), dec("11.99"))
	assert.True(t, approved)
	assert.True(t, rate.Equal(dec("12")))
	assert.NotEmpty(t, reason)

	approved, rate, _ = service.ApplyBracket(valueobject.NewCreditScore(dec("31")), dec("12.01"))
	assert.True(t, approved)
	assert.True(t, rate.Equal(dec("12.01")))
}
