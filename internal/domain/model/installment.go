package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// installmentPrecision is the number of fractional digits carried through the
// compounding loop. Rounding to cents happens only when a schedule is built
// or a value leaves the service.
const installmentPrecision = 24

var (
	one           = decimal.NewFromInt(1)
	hundred       = decimal.NewFromInt(100)
	monthsPerYear = decimal.NewFromInt(12)
)

// RepaymentEntry is one period of a fixed-installment repayment schedule.
type RepaymentEntry struct {
	DueDate          time.Time
	Principal        decimal.Decimal
	Interest         decimal.Decimal
	Total            decimal.Decimal
	RemainingBalance decimal.Decimal
	Period           int
}

// MonthlyRate converts an annual percentage rate (e.g. 12.5) into the
// fractional monthly rate used by the amortization formula.
func MonthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.DivRound(hundred.Mul(monthsPerYear), installmentPrecision)
}

// MonthlyInstallment returns the fixed monthly payment that amortizes
// principal over tenureMonths at the given annual percentage rate:
//
//	r   = annualRatePercent / 100 / 12
//	EMI = P * r * (1+r)^n / ((1+r)^n - 1)
//
// A zero rate splits the principal evenly. Non-positive principal or tenure
// yields zero.
func MonthlyInstallment(principal, annualRatePercent decimal.Decimal, tenureMonths int) decimal.Decimal {
	if tenureMonths <= 0 || principal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	n := decimal.NewFromInt(int64(tenureMonths))
	r := MonthlyRate(annualRatePercent)
	if r.IsZero() {
		return principal.DivRound(n, installmentPrecision)
	}

	factor := compound(r, tenureMonths)
	return principal.Mul(r).Mul(factor).DivRound(factor.Sub(one), installmentPrecision)
}

// compound returns (1+r)^n by repeated multiplication.
func compound(r decimal.Decimal, n int) decimal.Decimal {
	base := one.Add(r)
	out := one
	for i := 0; i < n; i++ {
		out = out.Mul(base).Round(installmentPrecision)
	}
	return out
}

// GenerateRepaymentSchedule splits a loan into tenureMonths cent-rounded
// periods. The first installment falls due one month after startDate and the
// final period absorbs rounding so the balance ends at exactly zero.
func GenerateRepaymentSchedule(
	principal decimal.Decimal,
	annualRatePercent decimal.Decimal,
	tenureMonths int,
	startDate time.Time,
) []RepaymentEntry {
	if tenureMonths <= 0 || principal.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	payment := MonthlyInstallment(principal, annualRatePercent, tenureMonths).Round(2)
	rate := MonthlyRate(annualRatePercent)

	schedule := make([]RepaymentEntry, 0, tenureMonths)
	remaining := principal

	for period := 1; period <= tenureMonths; period++ {
		interest := remaining.Mul(rate).Round(2)
		principalPart := payment.Sub(interest)

		if period == tenureMonths || principalPart.GreaterThan(remaining) {
			principalPart = remaining
		}

		remaining = remaining.Sub(principalPart)

		schedule = append(schedule, RepaymentEntry{
			Period:           period,
			DueDate:          startDate.AddDate(0, period, 0),
			Principal:        principalPart,
			Interest:         interest,
			Total:            principalPart.Add(interest),
			RemainingBalance: remaining,
		})
	}

	return schedule
}
