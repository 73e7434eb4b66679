package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/urjitutjit/creditapprovalsystem/internal/domain/valueobject"
)

// LoanRecord is a read-only snapshot of one loan in a customer's history,
// as consumed by the scoring engine.
type LoanRecord struct {
	StartDate      time.Time
	EndDate        time.Time
	Amount         decimal.Decimal
	InterestRate   decimal.Decimal
	Status         valueobject.LoanStatus
	TenureMonths   int
	EMIsPaidOnTime int
}

// PaidInFullOnTime reports whether every scheduled installment was paid on
// time.
func (r LoanRecord) PaidInFullOnTime() bool {
	return r.EMIsPaidOnTime >= r.TenureMonths
}

// CustomerProfile carries the affordability inputs for an eligibility check.
// CurrentInstallments and ActiveLoanTotal are derived by the caller from the
// customer's active loans.
type CustomerProfile struct {
	MonthlyIncome       decimal.Decimal
	CurrentInstallments decimal.Decimal
	ActiveLoanTotal     decimal.Decimal
	ApprovedLimit       decimal.Decimal
}

// ActiveLoanTotal sums the amounts of loans that are still active.
func ActiveLoanTotal(history []LoanRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range history {
		if r.Status.IsActive() {
			total = total.Add(r.Amount)
		}
	}
	return total
}
