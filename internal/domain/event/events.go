package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/urjitutjit/creditapprovalsystem/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// ---------------------------------------------------------------------------
// Customer Events
// ---------------------------------------------------------------------------

// CustomerRegistered is raised when a new customer is onboarded.
type CustomerRegistered struct {
	events.BaseEvent
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
	ApprovedLimit decimal.Decimal `json:"approved_limit"`
}

func NewCustomerRegistered(
	customerID string,
	monthlyIncome, approvedLimit decimal.Decimal,
	now time.Time,
) CustomerRegistered {
	return CustomerRegistered{
		BaseEvent:     events.NewBaseEvent("credit.customer.registered", customerID, "Customer", now),
		MonthlyIncome: monthlyIncome,
		ApprovedLimit: approvedLimit,
	}
}

// EligibilityEvaluated is raised each time a customer's eligibility is checked.
type EligibilityEvaluated struct {
	events.BaseEvent
	RequestedAmount    decimal.Decimal `json:"requested_amount"`
	RequestedRate      decimal.Decimal `json:"requested_rate"`
	CorrectedRate      decimal.Decimal `json:"corrected_rate"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	CreditScore        string          `json:"credit_score"`
	Reason             string          `json:"reason,omitempty"`
	TenureMonths       int             `json:"tenure_months"`
	Approved           bool            `json:"approved"`
}

func NewEligibilityEvaluated(
	customerID string,
	requestedAmount, requestedRate, correctedRate, installment decimal.Decimal,
	tenureMonths int,
	approved bool,
	creditScore, reason string,
	now time.Time,
) EligibilityEvaluated {
	return EligibilityEvaluated{
		BaseEvent:          events.NewBaseEvent("credit.eligibility.evaluated", customerID, "Customer", now),
		RequestedAmount:    requestedAmount,
		RequestedRate:      requestedRate,
		CorrectedRate:      correctedRate,
		MonthlyInstallment: installment,
		CreditScore:        creditScore,
		Reason:             reason,
		TenureMonths:       tenureMonths,
		Approved:           approved,
	}
}

// ---------------------------------------------------------------------------
// Loan Events
// ---------------------------------------------------------------------------

// LoanCreated is raised when an approved loan is booked.
type LoanCreated struct {
	StartDate time.Time `json:"start_date"`
	events.BaseEvent
	CustomerID         string          `json:"customer_id"`
	Amount             decimal.Decimal `json:"amount"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	TenureMonths       int             `json:"tenure_months"`
}

func NewLoanCreated(
	loanID, customerID string,
	amount, rate, installment decimal.Decimal,
	tenureMonths int,
	startDate time.Time,
	now time.Time,
) LoanCreated {
	return LoanCreated{
		BaseEvent:          events.NewBaseEvent("credit.loan.created", loanID, "Loan", now),
		CustomerID:         customerID,
		Amount:             amount,
		InterestRate:       rate,
		MonthlyInstallment: installment,
		TenureMonths:       tenureMonths,
		StartDate:          startDate,
	}
}

// RepaymentRecorded is raised when an on-time installment is applied to a loan.
type RepaymentRecorded struct {
	events.BaseEvent
	CustomerID     string `json:"customer_id"`
	EMIsPaidOnTime int    `json:"emis_paid_on_time"`
	RepaymentsLeft int    `json:"repayments_left"`
}

func NewRepaymentRecorded(
	loanID, customerID string,
	emisPaidOnTime, repaymentsLeft int,
	now time.Time,
) RepaymentRecorded {
	return RepaymentRecorded{
		BaseEvent:      events.NewBaseEvent("credit.loan.repayment_recorded", loanID, "Loan", now),
		CustomerID:     customerID,
		EMIsPaidOnTime: emisPaidOnTime,
		RepaymentsLeft: repaymentsLeft,
	}
}

// LoanCompleted is raised when the final installment is paid.
type LoanCompleted struct {
	events.BaseEvent
	CustomerID string `json:"customer_id"`
}

func NewLoanCompleted(loanID, customerID string, now time.Time) LoanCompleted {
	return LoanCompleted{
		BaseEvent:  events.NewBaseEvent("credit.loan.completed", loanID, "Loan", now),
		CustomerID: customerID,
	}
}

// LoanDefaulted is raised when a loan is written down as defaulted.
type LoanDefaulted struct {
	events.BaseEvent
	CustomerID     string `json:"customer_id"`
	RepaymentsLeft int    `json:"repayments_left"`
}

func NewLoanDefaulted(loanID, customerID string, repaymentsLeft int, now time.Time) LoanDefaulted {
	return LoanDefaulted{
		BaseEvent:      events.NewBaseEvent("credit.loan.defaulted", loanID, "Loan", now),
		CustomerID:     customerID,
		RepaymentsLeft: repaymentsLeft,
	}
}
