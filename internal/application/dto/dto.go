package dto

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidRequest wraps every request validation failure.
var ErrInvalidRequest = errors.New("invalid request")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// Upper bounds (exclusive) keep amounts inside the NUMERIC(14,2) and
// NUMERIC(6,2) columns, including a customer's approved limit (36 x income)
// and current debt (limit plus one new loan).
var (
	maxMonthlyIncome = decimal.NewFromInt(10_000_000_000)
	maxLoanAmount    = decimal.NewFromInt(100_000_000_000)
	maxInterestRate  = decimal.NewFromInt(1000)
)

// hasCents reports whether d carries at most two decimal places.
func hasCents(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(2))
}

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// RegisterCustomerRequest carries the data needed to onboard a customer.
type RegisterCustomerRequest struct {
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
	PhoneNumber   int64           `json:"phone_number"`
	Age           int             `json:"age"`
}

// Validate checks field presence and ranges.
func (r RegisterCustomerRequest) Validate() error {
	switch {
	case strings.TrimSpace(r.FirstName) == "":
		return invalid("first_name is required")
	case strings.TrimSpace(r.LastName) == "":
		return invalid("last_name is required")
	case r.Age < 18 || r.Age > 100:
		return invalid("age must be between 18 and 100")
	case !r.MonthlyIncome.IsPositive():
		return invalid("monthly_income must be positive")
	case !r.MonthlyIncome.LessThan(maxMonthlyIncome):
		return invalid("monthly_income must be below %s", maxMonthlyIncome)
	case !hasCents(r.MonthlyIncome):
		return invalid("monthly_income must have at most 2 decimal places")
	case r.PhoneNumber <= 0:
		return invalid("phone_number is required")
	}
	return nil
}

// LoanTermsRequest carries a proposed loan for a customer. It is shared by
// eligibility checks and loan creation.
type LoanTermsRequest struct {
	CustomerID   string          `json:"customer_id"`
	LoanAmount   decimal.Decimal `json:"loan_amount"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	TenureMonths int             `json:"tenure"`
}

// Validate enforces the ranges the eligibility engine relies on.
func (r LoanTermsRequest) Validate() error {
	switch {
	case r.CustomerID == "":
		return invalid("customer_id is required")
	case !r.LoanAmount.IsPositive():
		return invalid("loan_amount must be positive")
	case !r.LoanAmount.LessThan(maxLoanAmount):
		return invalid("loan_amount must be below %s", maxLoanAmount)
	case !hasCents(r.LoanAmount):
		return invalid("loan_amount must have at most 2 decimal places")
	case r.InterestRate.IsNegative():
		return invalid("interest_rate must not be negative")
	case !r.InterestRate.LessThan(maxInterestRate):
		return invalid("interest_rate must be below %s", maxInterestRate)
	case !hasCents(r.InterestRate):
		return invalid("interest_rate must have at most 2 decimal places")
	case r.TenureMonths < 1 || r.TenureMonths > 120:
		return invalid("tenure must be between 1 and 120 months")
	}
	return nil
}

// CheckEligibilityRequest asks whether a loan would be approved.
type CheckEligibilityRequest = LoanTermsRequest

// CreateLoanRequest asks for a loan to be booked if approved.
type CreateLoanRequest = LoanTermsRequest

// GetLoanRequest identifies a loan to retrieve.
type GetLoanRequest struct {
	LoanID string `json:"loan_id"`
}

// Validate checks that a loan is identified.
func (r GetLoanRequest) Validate() error {
	if r.LoanID == "" {
		return invalid("loan_id is required")
	}
	return nil
}

// ListCustomerLoansRequest identifies the customer whose loans to list.
type ListCustomerLoansRequest struct {
	CustomerID string `json:"customer_id"`
}

// Validate checks that a customer is identified.
func (r ListCustomerLoansRequest) Validate() error {
	if r.CustomerID == "" {
		return invalid("customer_id is required")
	}
	return nil
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// CustomerResponse is the external representation of a customer.
type CustomerResponse struct {
	CreatedAt     time.Time       `json:"created_at"`
	ID            string          `json:"customer_id"`
	Name          string          `json:"name"`
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
	ApprovedLimit decimal.Decimal `json:"approved_limit"`
	PhoneNumber   int64           `json:"phone_number"`
	Age           int             `json:"age"`
}

// EligibilityResponse is the external representation of an eligibility
// decision.
type EligibilityResponse struct {
	CustomerID            string          `json:"customer_id"`
	CreditScore           string          `json:"credit_score"`
	Message               string          `json:"message,omitempty"`
	InterestRate          decimal.Decimal `json:"interest_rate"`
	CorrectedInterestRate decimal.Decimal `json:"corrected_interest_rate"`
	MonthlyInstallment    decimal.Decimal `json:"monthly_installment"`
	TenureMonths          int             `json:"tenure"`
	Approved              bool            `json:"approval"`
}

// CreateLoanResponse reports whether a loan was booked. LoanID is empty when
// the loan was not approved.
type CreateLoanResponse struct {
	LoanID             string          `json:"loan_id,omitempty"`
	CustomerID         string          `json:"customer_id"`
	Message            string          `json:"message"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	Approved           bool            `json:"loan_approved"`
}

// CustomerSummary is the customer block embedded in loan details.
type CustomerSummary struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber int64  `json:"phone_number"`
	Age         int    `json:"age"`
}

// LoanResponse is the external representation of a single loan.
type LoanResponse struct {
	StartDate          time.Time       `json:"start_date"`
	EndDate            time.Time       `json:"end_date"`
	ID                 string          `json:"loan_id"`
	Status             string          `json:"status"`
	Customer           CustomerSummary `json:"customer"`
	LoanAmount         decimal.Decimal `json:"loan_amount"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	TenureMonths       int             `json:"tenure"`
	EMIsPaidOnTime     int             `json:"emis_paid_on_time"`
	RepaymentsLeft     int             `json:"repayments_left"`
}

// LoanSummary is one row in a customer's loan list.
type LoanSummary struct {
	ID                 string          `json:"loan_id"`
	Status             string          `json:"status"`
	LoanAmount         decimal.Decimal `json:"loan_amount"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	RepaymentsLeft     int             `json:"repayments_left"`
}

// CustomerLoansResponse lists a customer's loans.
type CustomerLoansResponse struct {
	CustomerID string        `json:"customer_id"`
	Loans      []LoanSummary `json:"loans"`
}

// RepaymentEntryResponse represents a single repayment schedule entry.
type RepaymentEntryResponse struct {
	DueDate          time.Time       `json:"due_date"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	Total            decimal.Decimal `json:"total"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	Period           int             `json:"period"`
}

// RepaymentScheduleResponse is the amortization table for a loan.
type RepaymentScheduleResponse struct {
	LoanID  string                   `json:"loan_id"`
	Entries []RepaymentEntryResponse `json:"entries"`
}

// LoanStatusResponse reports a loan's repayment position after a lifecycle
// change.
type LoanStatusResponse struct {
	LoanID         string `json:"loan_id"`
	Status         string `json:"status"`
	EMIsPaidOnTime int    `json:"emis_paid_on_time"`
	RepaymentsLeft int    `json:"repayments_left"`
}
