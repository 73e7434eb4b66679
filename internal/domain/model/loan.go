package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/urjitutjit/creditapprovalsystem/internal/domain/event"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/valueobject"
)

const (
	MinTenureMonths = 1
	MaxTenureMonths = 120
)

var (
	// ErrLoanNotFound is returned by repositories when no loan matches.
	ErrLoanNotFound = errors.New("loan not found")
	// ErrLoanVersionConflict is returned when a loan changed since it was read.
	ErrLoanVersionConflict = errors.New("loan was modified concurrently")
)

// ---------------------------------------------------------------------------
// Loan aggregate root
// ---------------------------------------------------------------------------

// Loan is an immutable aggregate. Mutations return a new copy.
type Loan struct {
	id                 string
	customerID         string
	amount             decimal.Decimal
	interestRate       decimal.Decimal
	monthlyInstallment decimal.Decimal
	tenureMonths       int
	emisPaidOnTime     int
	status             valueobject.LoanStatus
	startDate          time.Time
	endDate            time.Time
	version            int
	createdAt          time.Time
	updatedAt          time.Time
	domainEvents       []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewLoan books an approved loan. interestRate and monthlyInstallment are the
// corrected rate and installment from the eligibility decision. The loan
// starts ACTIVE on the calendar day of now and ends tenureMonths later.
func NewLoan(
	customerID string,
	amount, interestRate, monthlyInstallment decimal.Decimal,
	tenureMonths int,
	now time.Time,
) (Loan, error) {
	if customerID == "" {
		return Loan{}, errors.New("customer ID is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return Loan{}, errors.New("loan amount must be positive")
	}
	if interestRate.IsNegative() {
		return Loan{}, errors.New("interest rate must not be negative")
	}
	if tenureMonths < MinTenureMonths || tenureMonths > MaxTenureMonths {
		return Loan{}, errors.New("tenure must be between 1 and 120 months")
	}

	id := uuid.New().String()
	start := truncateToDay(now)
	end := start.AddDate(0, tenureMonths, 0)
	installment := monthlyInstallment.Round(2)

	loan := Loan{
		id:                 id,
		customerID:         customerID,
		amount:             amount,
		interestRate:       interestRate,
		monthlyInstallment: installment,
		tenureMonths:       tenureMonths,
		status:             valueobject.LoanStatusActive,
		startDate:          start,
		endDate:            end,
		version:            1,
		createdAt:          now,
		updatedAt:          now,
	}

	loan.domainEvents = append(loan.domainEvents, event.NewLoanCreated(
		id, customerID, amount, interestRate, installment, tenureMonths, start, now,
	))

	return loan, nil
}

// ReconstructLoan rebuilds a Loan aggregate from persistence.
func ReconstructLoan(
	id, customerID string,
	amount, interestRate, monthlyInstallment decimal.Decimal,
	tenureMonths, emisPaidOnTime int,
	status valueobject.LoanStatus,
	startDate, endDate time.Time,
	version int,
	createdAt, updatedAt time.Time,
) Loan {
	return Loan{
		id:                 id,
		customerID:         customerID,
		amount:             amount,
		interestRate:       interestRate,
		monthlyInstallment: monthlyInstallment,
		tenureMonths:       tenureMonths,
		emisPaidOnTime:     emisPaidOnTime,
		status:             status,
		startDate:          startDate,
		endDate:            endDate,
		version:            version,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

// RecordRepayment applies one on-time installment. Paying the last
// outstanding installment completes the loan.
func (l Loan) RecordRepayment(now time.Time) (Loan, error) {
	if !l.status.IsActive() {
		return l, valueobject.ErrInvalidStatusTransition
	}

	next := l
	next.emisPaidOnTime = l.emisPaidOnTime + 1
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewRepaymentRecorded(
		l.id, l.customerID, next.emisPaidOnTime, next.RepaymentsLeft(), now,
	))

	if next.emisPaidOnTime >= l.tenureMonths {
		next.status = valueobject.LoanStatusCompleted
		next.domainEvents = append(next.domainEvents, event.NewLoanCompleted(l.id, l.customerID, now))
	}

	return next, nil
}

// MarkDefaulted transitions ACTIVE -> DEFAULTED.
func (l Loan) MarkDefaulted(now time.Time) (Loan, error) {
	if !l.status.IsActive() {
		return l, valueobject.ErrInvalidStatusTransition
	}
	next := l
	next.status = valueobject.LoanStatusDefaulted
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanDefaulted(l.id, l.customerID, l.RepaymentsLeft(), now))
	return next, nil
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// RepaymentsLeft is the number of installments still owed. Completed loans
// owe nothing regardless of how many installments were recorded.
func (l Loan) RepaymentsLeft() int {
	if l.status.IsCompleted() {
		return 0
	}
	if left := l.tenureMonths - l.emisPaidOnTime; left > 0 {
		return left
	}
	return 0
}

// Record returns the read-only snapshot used by the scoring engine.
func (l Loan) Record() LoanRecord {
	return LoanRecord{
		StartDate:      l.startDate,
		EndDate:        l.endDate,
		Amount:         l.amount,
		InterestRate:   l.interestRate,
		Status:         l.status,
		TenureMonths:   l.tenureMonths,
		EMIsPaidOnTime: l.emisPaidOnTime,
	}
}

// Schedule builds the repayment schedule from the booked terms.
func (l Loan) Schedule() []RepaymentEntry {
	return GenerateRepaymentSchedule(l.amount, l.interestRate, l.tenureMonths, l.startDate)
}

// Records converts loans into scoring snapshots.
func Records(loans []Loan) []LoanRecord {
	out := make([]LoanRecord, 0, len(loans))
	for _, l := range loans {
		out = append(out, l.Record())
	}
	return out
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (l Loan) ID() string                          { return l.id }
func (l Loan) CustomerID() string                  { return l.customerID }
func (l Loan) Amount() decimal.Decimal             { return l.amount }
func (l Loan) InterestRate() decimal.Decimal       { return l.interestRate }
func (l Loan) MonthlyInstallment() decimal.Decimal { return l.monthlyInstallment }
func (l Loan) TenureMonths() int                   { return l.tenureMonths }
func (l Loan) EMIsPaidOnTime() int                 { return l.emisPaidOnTime }
func (l Loan) Status() valueobject.LoanStatus      { return l.status }
func (l Loan) StartDate() time.Time                { return l.startDate }
func (l Loan) EndDate() time.Time                  { return l.endDate }
func (l Loan) Version() int                        { return l.version }
func (l Loan) CreatedAt() time.Time                { return l.createdAt }
func (l Loan) UpdatedAt() time.Time                { return l.updatedAt }
func (l Loan) DomainEvents() []event.DomainEvent   { return l.domainEvents }

// ClearEvents returns a copy with an empty event list.
func (l Loan) ClearEvents() Loan {
	next := l
	next.domainEvents = nil
	return next
}

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if src == nil {
		return nil
	}
	out := make([]event.DomainEvent, len(src))
	copy(out, src)
	return out
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
