package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/urjitutjit/creditapprovalsystem/internal/domain/event"
)

const (
	MinCustomerAge = 18
	MaxCustomerAge = 100
)

var (
	// ErrCustomerNotFound is returned by repositories when no customer matches.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrDuplicatePhone is returned by repositories when another customer
	// already holds the phone number.
	ErrDuplicatePhone = errors.New("phone number already registered")

	limitIncomeMultiple = decimal.NewFromInt(36)
	limitRoundingUnit   = decimal.NewFromInt(100_000)
)

// ---------------------------------------------------------------------------
// Customer aggregate root
// ---------------------------------------------------------------------------

// Customer is an immutable aggregate. Mutations return a new copy.
type Customer struct {
	id            string
	firstName     string
	lastName      string
	age           int
	phoneNumber   int64
	monthlyIncome decimal.Decimal
	approvedLimit decimal.Decimal
	currentDebt   decimal.Decimal
	createdAt     time.Time
	updatedAt     time.Time
	domainEvents  []event.DomainEvent
}

// ApprovedLimitFor derives a customer's credit limit from monthly income:
// 36 months of income rounded to the nearest 100,000 (ties to even).
func ApprovedLimitFor(monthlyIncome decimal.Decimal) decimal.Decimal {
	units := monthlyIncome.Mul(limitIncomeMultiple).Div(limitRoundingUnit).RoundBank(0)
	return units.Mul(limitRoundingUnit)
}

// NewCustomer registers a customer and computes the approved limit.
func NewCustomer(
	firstName, lastName string,
	age int,
	monthlyIncome decimal.Decimal,
	phoneNumber int64,
	now time.Time,
) (Customer, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)

	if firstName == "" {
		return Customer{}, errors.New("first name is required")
	}
	if lastName == "" {
		return Customer{}, errors.New("last name is required")
	}
	if age < MinCustomerAge || age > MaxCustomerAge {
		return Customer{}, errors.New("age must be between 18 and 100")
	}
	if monthlyIncome.LessThanOrEqual(decimal.Zero) {
		return Customer{}, errors.New("monthly income must be positive")
	}
	if phoneNumber <= 0 {
		return Customer{}, errors.New("phone number is required")
	}

	id := uuid.New().String()
	limit := ApprovedLimitFor(monthlyIncome)

	c := Customer{
		id:            id,
		firstName:     firstName,
		lastName:      lastName,
		age:           age,
		phoneNumber:   phoneNumber,
		monthlyIncome: monthlyIncome,
		approvedLimit: limit,
		currentDebt:   decimal.Zero,
		createdAt:     now,
		updatedAt:     now,
	}
	c.domainEvents = append(c.domainEvents, event.NewCustomerRegistered(id, monthlyIncome, limit, now))

	return c, nil
}

// ReconstructCustomer rebuilds a Customer aggregate from persistence.
func ReconstructCustomer(
	id, firstName, lastName string,
	age int,
	phoneNumber int64,
	monthlyIncome, approvedLimit, currentDebt decimal.Decimal,
	createdAt, updatedAt time.Time,
) Customer {
	return Customer{
		id:            id,
		firstName:     firstName,
		lastName:      lastName,
		age:           age,
		phoneNumber:   phoneNumber,
		monthlyIncome: monthlyIncome,
		approvedLimit: approvedLimit,
		currentDebt:   currentDebt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Profile derives the eligibility inputs for this customer from their loans.
// Only active loans count towards current installments and outstanding total.
func (c Customer) Profile(loans []Loan) CustomerProfile {
	installments := decimal.Zero
	active := decimal.Zero
	for _, l := range loans {
		if !l.Status().IsActive() {
			continue
		}
		installments = installments.Add(l.MonthlyInstallment())
		active = active.Add(l.Amount())
	}

	return CustomerProfile{
		MonthlyIncome:       c.monthlyIncome,
		CurrentInstallments: installments,
		ActiveLoanTotal:     active,
		ApprovedLimit:       c.approvedLimit,
	}
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (c Customer) ID() string                        { return c.id }
func (c Customer) FirstName() string                 { return c.firstName }
func (c Customer) LastName() string                  { return c.lastName }
func (c Customer) Name() string                      { return c.firstName + " " + c.lastName }
func (c Customer) Age() int                          { return c.age }
func (c Customer) PhoneNumber() int64                { return c.phoneNumber }
func (c Customer) MonthlyIncome() decimal.Decimal    { return c.monthlyIncome }
func (c Customer) ApprovedLimit() decimal.Decimal    { return c.approvedLimit }
func (c Customer) CurrentDebt() decimal.Decimal      { return c.currentDebt }
func (c Customer) CreatedAt() time.Time              { return c.createdAt }
func (c Customer) UpdatedAt() time.Time              { return c.updatedAt }
func (c Customer) DomainEvents() []event.DomainEvent { return c.domainEvents }

// ClearEvents returns a copy with an empty event list.
func (c Customer) ClearEvents() Customer {
	next := c
	next.domainEvents = nil
	return next
}
