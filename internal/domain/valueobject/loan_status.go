package valueobject

import (
	"errors"
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// LoanStatus – immutable value object
// ---------------------------------------------------------------------------

// LoanStatus represents where a loan sits in its repayment lifecycle.
type LoanStatus struct {
	value string
}

const (
	loanStatusActive    = "active"
	loanStatusCompleted = "completed"
	loanStatusDefaulted = "defaulted"
)

var (
	LoanStatusActive    = LoanStatus{value: loanStatusActive}
	LoanStatusCompleted = LoanStatus{value: loanStatusCompleted}
	LoanStatusDefaulted = LoanStatus{value: loanStatusDefaulted}
)

var validLoanStatuses = map[string]LoanStatus{
	loanStatusActive:    LoanStatusActive,
	loanStatusCompleted: LoanStatusCompleted,
	loanStatusDefaulted: LoanStatusDefaulted,
}

// NewLoanStatus parses a raw status string. Matching is case-insensitive so
// that "ACTIVE" read from older rows maps to the same value.
func NewLoanStatus(s string) (LoanStatus, error) {
	v, ok := validLoanStatuses[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return LoanStatus{}, fmt.Errorf("invalid loan status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s LoanStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s LoanStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s LoanStatus) Equal(other LoanStatus) bool { return s.value == other.value }

// IsActive reports whether the loan still carries an outstanding obligation.
func (s LoanStatus) IsActive() bool { return s.value == loanStatusActive }

// IsCompleted reports whether the loan has been fully repaid.
func (s LoanStatus) IsCompleted() bool { return s.value == loanStatusCompleted }

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
