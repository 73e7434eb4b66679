package port

import (
	"context"

	"github.com/urjitutjit/creditapprovalsystem/internal/domain/event"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// CustomerRepository persists and retrieves customers. FindByID returns
// model.ErrCustomerNotFound when no customer matches.
type CustomerRepository interface {
	Save(ctx context.Context, customer model.Customer) error
	FindByID(ctx context.Context, id string) (model.Customer, error)
}

// LoanRepository persists and retrieves loans. FindByID returns
// model.ErrLoanNotFound when no loan matches.
type LoanRepository interface {
	Save(ctx context.Context, loan model.Loan) error
	FindByID(ctx context.Context, id string) (model.Loan, error)
	FindByCustomerID(ctx context.Context, customerID string) ([]model.Loan, error)
}

// CustomerLocker serializes work on one customer's loan book across service
// instances. fn runs while the lock is held; the lock is released when fn
// returns, even on error.
type CustomerLocker interface {
	WithCustomerLock(ctx context.Context, customerID string, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Metrics port
// ---------------------------------------------------------------------------

// DecisionRecorder records the outcome of each eligibility evaluation.
type DecisionRecorder interface {
	RecordDecision(ctx context.Context, approved bool, reason string)
}
