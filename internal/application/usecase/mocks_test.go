package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/urjitutjit/creditapprovalsystem/internal/domain/event"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/model"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/valueobject"
)

// --- Mock implementations ---

type mockCustomerRepository struct {
	saveFunc       func(ctx context.Context, c model.Customer) error
	findByIDFunc   func(ctx context.Context, id string) (model.Customer, error)
	savedCustomers []model.Customer
}

func (m *mockCustomerRepository) Save(ctx context.Context, c model.Customer) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, c)
	}
	m.savedCustomers = append(m.savedCustomers, c)
	return nil
}

func (m *mockCustomerRepository) FindByID(ctx context.Context, id string) (model.Customer, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Customer{}, model.ErrCustomerNotFound
}

type mockLoanRepository struct {
	saveFunc             func(ctx context.Context, loan model.Loan) error
	findByIDFunc         func(ctx context.Context, id string) (model.Loan, error)
	findByCustomerIDFunc func(ctx context.Context, customerID string) ([]model.Loan, error)
	savedLoans           []model.Loan
}

func (m *mockLoanRepository) Save(ctx context.Context, loan model.Loan) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, loan)
	}
	m.savedLoans = append(m.savedLoans, loan)
	return nil
}

func (m *mockLoanRepository) FindByID(ctx context.Context, id string) (model.Loan, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Loan{}, model.ErrLoanNotFound
}

func (m *mockLoanRepository) FindByCustomerID(ctx context.Context, customerID string) ([]model.Loan, error) {
	if m.findByCustomerIDFunc != nil {
		return m.findByCustomerIDFunc(ctx, customerID)
	}
	return nil, nil
}

// mockCustomerLocker serializes on a single in-process mutex and records the
// keys it was asked to lock.
type mockCustomerLocker struct {
	lockFunc func(ctx context.Context, customerID string) error
	mu       sync.Mutex
	held     bool
	keys     []string
}

func (m *mockCustomerLocker) WithCustomerLock(ctx context.Context, customerID string, fn func(ctx context.Context) error) error {
	if m.lockFunc != nil {
		if err := m.lockFunc(ctx, customerID); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.held = true
	defer func() { m.held = false }()
	m.keys = append(m.keys, customerID)
	return fn(ctx)
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

func (m *mockEventPublisher) eventTypes() []string {
	out := make([]string, 0, len(m.publishedEvents))
	for _, e := range m.publishedEvents {
		out = append(out, e.EventType())
	}
	return out
}

type decisionRecord struct {
	reason   string
	approved bool
}

type mockDecisionRecorder struct {
	decisions []decisionRecord
}

func (m *mockDecisionRecorder) RecordDecision(_ context.Context, approved bool, reason string) {
	m.decisions = append(m.decisions, decisionRecord{approved: approved, reason: reason})
}

type fixedScorer struct {
	score valueobject.CreditScore
}

func (s fixedScorer) ComputeScore([]model.LoanRecord, decimal.Decimal, decimal.Decimal) valueobject.CreditScore {
	return s.score
}

// --- Fixtures ---

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testCustomer() model.Customer {
	now := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	return model.ReconstructCustomer(
		"cust-001", "Asha", "Rao", 34, 9876543210,
		decimal.NewFromInt(60_000), decimal.NewFromInt(2_200_000), decimal.Zero,
		now, now,
	)
}

func testLoan(status valueobject.LoanStatus, paid int) model.Loan {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	return model.ReconstructLoan(
		"loan-001", "cust-001",
		decimal.NewFromInt(100_000), dec("12"), dec("8884.88"),
		12, paid, status,
		start, start.AddDate(0, 12, 0),
		1, start, start,
	)
}
