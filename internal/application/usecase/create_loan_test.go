package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urjitutjit/creditapprovalsystem/internal/application/dto"
	"github.com/urjitutjit/creditapprovalsystem/internal/application/usecase"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/event"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/model"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/service"
)

func TestCreateLoan_Execute(t *testing.T) {
	t.Run("books an approved loan at the corrected rate", func(t *testing.T) {
		loans := &mockLoanRepository{}
		publisher := &mockEventPublisher{}
		recorder := &mockDecisionRecorder{}
		uc := usecase.NewCreateLoanUseCase(knownCustomerRepo(), loans, &mockCustomerLocker{}, publisher, evaluatorWithScore("40"), recorder)

		resp, err := uc.Execute(context.Background(), validTermsRequest())

		require.NoError(t, err)
		assert.True(t, resp.Approved)
		assert.NotEmpty(t, resp.LoanID)
		assert.Equal(t, "cust-001", resp.CustomerID)
		assert.True(t, resp.MonthlyInstallment.Equal(dec("8884.88")), "got %s", resp.MonthlyInstallment)

		require.Len(t, loans.savedLoans, 1)
		saved := loans.savedLoans[0]
		assert.Equal(t, resp.LoanID, saved.ID())
		assert.True(t, saved.InterestRate().Equal(dec("12")))
		assert.True(t, saved.Status().IsActive())
		assert.Equal(t, 12, saved.RepaymentsLeft())

		assert.Equal(t, []string{"credit.eligibility.evaluated", "credit.loan.created"}, publisher.eventTypes())
		require.Len(t, recorder.decisions, 1)
	})

	t.Run("does not book a rejected loan", func(t *testing.T) {
		loans := &mockLoanRepository{}
		publisher := &mockEventPublisher{}
		uc := usecase.NewCreateLoanUseCase(knownCustomerRepo(), loans, &mockCustomerLocker{}, publisher, evaluatorWithScore("10"), &mockDecisionRecorder{})

		resp, err := uc.Execute(context.Background(), validTermsRequest())

		require.NoError(t, err)
		assert.False(t, resp.Approved)
		assert.Empty(t, resp.LoanID)
		assert.Equal(t, service.ReasonScoreTooLow, resp.Message)
		assert.True(t, resp.MonthlyInstallment.IsZero())
		assert.Empty(t, loans.savedLoans)
		assert.Equal(t, []string{"credit.eligibility.evaluated"}, publisher.eventTypes())
	})

	t.Run("unknown customer is an error", func(t *testing.T) {
		uc := usecase.NewCreateLoanUseCase(
			&mockCustomerRepository{}, &mockLoanRepository{}, &mockCustomerLocker{}, &mockEventPublisher{}, evaluatorWithScore("90"), &mockDecisionRecorder{},
		)

		_, err := uc.Execute(context.Background(), validTermsRequest())

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrCustomerNotFound)
	})

	t.Run("fails when save fails", func(t *testing.T) {
		loans := &mockLoanRepository{
			saveFunc: func(context.Context, model.Loan) error { return errors.New("disk full") },
		}
		publisher := &mockEventPublisher{}
		uc := usecase.NewCreateLoanUseCase(knownCustomerRepo(), loans, &mockCustomerLocker{}, publisher, evaluatorWithScore("80"), &mockDecisionRecorder{})

		_, err := uc.Execute(context.Background(), validTermsRequest())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "save loan")
		assert.Empty(t, publisher.publishedEvents)
	})
}

func TestCreateLoan_HoldsCustomerLock(t *testing.T) {
	locker := &mockCustomerLocker{}
	var lockedDuringSave bool
	loans := &mockLoanRepository{
		saveFunc: func(context.Context, model.Loan) error {
			lockedDuringSave = locker.held
			return nil
		},
	}
	uc := usecase.NewCreateLoanUseCase(knownCustomerRepo(), loans, locker, &mockEventPublisher{}, evaluatorWithScore("80"), &mockDecisionRecorder{})

	resp, err := uc.Execute(context.Background(), validTermsRequest())

	require.NoError(t, err)
	assert.True(t, resp.Approved)
	assert.True(t, lockedDuringSave)
	assert.Equal(t, []string{"cust-001"}, locker.keys)
	assert.False(t, locker.held)
}

func TestCreateLoan_LockFailure(t *testing.T) {
	locker := &mockCustomerLocker{
		lockFunc: func(context.Context, string) error { return context.DeadlineExceeded },
	}
	loans := &mockLoanRepository{}
	publisher := &mockEventPublisher{}
	recorder := &mockDecisionRecorder{}
	uc := usecase.NewCreateLoanUseCase(knownCustomerRepo(), loans, locker, publisher, evaluatorWithScore("80"), recorder)

	_, err := uc.Execute(context.Background(), validTermsRequest())

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, loans.savedLoans)
	assert.Empty(t, publisher.publishedEvents)
	assert.Empty(t, recorder.decisions)
}

func TestCreateLoan_ConcurrentRequestsSeeEachOther(t *testing.T) {
	var (
		mu   sync.Mutex
		book []model.Loan
	)
	loans := &mockLoanRepository{
		saveFunc: func(_ context.Context, l model.Loan) error {
			mu.Lock()
			defer mu.Unlock()
			book = append(book, l)
			return nil
		},
		findByCustomerIDFunc: func(context.Context, string) ([]model.Loan, error) {
			mu.Lock()
			defer mu.Unlock()
			return append([]model.Loan(nil), book...), nil
		},
	}
	publisher := &mockEventPublisher{
		publishFunc: func(context.Context, ...event.DomainEvent) error { return nil },
	}
	uc := usecase.NewCreateLoanUseCase(knownCustomerRepo(), loans, &mockCustomerLocker{}, publisher, evaluatorWithScore("80"), &mockDecisionRecorder{})

	// Each installment is above half of the customer's 60,000 income, so
	// only one of the two loans is affordable.
	req := dto.LoanTermsRequest{
		CustomerID:   "cust-001",
		LoanAmount:   decimal.NewFromInt(400_000),
		InterestRate: dec("8"),
		TenureMonths: 12,
	}

	results := make([]dto.CreateLoanResponse, 2)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	approved := 0
	for _, r := range results {
		if r.Approved {
			approved++
		} else {
			assert.Equal(t, service.ReasonAffordabilityExceeded, r.Message)
		}
	}
	assert.Equal(t, 1, approved)
	assert.Len(t, book, 1)
}
