package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urjitutjit/creditapprovalsystem/internal/application/dto"
	"github.com/urjitutjit/creditapprovalsystem/internal/application/usecase"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/event"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/model"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/service"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/valueobject"
)

func evaluatorWithScore(score string) *service.EligibilityEvaluator {
	return service.NewEligibilityEvaluator(fixedScorer{score: valueobject.NewCreditScore(dec(score))})
}

func validTermsRequest() dto.LoanTermsRequest {
	return dto.LoanTermsRequest{
		CustomerID:   "cust-001",
		LoanAmount:   decimal.NewFromInt(100_000),
		InterestRate: dec("8"),
		TenureMonths: 12,
	}
}

func knownCustomerRepo() *mockCustomerRepository {
	return &mockCustomerRepository{
		findByIDFunc: func(_ context.Context, id string) (model.Customer, error) {
			if id != "cust-001" {
				return model.Customer{}, model.ErrCustomerNotFound
			}
			return testCustomer(), nil
		},
	}
}

func TestCheckEligibility_Execute(t *testing.T) {
	t.Run("approves with bracket floor applied", func(t *testing.T) {
		publisher := &mockEventPublisher{}
		recorder := &mockDecisionRecorder{}
		uc := usecase.NewCheckEligibilityUseCase(
			knownCustomerRepo(), &mockLoanRepository{}, publisher, evaluatorWithScore("40"), recorder,
		)

		resp, err := uc.Execute(context.Background(), validTermsRequest())

		require.NoError(t, err)
		assert.True(t, resp.Approved)
		assert.Equal(t, "cust-001", resp.CustomerID)
		assert.True(t, resp.InterestRate.Equal(dec("8")))
		assert.True(t, resp.CorrectedInterestRate.Equal(dec("12")))
		assert.True(t, resp.MonthlyInstallment.Equal(dec("8884.88")), "got %s", resp.MonthlyInstallment)
		assert.Equal(t, "40.00", resp.CreditScore)
		assert.Equal(t, []string{"credit.eligibility.evaluated"}, publisher.eventTypes())
		require.Len(t, recorder.decisions, 1)
		assert.True(t, recorder.decisions[0].approved)
	})

	t.Run("rejects when installments exceed half of income", func(t *testing.T) {
		loans := &mockLoanRepository{
			findByCustomerIDFunc: func(_ context.Context, customerID string) ([]model.Loan, error) {
				assert.Equal(t, "cust-001", customerID)
				heavy := model.ReconstructLoan("loan-x", "cust-001",
					decimal.NewFromInt(1_000_000), dec("10"), dec("31000"),
					36, 2, valueobject.LoanStatusActive,
					testLoan(valueobject.LoanStatusActive, 0).StartDate(), testLoan(valueobject.LoanStatusActive, 0).EndDate(),
					1, testCustomer().CreatedAt(), testCustomer().CreatedAt())
				return []model.Loan{heavy}, nil
			},
		}
		uc := usecase.NewCheckEligibilityUseCase(
			knownCustomerRepo(), loans, &mockEventPublisher{}, evaluatorWithScore("90"), &mockDecisionRecorder{},
		)

		resp, err := uc.Execute(context.Background(), validTermsRequest())

		require.NoError(t, err)
		assert.False(t, resp.Approved)
		assert.Equal(t, service.ReasonAffordabilityExceeded, resp.Message)
		assert.True(t, resp.MonthlyInstallment.IsZero())
		assert.True(t, resp.CorrectedInterestRate.Equal(resp.InterestRate))
	})

	t.Run("unknown customer is a rejection, not an error", func(t *testing.T) {
		publisher := &mockEventPublisher{}
		recorder := &mockDecisionRecorder{}
		uc := usecase.NewCheckEligibilityUseCase(
			knownCustomerRepo(), &mockLoanRepository{}, publisher, evaluatorWithScore("90"), recorder,
		)

		req := validTermsRequest()
		req.CustomerID = "cust-404"
		resp, err := uc.Execute(context.Background(), req)

		require.NoError(t, err)
		assert.False(t, resp.Approved)
		assert.Equal(t, service.ReasonCustomerNotFound, resp.Message)
		assert.True(t, resp.MonthlyInstallment.IsZero())
		assert.Equal(t, "0.00", resp.CreditScore)
		assert.Empty(t, publisher.publishedEvents)
		require.Len(t, recorder.decisions, 1)
		assert.False(t, recorder.decisions[0].approved)
	})

	t.Run("validates terms", func(t *testing.T) {
		uc := usecase.NewCheckEligibilityUseCase(
			knownCustomerRepo(), &mockLoanRepository{}, &mockEventPublisher{}, evaluatorWithScore("90"), &mockDecisionRecorder{},
		)

		for _, mutate := range []func(*dto.LoanTermsRequest){
			func(r *dto.LoanTermsRequest) { r.TenureMonths = 0 },
			func(r *dto.LoanTermsRequest) { r.TenureMonths = 121 },
			func(r *dto.LoanTermsRequest) { r.LoanAmount = decimal.Zero },
			func(r *dto.LoanTermsRequest) { r.InterestRate = dec("-0.5") },
			func(r *dto.LoanTermsRequest) { r.CustomerID = "" },
		} {
			req := validTermsRequest()
			mutate(&req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, dto.ErrInvalidRequest)
		}
	})

	t.Run("propagates loan repository errors", func(t *testing.T) {
		loans := &mockLoanRepository{
			findByCustomerIDFunc: func(context.Context, string) ([]model.Loan, error) {
				return nil, errors.New("connection reset")
			},
		}
		uc := usecase.NewCheckEligibilityUseCase(
			knownCustomerRepo(), loans, &mockEventPublisher{}, evaluatorWithScore("90"), &mockDecisionRecorder{},
		)

		_, err := uc.Execute(context.Background(), validTermsRequest())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "find loans")
	})

	t.Run("fails when publish fails", func(t *testing.T) {
		publisher := &mockEventPublisher{
			publishFunc: func(context.Context, ...event.DomainEvent) error { return errors.New("broker down") },
		}
		uc := usecase.NewCheckEligibilityUseCase(
			knownCustomerRepo(), &mockLoanRepository{}, publisher, evaluatorWithScore("90"), &mockDecisionRecorder{},
		)

		_, err := uc.Execute(context.Background(), validTermsRequest())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "publish events")
	})
}
