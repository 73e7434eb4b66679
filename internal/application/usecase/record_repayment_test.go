package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urjitutjit/creditapprovalsystem/internal/application/dto"
	"github.com/urjitutjit/creditapprovalsystem/internal/application/usecase"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/valueobject"
)

func TestRecordRepayment_Execute(t *testing.T) {
	t.Run("applies an installment", func(t *testing.T) {
		loans := loanRepoWith(testLoan(valueobject.LoanStatusActive, 5))
		publisher := &mockEventPublisher{}
		uc := usecase.NewRecordRepaymentUseCase(loans, publisher)

		resp, err := uc.Execute(context.Background(), dto.GetLoanRequest{LoanID: "loan-001"})

		require.NoError(t, err)
		assert.Equal(t, 6, resp.EMIsPaidOnTime)
		assert.Equal(t, 6, resp.RepaymentsLeft)
		assert.Equal(t, "active", resp.Status)
		require.Len(t, loans.savedLoans, 1)
		assert.Equal(t, []string{"credit.loan.repayment_recorded"}, publisher.eventTypes())
	})

	t.Run("final installment completes the loan", func(t *testing.T) {
		loans := loanRepoWith(testLoan(valueobject.LoanStatusActive, 11))
		publisher := &mockEventPublisher{}
		uc := usecase.NewRecordRepaymentUseCase(loans, publisher)

		resp, err := uc.Execute(context.Background(), dto.GetLoanRequest{LoanID: "loan-001"})

		require.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)
		assert.Equal(t, 0, resp.RepaymentsLeft)
		assert.Equal(t, []string{"credit.loan.repayment_recorded", "credit.loan.completed"}, publisher.eventTypes())
	})

	t.Run("rejects repayment on a completed loan", func(t *testing.T) {
		loans := loanRepoWith(testLoan(valueobject.LoanStatusCompleted, 12))
		uc := usecase.NewRecordRepaymentUseCase(loans, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.GetLoanRequest{LoanID: "loan-001"})

		require.Error(t, err)
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
		assert.Empty(t, loans.savedLoans)
	})
}

func TestMarkLoanDefaulted_Execute(t *testing.T) {
	loans := loanRepoWith(testLoan(valueobject.LoanStatusActive, 2))
	publisher := &mockEventPublisher{}
	uc := usecase.NewMarkLoanDefaultedUseCase(loans, publisher)

	resp, err := uc.Execute(context.Background(), dto.GetLoanRequest{LoanID: "loan-001"})

	require.NoError(t, err)
	assert.Equal(t, "defaulted", resp.Status)
	assert.Equal(t, 10, resp.RepaymentsLeft)
	assert.Equal(t, []string{"credit.loan.defaulted"}, publisher.eventTypes())
}
