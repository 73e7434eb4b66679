package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/urjitutjit/creditapprovalsystem/internal/application/dto"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/model"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/port"
)

// RecordRepaymentUseCase applies one on-time installment to a loan.
type RecordRepaymentUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
}

// NewRecordRepaymentUseCase wires dependencies.
func NewRecordRepaymentUseCase(
	loanRepo port.LoanRepository,
	publisher port.EventPublisher,
) *RecordRepaymentUseCase {
	return &RecordRepaymentUseCase{
		loanRepo:  loanRepo,
		publisher: publisher,
	}
}

// Execute records the repayment, completing the loan on its last installment.
func (uc *RecordRepaymentUseCase) Execute(
	ctx context.Context,
	req dto.GetLoanRequest,
) (dto.LoanStatusResponse, error) {
	return transitionLoan(ctx, uc.loanRepo, uc.publisher, req, "record repayment", model.Loan.RecordRepayment)
}

// MarkLoanDefaultedUseCase writes an active loan down as defaulted.
type MarkLoanDefaultedUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
}

// NewMarkLoanDefaultedUseCase wires dependencies.
func NewMarkLoanDefaultedUseCase(
	loanRepo port.LoanRepository,
	publisher port.EventPublisher,
) *MarkLoanDefaultedUseCase {
	return &MarkLoanDefaultedUseCase{
		loanRepo:  loanRepo,
		publisher: publisher,
	}
}

// Execute transitions the loan to defaulted.
func (uc *MarkLoanDefaultedUseCase) Execute(
	ctx context.Context,
	req dto.GetLoanRequest,
) (dto.LoanStatusResponse, error) {
	return transitionLoan(ctx, uc.loanRepo, uc.publisher, req, "mark defaulted", model.Loan.MarkDefaulted)
}

func transitionLoan(
	ctx context.Context,
	loanRepo port.LoanRepository,
	publisher port.EventPublisher,
	req dto.GetLoanRequest,
	op string,
	transition func(model.Loan, time.Time) (model.Loan, error),
) (dto.LoanStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.LoanStatusResponse{}, err
	}

	// 1. Retrieve the loan.
	loan, err := loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.LoanStatusResponse{}, fmt.Errorf("find loan: %w", err)
	}

	// 2. Apply the transition.
	loan, err = transition(loan, time.Now().UTC())
	if err != nil {
		return dto.LoanStatusResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	// 3. Persist updated loan.
	if err := loanRepo.Save(ctx, loan); err != nil {
		return dto.LoanStatusResponse{}, fmt.Errorf("save loan: %w", err)
	}

	// 4. Publish events.
	if err := publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.LoanStatusResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.LoanStatusResponse{
		LoanID:         loan.ID(),
		Status:         loan.Status().String(),
		EMIsPaidOnTime: loan.EMIsPaidOnTime(),
		RepaymentsLeft: loan.RepaymentsLeft(),
	}, nil
}
