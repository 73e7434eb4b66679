package usecase

import (
	"context"
	"fmt"

	"github.com/urjitutjit/creditapprovalsystem/internal/application/dto"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/port"
)

// GetLoanUseCase retrieves a loan with its borrower.
type GetLoanUseCase struct {
	loanRepo     port.LoanRepository
	customerRepo port.CustomerRepository
}

// NewGetLoanUseCase wires dependencies.
func NewGetLoanUseCase(loanRepo port.LoanRepository, customerRepo port.CustomerRepository) *GetLoanUseCase {
	return &GetLoanUseCase{loanRepo: loanRepo, customerRepo: customerRepo}
}

// Execute returns a loan response for the given ID.
func (uc *GetLoanUseCase) Execute(
	ctx context.Context,
	req dto.GetLoanRequest,
) (dto.LoanResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.LoanResponse{}, err
	}

	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan: %w", err)
	}

	customer, err := uc.customerRepo.FindByID(ctx, loan.CustomerID())
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find customer: %w", err)
	}

	return toLoanResponse(loan, customer), nil
}

// ListCustomerLoansUseCase lists every loan held by a customer.
type ListCustomerLoansUseCase struct {
	loanRepo     port.LoanRepository
	customerRepo port.CustomerRepository
}

// NewListCustomerLoansUseCase wires dependencies.
func NewListCustomerLoansUseCase(loanRepo port.LoanRepository, customerRepo port.CustomerRepository) *ListCustomerLoansUseCase {
	return &ListCustomerLoansUseCase{loanRepo: loanRepo, customerRepo: customerRepo}
}

// Execute returns the customer's loans. An unknown customer is an error even
// though an empty list would also be valid for a known one.
func (uc *ListCustomerLoansUseCase) Execute(
	ctx context.Context,
	req dto.ListCustomerLoansRequest,
) (dto.CustomerLoansResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.CustomerLoansResponse{}, err
	}

	customer, err := uc.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return dto.CustomerLoansResponse{}, fmt.Errorf("find customer: %w", err)
	}

	loans, err := uc.loanRepo.FindByCustomerID(ctx, customer.ID())
	if err != nil {
		return dto.CustomerLoansResponse{}, fmt.Errorf("find loans: %w", err)
	}

	resp := dto.CustomerLoansResponse{
		CustomerID: customer.ID(),
		Loans:      make([]dto.LoanSummary, 0, len(loans)),
	}
	for _, l := range loans {
		resp.Loans = append(resp.Loans, toLoanSummary(l))
	}
	return resp, nil
}

// GetRepaymentScheduleUseCase builds the amortization table for a loan.
type GetRepaymentScheduleUseCase struct {
	loanRepo port.LoanRepository
}

// NewGetRepaymentScheduleUseCase wires dependencies.
func NewGetRepaymentScheduleUseCase(loanRepo port.LoanRepository) *GetRepaymentScheduleUseCase {
	return &GetRepaymentScheduleUseCase{loanRepo: loanRepo}
}

// Execute returns the full schedule from the loan's start date.
func (uc *GetRepaymentScheduleUseCase) Execute(
	ctx context.Context,
	req dto.GetLoanRequest,
) (dto.RepaymentScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.RepaymentScheduleResponse{}, err
	}

	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.RepaymentScheduleResponse{}, fmt.Errorf("find loan: %w", err)
	}

	schedule := loan.Schedule()
	resp := dto.RepaymentScheduleResponse{
		LoanID:  loan.ID(),
		Entries: make([]dto.RepaymentEntryResponse, 0, len(schedule)),
	}
	for _, e := range schedule {
		resp.Entries = append(resp.Entries, dto.RepaymentEntryResponse{
			Period:           e.Period,
			DueDate:          e.DueDate,
			Principal:        e.Principal,
			Interest:         e.Interest,
			Total:            e.Total,
			RemainingBalance: e.RemainingBalance,
		})
	}
	return resp, nil
}
